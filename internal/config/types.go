/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package config resolves caller-supplied deployment inputs, persisted
// state, and fixed defaults into one canonical deployment configuration.
package config

import (
	"context"
	"fmt"

	awsinternal "github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/state"
)

// DefaultRegion is used when neither the caller nor persisted state names one.
const DefaultRegion = "us-east-1"

// Inputs is the caller-supplied partial configuration. Every field is
// optional at this layer; the resolver enforces what is required.
type Inputs struct {
	StackName                   string
	TemplatePath                string
	TemplateBody                string
	Parameters                  map[string]string
	RoleARN                     string
	RollbackConfiguration       *awsinternal.RollbackConfiguration
	DisableRollback             *bool
	Capabilities                []string
	EnableTerminationProtection *bool
	Bucket                      string
	Region                      string
}

// DeploymentConfig is the canonical configuration for one reconciliation
// run. It is owned exclusively by that run and rebuilt on each invocation.
type DeploymentConfig struct {
	StackName                   string
	TemplateBody                string
	Parameters                  map[string]string
	RoleARN                     string
	RollbackConfiguration       awsinternal.RollbackConfiguration
	DisableRollback             bool
	Capabilities                []string
	EnableTerminationProtection bool
	Bucket                      string
	Region                      string
	Timestamp                   int64

	// TemplateKey is set once the template body has been externalised to
	// the blob store.
	TemplateKey string
}

// ValidationError indicates required configuration is missing. It fails the
// run before any remote call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid deployment configuration: %s %s", e.Field, e.Reason)
}

// Resolver defines the interface for producing a deployment configuration
type Resolver interface {
	Resolve(ctx context.Context, inputs Inputs, prev state.PersistedState) (*DeploymentConfig, error)
}
