/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package config

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/stackpilot/stackpilot/internal/state"
	"github.com/stackpilot/stackpilot/internal/template"
)

// Ensure that DefaultResolver implements Resolver
var _ Resolver = (*DefaultResolver)(nil)

// DefaultResolver merges caller inputs over the fixed default table.
// Precedence, highest first:
//
//	caller inputs > persisted state (bucket only) > defaults
//
// Defaults: region us-east-1, empty parameters/capabilities/rollback
// configuration, rollback enabled, termination protection off.
type DefaultResolver struct {
	loader template.Loader
	now    func() time.Time
}

// NewResolver creates a resolver that loads template paths with loader
func NewResolver(loader template.Loader) *DefaultResolver {
	return &DefaultResolver{
		loader: loader,
		now:    time.Now,
	}
}

// NewResolverWithClock creates a resolver with an injected clock (for testing)
func NewResolverWithClock(loader template.Loader, now func() time.Time) *DefaultResolver {
	return &DefaultResolver{
		loader: loader,
		now:    now,
	}
}

// Resolve produces the canonical deployment configuration for one run and
// stamps it with a fresh timestamp. It fails with a ValidationError when the
// merged result lacks a stack name or a template.
func (r *DefaultResolver) Resolve(ctx context.Context, inputs Inputs, prev state.PersistedState) (*DeploymentConfig, error) {
	cfg := &DeploymentConfig{
		StackName:    inputs.StackName,
		TemplateBody: inputs.TemplateBody,
		Parameters:   maps.Clone(inputs.Parameters),
		RoleARN:      inputs.RoleARN,
		Capabilities: slices.Clone(inputs.Capabilities),
		Bucket:       inputs.Bucket,
		Region:       inputs.Region,
		Timestamp:    r.now().UnixMilli(),
	}

	if cfg.Parameters == nil {
		cfg.Parameters = map[string]string{}
	}
	if cfg.Capabilities == nil {
		cfg.Capabilities = []string{}
	}
	if inputs.RollbackConfiguration != nil {
		cfg.RollbackConfiguration = *inputs.RollbackConfiguration
	}
	if inputs.DisableRollback != nil {
		cfg.DisableRollback = *inputs.DisableRollback
	}
	if inputs.EnableTerminationProtection != nil {
		cfg.EnableTerminationProtection = *inputs.EnableTerminationProtection
	}

	// The artifact bucket carries over from the previous deploy unless the
	// caller names a new one.
	if cfg.Bucket == "" {
		cfg.Bucket = prev.Bucket
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	if cfg.TemplateBody == "" && inputs.TemplatePath != "" {
		body, err := r.loader.Load(inputs.TemplatePath)
		if err != nil {
			return nil, err
		}
		cfg.TemplateBody = body
	}

	if cfg.StackName == "" {
		return nil, &ValidationError{Field: "stackName", Reason: "is required"}
	}
	if cfg.TemplateBody == "" {
		return nil, &ValidationError{Field: "template", Reason: "is required"}
	}

	return cfg, nil
}
