/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package deploy implements the stack-reconciliation cycle: previous-state
// inspection, template publishing, create/update dispatch with completion
// polling, termination-protection synchronisation, and replacement handling.
package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	awsinternal "github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/config"
)

// PreviousStackSnapshot captures what the remote stack looked like before
// this run and whether a convergence action is needed.
type PreviousStackSnapshot struct {
	// Stack is the remote description, or nil when the stack does not exist.
	Stack *awsinternal.StackDetail

	// NeedsUpdate is true when the stack is absent or any compared field
	// differs from the desired configuration.
	NeedsUpdate bool
}

// Exists reports whether a remote stack was found
func (s *PreviousStackSnapshot) Exists() bool {
	return s.Stack != nil
}

// StackInspector computes the drift between desired configuration and the
// remote stack
type StackInspector struct {
	cfn awsinternal.CloudFormationOperations
}

// NewStackInspector creates a new StackInspector
func NewStackInspector(cfn awsinternal.CloudFormationOperations) *StackInspector {
	return &StackInspector{cfn: cfn}
}

// Inspect fetches the remote stack's original template and description and
// compares them against the desired configuration. Comparison is literal:
// serialized template bodies and projected configuration fields must match
// exactly. Formatting-only template differences count as drift.
func (i *StackInspector) Inspect(ctx context.Context, cfg *config.DeploymentConfig) (*PreviousStackSnapshot, error) {
	remoteBody, err := i.cfn.GetOriginalTemplate(ctx, cfg.StackName)
	if errors.Is(err, awsinternal.ErrStackNotFound) {
		return &PreviousStackSnapshot{NeedsUpdate: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to inspect stack %s: %w", cfg.StackName, err)
	}

	detail, err := i.cfn.DescribeStack(ctx, cfg.StackName)
	if errors.Is(err, awsinternal.ErrStackNotFound) {
		// Deleted between the two calls. Same outcome as never existing.
		return &PreviousStackSnapshot{NeedsUpdate: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to inspect stack %s: %w", cfg.StackName, err)
	}

	needsUpdate := remoteBody != cfg.TemplateBody ||
		!parametersEqual(detail.Parameters, cfg.Parameters) ||
		detail.RoleARN != cfg.RoleARN ||
		!capabilitiesEqual(detail.Capabilities, cfg.Capabilities) ||
		!rollbackConfigurationEqual(detail.RollbackConfiguration, cfg.RollbackConfiguration)

	return &PreviousStackSnapshot{Stack: detail, NeedsUpdate: needsUpdate}, nil
}

func parametersEqual(remote, desired map[string]string) bool {
	if len(remote) == 0 && len(desired) == 0 {
		return true
	}
	return maps.Equal(remote, desired)
}

func capabilitiesEqual(remote, desired []string) bool {
	if len(remote) == 0 && len(desired) == 0 {
		return true
	}
	return slices.Equal(remote, desired)
}

// rollbackConfigurationEqual compares both sides in serialized form, the
// same literal-equality stance taken for template bodies.
func rollbackConfigurationEqual(remote, desired awsinternal.RollbackConfiguration) bool {
	remoteJSON, err := json.Marshal(remote)
	if err != nil {
		return false
	}
	desiredJSON, err := json.Marshal(desired)
	if err != nil {
		return false
	}
	return string(remoteJSON) == string(desiredJSON)
}
