/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"context"
	"fmt"

	awsinternal "github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/config"
)

// ProtectionSynchronizer reconciles the termination-protection flag against
// remote state
type ProtectionSynchronizer struct {
	cfn awsinternal.CloudFormationOperations
}

// NewProtectionSynchronizer creates a new ProtectionSynchronizer
func NewProtectionSynchronizer(cfn awsinternal.CloudFormationOperations) *ProtectionSynchronizer {
	return &ProtectionSynchronizer{cfn: cfn}
}

// Sync issues a single update call when the desired flag differs from the
// observed one. A stack that did not previously exist reads as unprotected.
// Matching flags issue no remote call.
func (s *ProtectionSynchronizer) Sync(ctx context.Context, cfg *config.DeploymentConfig, snapshot *PreviousStackSnapshot) error {
	observed := false
	if snapshot.Exists() {
		observed = snapshot.Stack.TerminationProtection
	}

	if observed == cfg.EnableTerminationProtection {
		return nil
	}

	err := s.cfn.UpdateTerminationProtection(ctx, cfg.StackName, cfg.EnableTerminationProtection)
	if err != nil {
		return fmt.Errorf("failed to synchronise termination protection: %w", err)
	}

	return nil
}
