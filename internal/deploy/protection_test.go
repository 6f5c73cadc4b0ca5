/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsinternal "github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/config"
)

func TestSync_EnablesProtectionWhenDesiredAndUnset(t *testing.T) {
	ctx := context.Background()
	mockCfnOps := &awsinternal.MockCloudFormationOperations{}

	cfg := &config.DeploymentConfig{StackName: "test-stack", EnableTerminationProtection: true}
	snapshot := &PreviousStackSnapshot{Stack: &awsinternal.StackDetail{
		Name:                  "test-stack",
		TerminationProtection: false,
	}}

	mockCfnOps.On("UpdateTerminationProtection", ctx, "test-stack", true).Return(nil)

	err := NewProtectionSynchronizer(mockCfnOps).Sync(ctx, cfg, snapshot)

	require.NoError(t, err)
	mockCfnOps.AssertExpectations(t)
}

func TestSync_DisablesProtectionWhenSetRemotely(t *testing.T) {
	ctx := context.Background()
	mockCfnOps := &awsinternal.MockCloudFormationOperations{}

	cfg := &config.DeploymentConfig{StackName: "test-stack", EnableTerminationProtection: false}
	snapshot := &PreviousStackSnapshot{Stack: &awsinternal.StackDetail{
		Name:                  "test-stack",
		TerminationProtection: true,
	}}

	mockCfnOps.On("UpdateTerminationProtection", ctx, "test-stack", false).Return(nil)

	err := NewProtectionSynchronizer(mockCfnOps).Sync(ctx, cfg, snapshot)

	require.NoError(t, err)
	mockCfnOps.AssertExpectations(t)
}

func TestSync_NoCallWhenFlagsMatch(t *testing.T) {
	ctx := context.Background()
	mockCfnOps := &awsinternal.MockCloudFormationOperations{}

	cfg := &config.DeploymentConfig{StackName: "test-stack", EnableTerminationProtection: true}
	snapshot := &PreviousStackSnapshot{Stack: &awsinternal.StackDetail{
		Name:                  "test-stack",
		TerminationProtection: true,
	}}

	err := NewProtectionSynchronizer(mockCfnOps).Sync(ctx, cfg, snapshot)

	require.NoError(t, err)
	mockCfnOps.AssertNotCalled(t, "UpdateTerminationProtection", ctx, "test-stack", true)
}

func TestSync_AbsentStackReadsAsUnprotected(t *testing.T) {
	// a freshly created stack has no prior snapshot; protection defaults off
	ctx := context.Background()
	mockCfnOps := &awsinternal.MockCloudFormationOperations{}

	cfg := &config.DeploymentConfig{StackName: "test-stack", EnableTerminationProtection: false}
	snapshot := &PreviousStackSnapshot{}

	err := NewProtectionSynchronizer(mockCfnOps).Sync(ctx, cfg, snapshot)

	require.NoError(t, err)
	mockCfnOps.AssertNotCalled(t, "UpdateTerminationProtection", ctx, "test-stack", false)
}

func TestSync_AbsentStackStillEnabledWhenDesired(t *testing.T) {
	ctx := context.Background()
	mockCfnOps := &awsinternal.MockCloudFormationOperations{}

	cfg := &config.DeploymentConfig{StackName: "test-stack", EnableTerminationProtection: true}
	snapshot := &PreviousStackSnapshot{}

	mockCfnOps.On("UpdateTerminationProtection", ctx, "test-stack", true).Return(nil)

	err := NewProtectionSynchronizer(mockCfnOps).Sync(ctx, cfg, snapshot)

	require.NoError(t, err)
	mockCfnOps.AssertExpectations(t)
}

func TestSync_UpdateErrorWrapped(t *testing.T) {
	ctx := context.Background()
	mockCfnOps := &awsinternal.MockCloudFormationOperations{}

	cfg := &config.DeploymentConfig{StackName: "test-stack", EnableTerminationProtection: true}
	snapshot := &PreviousStackSnapshot{}

	apiErr := errors.New("access denied")
	mockCfnOps.On("UpdateTerminationProtection", ctx, "test-stack", true).Return(apiErr)

	err := NewProtectionSynchronizer(mockCfnOps).Sync(ctx, cfg, snapshot)

	require.Error(t, err)
	assert.ErrorIs(t, err, apiErr)
	assert.Contains(t, err.Error(), "termination protection")
}
