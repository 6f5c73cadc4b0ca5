/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	awsinternal "github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/config"
	"github.com/stackpilot/stackpilot/internal/poll"
)

func reconcilerConfig() *config.DeploymentConfig {
	return &config.DeploymentConfig{
		StackName:       "test-stack",
		TemplateBody:    `{"Resources":{}}`,
		Parameters:      map[string]string{"Stage": "prod", "Name": "orders"},
		Capabilities:    []string{"CAPABILITY_IAM"},
		Region:          "us-east-1",
		DisableRollback: true,
	}
}

func completedDetail() *awsinternal.StackDetail {
	return &awsinternal.StackDetail{
		Name:    "test-stack",
		Status:  awsinternal.StackStatusCreateComplete,
		Outputs: map[string]string{"Endpoint": "https://api.example.com"},
	}
}

func TestReconcile_CreatesWhenStackAbsent(t *testing.T) {
	ctx := context.Background()
	mockCfnOps := &awsinternal.MockCloudFormationOperations{}
	mockWaiter := &poll.MockStackWaiter{}

	mockCfnOps.On("CreateStack", mock.Anything, mock.MatchedBy(func(input awsinternal.CreateStackInput) bool {
		return input.StackName == "test-stack" &&
			input.TemplateBody == `{"Resources":{}}` &&
			input.TemplateURL == "" &&
			input.DisableRollback &&
			len(input.Parameters) == 2 &&
			// parameter list is built in stable key order
			input.Parameters[0].Key == "Name" &&
			input.Parameters[1].Key == "Stage"
	})).Return(nil)
	mockWaiter.On("WaitFor", mock.Anything, "test-stack", deploySucceeded, deployFailed, mock.Anything).
		Return(completedDetail(), nil)

	outputs, err := NewStackReconciler(mockCfnOps, mockWaiter).Reconcile(ctx, reconcilerConfig(), false)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Endpoint": "https://api.example.com"}, outputs)
	mockCfnOps.AssertNotCalled(t, "UpdateStack", mock.Anything, mock.Anything)
	mockCfnOps.AssertExpectations(t)
	mockWaiter.AssertExpectations(t)
}

func TestReconcile_UpdatesWhenStackExists(t *testing.T) {
	ctx := context.Background()
	mockCfnOps := &awsinternal.MockCloudFormationOperations{}
	mockWaiter := &poll.MockStackWaiter{}

	mockCfnOps.On("UpdateStack", mock.Anything, mock.MatchedBy(func(input awsinternal.UpdateStackInput) bool {
		return input.StackName == "test-stack" && input.TemplateBody == `{"Resources":{}}`
	})).Return(nil)
	mockWaiter.On("WaitFor", mock.Anything, "test-stack", deploySucceeded, deployFailed, mock.Anything).
		Return(completedDetail(), nil)

	outputs, err := NewStackReconciler(mockCfnOps, mockWaiter).Reconcile(ctx, reconcilerConfig(), true)

	require.NoError(t, err)
	assert.NotEmpty(t, outputs)
	mockCfnOps.AssertNotCalled(t, "CreateStack", mock.Anything, mock.Anything)
}

func TestReconcile_NoChangesUpdateIsAbsorbed(t *testing.T) {
	// "No updates are to be performed" is success with no state change
	ctx := context.Background()
	mockCfnOps := &awsinternal.MockCloudFormationOperations{}
	mockWaiter := &poll.MockStackWaiter{}

	mockCfnOps.On("UpdateStack", mock.Anything, mock.Anything).
		Return(fmt.Errorf("stack test-stack: %w", awsinternal.ErrNoChanges))
	mockWaiter.On("WaitFor", mock.Anything, "test-stack", deploySucceeded, deployFailed, mock.Anything).
		Return(completedDetail(), nil)

	outputs, err := NewStackReconciler(mockCfnOps, mockWaiter).Reconcile(ctx, reconcilerConfig(), true)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Endpoint": "https://api.example.com"}, outputs)
}

func TestReconcile_OtherUpdateErrorPropagates(t *testing.T) {
	ctx := context.Background()
	mockCfnOps := &awsinternal.MockCloudFormationOperations{}
	mockWaiter := &poll.MockStackWaiter{}

	mockCfnOps.On("UpdateStack", mock.Anything, mock.Anything).Return(errors.New("throttled"))

	outputs, err := NewStackReconciler(mockCfnOps, mockWaiter).Reconcile(ctx, reconcilerConfig(), true)

	assert.Nil(t, outputs)
	require.Error(t, err)
	mockWaiter.AssertNotCalled(t, "WaitFor", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_CreateErrorPropagates(t *testing.T) {
	ctx := context.Background()
	mockCfnOps := &awsinternal.MockCloudFormationOperations{}
	mockWaiter := &poll.MockStackWaiter{}

	mockCfnOps.On("CreateStack", mock.Anything, mock.Anything).Return(errors.New("limit exceeded"))

	outputs, err := NewStackReconciler(mockCfnOps, mockWaiter).Reconcile(ctx, reconcilerConfig(), false)

	assert.Nil(t, outputs)
	require.Error(t, err)
	mockWaiter.AssertNotCalled(t, "WaitFor", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_ReferencesPublishedTemplateByLocation(t *testing.T) {
	ctx := context.Background()
	mockCfnOps := &awsinternal.MockCloudFormationOperations{}
	mockWaiter := &poll.MockStackWaiter{}

	cfg := reconcilerConfig()
	cfg.Bucket = "artifacts"
	cfg.TemplateKey = "test-stack/1-2023/template.json"

	mockCfnOps.On("CreateStack", mock.Anything, mock.MatchedBy(func(input awsinternal.CreateStackInput) bool {
		return input.TemplateBody == "" &&
			input.TemplateURL == "https://s3.us-east-1.amazonaws.com/artifacts/test-stack/1-2023/template.json"
	})).Return(nil)
	mockWaiter.On("WaitFor", mock.Anything, "test-stack", deploySucceeded, deployFailed, mock.Anything).
		Return(completedDetail(), nil)

	_, err := NewStackReconciler(mockCfnOps, mockWaiter).Reconcile(ctx, cfg, false)

	require.NoError(t, err)
	mockCfnOps.AssertExpectations(t)
}

func TestReconcile_ConvergenceFailurePropagates(t *testing.T) {
	ctx := context.Background()
	mockCfnOps := &awsinternal.MockCloudFormationOperations{}
	mockWaiter := &poll.MockStackWaiter{}

	mockCfnOps.On("CreateStack", mock.Anything, mock.Anything).Return(nil)
	mockWaiter.On("WaitFor", mock.Anything, "test-stack", deploySucceeded, deployFailed, mock.Anything).
		Return(nil, &poll.ConvergenceError{StackName: "test-stack", Status: "ROLLBACK_COMPLETE"})

	outputs, err := NewStackReconciler(mockCfnOps, mockWaiter).Reconcile(ctx, reconcilerConfig(), false)

	assert.Nil(t, outputs)
	var convErr *poll.ConvergenceError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, "ROLLBACK_COMPLETE", convErr.Status)
}
