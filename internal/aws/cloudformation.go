/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

// StackStatus represents the status of a CloudFormation stack
type StackStatus string

const (
	StackStatusCreateInProgress       StackStatus = "CREATE_IN_PROGRESS"
	StackStatusCreateComplete         StackStatus = "CREATE_COMPLETE"
	StackStatusCreateFailed           StackStatus = "CREATE_FAILED"
	StackStatusDeleteInProgress       StackStatus = "DELETE_IN_PROGRESS"
	StackStatusDeleteComplete         StackStatus = "DELETE_COMPLETE"
	StackStatusDeleteFailed           StackStatus = "DELETE_FAILED"
	StackStatusUpdateInProgress       StackStatus = "UPDATE_IN_PROGRESS"
	StackStatusUpdateComplete         StackStatus = "UPDATE_COMPLETE"
	StackStatusUpdateFailed           StackStatus = "UPDATE_FAILED"
	StackStatusUpdateRollbackComplete StackStatus = "UPDATE_ROLLBACK_COMPLETE"
	StackStatusRollbackInProgress     StackStatus = "ROLLBACK_IN_PROGRESS"
	StackStatusRollbackComplete       StackStatus = "ROLLBACK_COMPLETE"
	StackStatusRollbackFailed         StackStatus = "ROLLBACK_FAILED"
)

// RollbackTrigger identifies a CloudWatch alarm that triggers a rollback
type RollbackTrigger struct {
	Arn  string
	Type string
}

// RollbackConfiguration mirrors the CloudFormation rollback configuration
// attached to create and update operations
type RollbackConfiguration struct {
	MonitoringTimeInMinutes *int32
	RollbackTriggers        []RollbackTrigger
}

// StackDetail represents the full remote description of a stack: everything
// the drift check compares plus status and outputs
type StackDetail struct {
	Name                  string
	Status                StackStatus
	StatusReason          string
	Parameters            map[string]string
	Outputs               map[string]string
	RoleARN               string
	Capabilities          []string
	RollbackConfiguration RollbackConfiguration
	TerminationProtection bool
}

// CreateStackInput contains parameters for creating a stack. Exactly one of
// TemplateBody or TemplateURL must be set.
type CreateStackInput struct {
	StackName             string
	TemplateBody          string
	TemplateURL           string
	Parameters            []Parameter
	Capabilities          []string
	RoleARN               string
	RollbackConfiguration RollbackConfiguration
	DisableRollback       bool
}

// UpdateStackInput contains parameters for updating a stack
type UpdateStackInput struct {
	StackName             string
	TemplateBody          string
	TemplateURL           string
	Parameters            []Parameter
	Capabilities          []string
	RoleARN               string
	RollbackConfiguration RollbackConfiguration
}

// DeleteStackInput contains parameters for deleting a stack
type DeleteStackInput struct {
	StackName string
}

// Parameter represents a CloudFormation stack parameter
type Parameter struct {
	Key   string
	Value string
}

// DefaultCloudFormationOperations provides CloudFormation-specific operations
type DefaultCloudFormationOperations struct {
	client CloudFormationClient
}

// NewCloudFormationOperations creates a new CloudFormation operations wrapper
func (c *DefaultClient) NewCloudFormationOperations() CloudFormationOperations {
	return &DefaultCloudFormationOperations{
		client: c.cfn,
	}
}

// NewCloudFormationOperationsWithClient creates operations with a custom client (for testing)
func NewCloudFormationOperationsWithClient(client CloudFormationClient) *DefaultCloudFormationOperations {
	return &DefaultCloudFormationOperations{
		client: client,
	}
}

// CreateStack creates a new CloudFormation stack
func (cf *DefaultCloudFormationOperations) CreateStack(ctx context.Context, input CreateStackInput) error {
	createInput := &cloudformation.CreateStackInput{
		StackName:             aws.String(input.StackName),
		Parameters:            toSDKParameters(input.Parameters),
		Capabilities:          toSDKCapabilities(input.Capabilities),
		RollbackConfiguration: toSDKRollbackConfiguration(input.RollbackConfiguration),
		DisableRollback:       aws.Bool(input.DisableRollback),
	}
	if input.TemplateURL != "" {
		createInput.TemplateURL = aws.String(input.TemplateURL)
	} else {
		createInput.TemplateBody = aws.String(input.TemplateBody)
	}
	if input.RoleARN != "" {
		createInput.RoleARN = aws.String(input.RoleARN)
	}

	_, err := cf.client.CreateStack(ctx, createInput)
	if err != nil {
		return fmt.Errorf("failed to create stack %s: %w", input.StackName, err)
	}

	return nil
}

// UpdateStack updates an existing CloudFormation stack. When CloudFormation
// reports that the submitted state is identical to the remote state, the
// returned error wraps ErrNoChanges.
func (cf *DefaultCloudFormationOperations) UpdateStack(ctx context.Context, input UpdateStackInput) error {
	updateInput := &cloudformation.UpdateStackInput{
		StackName:             aws.String(input.StackName),
		Parameters:            toSDKParameters(input.Parameters),
		Capabilities:          toSDKCapabilities(input.Capabilities),
		RollbackConfiguration: toSDKRollbackConfiguration(input.RollbackConfiguration),
	}
	if input.TemplateURL != "" {
		updateInput.TemplateURL = aws.String(input.TemplateURL)
	} else {
		updateInput.TemplateBody = aws.String(input.TemplateBody)
	}
	if input.RoleARN != "" {
		updateInput.RoleARN = aws.String(input.RoleARN)
	}

	_, err := cf.client.UpdateStack(ctx, updateInput)
	if err != nil {
		if classified := classifyStackError(input.StackName, err); classified != err {
			return classified
		}
		return fmt.Errorf("failed to update stack %s: %w", input.StackName, err)
	}

	return nil
}

// DeleteStack deletes a CloudFormation stack. Deleting a stack that does not
// exist returns an error wrapping ErrStackNotFound.
func (cf *DefaultCloudFormationOperations) DeleteStack(ctx context.Context, input DeleteStackInput) error {
	_, err := cf.client.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName: aws.String(input.StackName),
	})

	if err != nil {
		if classified := classifyStackError(input.StackName, err); classified != err {
			return classified
		}
		return fmt.Errorf("failed to delete stack %s: %w", input.StackName, err)
	}

	return nil
}

// DescribeStack retrieves the full remote description of a stack. A missing
// stack returns an error wrapping ErrStackNotFound.
func (cf *DefaultCloudFormationOperations) DescribeStack(ctx context.Context, stackName string) (*StackDetail, error) {
	result, err := cf.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})

	if err != nil {
		if classified := classifyStackError(stackName, err); classified != err {
			return nil, classified
		}
		return nil, fmt.Errorf("failed to describe stack %s: %w", stackName, err)
	}

	if len(result.Stacks) == 0 {
		return nil, fmt.Errorf("stack %s: %w", stackName, ErrStackNotFound)
	}

	cfnStack := result.Stacks[0]
	detail := &StackDetail{
		Name:                  aws.ToString(cfnStack.StackName),
		Status:                StackStatus(cfnStack.StackStatus),
		StatusReason:          aws.ToString(cfnStack.StackStatusReason),
		Parameters:            make(map[string]string),
		Outputs:               make(map[string]string),
		RoleARN:               aws.ToString(cfnStack.RoleARN),
		TerminationProtection: aws.ToBool(cfnStack.EnableTerminationProtection),
	}

	for _, param := range cfnStack.Parameters {
		detail.Parameters[aws.ToString(param.ParameterKey)] = aws.ToString(param.ParameterValue)
	}

	for _, output := range cfnStack.Outputs {
		detail.Outputs[aws.ToString(output.OutputKey)] = aws.ToString(output.OutputValue)
	}

	for _, capability := range cfnStack.Capabilities {
		detail.Capabilities = append(detail.Capabilities, string(capability))
	}

	if rc := cfnStack.RollbackConfiguration; rc != nil {
		detail.RollbackConfiguration.MonitoringTimeInMinutes = rc.MonitoringTimeInMinutes
		for _, trigger := range rc.RollbackTriggers {
			detail.RollbackConfiguration.RollbackTriggers = append(detail.RollbackConfiguration.RollbackTriggers, RollbackTrigger{
				Arn:  aws.ToString(trigger.Arn),
				Type: aws.ToString(trigger.Type),
			})
		}
	}

	return detail, nil
}

// GetOriginalTemplate retrieves the template body of a stack as it was
// submitted, before CloudFormation transformations. A missing stack returns
// an error wrapping ErrStackNotFound.
func (cf *DefaultCloudFormationOperations) GetOriginalTemplate(ctx context.Context, stackName string) (string, error) {
	result, err := cf.client.GetTemplate(ctx, &cloudformation.GetTemplateInput{
		StackName:     aws.String(stackName),
		TemplateStage: types.TemplateStageOriginal,
	})

	if err != nil {
		if classified := classifyStackError(stackName, err); classified != err {
			return "", classified
		}
		return "", fmt.Errorf("failed to get template for stack %s: %w", stackName, err)
	}

	return aws.ToString(result.TemplateBody), nil
}

// UpdateTerminationProtection sets the termination protection flag on a stack
func (cf *DefaultCloudFormationOperations) UpdateTerminationProtection(ctx context.Context, stackName string, enabled bool) error {
	_, err := cf.client.UpdateTerminationProtection(ctx, &cloudformation.UpdateTerminationProtectionInput{
		StackName:                   aws.String(stackName),
		EnableTerminationProtection: aws.Bool(enabled),
	})

	if err != nil {
		return fmt.Errorf("failed to update termination protection for stack %s: %w", stackName, err)
	}

	return nil
}

func toSDKParameters(params []Parameter) []types.Parameter {
	sdkParams := make([]types.Parameter, len(params))
	for i, p := range params {
		sdkParams[i] = types.Parameter{
			ParameterKey:   aws.String(p.Key),
			ParameterValue: aws.String(p.Value),
		}
	}
	return sdkParams
}

func toSDKCapabilities(capabilities []string) []types.Capability {
	sdkCapabilities := make([]types.Capability, len(capabilities))
	for i, capability := range capabilities {
		sdkCapabilities[i] = types.Capability(capability)
	}
	return sdkCapabilities
}

func toSDKRollbackConfiguration(rc RollbackConfiguration) *types.RollbackConfiguration {
	sdkConfig := &types.RollbackConfiguration{
		MonitoringTimeInMinutes: rc.MonitoringTimeInMinutes,
	}
	for _, trigger := range rc.RollbackTriggers {
		sdkConfig.RollbackTriggers = append(sdkConfig.RollbackTriggers, types.RollbackTrigger{
			Arn:  aws.String(trigger.Arn),
			Type: aws.String(trigger.Type),
		})
	}
	return sdkConfig
}
