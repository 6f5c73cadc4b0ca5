/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"context"
	"errors"
	"regexp"
	"sort"

	awsinternal "github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/config"
	"github.com/stackpilot/stackpilot/internal/poll"
)

// Terminal status patterns for create/update convergence.
var (
	deploySucceeded = regexp.MustCompile(`(CREATE|UPDATE)_COMPLETE`)
	deployFailed    = regexp.MustCompile(`(.*_FAILED|.*ROLLBACK_COMPLETE)`)
)

// StackReconciler issues the create or update call and awaits its terminal
// status
type StackReconciler struct {
	cfn    awsinternal.CloudFormationOperations
	waiter poll.StackWaiter
}

// NewStackReconciler creates a new StackReconciler
func NewStackReconciler(cfn awsinternal.CloudFormationOperations, waiter poll.StackWaiter) *StackReconciler {
	return &StackReconciler{
		cfn:    cfn,
		waiter: waiter,
	}
}

// Reconcile converges the remote stack on the desired configuration: create
// when the stack does not exist, update otherwise. An update reporting "no
// updates are to be performed" is treated as success. Either way the stack
// is polled to a terminal status and its outputs are returned.
func (r *StackReconciler) Reconcile(ctx context.Context, cfg *config.DeploymentConfig, stackExists bool) (map[string]string, error) {
	parameters := buildParameters(cfg.Parameters)

	templateBody := cfg.TemplateBody
	templateLocation := ""
	if cfg.TemplateKey != "" {
		templateBody = ""
		templateLocation = templateURL(cfg.Region, cfg.Bucket, cfg.TemplateKey)
	}

	if !stackExists {
		err := r.cfn.CreateStack(ctx, awsinternal.CreateStackInput{
			StackName:             cfg.StackName,
			TemplateBody:          templateBody,
			TemplateURL:           templateLocation,
			Parameters:            parameters,
			Capabilities:          cfg.Capabilities,
			RoleARN:               cfg.RoleARN,
			RollbackConfiguration: cfg.RollbackConfiguration,
			DisableRollback:       cfg.DisableRollback,
		})
		if err != nil {
			return nil, err
		}
	} else {
		err := r.cfn.UpdateStack(ctx, awsinternal.UpdateStackInput{
			StackName:             cfg.StackName,
			TemplateBody:          templateBody,
			TemplateURL:           templateLocation,
			Parameters:            parameters,
			Capabilities:          cfg.Capabilities,
			RoleARN:               cfg.RoleARN,
			RollbackConfiguration: cfg.RollbackConfiguration,
		})
		if err != nil && !errors.Is(err, awsinternal.ErrNoChanges) {
			return nil, err
		}
	}

	detail, err := r.waiter.WaitFor(ctx, cfg.StackName, deploySucceeded, deployFailed, func(ctx context.Context) (*awsinternal.StackDetail, error) {
		return r.cfn.DescribeStack(ctx, cfg.StackName)
	})
	if err != nil {
		return nil, err
	}

	return detail.Outputs, nil
}

// buildParameters converts the parameter mapping into discrete key/value
// pairs in a stable order
func buildParameters(params map[string]string) []awsinternal.Parameter {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parameters := make([]awsinternal.Parameter, len(keys))
	for i, key := range keys {
		parameters[i] = awsinternal.Parameter{Key: key, Value: params[key]}
	}
	return parameters
}
