/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	awsinternal "github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/config"
	"github.com/stackpilot/stackpilot/internal/poll"
	"github.com/stackpilot/stackpilot/internal/state"
	"github.com/stackpilot/stackpilot/internal/ui"
)

// Terminal status patterns for stack deletion (replacement handling).
var (
	deleteSucceeded = regexp.MustCompile(`DELETE_COMPLETE`)
	deleteFailed    = regexp.MustCompile(`DELETE_FAILED`)
)

// Deployer defines the interface for running a full reconciliation cycle
type Deployer interface {
	Deploy(ctx context.Context, inputs config.Inputs) (map[string]string, error)
}

// Ensure that StackDeployer implements Deployer
var _ Deployer = (*StackDeployer)(nil)

// StackDeployer drives one deployment: resolve configuration, inspect the
// previous stack, publish the template, converge, synchronise termination
// protection, delete a renamed predecessor, and persist state.
type StackDeployer struct {
	clientFactory awsinternal.ClientFactory
	resolver      config.Resolver
	store         state.Store
	waiter        poll.StackWaiter
	styles        *ui.Styles
}

// NewStackDeployer creates a new StackDeployer
func NewStackDeployer(clientFactory awsinternal.ClientFactory, resolver config.Resolver, store state.Store, waiter poll.StackWaiter, styles *ui.Styles) *StackDeployer {
	if styles == nil {
		styles = ui.NewStyles(false)
	}
	return &StackDeployer{
		clientFactory: clientFactory,
		resolver:      resolver,
		store:         store,
		waiter:        waiter,
		styles:        styles,
	}
}

// Deploy runs the full reconciliation cycle and returns the stack outputs.
// Persisted state is written only after every other step has succeeded, so a
// failed run leaves the previous record intact.
func (d *StackDeployer) Deploy(ctx context.Context, inputs config.Inputs) (map[string]string, error) {
	prev, err := d.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := d.resolver.Resolve(ctx, inputs, prev)
	if err != nil {
		return nil, err
	}

	cfn, err := d.clientFactory.GetCloudFormationOperations(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}

	snapshot, err := NewStackInspector(cfn).Inspect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var outputs map[string]string
	if snapshot.NeedsUpdate {
		if cfg.Bucket != "" {
			blob, err := d.clientFactory.GetBlobStoreOperations(ctx, cfg.Region)
			if err != nil {
				return nil, err
			}
			key, err := NewTemplatePublisher(blob).Publish(ctx, cfg)
			if err != nil {
				return nil, err
			}
			cfg.TemplateKey = key
		}

		outputs, err = NewStackReconciler(cfn, d.waiter).Reconcile(ctx, cfg, snapshot.Exists())
		if err != nil {
			return nil, err
		}
	} else {
		// Desired and observed state already agree. Nothing to converge, so
		// outputs come from a direct describe.
		detail, err := cfn.DescribeStack(ctx, cfg.StackName)
		if err != nil {
			return nil, err
		}
		outputs = detail.Outputs
	}

	if err := NewProtectionSynchronizer(cfn).Sync(ctx, cfg, snapshot); err != nil {
		return nil, err
	}

	// The old stack is removed only after the new one is live. A failure
	// here is reported but does not invalidate the deploy.
	if !prev.Empty() && prev.StackName != cfg.StackName {
		if err := d.deleteReplacedStack(ctx, prev, cfg.Region); err != nil {
			warning := fmt.Sprintf("warning: failed to delete replaced stack %s: %v", prev.StackName, err)
			fmt.Fprintln(os.Stderr, d.styles.Warning.Render(warning))
		}
	}

	err = d.store.Save(ctx, state.PersistedState{
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		StackName: cfg.StackName,
	})
	if err != nil {
		return nil, err
	}

	return outputs, nil
}

// deleteReplacedStack tears down the stack recorded under the previous name.
// The predecessor may live in a different region than the new stack.
func (d *StackDeployer) deleteReplacedStack(ctx context.Context, prev state.PersistedState, fallbackRegion string) error {
	region := prev.Region
	if region == "" {
		region = fallbackRegion
	}

	cfn, err := d.clientFactory.GetCloudFormationOperations(ctx, region)
	if err != nil {
		return err
	}

	err = cfn.DeleteStack(ctx, awsinternal.DeleteStackInput{StackName: prev.StackName})
	if errors.Is(err, awsinternal.ErrStackNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = d.waiter.WaitFor(ctx, prev.StackName, deleteSucceeded, deleteFailed, func(ctx context.Context) (*awsinternal.StackDetail, error) {
		detail, err := cfn.DescribeStack(ctx, prev.StackName)
		if errors.Is(err, awsinternal.ErrStackNotFound) {
			// A vanished stack reads as delete complete.
			return &awsinternal.StackDetail{
				Name:   prev.StackName,
				Status: awsinternal.StackStatusDeleteComplete,
			}, nil
		}
		return detail, err
	})
	return err
}
