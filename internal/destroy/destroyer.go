/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package destroy implements the teardown path: deleting the stack recorded
// in persisted state and clearing the record.
package destroy

import (
	"context"
	"errors"
	"regexp"

	awsinternal "github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/config"
	"github.com/stackpilot/stackpilot/internal/poll"
	"github.com/stackpilot/stackpilot/internal/state"
)

// Terminal status patterns for stack deletion.
var (
	deleteSucceeded = regexp.MustCompile(`DELETE_COMPLETE`)
	deleteFailed    = regexp.MustCompile(`DELETE_FAILED`)
)

// Destroyer defines the interface for tearing down the recorded stack
type Destroyer interface {
	Destroy(ctx context.Context) error
}

// Ensure that StackDestroyer implements Destroyer
var _ Destroyer = (*StackDestroyer)(nil)

// StackDestroyer deletes the stack named by persisted state. It needs no
// desired configuration: persisted state is the sole source of identity.
type StackDestroyer struct {
	clientFactory awsinternal.ClientFactory
	store         state.Store
	waiter        poll.StackWaiter
}

// NewStackDestroyer creates a new StackDestroyer
func NewStackDestroyer(clientFactory awsinternal.ClientFactory, store state.Store, waiter poll.StackWaiter) *StackDestroyer {
	return &StackDestroyer{
		clientFactory: clientFactory,
		store:         store,
		waiter:        waiter,
	}
}

// Destroy deletes the recorded stack, awaits completion, and clears
// persisted state. When no stack is recorded the teardown is a no-op. An
// already-deleted stack is tolerated.
func (d *StackDestroyer) Destroy(ctx context.Context) error {
	st, err := d.store.Load(ctx)
	if err != nil {
		return err
	}

	if st.Empty() {
		return nil
	}

	region := st.Region
	if region == "" {
		region = config.DefaultRegion
	}

	cfn, err := d.clientFactory.GetCloudFormationOperations(ctx, region)
	if err != nil {
		return err
	}

	err = cfn.DeleteStack(ctx, awsinternal.DeleteStackInput{StackName: st.StackName})
	if err != nil && !errors.Is(err, awsinternal.ErrStackNotFound) {
		return err
	}

	if err == nil {
		_, err = d.waiter.WaitFor(ctx, st.StackName, deleteSucceeded, deleteFailed, func(ctx context.Context) (*awsinternal.StackDetail, error) {
			detail, err := cfn.DescribeStack(ctx, st.StackName)
			if errors.Is(err, awsinternal.ErrStackNotFound) {
				// A vanished stack reads as delete complete.
				return &awsinternal.StackDetail{
					Name:   st.StackName,
					Status: awsinternal.StackStatusDeleteComplete,
				}, nil
			}
			return detail, err
		})
		if err != nil {
			return err
		}
	}

	return d.store.Clear(ctx)
}
