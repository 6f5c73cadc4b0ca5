/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package poll implements the generic completion-polling primitive used to
// await terminal CloudFormation stack statuses.
package poll

import (
	"context"
	"fmt"
	"regexp"
	"time"

	awsinternal "github.com/stackpilot/stackpilot/internal/aws"
)

// DefaultInterval is the pause between status queries.
const DefaultInterval = 5 * time.Second

// StatusFn returns the current remote description of the polled stack.
type StatusFn func(ctx context.Context) (*awsinternal.StackDetail, error)

// ConvergenceError indicates the polled stack reached a terminal failure
// status. Status carries the observed status string.
type ConvergenceError struct {
	StackName string
	Status    string
	Reason    string
}

func (e *ConvergenceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("stack %s reached status %s: %s", e.StackName, e.Status, e.Reason)
	}
	return fmt.Sprintf("stack %s reached status %s", e.StackName, e.Status)
}

// StackWaiter defines the interface for awaiting a terminal stack status
type StackWaiter interface {
	WaitFor(ctx context.Context, stackName string, success, failure *regexp.Regexp, fetch StatusFn) (*awsinternal.StackDetail, error)
}

// Ensure that Waiter implements StackWaiter
var _ StackWaiter = (*Waiter)(nil)

// Waiter polls a stack's status at a fixed interval until it matches a
// success or failure pattern. There is no internal deadline: the caller
// bounds the total wait through ctx.
type Waiter struct {
	// Interval between status queries. Defaults to DefaultInterval.
	Interval time.Duration
}

// NewWaiter creates a waiter with the default polling interval
func NewWaiter() *Waiter {
	return &Waiter{Interval: DefaultInterval}
}

// WaitFor sleeps one interval, queries the current status, and repeats until
// the status matches success (returning the current description) or failure
// (returning a ConvergenceError). A fetch error aborts the wait immediately;
// the status query is not retried.
func (w *Waiter) WaitFor(ctx context.Context, stackName string, success, failure *regexp.Regexp, fetch StatusFn) (*awsinternal.StackDetail, error) {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("wait for stack %s aborted: %w", stackName, ctx.Err())
		case <-ticker.C:
		}

		detail, err := fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query status of stack %s: %w", stackName, err)
		}

		status := string(detail.Status)
		if success.MatchString(status) {
			return detail, nil
		}
		if failure.MatchString(status) {
			return nil, &ConvergenceError{
				StackName: stackName,
				Status:    status,
				Reason:    detail.StatusReason,
			}
		}
	}
}
