/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package poll

import (
	"context"
	"regexp"

	"github.com/stretchr/testify/mock"

	awsinternal "github.com/stackpilot/stackpilot/internal/aws"
)

// MockStackWaiter implements StackWaiter for testing
type MockStackWaiter struct {
	mock.Mock
}

func (m *MockStackWaiter) WaitFor(ctx context.Context, stackName string, success, failure *regexp.Regexp, fetch StatusFn) (*awsinternal.StackDetail, error) {
	args := m.Called(ctx, stackName, success, failure, fetch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*awsinternal.StackDetail), args.Error(1)
}
