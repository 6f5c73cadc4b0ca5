/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package config

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stackpilot/stackpilot/internal/state"
)

// MockResolver implements Resolver for testing
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, inputs Inputs, prev state.PersistedState) (*DeploymentConfig, error) {
	args := m.Called(ctx, inputs, prev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DeploymentConfig), args.Error(1)
}
