/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package state

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore implements Store for testing
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) (PersistedState, error) {
	args := m.Called(ctx)
	return args.Get(0).(PersistedState), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, s PersistedState) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
