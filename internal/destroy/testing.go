/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package destroy

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDestroyer implements Destroyer for testing
type MockDestroyer struct {
	mock.Mock
}

func (m *MockDestroyer) Destroy(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
