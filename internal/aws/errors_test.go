/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStackError_StackNotFound(t *testing.T) {
	apiErr := &smithy.GenericAPIError{
		Code:    "ValidationError",
		Message: "Stack with id test-stack does not exist",
	}

	err := classifyStackError("test-stack", apiErr)

	assert.True(t, errors.Is(err, ErrStackNotFound))
	assert.Contains(t, err.Error(), "test-stack")
}

func TestClassifyStackError_NoChanges(t *testing.T) {
	apiErr := &smithy.GenericAPIError{
		Code:    "ValidationError",
		Message: "No updates are to be performed.",
	}

	err := classifyStackError("test-stack", apiErr)

	assert.True(t, errors.Is(err, ErrNoChanges))
}

func TestClassifyStackError_WrappedAPIError(t *testing.T) {
	// The SDK wraps API errors in operation errors; classification must see through
	apiErr := &smithy.GenericAPIError{
		Code:    "ValidationError",
		Message: "Stack with id test-stack does not exist",
	}
	wrapped := fmt.Errorf("operation error CloudFormation: DescribeStacks: %w", apiErr)

	err := classifyStackError("test-stack", wrapped)

	assert.True(t, errors.Is(err, ErrStackNotFound))
}

func TestClassifyStackError_UnrelatedValidationError(t *testing.T) {
	apiErr := &smithy.GenericAPIError{
		Code:    "ValidationError",
		Message: "Template format error",
	}

	err := classifyStackError("test-stack", apiErr)

	assert.False(t, errors.Is(err, ErrStackNotFound))
	assert.False(t, errors.Is(err, ErrNoChanges))
	assert.Equal(t, apiErr, err)
}

func TestClassifyStackError_TransportError(t *testing.T) {
	cause := errors.New("connection reset by peer")

	err := classifyStackError("test-stack", cause)

	assert.Equal(t, cause, err)
}

func TestClassifyStackError_NilError(t *testing.T) {
	assert.NoError(t, classifyStackError("test-stack", nil))
}
