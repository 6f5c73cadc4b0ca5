/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// Sentinel errors for the two expected CloudFormation conditions. Callers
// branch on these with errors.Is instead of matching error text themselves.
var (
	// ErrStackNotFound indicates the named stack does not exist. Expected on
	// first deploy and after deletion.
	ErrStackNotFound = errors.New("stack does not exist")

	// ErrNoChanges indicates an update was requested but the remote stack
	// already matches the submitted template and parameters.
	ErrNoChanges = errors.New("no updates are to be performed")
)

// classifyStackError maps CloudFormation API errors onto the typed sentinels.
// CloudFormation signals both conditions as a ValidationError whose message
// is the only discriminator, so the string matching is confined to this one
// boundary function.
func classifyStackError(stackName string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ValidationError" {
		msg := apiErr.ErrorMessage()
		switch {
		case strings.Contains(msg, "does not exist"):
			return fmt.Errorf("stack %s: %w", stackName, ErrStackNotFound)
		case strings.Contains(msg, "No updates are to be performed"):
			return fmt.Errorf("stack %s: %w", stackName, ErrNoChanges)
		}
	}

	return err
}
