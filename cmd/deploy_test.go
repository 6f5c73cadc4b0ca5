/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stackpilot/stackpilot/internal/config"
	"github.com/stackpilot/stackpilot/internal/deploy"
)

// resetFlags clears flag state carried over from a previous Execute
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.Root().PersistentFlags().VisitAll(reset)
}

func findCommand(parent *cobra.Command, name string) *cobra.Command {
	for _, cmd := range parent.Commands() {
		if cmd.Use == name {
			return cmd
		}
	}
	return nil
}

func TestDeployCommand_Exists(t *testing.T) {
	// Test that deploy command is registered with root command
	deployCmd := findCommand(rootCmd, "deploy")

	assert.NotNil(t, deployCmd, "deploy command should be registered")
	assert.Equal(t, "deploy", deployCmd.Use)
}

func TestDeployCommand_HasOverrideFlags(t *testing.T) {
	// Test that deploy command exposes the per-run override flags
	deployCmd := findCommand(rootCmd, "deploy")
	require.NotNil(t, deployCmd)

	for _, name := range []string{
		"stack-name", "template", "region", "bucket", "role-arn",
		"capability", "param", "disable-rollback", "termination-protection",
	} {
		assert.NotNil(t, deployCmd.Flags().Lookup(name), "deploy command should have --%s flag", name)
	}
}

func TestDeployCommand_FlagsOverlayFileInputs(t *testing.T) {
	// Test that command-line flags reach the deployer as resolved inputs
	defer resetFlags(findCommand(rootCmd, "deploy"))

	mockDeployer := &deploy.MockDeployer{}
	mockDeployer.On("Deploy", mock.Anything, mock.MatchedBy(func(inputs config.Inputs) bool {
		return inputs.StackName == "api-prod" &&
			inputs.Region == "eu-west-1" &&
			inputs.Parameters["Stage"] == "prod" &&
			inputs.DisableRollback != nil && *inputs.DisableRollback
	})).Return(map[string]string{"Endpoint": "https://api.example.com"}, nil)

	oldDeployer := deployer
	SetDeployer(mockDeployer)
	defer SetDeployer(oldDeployer)

	rootCmd.SetArgs([]string{
		"deploy",
		"--stack-name", "api-prod",
		"--region", "eu-west-1",
		"--param", "Stage=prod",
		"--disable-rollback",
	})

	err := rootCmd.Execute()

	require.NoError(t, err)
	mockDeployer.AssertExpectations(t)
}

func TestDeployCommand_ReadsConfigFile(t *testing.T) {
	// Test that inputs come from the configured YAML file
	defer resetFlags(findCommand(rootCmd, "deploy"))

	tmpDir := t.TempDir()
	configContent := `
region: ap-southeast-2
stack:
  name: file-stack
  parameters:
    Stage: test
`
	configPath := filepath.Join(tmpDir, "stackpilot.yaml")
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	mockDeployer := &deploy.MockDeployer{}
	mockDeployer.On("Deploy", mock.Anything, mock.MatchedBy(func(inputs config.Inputs) bool {
		return inputs.StackName == "file-stack" &&
			inputs.Region == "ap-southeast-2" &&
			inputs.Parameters["Stage"] == "test"
	})).Return(map[string]string{}, nil)

	oldDeployer := deployer
	SetDeployer(mockDeployer)
	defer SetDeployer(oldDeployer)

	rootCmd.SetArgs([]string{"deploy", "--config", configPath})

	err = rootCmd.Execute()

	require.NoError(t, err)
	mockDeployer.AssertExpectations(t)
}

func TestDeployCommand_RejectsMalformedParameter(t *testing.T) {
	// Test that a parameter without key=value form fails before deploying
	defer resetFlags(findCommand(rootCmd, "deploy"))

	mockDeployer := &deploy.MockDeployer{}

	oldDeployer := deployer
	SetDeployer(mockDeployer)
	defer SetDeployer(oldDeployer)

	rootCmd.SetArgs([]string{"deploy", "--stack-name", "s1", "--param", "malformed"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected key=value")
	mockDeployer.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
}

func TestDeployCommand_HandlesDeployerError(t *testing.T) {
	// Test that deploy command properly wraps errors from the deployer
	defer resetFlags(findCommand(rootCmd, "deploy"))

	mockDeployer := &deploy.MockDeployer{}
	mockDeployer.On("Deploy", mock.Anything, mock.Anything).
		Return(nil, errors.New("convergence failed"))

	oldDeployer := deployer
	SetDeployer(mockDeployer)
	defer SetDeployer(oldDeployer)

	rootCmd.SetArgs([]string{"deploy", "--stack-name", "s1"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "deploy failed")
	assert.Contains(t, err.Error(), "convergence failed")
	mockDeployer.AssertExpectations(t)
}

func TestDeployCommand_RejectsPositionalArgs(t *testing.T) {
	// Test that deploy takes no positional arguments
	defer resetFlags(findCommand(rootCmd, "deploy"))

	mockDeployer := &deploy.MockDeployer{}

	oldDeployer := deployer
	SetDeployer(mockDeployer)
	defer SetDeployer(oldDeployer)

	rootCmd.SetArgs([]string{"deploy", "extra-arg"})

	err := rootCmd.Execute()

	require.Error(t, err)
	mockDeployer.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
}
