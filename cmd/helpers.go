/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/config"
	configfile "github.com/stackpilot/stackpilot/internal/config/file"
	"github.com/stackpilot/stackpilot/internal/poll"
	"github.com/stackpilot/stackpilot/internal/state"
	"github.com/stackpilot/stackpilot/internal/template"
	"github.com/stackpilot/stackpilot/internal/ui"
)

// createClientFactory creates the AWS client factory
func createClientFactory(ctx context.Context) (aws.ClientFactory, error) {
	factory, err := aws.NewClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS client factory: %w", err)
	}
	return factory, nil
}

// createStateStore creates the persisted-state store from the --state-file flag
func createStateStore(cmd *cobra.Command) state.Store {
	path, _ := cmd.Flags().GetString("state-file")
	return state.NewFileStore(path)
}

// createResolver creates the configuration resolver with template loading
func createResolver() config.Resolver {
	loader := template.NewFileLoaderWithProcessor(template.NewSprigProcessor(), nil)
	return config.NewResolver(loader)
}

// loadFileInputs reads deployment inputs from the --config file
func loadFileInputs(cmd *cobra.Command) (config.Inputs, error) {
	filename, _ := cmd.Flags().GetString("config")
	return configfile.NewProvider(filename).LoadInputs()
}

// createStyles creates terminal styles honouring the --no-color flag
func createStyles(cmd *cobra.Command) *ui.Styles {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return ui.NewStyles(!noColor)
}

// createWaiter creates the completion poller
func createWaiter() poll.StackWaiter {
	return poll.NewWaiter()
}
