/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stackpilot",
	Short: "Reconcile a declaratively-specified CloudFormation stack",
	Long: `Stackpilot manages the lifecycle of one declaratively-specified
CloudFormation stack: given a desired template and configuration it decides
whether the remote stack must be created, updated, or left untouched, drives
that change to completion, and reports the resulting outputs.

Use 'stackpilot deploy' to converge the stack on the configuration in
stackpilot.yaml, and 'stackpilot destroy' to tear down whatever the last
successful deploy recorded.`,
}

// Root returns the root command for execution by main
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "stackpilot.yaml", "config file")
	rootCmd.PersistentFlags().String("state-file", ".stackpilot/state.json", "persisted state file")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable coloured output")
}
