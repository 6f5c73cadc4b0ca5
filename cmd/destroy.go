/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/destroy"
)

var (
	// destroyer can be injected for testing
	destroyer destroy.Destroyer
)

// destroyCmd represents the destroy command
var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Delete the previously deployed CloudFormation stack",
	Long: `Delete the stack recorded by the last successful deploy and clear the
persisted record. The command is idempotent: when no stack is recorded, or
the stack is already gone, it succeeds without issuing any mutation.

Examples:
  stackpilot destroy                              # Tear down the recorded stack
  stackpilot destroy --state-file ci/state.json   # Use an alternate state file`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := createStyles(cmd)

		d, err := getDestroyer(cmd)
		if err != nil {
			return err
		}

		if err := d.Destroy(cmd.Context()); err != nil {
			return fmt.Errorf("destroy failed: %w", err)
		}

		fmt.Println(styles.Success.Render("Stack removed"))
		return nil
	},
}

// getDestroyer returns the destroyer instance, creating a default one if none is set
func getDestroyer(cmd *cobra.Command) (destroy.Destroyer, error) {
	if destroyer != nil {
		return destroyer, nil
	}

	factory, err := createClientFactory(cmd.Context())
	if err != nil {
		return nil, err
	}
	return destroy.NewStackDestroyer(factory, createStateStore(cmd), createWaiter()), nil
}

// SetDestroyer allows injection of a destroyer (for testing)
func SetDestroyer(d destroy.Destroyer) {
	destroyer = d
}

func init() {
	rootCmd.AddCommand(destroyCmd)
}
