/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/config"
	"github.com/stackpilot/stackpilot/internal/deploy"
	"github.com/stackpilot/stackpilot/internal/ui"
)

var (
	// deployer can be injected for testing
	deployer deploy.Deployer
)

// deployCmd represents the deploy command
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the configured CloudFormation stack",
	Long: `Deploy the stack described by stackpilot.yaml, creating it when absent and
updating it when its template or configuration drifts from the desired state.
When the remote stack already matches, no mutation is issued and the current
outputs are reported directly.

If a bucket is configured, the template body is published to S3 first and the
stack references it by location. When the configured stack name differs from
the previously deployed one, the old stack is deleted after the new one is
live.

Examples:
  stackpilot deploy                          # Deploy using stackpilot.yaml
  stackpilot deploy --stack-name api-prod    # Override the stack name
  stackpilot deploy --param Stage=prod       # Override a template parameter`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		styles := createStyles(cmd)

		inputs, err := loadFileInputs(cmd)
		if err != nil {
			return err
		}
		if err := applyDeployFlags(cmd, &inputs); err != nil {
			return err
		}

		d, err := getDeployer(cmd)
		if err != nil {
			return err
		}

		fmt.Println(styles.Subtle.Render(fmt.Sprintf("Deploying stack %s...", inputs.StackName)))

		outputs, err := d.Deploy(ctx, inputs)
		if err != nil {
			return fmt.Errorf("deploy failed: %w", err)
		}

		fmt.Println(styles.Success.Render(fmt.Sprintf("Successfully deployed stack %s", inputs.StackName)))
		printOutputs(styles, outputs)
		return nil
	},
}

// getDeployer returns the deployer instance, creating a default one if none is set
func getDeployer(cmd *cobra.Command) (deploy.Deployer, error) {
	if deployer != nil {
		return deployer, nil
	}

	factory, err := createClientFactory(cmd.Context())
	if err != nil {
		return nil, err
	}
	return deploy.NewStackDeployer(factory, createResolver(), createStateStore(cmd), createWaiter(), createStyles(cmd)), nil
}

// SetDeployer allows injection of a deployer (for testing)
func SetDeployer(d deploy.Deployer) {
	deployer = d
}

// applyDeployFlags overlays command-line flags on the file-provided inputs
func applyDeployFlags(cmd *cobra.Command, inputs *config.Inputs) error {
	flags := cmd.Flags()

	if flags.Changed("stack-name") {
		inputs.StackName, _ = flags.GetString("stack-name")
	}
	if flags.Changed("template") {
		inputs.TemplatePath, _ = flags.GetString("template")
	}
	if flags.Changed("region") {
		inputs.Region, _ = flags.GetString("region")
	}
	if flags.Changed("bucket") {
		inputs.Bucket, _ = flags.GetString("bucket")
	}
	if flags.Changed("role-arn") {
		inputs.RoleARN, _ = flags.GetString("role-arn")
	}
	if flags.Changed("capability") {
		inputs.Capabilities, _ = flags.GetStringArray("capability")
	}
	if flags.Changed("disable-rollback") {
		v, _ := flags.GetBool("disable-rollback")
		inputs.DisableRollback = &v
	}
	if flags.Changed("termination-protection") {
		v, _ := flags.GetBool("termination-protection")
		inputs.EnableTerminationProtection = &v
	}

	params, _ := flags.GetStringArray("param")
	for _, param := range params {
		key, value, found := strings.Cut(param, "=")
		if !found || key == "" {
			return fmt.Errorf("invalid parameter %q, expected key=value", param)
		}
		if inputs.Parameters == nil {
			inputs.Parameters = map[string]string{}
		}
		inputs.Parameters[key] = value
	}

	return nil
}

// printOutputs renders the stack outputs in a stable order
func printOutputs(styles *ui.Styles, outputs map[string]string) {
	if len(outputs) == 0 {
		return
	}

	keys := make([]string, 0, len(outputs))
	for key := range outputs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Println("Outputs:")
	for _, key := range keys {
		fmt.Printf("  %s: %s\n", styles.Key.Render(key), styles.Value.Render(outputs[key]))
	}
}

func init() {
	rootCmd.AddCommand(deployCmd)

	deployCmd.Flags().String("stack-name", "", "stack name (overrides config)")
	deployCmd.Flags().String("template", "", "template file path (overrides config)")
	deployCmd.Flags().String("region", "", "AWS region (overrides config)")
	deployCmd.Flags().String("bucket", "", "S3 bucket for template publishing (overrides config)")
	deployCmd.Flags().String("role-arn", "", "CloudFormation service role ARN (overrides config)")
	deployCmd.Flags().StringArray("capability", nil, "IAM capability to acknowledge (repeatable)")
	deployCmd.Flags().StringArray("param", nil, "template parameter as key=value (repeatable)")
	deployCmd.Flags().Bool("disable-rollback", false, "disable rollback on create failure")
	deployCmd.Flags().Bool("termination-protection", false, "enable termination protection")
}
