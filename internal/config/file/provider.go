/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package file

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/config"
)

// DefaultFilename is the configuration file read when none is specified.
const DefaultFilename = "stackpilot.yaml"

// Provider loads deployment inputs from a YAML file
type Provider struct {
	filename string
}

// NewProvider creates a file-based provider for the given filename
func NewProvider(filename string) *Provider {
	if filename == "" {
		filename = DefaultFilename
	}
	return &Provider{filename: filename}
}

// LoadInputs reads the configuration file and converts it to deployment
// inputs. A missing file yields zero inputs so that fully flag-driven
// invocations work without one.
func (p *Provider) LoadInputs() (config.Inputs, error) {
	var inputs config.Inputs

	data, err := os.ReadFile(p.filename)
	if os.IsNotExist(err) {
		return inputs, nil
	}
	if err != nil {
		return inputs, fmt.Errorf("failed to read config file %s: %w", p.filename, err)
	}

	var raw Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return inputs, fmt.Errorf("failed to parse config file %s: %w", p.filename, err)
	}

	inputs.Region = raw.Region
	inputs.Bucket = raw.Bucket

	if raw.Stack != nil {
		inputs.StackName = raw.Stack.Name
		inputs.TemplatePath = raw.Stack.Template
		inputs.Parameters = raw.Stack.Parameters
		inputs.RoleARN = raw.Stack.RoleArn
		inputs.Capabilities = raw.Stack.Capabilities
		inputs.DisableRollback = raw.Stack.DisableRollback
		inputs.EnableTerminationProtection = raw.Stack.TerminationProtection
		inputs.RollbackConfiguration = toRollbackConfiguration(raw.Stack.RollbackConfiguration)
	}

	return inputs, nil
}

func toRollbackConfiguration(raw *RollbackConfiguration) *aws.RollbackConfiguration {
	if raw == nil {
		return nil
	}

	rc := &aws.RollbackConfiguration{
		MonitoringTimeInMinutes: raw.MonitoringTimeInMinutes,
	}
	for _, trigger := range raw.RollbackTriggers {
		rc.RollbackTriggers = append(rc.RollbackTriggers, aws.RollbackTrigger{
			Arn:  trigger.Arn,
			Type: trigger.Type,
		})
	}
	return rc
}
