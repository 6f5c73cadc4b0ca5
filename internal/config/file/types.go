/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package file contains the raw YAML structure of the stackpilot
// configuration file, before resolution into deployment inputs.
package file

// Config represents the raw YAML configuration file structure
type Config struct {
	Region string `yaml:"region"`
	Bucket string `yaml:"bucket"`
	Stack  *Stack `yaml:"stack"`
}

// Stack represents stack configuration as it appears in YAML
type Stack struct {
	Name                  string                 `yaml:"name"`
	Template              string                 `yaml:"template"`
	Parameters            map[string]string      `yaml:"parameters"`
	RoleArn               string                 `yaml:"roleArn"`
	Capabilities          []string               `yaml:"capabilities"`
	DisableRollback       *bool                  `yaml:"disableRollback"`
	TerminationProtection *bool                  `yaml:"terminationProtection"`
	RollbackConfiguration *RollbackConfiguration `yaml:"rollbackConfiguration"`
}

// RollbackConfiguration represents rollback configuration as it appears in YAML
type RollbackConfiguration struct {
	MonitoringTimeInMinutes *int32            `yaml:"monitoringTimeInMinutes"`
	RollbackTriggers        []RollbackTrigger `yaml:"rollbackTriggers"`
}

// RollbackTrigger represents a rollback trigger as it appears in YAML
type RollbackTrigger struct {
	Arn  string `yaml:"arn"`
	Type string `yaml:"type"`
}
