/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package template

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Processor defines the interface for preprocessing template content before
// it is parsed as a structured document
type Processor interface {
	Process(content string, variables map[string]interface{}) (string, error)
}

// SprigProcessor implements Processor using Go's text/template with Sprig functions
type SprigProcessor struct{}

// NewSprigProcessor creates a new template processor
func NewSprigProcessor() *SprigProcessor {
	return &SprigProcessor{}
}

// Process executes the content as a Go template with the provided variables
func (p *SprigProcessor) Process(content string, variables map[string]interface{}) (string, error) {
	tmpl, err := template.New("stack").
		Funcs(sprig.TxtFuncMap()).
		Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, variables); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
