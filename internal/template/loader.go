/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package template loads CloudFormation template documents from disk and
// serialises them to a canonical JSON body.
package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"
)

// ErrUnsupportedSource indicates the template path does not carry a
// recognised structured-data extension.
var ErrUnsupportedSource = errors.New("unsupported template source")

// Loader defines the interface for resolving a template path to its
// canonical JSON body
type Loader interface {
	Load(path string) (string, error)
}

// Ensure that FileLoader implements Loader
var _ Loader = (*FileLoader)(nil)

// FileLoader implements Loader for local files and `file://` URIs. When a
// processor is set, the raw file content is run through it before parsing.
type FileLoader struct {
	processor Processor
	variables map[string]interface{}
}

// NewFileLoader creates a loader without template preprocessing
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// NewFileLoaderWithProcessor creates a loader that preprocesses template
// content with the given processor and variables
func NewFileLoaderWithProcessor(processor Processor, variables map[string]interface{}) *FileLoader {
	return &FileLoader{
		processor: processor,
		variables: variables,
	}
}

// Load reads the template at path and returns its canonical JSON body.
// YAML documents are converted to JSON; JSON documents are normalised
// through the same conversion so repeated loads of equivalent documents
// yield identical bytes.
func (l *FileLoader) Load(path string) (string, error) {
	filePath := stripFileURI(path)

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json", ".yaml", ".yml":
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedSource)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", filePath, err)
	}

	if l.processor != nil {
		processed, err := l.processor.Process(string(content), l.variables)
		if err != nil {
			return "", fmt.Errorf("failed to process template %s: %w", filePath, err)
		}
		content = []byte(processed)
	}

	// YAMLToJSON accepts JSON input unchanged in meaning, so both formats
	// funnel through one deterministic serialisation.
	body, err := yaml.YAMLToJSON(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", filePath, err)
	}

	return string(body), nil
}

// stripFileURI extracts the file path from a file:// URI or returns the
// path unchanged
func stripFileURI(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		return uri[len("file://"):]
	}
	return uri
}
