/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSONTemplate(t *testing.T) {
	path := writeTemplate(t, "app.json", `{"Resources": {"Bucket": {"Type": "AWS::S3::Bucket"}}}`)

	body, err := NewFileLoader().Load(path)

	require.NoError(t, err)
	assert.JSONEq(t, `{"Resources":{"Bucket":{"Type":"AWS::S3::Bucket"}}}`, body)
}

func TestLoad_YAMLTemplateConvertsToJSON(t *testing.T) {
	path := writeTemplate(t, "app.yaml", `
Resources:
  Bucket:
    Type: AWS::S3::Bucket
`)

	body, err := NewFileLoader().Load(path)

	require.NoError(t, err)
	assert.JSONEq(t, `{"Resources":{"Bucket":{"Type":"AWS::S3::Bucket"}}}`, body)
}

func TestLoad_EquivalentDocumentsSerialiseIdentically(t *testing.T) {
	// Drift detection compares serialized bodies literally, so equivalent
	// YAML and JSON documents must produce identical bytes
	yamlPath := writeTemplate(t, "app.yaml", "Resources:\n  Bucket:\n    Type: AWS::S3::Bucket\n")
	jsonPath := writeTemplate(t, "app.json", `{"Resources":{"Bucket":{"Type":"AWS::S3::Bucket"}}}`)

	loader := NewFileLoader()
	fromYAML, err := loader.Load(yamlPath)
	require.NoError(t, err)
	fromJSON, err := loader.Load(jsonPath)
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromJSON)
}

func TestLoad_FileURI(t *testing.T) {
	path := writeTemplate(t, "app.yml", "Resources: {}\n")

	body, err := NewFileLoader().Load("file://" + path)

	require.NoError(t, err)
	assert.JSONEq(t, `{"Resources":{}}`, body)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeTemplate(t, "app.toml", "Resources = {}")

	body, err := NewFileLoader().Load(path)

	assert.Empty(t, body)
	assert.True(t, errors.Is(err, ErrUnsupportedSource))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewFileLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestLoad_WithProcessor(t *testing.T) {
	path := writeTemplate(t, "app.yaml", `
Resources:
  Bucket:
    Type: AWS::S3::Bucket
    Properties:
      BucketName: {{ .name | upper }}
`)

	loader := NewFileLoaderWithProcessor(NewSprigProcessor(), map[string]interface{}{"name": "orders"})
	body, err := loader.Load(path)

	require.NoError(t, err)
	assert.Contains(t, body, "ORDERS")
}
