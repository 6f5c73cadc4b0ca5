/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package state persists the minimal identity of a deployed stack across
// invocations: enough to locate and, if necessary, delete it later.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath is where the file store keeps persisted state, relative to the
// working directory.
const DefaultPath = ".stackpilot/state.json"

// PersistedState is the only data that outlives a reconciliation run. It is
// absent on first deploy, written after every successful deploy, and cleared
// on successful teardown.
type PersistedState struct {
	Bucket    string `json:"bucket,omitempty"`
	Region    string `json:"region,omitempty"`
	StackName string `json:"stackName,omitempty"`
}

// Empty reports whether no stack has been recorded
func (s PersistedState) Empty() bool {
	return s.StackName == ""
}

// Store defines the interface for reading and writing persisted state
type Store interface {
	// Load returns the recorded state, or a zero state when none exists
	Load(ctx context.Context) (PersistedState, error)

	// Save records the state, replacing any previous record
	Save(ctx context.Context, s PersistedState) error

	// Clear removes the recorded state
	Clear(ctx context.Context) error
}

// Ensure that FileStore implements Store
var _ Store = (*FileStore)(nil)

// FileStore implements Store with a JSON file on the local filesystem
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	return &FileStore{path: path}
}

// Load reads persisted state from disk. A missing file is not an error: it
// means no stack has been deployed yet.
func (fs *FileStore) Load(ctx context.Context) (PersistedState, error) {
	var s PersistedState

	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read state file %s: %w", fs.path, err)
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return PersistedState{}, fmt.Errorf("failed to parse state file %s: %w", fs.path, err)
	}

	return s, nil
}

// Save writes persisted state to disk, creating the parent directory if needed
func (fs *FileStore) Save(ctx context.Context, s PersistedState) error {
	if dir := filepath.Dir(fs.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.WriteFile(fs.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", fs.path, err)
	}

	return nil
}

// Clear removes the state record. Clearing absent state is a no-op.
func (fs *FileStore) Clear(ctx context.Context) error {
	err := os.Remove(fs.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file %s: %w", fs.path, err)
	}
	return nil
}
