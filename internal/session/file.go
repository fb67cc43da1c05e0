// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend persists session state as a JSON document on disk. It is
// the durable-storage analog for a single-user client.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend writing to the given path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// document is the on-disk envelope, keyed by the session namespace so the
// file is self-describing.
type document struct {
	Name  string `json:"name"`
	State State  `json:"state"`
}

// Load reads the persisted state. A missing file means no session.
func (b *FileBackend) Load(_ context.Context) (*State, error) {
	payload, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session file read: %w", err)
	}

	var doc document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("session file unmarshal: %w", err)
	}
	return &doc.State, nil
}

// Save writes the state, creating parent directories as needed. The file
// is user-only: it marks an authenticated identity.
func (b *FileBackend) Save(_ context.Context, st *State) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return fmt.Errorf("session file mkdir: %w", err)
	}

	payload, err := json.MarshalIndent(document{Name: Namespace, State: *st}, "", "  ")
	if err != nil {
		return fmt.Errorf("session file marshal: %w", err)
	}
	if err := os.WriteFile(b.path, payload, 0o600); err != nil {
		return fmt.Errorf("session file write: %w", err)
	}
	return nil
}

// Clear removes the file. A missing file is not an error.
func (b *FileBackend) Clear(_ context.Context) error {
	err := os.Remove(b.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session file remove: %w", err)
	}
	return nil
}
