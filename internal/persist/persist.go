// Package persist provides durable-storage ports for the store: a JSON
// file, a SQLite database, and a Postgres database. Each port saves and
// loads the full state snapshot.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rcliao/assistant-memory/internal/model"
)

// Port is a closable durable-storage port.
type Port interface {
	Save(state model.State) error
	Load() (state model.State, ok bool, err error)
	Close() error
}

// File persists the snapshot as a single JSON file. A missing file means
// no snapshot yet.
type File struct {
	path string
}

// NewFile creates a file port, creating parent directories as needed.
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &File{path: path}, nil
}

func (f *File) Save(state model.State) error {
	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return os.WriteFile(f.path, b, 0o644)
}

func (f *File) Load() (model.State, bool, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return model.State{}, false, nil
	}
	if err != nil {
		return model.State{}, false, err
	}
	var state model.State
	if err := json.Unmarshal(b, &state); err != nil {
		return model.State{}, false, fmt.Errorf("parse state: %w", err)
	}
	return state, true, nil
}

func (f *File) Close() error { return nil }
