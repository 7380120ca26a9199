// Package file implements ports.StateStore on the local filesystem. It is
// the standalone-mode analog of browser local storage: one JSON payload per
// key, overwritten wholesale on every save.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/formaniuktaras/Price20/pkg/codec"
	"github.com/formaniuktaras/Price20/pkg/domain"
)

// Store persists editor state as JSON files in a base directory.
type Store struct {
	BasePath string
}

// New creates a Store rooted at basePath.
// If basePath is empty, it defaults to ".desceditor/state".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".desceditor", "state")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.BasePath, key+".json")
}

// Save persists the state to a JSON file atomically: write to a temp file in
// the same directory, fsync, then rename over the destination. A crashed
// save never leaves a partial payload behind.
func (s *Store) Save(ctx context.Context, key string, state *domain.EditorState) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("ensure state directory: %w", err)
	}

	data, err := codec.EncodeState(codec.ExportState(*state, time.Now()))
	if err != nil {
		return fmt.Errorf("serialize state: %w", err)
	}

	tmp, err := os.CreateTemp(s.BasePath, "tmp-"+key+"-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	dest := s.path(key)
	// os.Rename cannot replace an existing file on Windows; remove first.
	if _, err := os.Stat(dest); err == nil {
		if err := os.Remove(dest); err != nil {
			return fmt.Errorf("remove previous payload: %w", err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load retrieves the state for a key. A missing file maps to
// domain.ErrStateNotFound; an unreadable or undecodable payload is returned
// as an error for the caller to classify (the facade treats it as "no saved
// state" and logs a warning).
func (s *Store) Load(ctx context.Context, key string) (*domain.EditorState, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	payload, err := codec.DecodeState(data)
	if err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}

	// Hydrate through the transition function so missing languages are
	// synthesized and the completeness invariant holds.
	state := domain.Apply(domain.NewEditorState(), domain.ReplaceState{State: payload.ToDomain()})
	return &state, nil
}

// Delete removes the payload for a key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}
