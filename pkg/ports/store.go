package ports

import (
	"context"

	"github.com/formaniuktaras/Price20/pkg/domain"
)

// StateStore defines the interface for persisting full editor state.
// Standalone mode uses it under a single fixed key; the hosted-mode server
// keys it by session ID.
type StateStore interface {
	// Save persists the state under the given key, overwriting any prior
	// payload atomically.
	Save(ctx context.Context, key string, state *domain.EditorState) error

	// Load retrieves the state for a key.
	// Returns domain.ErrStateNotFound if nothing is stored.
	Load(ctx context.Context, key string) (*domain.EditorState, error)

	// Delete removes the payload for a key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error
}
