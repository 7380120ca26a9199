package ports

import (
	"context"

	"github.com/formaniuktaras/Price20/pkg/codec"
)

// HostClient synchronizes editor state with the external host process that
// owns durable storage in hosted mode.
type HostClient interface {
	// FetchState retrieves the session's current payload from the host.
	// Called once at boot; failures are surfaced, never retried silently.
	FetchState(ctx context.Context, session string) (codec.PersistedState, error)

	// PushState submits the full canonical payload as one atomic snapshot.
	// A non-success response is returned as an error carrying the host's
	// response body; no partial commit happens on failure.
	PushState(ctx context.Context, session string, state codec.PersistedState) error
}
