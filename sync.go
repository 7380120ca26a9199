package desceditor

import (
	"context"
	"errors"
	"time"

	"github.com/formaniuktaras/Price20/pkg/codec"
	"github.com/formaniuktaras/Price20/pkg/domain"
)

// Boot hydrates the session from its durable backing.
//
// Hosted mode fetches the session payload once; on success it is applied as
// one atomic replacement and the recorder is rebased so loaded content is
// not captured as an edit. On failure the error is returned and the state
// stays at defaults; there is no automatic retry.
//
// Standalone mode restores the persisted payload best-effort: an absent or
// unreadable payload is logged and treated as "no saved state".
func (e *Editor) Boot(ctx context.Context) error {
	if e.Hosted() {
		payload, err := e.hostClient.FetchState(ctx, e.session)
		if err != nil {
			return err
		}
		e.hydrate(payload.ToDomain())
		return nil
	}

	if e.store == nil {
		return nil
	}
	state, err := e.store.Load(ctx, e.storageKey)
	if err != nil {
		if !errors.Is(err, domain.ErrStateNotFound) {
			e.logger.Warn("ignoring unreadable saved state", "key", e.storageKey, "err", err)
		}
		return nil
	}
	e.hydrate(*state)
	return nil
}

func (e *Editor) hydrate(state domain.EditorState) {
	e.mu.Lock()
	e.state = domain.Apply(e.state, domain.ReplaceState{State: state})
	snap := e.state.Clone()
	e.mu.Unlock()

	e.recorder.Rebase(snap)
}

// Push submits the full canonical payload to the host as one atomic
// snapshot. At most one push is in flight at a time: duplicate triggers
// return ErrPushPending without a network call. On a non-success response
// the local state is untouched and the host's message is returned.
func (e *Editor) Push(ctx context.Context) error {
	if !e.Hosted() {
		return ErrNotHosted
	}
	if !e.pushInFlight.CompareAndSwap(false, true) {
		return ErrPushPending
	}
	defer e.pushInFlight.Store(false)

	payload := codec.ExportState(e.snapshot(), e.now())
	return e.hostClient.PushState(ctx, e.session, payload)
}

// SaveNow persists the full state immediately (the reserved manual-save
// shortcut). Unlike the autosave pulse, failures are returned to the
// caller.
func (e *Editor) SaveNow(ctx context.Context) error {
	if e.store == nil {
		return ErrNoStore
	}
	snap := e.snapshot()
	return e.store.Save(ctx, e.storageKey, &snap)
}

// ClearSaved removes the persisted payload. The live state is unaffected.
func (e *Editor) ClearSaved(ctx context.Context) error {
	if e.store == nil {
		return ErrNoStore
	}
	return e.store.Delete(ctx, e.storageKey)
}

// runAutosave is the standalone-mode pulse: a whole-state save on a fixed
// interval, best-effort. A failed cycle is logged and skipped.
func (e *Editor) runAutosave(ctx context.Context) {
	defer close(e.autosaveDone)

	ticker := time.NewTicker(e.autosaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := e.snapshot()
			if err := e.store.Save(ctx, e.storageKey, &snap); err != nil {
				e.logger.Warn("autosave cycle skipped", "key", e.storageKey, "err", err)
			}
		}
	}
}
