package desceditor

import "errors"

// ErrPushPending is returned when a push is triggered while another one is
// still in flight. The duplicate trigger performs no network call.
var ErrPushPending = errors.New("a push to the host is already in flight")

// ErrNotHosted is returned when a host operation is invoked without a
// configured host.
var ErrNotHosted = errors.New("editor is not in hosted mode")

// ErrIncompleteHostConfig is returned by New when only one of host client
// and session is configured.
var ErrIncompleteHostConfig = errors.New("hosted mode requires both a host client and a session")

// ErrUnknownMode is returned for a mode outside visual, code, preview.
var ErrUnknownMode = errors.New("unknown editor mode")

// ErrNoHistoryEntry is returned when a history index is out of range.
var ErrNoHistoryEntry = errors.New("no such history entry")

// ErrNoStore is returned when a persistence operation is invoked without a
// configured state store.
var ErrNoStore = errors.New("no state store configured")
