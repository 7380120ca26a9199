package domain

import "errors"

// ErrStateNotFound is returned when a store has no saved state for a key.
var ErrStateNotFound = errors.New("saved state not found")

// ErrUnknownLanguage is returned by boundary components when a caller names
// a language outside the supported set.
var ErrUnknownLanguage = errors.New("unknown language")
