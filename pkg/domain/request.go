package domain

// Request is a transition request consumed by Apply.
// The set of request types is closed; anything else is a no-op.
type Request interface {
	isRequest()
}

// SetActiveLanguage switches the language being edited.
// An unsupported language leaves the state unchanged.
type SetActiveLanguage struct {
	Lang Language
}

// SetMode switches the UI surface (visual, code, preview).
type SetMode struct {
	Mode Mode
}

// DocumentPatch carries the fields of a PatchDocument request.
// Nil fields are left untouched on the target document.
type DocumentPatch struct {
	Markup     *string
	Stylesheet *string
	Assets     []Asset        // nil means "keep", non-nil replaces the sequence
	History    []HistoryEntry // nil means "keep", non-nil replaces (capped)
}

// PatchDocument merges the supplied fields into one language's document.
// Every other language's document is untouched.
type PatchDocument struct {
	Lang  Language
	Patch DocumentPatch
}

// AppendHistoryEntry prepends a snapshot to one language's history,
// truncating to MaxHistoryEntries.
type AppendHistoryEntry struct {
	Lang  Language
	Entry HistoryEntry
}

// ReplaceState substitutes the whole editor state atomically. Used only when
// hydrating from persistence or host data. Missing languages are synthesized
// as empty documents, never dropped.
type ReplaceState struct {
	State EditorState
}

func (SetActiveLanguage) isRequest()  {}
func (SetMode) isRequest()            {}
func (PatchDocument) isRequest()      {}
func (AppendHistoryEntry) isRequest() {}
func (ReplaceState) isRequest()       {}

// StringPtr is a convenience for building DocumentPatch literals.
func StringPtr(s string) *string { return &s }
