package domain

// Apply is the single transition function for EditorState.
//
// It is pure and total: the input state is never mutated, the returned state
// never violates the "all languages present" invariant, and an unrecognized
// request returns the input unchanged rather than failing.
func Apply(state EditorState, req Request) EditorState {
	switch r := req.(type) {
	case SetActiveLanguage:
		if !r.Lang.Valid() || r.Lang == state.ActiveLanguage {
			return state
		}
		next := state.Clone()
		next.ActiveLanguage = r.Lang
		return next

	case SetMode:
		if !r.Mode.Valid() || r.Mode == state.Mode {
			return state
		}
		next := state.Clone()
		next.Mode = r.Mode
		return next

	case PatchDocument:
		if !r.Lang.Valid() {
			return state
		}
		next := state.Clone()
		doc := next.Documents[r.Lang]
		if r.Patch.Markup != nil {
			doc.Markup = *r.Patch.Markup
		}
		if r.Patch.Stylesheet != nil {
			doc.Stylesheet = *r.Patch.Stylesheet
		}
		if r.Patch.Assets != nil {
			doc.Assets = make([]Asset, len(r.Patch.Assets))
			copy(doc.Assets, r.Patch.Assets)
		}
		if r.Patch.History != nil {
			n := min(len(r.Patch.History), MaxHistoryEntries)
			doc.History = make([]HistoryEntry, n)
			copy(doc.History, r.Patch.History[:n])
		}
		next.Documents[r.Lang] = doc
		return next

	case AppendHistoryEntry:
		if !r.Lang.Valid() {
			return state
		}
		next := state.Clone()
		doc := next.Documents[r.Lang]
		history := make([]HistoryEntry, 0, len(doc.History)+1)
		history = append(history, r.Entry)
		history = append(history, doc.History...)
		if len(history) > MaxHistoryEntries {
			history = history[:MaxHistoryEntries]
		}
		doc.History = history
		next.Documents[r.Lang] = doc
		return next

	case ReplaceState:
		return r.State.Clone().normalize()
	}

	// Unknown request type: defensive no-op.
	return state
}
