package domain

import "time"

// MaxHistoryEntries bounds the per-language history sequence.
// The oldest entry is evicted when a 26th snapshot is appended.
const MaxHistoryEntries = 25

// Asset is an embedded binary payload carried inside a document.
// DataURI is self-describing (data:<mime>;base64,<payload>).
type Asset struct {
	Name    string
	DataURI string
}

// HistoryEntry is an immutable point-in-time capture of a document's content.
type HistoryEntry struct {
	Timestamp  time.Time
	Markup     string
	Stylesheet string
}

// Document is the editable content unit for one language.
type Document struct {
	Markup     string
	Stylesheet string
	Assets     []Asset
	History    []HistoryEntry // newest first
}

// clone returns a deep copy of the document.
func (d Document) clone() Document {
	out := d
	if d.Assets != nil {
		out.Assets = make([]Asset, len(d.Assets))
		copy(out.Assets, d.Assets)
	}
	if d.History != nil {
		out.History = make([]HistoryEntry, len(d.History))
		copy(out.History, d.History)
	}
	return out
}

// EditorState is the full snapshot of one editing session.
//
// Invariant: Documents always contains an entry for every supported language.
// The zero value violates this; use NewEditorState.
type EditorState struct {
	ActiveLanguage Language
	Mode           Mode
	Documents      map[Language]Document
}

// NewEditorState creates a clean state with an empty document per language.
func NewEditorState() EditorState {
	docs := make(map[Language]Document, len(Languages()))
	for _, lang := range Languages() {
		docs[lang] = Document{}
	}
	return EditorState{
		ActiveLanguage: DefaultLanguage,
		Mode:           ModeVisual,
		Documents:      docs,
	}
}

// ActiveDocument returns the document for the active language.
func (s EditorState) ActiveDocument() Document {
	return s.Documents[s.ActiveLanguage]
}

// Clone returns a deep copy of the state. Mutating the copy never affects
// the original.
func (s EditorState) Clone() EditorState {
	out := s
	out.Documents = make(map[Language]Document, len(s.Documents))
	for lang, doc := range s.Documents {
		out.Documents[lang] = doc.clone()
	}
	return out
}

// normalize fills in any missing supported language with an empty document
// and falls back to defaults for invalid active language or mode.
func (s EditorState) normalize() EditorState {
	if s.Documents == nil {
		s.Documents = make(map[Language]Document, len(Languages()))
	}
	for _, lang := range Languages() {
		if _, ok := s.Documents[lang]; !ok {
			s.Documents[lang] = Document{}
		}
	}
	if !s.ActiveLanguage.Valid() {
		s.ActiveLanguage = DefaultLanguage
	}
	if !s.Mode.Valid() {
		s.Mode = ModeVisual
	}
	return s
}
