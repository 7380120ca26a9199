package codec

import (
	"time"

	"github.com/formaniuktaras/Price20/pkg/domain"
)

// ExportedAsset is the wire form of an embedded asset.
type ExportedAsset struct {
	Name    string `json:"name"`
	DataURI string `json:"dataUri"`
}

// ExportedHistoryEntry is the wire form of one history snapshot.
type ExportedHistoryEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Markup     string    `json:"markup"`
	Stylesheet string    `json:"stylesheet"`
}

// ExportedDocument is the canonical single-document shape used by export
// files and, per language, inside persisted and host payloads.
type ExportedDocument struct {
	Language   domain.Language        `json:"language"`
	Markup     string                 `json:"markup"`
	Stylesheet string                 `json:"stylesheet"`
	Assets     []ExportedAsset        `json:"assets"`
	History    []ExportedHistoryEntry `json:"history"`
	ExportedAt time.Time              `json:"exportedAt"`
}

// PersistedState is the wire form of a whole editor session. The JSON keys
// (activeLang, docs) match the host protocol.
type PersistedState struct {
	ActiveLanguage domain.Language                      `json:"activeLang"`
	Documents      map[domain.Language]ExportedDocument `json:"docs"`
}

// ExportDocument converts one language's document to its wire shape.
func ExportDocument(lang domain.Language, doc domain.Document, at time.Time) ExportedDocument {
	out := ExportedDocument{
		Language:   lang,
		Markup:     doc.Markup,
		Stylesheet: doc.Stylesheet,
		Assets:     make([]ExportedAsset, 0, len(doc.Assets)),
		History:    make([]ExportedHistoryEntry, 0, len(doc.History)),
		ExportedAt: at,
	}
	for _, a := range doc.Assets {
		out.Assets = append(out.Assets, ExportedAsset{Name: a.Name, DataURI: a.DataURI})
	}
	for _, h := range doc.History {
		out.History = append(out.History, ExportedHistoryEntry{
			Timestamp:  h.Timestamp,
			Markup:     h.Markup,
			Stylesheet: h.Stylesheet,
		})
	}
	return out
}

// ToDomain converts the wire document back to the domain model.
func (d ExportedDocument) ToDomain() domain.Document {
	out := domain.Document{
		Markup:     d.Markup,
		Stylesheet: d.Stylesheet,
		Assets:     make([]domain.Asset, 0, len(d.Assets)),
		History:    make([]domain.HistoryEntry, 0, len(d.History)),
	}
	for _, a := range d.Assets {
		out.Assets = append(out.Assets, domain.Asset{Name: a.Name, DataURI: a.DataURI})
	}
	for _, h := range d.History {
		out.History = append(out.History, domain.HistoryEntry{
			Timestamp:  h.Timestamp,
			Markup:     h.Markup,
			Stylesheet: h.Stylesheet,
		})
	}
	return out
}

// ContentEqual reports observable equality of two wire documents, ignoring
// the export timestamps (both top-level and nested history timestamps are
// compared, only ExportedAt is excluded).
func (d ExportedDocument) ContentEqual(o ExportedDocument) bool {
	if d.Language != o.Language || d.Markup != o.Markup || d.Stylesheet != o.Stylesheet {
		return false
	}
	if len(d.Assets) != len(o.Assets) || len(d.History) != len(o.History) {
		return false
	}
	for i := range d.Assets {
		if d.Assets[i] != o.Assets[i] {
			return false
		}
	}
	for i := range d.History {
		if !d.History[i].Timestamp.Equal(o.History[i].Timestamp) ||
			d.History[i].Markup != o.History[i].Markup ||
			d.History[i].Stylesheet != o.History[i].Stylesheet {
			return false
		}
	}
	return true
}

// ExportState converts a full editor state to its wire shape.
func ExportState(state domain.EditorState, at time.Time) PersistedState {
	out := PersistedState{
		ActiveLanguage: state.ActiveLanguage,
		Documents:      make(map[domain.Language]ExportedDocument, len(state.Documents)),
	}
	for lang, doc := range state.Documents {
		out.Documents[lang] = ExportDocument(lang, doc, at)
	}
	return out
}

// ToDomain converts a persisted payload back to an editor state. Languages
// absent from the payload are left to domain normalization (ReplaceState
// synthesizes empty documents for them).
func (p PersistedState) ToDomain() domain.EditorState {
	state := domain.EditorState{
		ActiveLanguage: p.ActiveLanguage,
		Documents:      make(map[domain.Language]domain.Document, len(p.Documents)),
	}
	for lang, doc := range p.Documents {
		if !lang.Valid() {
			continue
		}
		state.Documents[lang] = doc.ToDomain()
	}
	return state
}
