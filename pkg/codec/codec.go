package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/formaniuktaras/Price20/pkg/domain"
)

// EncodeDocument serializes an export file payload.
func EncodeDocument(doc ExportedDocument) ([]byte, error) {
	doc.normalize()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// DecodeDocument parses an export file payload.
//
// Missing assets and history sequences default to empty (older export
// formats omitted them). A payload that is not a JSON object, fails to
// parse, or names an unsupported language yields a *DecodeError.
func DecodeDocument(data []byte) (ExportedDocument, error) {
	if err := requireObject(data); err != nil {
		return ExportedDocument{}, err
	}

	var doc ExportedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ExportedDocument{}, &DecodeError{Reason: "malformed document payload", Err: err}
	}
	if !doc.Language.Valid() {
		return ExportedDocument{}, &DecodeError{
			Reason: fmt.Sprintf("unsupported language %q", doc.Language),
		}
	}
	doc.normalize()
	return doc, nil
}

// EncodeState serializes a whole-session payload (autosave file, host body).
// The input is left untouched; normalization happens on a copy.
func EncodeState(state PersistedState) ([]byte, error) {
	docs := make(map[domain.Language]ExportedDocument, len(state.Documents))
	for lang, doc := range state.Documents {
		doc.normalize()
		docs[lang] = doc
	}
	state.Documents = docs
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// DecodeState parses a whole-session payload. The documents map may be
// partial; completing it is the job of the ReplaceState transition. A
// payload without a docs object is structurally invalid.
func DecodeState(data []byte) (PersistedState, error) {
	if err := requireObject(data); err != nil {
		return PersistedState{}, err
	}

	var state PersistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return PersistedState{}, &DecodeError{Reason: "malformed state payload", Err: err}
	}
	if state.Documents == nil {
		return PersistedState{}, &DecodeError{Reason: "missing docs object"}
	}
	for lang, doc := range state.Documents {
		doc.normalize()
		state.Documents[lang] = doc
	}
	return state, nil
}

// normalize defaults the optional sequences so decoded values always carry
// non-nil, order-preserving slices.
func (d *ExportedDocument) normalize() {
	if d.Assets == nil {
		d.Assets = []ExportedAsset{}
	}
	if d.History == nil {
		d.History = []ExportedHistoryEntry{}
	}
}

// requireObject rejects payloads whose top level is not a JSON object.
// json.Unmarshal alone would accept "null" and leave the zero value.
func requireObject(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &DecodeError{Reason: "payload is not a JSON object"}
	}
	return nil
}
