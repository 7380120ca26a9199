package desceditor

import (
	"fmt"
	"io"

	"github.com/formaniuktaras/Price20/pkg/codec"
	"github.com/formaniuktaras/Price20/pkg/domain"
)

// maxImportSize caps import file reads (16 MiB; embedded assets are base64
// data URIs, so exports run large).
const maxImportSize int64 = 16 << 20

// GetValue returns the exported form of the active language's document.
func (e *Editor) GetValue() codec.ExportedDocument {
	snap := e.snapshot()
	return codec.ExportDocument(snap.ActiveLanguage, snap.ActiveDocument(), e.now())
}

// GetValueFor returns the exported form of one language's document.
func (e *Editor) GetValueFor(lang domain.Language) (codec.ExportedDocument, error) {
	if !lang.Valid() {
		return codec.ExportedDocument{}, domain.ErrUnknownLanguage
	}
	snap := e.snapshot()
	return codec.ExportDocument(lang, snap.Documents[lang], e.now()), nil
}

// SetValue replaces one language's content with the given document and
// makes that language active.
func (e *Editor) SetValue(doc codec.ExportedDocument) error {
	if !doc.Language.Valid() {
		return domain.ErrUnknownLanguage
	}

	value := doc.ToDomain()
	e.dispatch(domain.PatchDocument{
		Lang: doc.Language,
		Patch: domain.DocumentPatch{
			Markup:     domain.StringPtr(value.Markup),
			Stylesheet: domain.StringPtr(value.Stylesheet),
			Assets:     value.Assets,
			History:    value.History,
		},
	})
	e.dispatch(domain.SetActiveLanguage{Lang: doc.Language})
	return nil
}

// ImportJSON decodes an exported document from r and activates it. A
// structurally invalid payload is rejected without any state mutation.
func (e *Editor) ImportJSON(r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, maxImportSize))
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}
	doc, err := codec.DecodeDocument(data)
	if err != nil {
		return err
	}
	return e.SetValue(doc)
}

// ExportJSON produces the export file payload for the active document.
func (e *Editor) ExportJSON() ([]byte, error) {
	return codec.EncodeDocument(e.GetValue())
}

// ToHTMLBundle renders the active document as one static string: the
// stylesheet inlined in a style block followed by the (sanitized) markup.
func (e *Editor) ToHTMLBundle() string {
	snap := e.snapshot()
	return e.bundle(snap.ActiveDocument())
}

// ToHTMLBundleFor renders one language's document as a static bundle.
func (e *Editor) ToHTMLBundleFor(lang domain.Language) (string, error) {
	if !lang.Valid() {
		return "", domain.ErrUnknownLanguage
	}
	snap := e.snapshot()
	return e.bundle(snap.Documents[lang]), nil
}

func (e *Editor) bundle(doc domain.Document) string {
	markup := doc.Markup
	if e.sanitize != nil {
		markup = e.sanitize.Sanitize(markup)
	}
	if doc.Stylesheet == "" {
		return markup
	}
	return "<style>\n" + doc.Stylesheet + "\n</style>\n" + markup
}
