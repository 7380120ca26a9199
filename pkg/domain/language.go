package domain

// Language identifies one of the supported locales.
type Language string

const (
	LangUK Language = "uk"
	LangRU Language = "ru"
	LangEN Language = "en"
)

// DefaultLanguage is the language a fresh session starts in.
const DefaultLanguage = LangUK

// Languages returns the closed set of supported languages in display order.
func Languages() []Language {
	return []Language{LangUK, LangRU, LangEN}
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	switch l {
	case LangUK, LangRU, LangEN:
		return true
	}
	return false
}

// Mode identifies the editing surface the UI is showing.
type Mode string

const (
	ModeVisual  Mode = "visual"
	ModeCode    Mode = "code"
	ModePreview Mode = "preview"
)

// Valid reports whether m is a recognized UI mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeVisual, ModeCode, ModePreview:
		return true
	}
	return false
}
