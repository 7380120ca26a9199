package desceditor_test

import (
	"strings"
	"testing"
	"time"

	desceditor "github.com/formaniuktaras/Price20"
	"github.com/formaniuktaras/Price20/internal/testutils"
	"github.com/formaniuktaras/Price20/pkg/codec"
	"github.com/formaniuktaras/Price20/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(t *testing.T, opts ...desceditor.Option) (*desceditor.Editor, *testutils.ManualScheduler) {
	t.Helper()

	sched := testutils.NewManualScheduler()
	opts = append([]desceditor.Option{
		desceditor.WithScheduler(sched),
		desceditor.WithAutosaveInterval(0),
	}, opts...)
	ed, err := desceditor.New(opts...)
	require.NoError(t, err)
	t.Cleanup(ed.Close)
	return ed, sched
}

func TestNew_Defaults(t *testing.T) {
	ed, _ := newEditor(t)

	state := ed.State()
	assert.Equal(t, domain.LangUK, state.ActiveLanguage)
	assert.Equal(t, domain.ModeVisual, state.Mode)
	assert.False(t, ed.Hosted())
	for _, lang := range domain.Languages() {
		doc, ok := state.Documents[lang]
		require.True(t, ok)
		assert.Empty(t, doc.Markup)
		assert.Empty(t, doc.History)
	}
}

func TestNew_IncompleteHostConfig(t *testing.T) {
	_, err := desceditor.New(desceditor.WithHost(nil, "sess"))
	assert.ErrorIs(t, err, desceditor.ErrIncompleteHostConfig)
}

func TestEditor_SetActiveLanguageAndMode(t *testing.T) {
	ed, _ := newEditor(t)

	require.NoError(t, ed.SetActiveLanguage(domain.LangEN))
	require.NoError(t, ed.SetMode(domain.ModePreview))

	state := ed.State()
	assert.Equal(t, domain.LangEN, state.ActiveLanguage)
	assert.Equal(t, domain.ModePreview, state.Mode)

	assert.ErrorIs(t, ed.SetActiveLanguage("fr"), domain.ErrUnknownLanguage)
	assert.ErrorIs(t, ed.SetMode("split"), desceditor.ErrUnknownMode)
}

func TestEditor_ToggleMode(t *testing.T) {
	ed, _ := newEditor(t)

	assert.Equal(t, domain.ModeCode, ed.ToggleMode())
	assert.Equal(t, domain.ModeVisual, ed.ToggleMode())

	require.NoError(t, ed.SetMode(domain.ModePreview))
	assert.Equal(t, domain.ModeVisual, ed.ToggleMode())
}

func TestEditor_SetValueActivatesLanguage(t *testing.T) {
	ed, _ := newEditor(t)

	err := ed.SetValue(codec.ExportedDocument{
		Language:   domain.LangRU,
		Markup:     "<p>замена</p>",
		Stylesheet: "p { margin: 0; }",
	})
	require.NoError(t, err)

	state := ed.State()
	assert.Equal(t, domain.LangRU, state.ActiveLanguage)
	assert.Equal(t, "<p>замена</p>", state.Documents[domain.LangRU].Markup)

	assert.ErrorIs(t, ed.SetValue(codec.ExportedDocument{Language: "xx"}), domain.ErrUnknownLanguage)
}

func TestEditor_GetValue(t *testing.T) {
	ed, _ := newEditor(t)
	require.NoError(t, ed.Patch(domain.LangUK, domain.DocumentPatch{
		Markup: domain.StringPtr("<h1>active</h1>"),
	}))

	val := ed.GetValue()
	assert.Equal(t, domain.LangUK, val.Language)
	assert.Equal(t, "<h1>active</h1>", val.Markup)
	assert.NotNil(t, val.Assets)
	assert.NotNil(t, val.History)

	other, err := ed.GetValueFor(domain.LangEN)
	require.NoError(t, err)
	assert.Empty(t, other.Markup)

	_, err = ed.GetValueFor("de")
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
}

func TestEditor_ExportImportRoundTrip(t *testing.T) {
	source, _ := newEditor(t)
	base := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, source.SetValue(codec.ExportedDocument{
		Language:   domain.LangUK,
		Markup:     "<h1>Готовий опис</h1>",
		Stylesheet: "h1 { color: teal; }",
		Assets: []codec.ExportedAsset{
			{Name: "a.png", DataURI: "data:image/png;base64,AAAA"},
			{Name: "b.jpg", DataURI: "data:image/jpeg;base64,BBBB"},
		},
		History: []codec.ExportedHistoryEntry{
			{Timestamp: base.Add(2 * time.Hour), Markup: "<h1>v3</h1>"},
			{Timestamp: base.Add(time.Hour), Markup: "<h1>v2</h1>"},
			{Timestamp: base, Markup: "<h1>v1</h1>"},
		},
	}))

	data, err := source.ExportJSON()
	require.NoError(t, err)

	dest, _ := newEditor(t)
	require.NoError(t, dest.ImportJSON(strings.NewReader(string(data))))

	doc := dest.State().Documents[domain.LangUK]
	assert.Equal(t, "<h1>Готовий опис</h1>", doc.Markup)
	require.Len(t, doc.Assets, 2)
	require.Len(t, doc.History, 3)
	assert.Equal(t, "a.png", doc.Assets[0].Name)
	assert.Equal(t, "b.jpg", doc.Assets[1].Name)
	assert.Equal(t, "<h1>v3</h1>", doc.History[0].Markup)
	assert.Equal(t, "<h1>v1</h1>", doc.History[2].Markup)
	assert.Equal(t, domain.LangUK, dest.State().ActiveLanguage)
}

func TestEditor_ImportJSON_InvalidPayloadLeavesStateUntouched(t *testing.T) {
	ed, _ := newEditor(t)
	require.NoError(t, ed.Patch(domain.LangUK, domain.DocumentPatch{
		Markup: domain.StringPtr("<p>before</p>"),
	}))

	err := ed.ImportJSON(strings.NewReader(`{"language":"uk","markup":`))
	require.Error(t, err)

	assert.Equal(t, "<p>before</p>", ed.State().Documents[domain.LangUK].Markup)
}

func TestEditor_ToHTMLBundle(t *testing.T) {
	ed, _ := newEditor(t)
	require.NoError(t, ed.Patch(domain.LangUK, domain.DocumentPatch{
		Markup:     domain.StringPtr(`<h1>Опис</h1><script>alert(1)</script>`),
		Stylesheet: domain.StringPtr("h1 { color: red; }"),
	}))

	bundle := ed.ToHTMLBundle()
	assert.Contains(t, bundle, "<style>")
	assert.Contains(t, bundle, "h1 { color: red; }")
	assert.Contains(t, bundle, "<h1>Опис</h1>")
	assert.NotContains(t, bundle, "<script>", "scripts must be sanitized out")
}

func TestEditor_ToHTMLBundle_NoSanitizer(t *testing.T) {
	ed, _ := newEditor(t, desceditor.WithSanitizer(nil))
	require.NoError(t, ed.Patch(domain.LangEN, domain.DocumentPatch{
		Markup: domain.StringPtr("<section>raw</section>"),
	}))

	bundle, err := ed.ToHTMLBundleFor(domain.LangEN)
	require.NoError(t, err)
	assert.Equal(t, "<section>raw</section>", bundle)
}

func TestEditor_HistoryDebounceScenario(t *testing.T) {
	// Start with empty uk/ru/en documents; one patch on uk; after the
	// debounce window elapses uk history has exactly one entry and the
	// other languages stay empty.
	ed, sched := newEditor(t)

	require.NoError(t, ed.Patch(domain.LangUK, domain.DocumentPatch{
		Markup: domain.StringPtr("<h1>X</h1>"),
	}))
	assert.Empty(t, ed.State().Documents[domain.LangUK].History)

	sched.FireAll()

	state := ed.State()
	require.Len(t, state.Documents[domain.LangUK].History, 1)
	assert.Equal(t, "<h1>X</h1>", state.Documents[domain.LangUK].History[0].Markup)
	assert.Empty(t, state.Documents[domain.LangRU].History)
	assert.Empty(t, state.Documents[domain.LangEN].History)
}

func TestEditor_LanguageSwitchDiscardsPendingSnapshot(t *testing.T) {
	ed, sched := newEditor(t)

	require.NoError(t, ed.Patch(domain.LangUK, domain.DocumentPatch{
		Markup: domain.StringPtr("<p>draft</p>"),
	}))
	require.NoError(t, ed.SetActiveLanguage(domain.LangEN))

	sched.FireAll()

	assert.Empty(t, ed.State().Documents[domain.LangUK].History,
		"pending capture for the language just left must be dropped")
}

func TestEditor_RestoreHistoryEntry(t *testing.T) {
	ed, sched := newEditor(t)

	require.NoError(t, ed.Patch(domain.LangUK, domain.DocumentPatch{
		Markup:     domain.StringPtr("<p>v1</p>"),
		Stylesheet: domain.StringPtr("p { color: blue; }"),
	}))
	sched.FireAll()
	require.NoError(t, ed.Patch(domain.LangUK, domain.DocumentPatch{
		Markup: domain.StringPtr("<p>v2</p>"),
	}))
	sched.FireAll()

	state := ed.State()
	require.Len(t, state.Documents[domain.LangUK].History, 2)

	// Restore the older snapshot (index 1, newest first).
	require.NoError(t, ed.RestoreHistoryEntry(1))

	doc := ed.State().Documents[domain.LangUK]
	assert.Equal(t, "<p>v1</p>", doc.Markup)
	// Restoring alone creates no new entry until the window elapses again.
	assert.Len(t, doc.History, 2)

	sched.FireAll()
	assert.Len(t, ed.State().Documents[domain.LangUK].History, 3)

	assert.ErrorIs(t, ed.RestoreHistoryEntry(99), desceditor.ErrNoHistoryEntry)
}

func TestRegistry_AttachDetach(t *testing.T) {
	reg := desceditor.NewRegistry()

	ed, err := desceditor.New(
		desceditor.WithAutosaveInterval(0),
		desceditor.WithRegistry(reg, "main"),
	)
	require.NoError(t, err)

	got, ok := reg.Lookup("main")
	require.True(t, ok)
	assert.Same(t, ed, got)

	// Duplicate names are rejected.
	_, err = desceditor.New(
		desceditor.WithAutosaveInterval(0),
		desceditor.WithRegistry(reg, "main"),
	)
	assert.Error(t, err)

	// Close deregisters symmetrically with registration.
	ed.Close()
	_, ok = reg.Lookup("main")
	assert.False(t, ok)
	assert.Empty(t, reg.Names())
}

func TestEditor_WithInitialState(t *testing.T) {
	ed, _ := newEditor(t, desceditor.WithInitialState(codec.PersistedState{
		ActiveLanguage: domain.LangEN,
		Documents: map[domain.Language]codec.ExportedDocument{
			domain.LangEN: {Language: domain.LangEN, Markup: "<p>seeded</p>"},
		},
	}))

	state := ed.State()
	assert.Equal(t, domain.LangEN, state.ActiveLanguage)
	assert.Equal(t, "<p>seeded</p>", state.Documents[domain.LangEN].Markup)
	for _, lang := range domain.Languages() {
		_, ok := state.Documents[lang]
		assert.True(t, ok)
	}
}
