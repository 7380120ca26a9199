package ports

import (
	"context"
	"testing"
	"time"

	"github.com/formaniuktaras/Price20/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore
// implementation adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewEditorState()
		state = domain.Apply(state, domain.PatchDocument{
			Lang: domain.LangUK,
			Patch: domain.DocumentPatch{
				Markup:     domain.StringPtr("<h1>Заголовок</h1>"),
				Stylesheet: domain.StringPtr("h1 { margin: 0; }"),
				Assets:     []domain.Asset{{Name: "a.png", DataURI: "data:image/png;base64,AA=="}},
			},
		})
		state = domain.Apply(state, domain.SetActiveLanguage{Lang: domain.LangEN})

		err := store.Save(ctx, key, &state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, domain.LangEN, loaded.ActiveLanguage)
		assert.Equal(t, "<h1>Заголовок</h1>", loaded.Documents[domain.LangUK].Markup)
		require.Len(t, loaded.Documents[domain.LangUK].Assets, 1)

		// Every supported language survives a round trip.
		for _, lang := range domain.Languages() {
			_, ok := loaded.Documents[lang]
			assert.True(t, ok, "language %s missing after Load", lang)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		first := domain.NewEditorState()
		first = domain.Apply(first, domain.PatchDocument{
			Lang:  domain.LangRU,
			Patch: domain.DocumentPatch{Markup: domain.StringPtr("<p>v1</p>")},
		})
		require.NoError(t, store.Save(ctx, key, &first))

		second := domain.Apply(first, domain.PatchDocument{
			Lang:  domain.LangRU,
			Patch: domain.DocumentPatch{Markup: domain.StringPtr("<p>v2</p>")},
		})
		require.NoError(t, store.Save(ctx, key, &second))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "<p>v2</p>", loaded.Documents[domain.LangRU].Markup)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		state := domain.NewEditorState()
		require.NoError(t, store.Save(ctx, key, &state))

		require.NoError(t, store.Delete(ctx, key))

		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrStateNotFound, "Load after Delete should return ErrStateNotFound")

		// Deleting an absent key stays quiet.
		assert.NoError(t, store.Delete(ctx, key))
	})

	t.Run("Isolation", func(t *testing.T) {
		state := domain.NewEditorState()
		require.NoError(t, store.Save(ctx, key, &state))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		loaded.Documents[domain.LangUK] = domain.Document{Markup: "<p>mutated</p>"}

		fresh, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "", fresh.Documents[domain.LangUK].Markup,
			"mutating a loaded state must not leak back into the store")

		require.NoError(t, store.Delete(ctx, key))
	})
}
