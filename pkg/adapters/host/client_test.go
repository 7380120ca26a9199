package host_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/formaniuktaras/Price20/pkg/adapters/host"
	"github.com/formaniuktaras/Price20/pkg/codec"
	"github.com/formaniuktaras/Price20/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/session/abc123/state", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"activeLang":"ru","docs":{"ru":{"language":"ru","markup":"<p>из хоста</p>","stylesheet":""}}}`))
	}))
	defer srv.Close()

	client := host.New(srv.URL)
	payload, err := client.FetchState(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, domain.LangRU, payload.ActiveLanguage)
	assert.Equal(t, "<p>из хоста</p>", payload.Documents[domain.LangRU].Markup)
}

func TestClient_FetchState_HostError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session expired", http.StatusNotFound)
	}))
	defer srv.Close()

	client := host.New(srv.URL)
	_, err := client.FetchState(context.Background(), "gone")

	var hostErr *host.HostError
	require.True(t, errors.As(err, &hostErr))
	assert.Equal(t, http.StatusNotFound, hostErr.Status)
	assert.Contains(t, hostErr.Error(), "session expired")
}

func TestClient_FetchState_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"activeLang":`))
	}))
	defer srv.Close()

	client := host.New(srv.URL)
	_, err := client.FetchState(context.Background(), "abc")
	require.Error(t, err)

	var decodeErr *codec.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestClient_PushState(t *testing.T) {
	var got codec.PersistedState
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/session/abc123/save", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		decoded, err := codec.DecodeState(body)
		require.NoError(t, err)
		got = decoded

		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	state := domain.Apply(domain.NewEditorState(), domain.PatchDocument{
		Lang:  domain.LangUK,
		Patch: domain.DocumentPatch{Markup: domain.StringPtr("<h1>X</h1>")},
	})

	client := host.New(srv.URL)
	err := client.PushState(context.Background(), "abc123", codec.ExportState(state, time.Now()))
	require.NoError(t, err)

	assert.Equal(t, "<h1>X</h1>", got.Documents[domain.LangUK].Markup)
	// The pushed snapshot carries every supported language.
	for _, lang := range domain.Languages() {
		_, ok := got.Documents[lang]
		assert.True(t, ok, "language %s missing from push payload", lang)
	}
}

func TestClient_PushState_SurfacesResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Invalid payload"}`))
	}))
	defer srv.Close()

	client := host.New(srv.URL)
	err := client.PushState(context.Background(), "abc", codec.ExportState(domain.NewEditorState(), time.Now()))

	var hostErr *host.HostError
	require.True(t, errors.As(err, &hostErr))
	assert.Equal(t, http.StatusBadRequest, hostErr.Status)
	assert.Contains(t, hostErr.Body, "Invalid payload")
}
