// Package httpserver exposes the host side of the editor protocol: the
// session state/save API the editor core synchronizes against, an optional
// static directory for an embedded editor UI bundle, and Prometheus metrics.
package httpserver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/formaniuktaras/Price20/internal/logging"
	"github.com/formaniuktaras/Price20/pkg/codec"
	"github.com/formaniuktaras/Price20/pkg/domain"
	"github.com/formaniuktaras/Price20/pkg/ports"
)

// maxRequestBody caps save payload reads (16 MiB; embedded assets are
// base64 data URIs, so payloads run large).
const maxRequestBody int64 = 16 << 20

// Server handles the session API backed by a StateStore.
type Server struct {
	store   ports.StateStore
	logger  *slog.Logger
	metrics *metrics
	static  string
}

type Option func(*Server)

// WithLogger configures a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStaticDir serves the given directory at the root path, for deployments
// that bundle the editor UI next to the API.
func WithStaticDir(dir string) Option {
	return func(s *Server) {
		s.static = dir
	}
}

// NewHandler creates the HTTP handler for the host API.
func NewHandler(store ports.StateStore, opts ...Option) http.Handler {
	s := &Server{
		store:   store,
		logger:  logging.NewNop(),
		metrics: newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/api/session/{id}/state", s.getState)
	r.Post("/api/session/{id}/save", s.saveState)
	r.Get("/close", s.closePage)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	if s.static != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.static)))
	}
	return r
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	state, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrStateNotFound) {
			s.metrics.fetches.WithLabelValues("not_found").Inc()
			writeJSON(w, http.StatusNotFound, `{"error":"Session not found"}`)
			return
		}
		s.logger.Error("load session state", "session", id, "err", err)
		s.metrics.fetches.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, `{"error":"Failed to load state"}`)
		return
	}

	data, err := codec.EncodeState(codec.ExportState(*state, time.Now()))
	if err != nil {
		s.logger.Error("encode session state", "session", id, "err", err)
		s.metrics.fetches.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, `{"error":"Failed to encode state"}`)
		return
	}

	s.metrics.fetches.WithLabelValues("ok").Inc()
	writeJSONBytes(w, http.StatusOK, data)
}

func (s *Server) saveState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		s.metrics.saves.WithLabelValues("rejected").Inc()
		writeJSON(w, http.StatusBadRequest, `{"error":"Invalid JSON"}`)
		return
	}

	payload, err := codec.DecodeState(body)
	if err != nil {
		s.logger.Warn("rejected save payload", "session", id, "err", err)
		s.metrics.saves.WithLabelValues("rejected").Inc()
		writeJSON(w, http.StatusBadRequest, `{"error":"Invalid payload"}`)
		return
	}

	// Hydrate through the transition function so the stored state always
	// satisfies the all-languages-present invariant.
	state := domain.Apply(domain.NewEditorState(), domain.ReplaceState{State: payload.ToDomain()})
	if err := s.store.Save(r.Context(), id, &state); err != nil {
		s.logger.Error("persist session state", "session", id, "err", err)
		s.metrics.saves.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, `{"error":"Failed to persist state"}`)
		return
	}

	s.metrics.saves.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, `{"status":"ok"}`)
}

func (s *Server) closePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(closeHTML))
}

const closeHTML = `<!DOCTYPE html>
<html lang="uk">
<head><meta charset="utf-8"><title>Редактор опису</title></head>
<body style="font-family: sans-serif; margin: 40px;">
  <h1>Редактор опису</h1>
  <p>Дані передано у застосунок. Ви можете закрити цю вкладку.</p>
</body>
</html>`

func writeJSON(w http.ResponseWriter, status int, body string) {
	writeJSONBytes(w, status, []byte(body))
}

func writeJSONBytes(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
