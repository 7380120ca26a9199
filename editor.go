package desceditor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/formaniuktaras/Price20/internal/logging"
	"github.com/formaniuktaras/Price20/pkg/codec"
	"github.com/formaniuktaras/Price20/pkg/domain"
	"github.com/formaniuktaras/Price20/pkg/history"
	"github.com/formaniuktaras/Price20/pkg/ports"
)

// DefaultAutosaveInterval is the standalone-mode autosave pulse.
const DefaultAutosaveInterval = 4 * time.Second

// DefaultStorageKey is the fixed key the standalone payload lives under.
const DefaultStorageKey = "autosave"

// Editor is the imperative facade over one editing session. It exclusively
// owns the live EditorState; everything else sees immutable snapshots.
type Editor struct {
	mu    sync.Mutex
	state domain.EditorState

	logger    *slog.Logger
	scheduler ports.Scheduler
	now       func() time.Time

	store      ports.StateStore
	storageKey string

	hostClient ports.HostClient
	session    string

	recorder *history.Recorder
	sanitize *bluemonday.Policy

	autosaveInterval time.Duration
	autosaveCancel   context.CancelFunc
	autosaveDone     chan struct{}

	pushInFlight atomic.Bool

	registry   *Registry
	handleName string

	debounceWindow time.Duration
	closed         atomic.Bool
}

// Option configures the Editor.
type Option func(*Editor)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithStore configures the StateStore used for standalone persistence.
func WithStore(store ports.StateStore) Option {
	return func(e *Editor) {
		e.store = store
	}
}

// WithStorageKey overrides the fixed key the standalone payload is stored
// under.
func WithStorageKey(key string) Option {
	return func(e *Editor) {
		if key != "" {
			e.storageKey = key
		}
	}
}

// WithHost enables hosted mode: the host at client owns durable state for
// the given session. Standalone autosave is disabled.
func WithHost(client ports.HostClient, session string) Option {
	return func(e *Editor) {
		e.hostClient = client
		e.session = session
	}
}

// WithScheduler substitutes the debounce timer source.
func WithScheduler(s ports.Scheduler) Option {
	return func(e *Editor) {
		e.scheduler = s
	}
}

// WithAutosaveInterval overrides the autosave pulse. Zero disables the
// pulse (SaveNow still works).
func WithAutosaveInterval(d time.Duration) Option {
	return func(e *Editor) {
		e.autosaveInterval = d
	}
}

// WithDebounceWindow overrides the history capture quiescence window.
func WithDebounceWindow(d time.Duration) Option {
	return func(e *Editor) {
		if d > 0 {
			e.debounceWindow = d
		}
	}
}

// WithSanitizer substitutes the HTML policy used by ToHTMLBundle.
// A nil policy disables sanitizing.
func WithSanitizer(p *bluemonday.Policy) Option {
	return func(e *Editor) {
		e.sanitize = p
	}
}

// WithRegistry registers the editor under name at construction; Close
// deregisters it symmetrically.
func WithRegistry(r *Registry, name string) Option {
	return func(e *Editor) {
		e.registry = r
		e.handleName = name
	}
}

// WithInitialState seeds the session from a previously exported payload
// instead of per-language defaults.
func WithInitialState(payload codec.PersistedState) Option {
	return func(e *Editor) {
		e.state = domain.Apply(e.state, domain.ReplaceState{State: payload.ToDomain()})
	}
}

// defaultPolicy allows user-generated markup plus the inline styling and
// data-URI images the editor produces.
func defaultPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("style", "class").Globally()
	p.AllowDataURIImages()
	return p
}

// New constructs an Editor. Hosted mode requires both a host client and a
// session; otherwise the editor runs standalone.
func New(opts ...Option) (*Editor, error) {
	e := &Editor{
		state:            domain.NewEditorState(),
		logger:           logging.NewNop(),
		scheduler:        ports.SystemScheduler{},
		now:              time.Now,
		storageKey:       DefaultStorageKey,
		autosaveInterval: DefaultAutosaveInterval,
		debounceWindow:   history.DefaultWindow,
		sanitize:         defaultPolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if (e.hostClient == nil) != (e.session == "") {
		return nil, ErrIncompleteHostConfig
	}

	e.recorder = history.NewRecorder(e.appendHistory,
		history.WithScheduler(e.scheduler),
		history.WithWindow(e.debounceWindow),
		history.WithNow(e.now),
	)
	e.recorder.Rebase(e.snapshot())

	if e.registry != nil {
		if err := e.registry.attach(e.handleName, e); err != nil {
			e.recorder.Close()
			return nil, err
		}
	}

	// Autosave pulses only in standalone mode; the host owns durability
	// otherwise.
	if !e.Hosted() && e.store != nil && e.autosaveInterval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		e.autosaveCancel = cancel
		e.autosaveDone = make(chan struct{})
		go e.runAutosave(ctx)
	}

	return e, nil
}

// Hosted reports whether an external host owns durable state.
func (e *Editor) Hosted() bool {
	return e.hostClient != nil && e.session != ""
}

// State returns an immutable snapshot of the current editor state.
func (e *Editor) State() domain.EditorState {
	return e.snapshot()
}

func (e *Editor) snapshot() domain.EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// dispatch funnels a transition request through the pure transition
// function and feeds the result to the history recorder.
func (e *Editor) dispatch(req domain.Request) domain.EditorState {
	e.mu.Lock()
	e.state = domain.Apply(e.state, req)
	snap := e.state.Clone()
	e.mu.Unlock()

	e.recorder.Observe(snap)
	return snap
}

// appendHistory is the recorder's commit callback.
func (e *Editor) appendHistory(lang domain.Language, entry domain.HistoryEntry) {
	if e.closed.Load() {
		return
	}
	e.dispatch(domain.AppendHistoryEntry{Lang: lang, Entry: entry})
}

// SetActiveLanguage switches the language being edited.
func (e *Editor) SetActiveLanguage(lang domain.Language) error {
	if !lang.Valid() {
		return domain.ErrUnknownLanguage
	}
	e.dispatch(domain.SetActiveLanguage{Lang: lang})
	return nil
}

// SetMode switches the UI surface.
func (e *Editor) SetMode(mode domain.Mode) error {
	if !mode.Valid() {
		return ErrUnknownMode
	}
	e.dispatch(domain.SetMode{Mode: mode})
	return nil
}

// ToggleMode flips between the code and visual surfaces (the reserved
// keyboard shortcut). From preview it returns to visual.
func (e *Editor) ToggleMode() domain.Mode {
	next := domain.ModeVisual
	if e.snapshot().Mode == domain.ModeVisual {
		next = domain.ModeCode
	}
	e.dispatch(domain.SetMode{Mode: next})
	return next
}

// Patch merges the supplied fields into one language's document.
func (e *Editor) Patch(lang domain.Language, patch domain.DocumentPatch) error {
	if !lang.Valid() {
		return domain.ErrUnknownLanguage
	}
	e.dispatch(domain.PatchDocument{Lang: lang, Patch: patch})
	return nil
}

// RestoreHistoryEntry copies a past snapshot of the active language back
// into its live document. The restored content becomes a new history entry
// only after the debounce window elapses on it.
func (e *Editor) RestoreHistoryEntry(index int) error {
	snap := e.snapshot()
	entries := snap.ActiveDocument().History
	if index < 0 || index >= len(entries) {
		return ErrNoHistoryEntry
	}
	entry := entries[index]
	e.dispatch(domain.PatchDocument{
		Lang: snap.ActiveLanguage,
		Patch: domain.DocumentPatch{
			Markup:     domain.StringPtr(entry.Markup),
			Stylesheet: domain.StringPtr(entry.Stylesheet),
		},
	})
	return nil
}

// Close releases the editor: the autosave pulse stops, the pending history
// capture is cancelled, and the registry handle is deregistered. Close is
// idempotent.
func (e *Editor) Close() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}

	if e.autosaveCancel != nil {
		e.autosaveCancel()
		<-e.autosaveDone
	}
	e.recorder.Close()
	if e.registry != nil {
		e.registry.detach(e.handleName)
	}
}
