// Package history captures debounced snapshots of the active language's
// content into that language's bounded history sequence.
package history

import (
	"sync"
	"time"

	"github.com/formaniuktaras/Price20/pkg/domain"
	"github.com/formaniuktaras/Price20/pkg/ports"
)

// DefaultWindow is the quiescence window before a snapshot is committed.
const DefaultWindow = 1200 * time.Millisecond

// CommitFunc receives the snapshot once the debounce window elapses.
// Implementations issue an AppendHistoryEntry transition.
type CommitFunc func(lang domain.Language, entry domain.HistoryEntry)

// Recorder watches post-transition state snapshots and debounces history
// capture. Only the active language is tracked; switching the active
// language discards the pending capture for the language just left.
type Recorder struct {
	mu        sync.Mutex
	scheduler ports.Scheduler
	window    time.Duration
	commit    CommitFunc
	now       func() time.Time

	lang    domain.Language
	pending ports.Timer
	gen     uint64
	lastSig map[domain.Language]string
	closed  bool
}

type Option func(*Recorder)

// WithScheduler substitutes the timer source (tests use a manual one).
func WithScheduler(s ports.Scheduler) Option {
	return func(r *Recorder) {
		r.scheduler = s
	}
}

// WithWindow overrides the quiescence window.
func WithWindow(d time.Duration) Option {
	return func(r *Recorder) {
		if d > 0 {
			r.window = d
		}
	}
}

// WithNow substitutes the snapshot clock.
func WithNow(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

// NewRecorder creates a Recorder that reports committed snapshots to commit.
func NewRecorder(commit CommitFunc, opts ...Option) *Recorder {
	r := &Recorder{
		scheduler: ports.SystemScheduler{},
		window:    DefaultWindow,
		commit:    commit,
		now:       time.Now,
		lang:      "",
		lastSig:   make(map[domain.Language]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// signature folds markup and stylesheet into one comparable value.
func signature(markup, stylesheet string) string {
	return markup + "\x00" + stylesheet
}

// Observe feeds a post-transition state snapshot into the recorder. The
// first observation of a language establishes its baseline; later content
// changes start or reset the debounce timer.
func (r *Recorder) Observe(state domain.EditorState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	active := state.ActiveLanguage
	doc := state.ActiveDocument()
	sig := signature(doc.Markup, doc.Stylesheet)

	if active != r.lang {
		// Pending capture for the previous language is dropped, not flushed.
		r.stopPendingLocked()
		r.lang = active
		if _, seen := r.lastSig[active]; !seen {
			r.lastSig[active] = sig
			return
		}
	}

	if sig == r.lastSig[active] {
		r.stopPendingLocked()
		return
	}

	r.stopPendingLocked()
	gen := r.gen
	markup, stylesheet := doc.Markup, doc.Stylesheet
	r.pending = r.scheduler.AfterFunc(r.window, func() {
		r.expire(gen, active, markup, stylesheet, sig)
	})
}

// expire commits the snapshot if it is still relevant when the window ends.
// A timer that was cancelled after its callback already started (Stop saw
// the firing in progress) carries a stale generation and must not commit.
func (r *Recorder) expire(gen uint64, lang domain.Language, markup, stylesheet, sig string) {
	r.mu.Lock()
	if r.closed || gen != r.gen || lang != r.lang || sig == r.lastSig[lang] {
		r.mu.Unlock()
		return
	}
	r.lastSig[lang] = sig
	r.pending = nil
	commit := r.commit
	at := r.now()
	r.mu.Unlock()

	// Outside the lock: commit dispatches a transition, which feeds back
	// into Observe.
	commit(lang, domain.HistoryEntry{
		Timestamp:  at,
		Markup:     markup,
		Stylesheet: stylesheet,
	})
}

// Rebase resets tracking to the given state: the pending capture is dropped,
// per-language signatures are forgotten, and the active language's current
// content becomes the new baseline. Used after whole-state hydration so
// loaded content is not itself captured as an edit.
func (r *Recorder) Rebase(state domain.EditorState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	r.stopPendingLocked()
	doc := state.ActiveDocument()
	r.lang = state.ActiveLanguage
	r.lastSig = map[domain.Language]string{
		state.ActiveLanguage: signature(doc.Markup, doc.Stylesheet),
	}
}

// stopPendingLocked cancels the pending capture. Bumping the generation
// also invalidates a callback whose timer could no longer be stopped.
func (r *Recorder) stopPendingLocked() {
	if r.pending != nil {
		r.pending.Stop()
		r.pending = nil
	}
	r.gen++
}

// Close cancels any pending capture. The recorder ignores observations
// afterwards.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopPendingLocked()
	r.closed = true
}
