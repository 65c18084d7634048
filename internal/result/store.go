package result

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/qr-generator/internal/model"
)

// DefaultExitWindow is how long an artifact stays held after it starts hiding
const DefaultExitWindow = 300 * time.Millisecond

// Timer is the part of *time.Timer the store needs
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Snapshot is a consistent copy of the store state handed to listeners
type Snapshot struct {
	Phase          model.Phase
	Artifact       *model.Artifact // nil unless Phase.HoldsPayload()
	CaptionVisible bool
}

// Store owns the displayed artifact and the single exit timer.
type Store struct {
	mu             sync.Mutex
	phase          model.Phase
	artifact       *model.Artifact
	captionVisible bool
	pending        bool // a request started while exiting
	epoch          uint64
	timer          Timer
	exitWindow     time.Duration
	afterFunc      AfterFunc
	onUpdate       func(Snapshot)
	logger         *zap.SugaredLogger
}

// Option customizes a Store
type Option func(*Store)

// WithExitWindow overrides DefaultExitWindow
func WithExitWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.exitWindow = d
		}
	}
}

// WithAfterFunc replaces the timer source, used by tests to fire timers by hand
func WithAfterFunc(f AfterFunc) Option {
	return func(s *Store) {
		if f != nil {
			s.afterFunc = f
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store in PhaseHidden
func NewStore(opts ...Option) *Store {
	s := &Store{
		phase:          model.PhaseHidden,
		captionVisible: true,
		exitWindow:     DefaultExitWindow,
		afterFunc:      realAfterFunc,
		logger:         zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetUpdateCallback sets the function called after every transition.
// It runs outside the store lock, on the goroutine that caused the change.
func (s *Store) SetUpdateCallback(callback func(Snapshot)) {
	s.mu.Lock()
	s.onUpdate = callback
	s.mu.Unlock()
}

// ExitWindow returns the configured exit delay
func (s *Store) ExitWindow() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitWindow
}

// SetExitWindow changes the delay for exits started from now on
func (s *Store) SetExitWindow(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.exitWindow = d
	s.mu.Unlock()
}

// Snapshot returns the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Phase returns the current phase
func (s *Store) Phase() model.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// BeginRequest records that a generate request is in flight. A visible
// artifact starts its exit; the store lands in PhasePending once it is cleared.
func (s *Store) BeginRequest() {
	s.mu.Lock()
	switch s.phase {
	case model.PhaseHidden:
		s.phase = model.PhasePending
	case model.PhaseVisible:
		s.startExitLocked()
		s.pending = true
	case model.PhaseExiting:
		s.pending = true
	case model.PhasePending:
		s.mu.Unlock()
		return
	}
	s.notifyLocked()
}

// Show displays artifact immediately with the caption variant selected.
func (s *Store) Show(artifact model.Artifact) {
	s.mu.Lock()
	s.stopTimerLocked()
	s.epoch++
	a := artifact
	s.artifact = &a
	s.phase = model.PhaseVisible
	s.captionVisible = true
	s.pending = false
	s.logger.Debugf("Showing artifact %s", artifact.ID)
	s.notifyLocked()
}

// Fail ends a pending request without a result.
func (s *Store) Fail() {
	s.mu.Lock()
	switch s.phase {
	case model.PhasePending:
		s.phase = model.PhaseHidden
	case model.PhaseExiting:
		if !s.pending {
			s.mu.Unlock()
			return
		}
		s.pending = false
	default:
		s.mu.Unlock()
		return
	}
	s.notifyLocked()
}

// Hide starts removing whatever is shown. A visible artifact stays held for
// the exit window; calling Hide again while exiting restarts the window.
func (s *Store) Hide() {
	s.mu.Lock()
	switch s.phase {
	case model.PhaseHidden:
		s.mu.Unlock()
		return
	case model.PhasePending:
		s.phase = model.PhaseHidden
	case model.PhaseVisible, model.PhaseExiting:
		s.startExitLocked()
	}
	s.pending = false
	s.notifyLocked()
}

// ToggleCaption swaps between the captioned and bare variant. It does
// nothing unless an artifact is visible.
func (s *Store) ToggleCaption() bool {
	s.mu.Lock()
	if s.phase != model.PhaseVisible {
		s.mu.Unlock()
		return false
	}
	s.captionVisible = !s.captionVisible
	s.notifyLocked()
	return true
}

// startExitLocked moves to PhaseExiting and (re)arms the only exit timer.
func (s *Store) startExitLocked() {
	s.stopTimerLocked()
	s.phase = model.PhaseExiting
	s.epoch++
	epoch := s.epoch
	s.timer = s.afterFunc(s.exitWindow, func() { s.finishExit(epoch) })
}

func (s *Store) finishExit(epoch uint64) {
	s.mu.Lock()
	if s.epoch != epoch || s.phase != model.PhaseExiting {
		// superseded by a newer transition
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.artifact = nil
	s.captionVisible = true
	if s.pending {
		s.phase = model.PhasePending
		s.pending = false
	} else {
		s.phase = model.PhaseHidden
	}
	s.notifyLocked()
}

func (s *Store) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{Phase: s.phase, CaptionVisible: s.captionVisible}
	if s.artifact != nil && s.phase.HoldsPayload() {
		a := *s.artifact
		snap.Artifact = &a
	}
	return snap
}

// notifyLocked releases the lock and then calls the update callback
func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	callback := s.onUpdate
	s.mu.Unlock()

	if callback != nil {
		callback(snap)
	}
}
