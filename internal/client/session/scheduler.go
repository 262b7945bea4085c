package session

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Scheduler is the debounce timer bound to the active session. A burst of
// edits becomes a single save once input pauses for the quiet period.
//
// Invariant: at most one timer is pending; Arm always supersedes the
// previous timer, it never layers a second one.
//
// The idle expiry is the only path that requests AI summarization; Flush
// (date switch, unmount, navigation away) saves without it.
type Scheduler struct {
	mu    sync.Mutex
	clock clock.Clock
	quiet time.Duration
	save  func(triggerAI bool)
	timer *clock.Timer
}

func NewScheduler(clk clock.Clock, quiet time.Duration, save func(triggerAI bool)) *Scheduler {
	return &Scheduler{clock: clk, quiet: quiet, save: save}
}

// Arm cancels any pending timer and starts a new one for the quiet period.
func (s *Scheduler) Arm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.clock.AfterFunc(s.quiet, func() {
		s.save(true)
	})
}

// Cancel stops the pending timer, if any, without saving.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Flush cancels the pending timer and starts the save immediately, without
// requesting AI summarization.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	save := s.save
	s.mu.Unlock()

	save(false)
}
