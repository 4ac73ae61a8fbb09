package playback

import (
	"sync"
	"time"
)

// SharedState is the {phase, elapsed} pair shared by the controller and
// the renderer. Every call holds the lock for its whole critical section.
//
// Alongside the elapsed counter it accrues the wall time spent in the
// playing phase, so the renderer can count a second only once a full tick
// of playing time has passed.
type SharedState struct {
	mu      sync.Mutex
	phase   Phase
	elapsed uint64

	played time.Duration // Playing time before the current playing run
	since  time.Time     // Start of the current playing run
	now    func() time.Time
}

// NewSharedState creates a state in the playing phase at zero seconds.
func NewSharedState() *SharedState {
	return newSharedState(time.Now)
}

func newSharedState(now func() time.Time) *SharedState {
	return &SharedState{phase: PhasePlaying, since: now(), now: now}
}

// Phase returns the current phase.
func (s *SharedState) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// SetPhase sets the phase. Leaving the playing phase banks the time played
// since it was entered.
func (s *SharedState) SetPhase(p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p == s.phase {
		return
	}
	now := s.now()
	if s.phase == PhasePlaying {
		s.played += now.Sub(s.since)
	} else {
		s.since = now
	}
	s.phase = p
}

// Elapsed returns the elapsed seconds.
func (s *SharedState) Elapsed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Reset puts the state back to playing at zero seconds.
func (s *SharedState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhasePlaying
	s.elapsed = 0
	s.played = 0
	s.since = s.now()
}

// playedLocked returns the total playing time. Must be called with mu held.
func (s *SharedState) playedLocked() time.Duration {
	if s.phase == PhasePlaying {
		return s.played + s.now().Sub(s.since)
	}
	return s.played
}

// Tick runs fn with the lock held, passing the total playing time. When
// the phase is playing and fn returns true, elapsed is incremented before
// the lock is released, so a phase check, a render and an increment are
// never interleaved with SetPhase.
func (s *SharedState) Tick(fn func(phase Phase, elapsed uint64, played time.Duration) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn(s.phase, s.elapsed, s.playedLocked()) && s.phase == PhasePlaying {
		s.elapsed++
	}
}
