package playback

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osa030/barplayer/internal/domain/track"
	"github.com/osa030/barplayer/internal/infra/audio"
)

// fakeSink records controller calls. Queued sources never drain.
type fakeSink struct {
	mu      sync.Mutex
	loadErr map[string]error
	loaded  []string
	queued  []*audio.Source
	paused  bool
	volume  float64
}

func (s *fakeSink) Load(path string) (*audio.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadErr[path]; err != nil {
		return nil, err
	}
	s.loaded = append(s.loaded, path)
	return &audio.Source{}, nil
}

func (s *fakeSink) Append(src *audio.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued = append(s.queued, src)
}

func (s *fakeSink) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = level
}

func (s *fakeSink) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
}

func (s *fakeSink) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
}

func (s *fakeSink) IsPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *fakeSink) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queued) == 0
}

func (s *fakeSink) queuedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queued)
}

// fakeCanvas records canvas calls; safe for use from the renderer goroutine.
type fakeCanvas struct {
	mu  sync.Mutex
	ops []string
}

func (c *fakeCanvas) record(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, op)
}

func (c *fakeCanvas) SaveCursor()             { c.record("save") }
func (c *fakeCanvas) MoveCursor(row, col int) { c.record(fmt.Sprintf("move %d,%d", row, col)) }
func (c *fakeCanvas) ClearLine()              { c.record("clear-line") }
func (c *fakeCanvas) ClearRegion(top, height int) {
	c.record(fmt.Sprintf("clear-region %d+%d", top, height))
}
func (c *fakeCanvas) RestoreCursor() { c.record("restore") }
func (c *fakeCanvas) Print(s string) { c.record("print " + s) }
func (c *fakeCanvas) Flush() error   { return nil }

// printed reports whether any print op contains s.
func (c *fakeCanvas) printed(s string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, op := range c.ops {
		if strings.HasPrefix(op, "print ") && strings.Contains(op, s) {
			return true
		}
	}
	return false
}

func (c *fakeCanvas) contains(op string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, o := range c.ops {
		if o == op {
			return true
		}
	}
	return false
}

func newTestController(t *testing.T, tick time.Duration) (*Controller, *fakeSink, *fakeCanvas) {
	t.Helper()

	sink := &fakeSink{}
	canvas := &fakeCanvas{}
	c := NewController(Config{
		Volume:    0.7,
		BarWidth:  10,
		Tick:      tick,
		PausePoll: time.Millisecond,
	}, sink, canvas)
	t.Cleanup(c.Close)
	return c, sink, canvas
}

func testTrack(title string, duration time.Duration) track.Track {
	return track.New("/music/"+title+".mp3", title, "Tester", duration)
}

// waitEvent reads events until one of type want arrives.
func waitEvent(t *testing.T, c *Controller, want EventType) Event {
	t.Helper()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-c.Events():
			require.True(t, ok, "event channel closed while waiting for %s", want)
			if e.Type == want {
				return e
			}
		case <-timeout:
			require.FailNow(t, "timed out waiting for event", want.String())
		}
	}
}

// fakeClock is a manually advanced clock for SharedState.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
