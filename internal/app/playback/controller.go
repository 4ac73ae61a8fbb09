package playback

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/barplayer/internal/app/progress"
	"github.com/osa030/barplayer/internal/domain/playlist"
	"github.com/osa030/barplayer/internal/domain/track"
	"github.com/osa030/barplayer/internal/infra/audio"
)

// Errors
var (
	ErrEmptyPlaylist       = errors.New("playlist is empty")
	ErrTrackAlreadyPlaying = errors.New("track is already playing")
	ErrTrackAlreadyPaused  = errors.New("track is already paused")
	ErrClosed              = errors.New("controller is closed")
)

// Config holds controller configuration.
type Config struct {
	Volume    float64       // Sink volume, 0.0 to 1.0
	BarWidth  int           // Progress bar cells
	Tick      time.Duration // Renderer interval while playing
	PausePoll time.Duration // Renderer interval while paused
	RegionTop int           // First terminal row of the bar region
}

// DefaultConfig returns the stock one-second tick configuration.
func DefaultConfig() Config {
	return Config{
		Volume:    0.5,
		BarWidth:  progress.DefaultBarWidth,
		Tick:      time.Second,
		PausePoll: 50 * time.Millisecond,
	}
}

// Controller owns the playlist and the audio sink and drives the progress
// renderer.
//
// Locking: opMu serializes controller operations and is never taken by the
// renderer. mu guards the sink and the session fields. The shared state has
// its own lock, and mu and the shared state lock are never held together.
type Controller struct {
	opMu sync.Mutex
	mu   sync.Mutex

	playlist *playlist.Playlist
	sources  []*audio.Source // Loaded sources not yet appended to the sink
	sink     Sink

	// Session
	active    bool
	current   int // Playlist index of the rendered track
	sessionID string

	state   *SharedState
	paintMu sync.Mutex
	painter *progress.Painter

	config Config

	eventCh chan Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

// NewController creates a new playback controller.
func NewController(config Config, sink Sink, canvas progress.Canvas) *Controller {
	defaults := DefaultConfig()
	if config.BarWidth <= 0 {
		config.BarWidth = defaults.BarWidth
	}
	if config.Tick <= 0 {
		config.Tick = defaults.Tick
	}
	if config.PausePoll <= 0 {
		config.PausePoll = defaults.PausePoll
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		playlist: playlist.New(),
		sources:  make([]*audio.Source, 0),
		sink:     sink,
		state:    NewSharedState(),
		painter:  progress.NewPainter(canvas, config.RegionTop),
		config:   config,
		eventCh:  make(chan Event, 16),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Events returns the event channel. It is closed by Close.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// Start begins a session on the current playlist entry: pending sources are
// queued on the sink, the shared state is reset to playing at zero and a
// renderer is spawned for the track.
func (c *Controller) Start() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	return c.startLocked()
}

// startLocked must be called with opMu held.
func (c *Controller) startLocked() error {
	if c.closed {
		return ErrClosed
	}

	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return ErrTrackAlreadyPlaying
	}
	t, ok := c.playlist.At(c.current)
	if !ok {
		c.mu.Unlock()
		return ErrEmptyPlaylist
	}

	c.enqueuePendingLocked()
	c.sink.SetVolume(c.config.Volume)
	if c.sink.IsPaused() {
		c.sink.Play()
	}

	c.active = true
	c.sessionID = uuid.New().String()
	index := c.current
	sessionID := c.sessionID
	c.mu.Unlock()

	zlog.Debug().Msgf("playback: session started: session=%s track=%s duration=%v",
		sessionID, t.Title, t.Duration)

	c.spawnRenderer(t, index)
	return nil
}

// Play resumes a paused track. From idle it starts the next pending track.
func (c *Controller) Play() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.mu.Lock()
	if c.playlist.IsEmpty() {
		c.mu.Unlock()
		return ErrEmptyPlaylist
	}
	if !c.active {
		c.mu.Unlock()
		return c.startLocked()
	}
	if c.sink.IsEmpty() {
		c.mu.Unlock()
		return ErrEmptyPlaylist
	}
	if !c.sink.IsPaused() {
		c.mu.Unlock()
		return ErrTrackAlreadyPlaying
	}
	c.sink.Play()
	c.mu.Unlock()

	c.state.SetPhase(PhasePlaying)
	c.sendEvent(EventStateChanged, StatePlaying)
	return nil
}

// Pause pauses the playing track.
func (c *Controller) Pause() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.mu.Lock()
	if c.playlist.IsEmpty() {
		c.mu.Unlock()
		return ErrEmptyPlaylist
	}
	// Nothing is loaded into the sink until a session starts.
	if !c.active {
		c.mu.Unlock()
		return ErrEmptyPlaylist
	}
	if c.sink.IsEmpty() {
		c.mu.Unlock()
		return ErrEmptyPlaylist
	}
	if c.sink.IsPaused() {
		c.mu.Unlock()
		return ErrTrackAlreadyPaused
	}
	c.sink.Pause()
	c.mu.Unlock()

	c.state.SetPhase(PhasePaused)
	c.sendEvent(EventStateChanged, StatePaused)
	return nil
}

// Add decodes the track's file, appends the track to the playlist and,
// while a session is running, queues it on the sink behind the current
// track. A file that cannot be opened or decoded leaves the playlist
// unchanged.
func (c *Controller) Add(t track.Track) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.mu.Lock()
	src, err := c.sink.Load(t.Path)
	if err != nil {
		c.mu.Unlock()
		return errors.Wrapf(err, "failed to load track %s", t.Path)
	}

	index := c.playlist.Add(t)
	c.sources = append(c.sources, src)
	if c.active {
		c.sink.Append(src)
		c.sources[index] = nil
	}
	sessionID := c.sessionID
	c.mu.Unlock()

	zlog.Debug().Msgf("playback: track added: index=%d track=%s duration=%v", index, t.Title, t.Duration)

	c.emit(Event{
		Type:      EventTrackAdded,
		SessionID: sessionID,
		Track:     &t,
		Index:     index,
		State:     c.State(),
	})
	return nil
}

// Clear erases the progress bar region. Phase and elapsed time are kept;
// the next tick repaints the whole bar.
func (c *Controller) Clear() error {
	c.paintMu.Lock()
	defer c.paintMu.Unlock()

	return c.painter.Clear()
}

// State returns the session state.
func (c *Controller) State() State {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()

	if !active {
		return StateIdle
	}
	return c.state.Phase().State()
}

// Elapsed returns the elapsed seconds of the current track.
func (c *Controller) Elapsed() uint64 {
	return c.state.Elapsed()
}

// CurrentTrack returns the track being rendered and its playlist index.
func (c *Controller) CurrentTrack() (track.Track, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return track.Track{}, 0, false
	}
	t, ok := c.playlist.At(c.current)
	return t, c.current, ok
}

// Tracks returns a copy of the playlist.
func (c *Controller) Tracks() []track.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playlist.Tracks()
}

// SessionID returns the ID of the running session, or "" when idle.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return ""
	}
	return c.sessionID
}

// Close cancels the renderer, waits for it to exit and closes the event
// channel. Sources that were never queued are closed.
func (c *Controller) Close() {
	c.opMu.Lock()
	if c.closed {
		c.opMu.Unlock()
		return
	}
	c.closed = true
	c.cancel()

	c.mu.Lock()
	c.active = false
	for i, src := range c.sources {
		if src == nil {
			continue
		}
		if err := src.Close(); err != nil {
			zlog.Warn().Msgf("playback: failed to close source: path=%s error=%v", src.Path(), err)
		}
		c.sources[i] = nil
	}
	c.mu.Unlock()
	c.opMu.Unlock()

	c.wg.Wait()
	close(c.eventCh)
}

// enqueuePendingLocked appends the sources of every playlist entry from the
// current one on. Must be called with mu held.
func (c *Controller) enqueuePendingLocked() {
	for i := c.current; i < len(c.sources); i++ {
		if c.sources[i] == nil {
			continue
		}
		c.sink.Append(c.sources[i])
		c.sources[i] = nil
	}
}

// spawnRenderer resets the shared state and starts the renderer goroutine
// for t. Must be called with opMu held and mu released.
func (c *Controller) spawnRenderer(t track.Track, index int) {
	c.state.Reset()

	r := &renderer{
		state:     c.state,
		paint:     c.paint,
		title:     t.Title,
		duration:  t.Seconds(),
		barWidth:  c.config.BarWidth,
		tick:      c.config.Tick,
		pausePoll: c.config.PausePoll,
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if r.run(c.ctx) {
			c.onTrackFinished(index)
		}
	}()

	c.emit(Event{
		Type:      EventTrackStarted,
		SessionID: c.SessionID(),
		Track:     &t,
		Index:     index,
		State:     StatePlaying,
	})
}

// onTrackFinished moves the session to the next playlist entry, or to idle
// when none is left.
func (c *Controller) onTrackFinished(index int) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.closed {
		return
	}

	c.mu.Lock()
	if !c.active || c.current != index {
		c.mu.Unlock()
		return
	}
	finished, _ := c.playlist.At(index)
	sessionID := c.sessionID
	c.current++
	next, hasNext := c.playlist.At(c.current)
	if !hasNext {
		c.active = false
	}
	c.mu.Unlock()

	zlog.Debug().Msgf("playback: track finished: index=%d track=%s", index, finished.Title)

	c.emit(Event{
		Type:      EventTrackFinished,
		SessionID: sessionID,
		Track:     &finished,
		Index:     index,
		State:     StatePlaying,
	})

	if !hasNext {
		c.emit(Event{
			Type:      EventPlaylistFinished,
			SessionID: sessionID,
			Index:     index,
			State:     StateIdle,
		})
		return
	}

	c.spawnRenderer(next, index+1)
}

// paint draws a frame; called by the renderer with the shared state lock held.
func (c *Controller) paint(f progress.Frame) {
	c.paintMu.Lock()
	defer c.paintMu.Unlock()

	if err := c.painter.Paint(f); err != nil {
		zlog.Warn().Msgf("playback: failed to paint progress: %v", err)
	}
}

// sendEvent emits a state change for the current track.
func (c *Controller) sendEvent(eventType EventType, state State) {
	t, index, ok := c.CurrentTrack()
	e := Event{
		Type:      eventType,
		SessionID: c.SessionID(),
		Index:     index,
		State:     state,
	}
	if ok {
		e.Track = &t
	}
	c.emit(e)
}

// emit sends an event without blocking.
func (c *Controller) emit(e Event) {
	select {
	case c.eventCh <- e:
		// Successfully sent
	case <-c.ctx.Done():
		// Context cancelled, don't send
	default:
		// Channel full, drop event
	}
}
