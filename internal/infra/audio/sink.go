package audio

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// Output is the device a sink plays through.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
}

// SinkConfig holds sink configuration.
type SinkConfig struct {
	SampleRate int           // Output sample rate in Hz
	Buffer     time.Duration // Output buffer length
}

// Sink is a pausable queue of sources playing on one output.
type Sink struct {
	out      Output
	decoders *Decoders
	rate     beep.SampleRate

	queue  *queue
	volume *effects.Volume
	ctrl   *beep.Ctrl
}

// NewSink initialises out and starts streaming an empty queue into it.
func NewSink(out Output, decoders *Decoders, cfg SinkConfig) (*Sink, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if err := out.Init(rate, rate.N(cfg.Buffer)); err != nil {
		return nil, errors.Wrap(err, "failed to initialize audio output")
	}

	q := &queue{}
	vol := &effects.Volume{Streamer: q, Base: 2}
	ctrl := &beep.Ctrl{Streamer: vol}
	out.Play(ctrl)

	return &Sink{
		out:      out,
		decoders: decoders,
		rate:     rate,
		queue:    q,
		volume:   vol,
		ctrl:     ctrl,
	}, nil
}

// Load decodes path without queueing it.
func (s *Sink) Load(path string) (*Source, error) {
	return s.decoders.Open(path)
}

// Append queues src behind whatever is playing.
func (s *Sink) Append(src *Source) {
	s.out.Lock()
	defer s.out.Unlock()
	s.queue.add(src, s.rate)
}

// SetVolume sets a linear volume level between 0 and 1.
func (s *Sink) SetVolume(level float64) {
	s.out.Lock()
	defer s.out.Unlock()

	if level <= 0 {
		s.volume.Silent = true
		return
	}
	s.volume.Silent = false
	s.volume.Volume = math.Log2(math.Min(level, 1))
}

// Play resumes output.
func (s *Sink) Play() {
	s.out.Lock()
	defer s.out.Unlock()
	s.ctrl.Paused = false
}

// Pause holds output at the current position.
func (s *Sink) Pause() {
	s.out.Lock()
	defer s.out.Unlock()
	s.ctrl.Paused = true
}

// IsPaused returns true if output is paused.
func (s *Sink) IsPaused() bool {
	s.out.Lock()
	defer s.out.Unlock()
	return s.ctrl.Paused
}

// IsEmpty returns true if nothing is queued.
func (s *Sink) IsEmpty() bool {
	s.out.Lock()
	defer s.out.Unlock()
	return s.queue.len() == 0
}

// Close drops and closes every queued source.
func (s *Sink) Close() {
	s.out.Lock()
	defer s.out.Unlock()
	s.queue.clear()
}
