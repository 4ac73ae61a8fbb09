package audio

import (
	"time"

	"github.com/faiface/beep"
)

// Source is a decoded audio file ready to be queued on a sink.
type Source struct {
	path     string
	streamer beep.StreamSeekCloser
	format   beep.Format
	quality  int
}

// Path returns the file path.
func (s *Source) Path() string {
	return s.path
}

// Format returns the decoded stream format.
func (s *Source) Format() beep.Format {
	return s.format
}

// Duration returns the decoded length.
func (s *Source) Duration() time.Duration {
	if s.streamer == nil {
		return 0
	}
	return s.format.SampleRate.D(s.streamer.Len())
}

// Close releases the underlying file.
func (s *Source) Close() error {
	if s.streamer == nil {
		return nil
	}
	return s.streamer.Close()
}

// streamAt returns the source resampled to rate when needed.
func (s *Source) streamAt(rate beep.SampleRate) beep.Streamer {
	if s.format.SampleRate == rate || s.format.SampleRate == 0 {
		return s.streamer
	}
	return beep.Resample(s.quality, s.format.SampleRate, rate, s.streamer)
}
