package playback

import "github.com/osa030/barplayer/internal/infra/audio"

// Sink is the audio output consumed by the controller.
// Implemented by *audio.Sink.
type Sink interface {
	Load(path string) (*audio.Source, error)
	Append(src *audio.Source)
	SetVolume(level float64)
	Play()
	Pause()
	IsPaused() bool
	IsEmpty() bool
}

var _ Sink = (*audio.Sink)(nil)
