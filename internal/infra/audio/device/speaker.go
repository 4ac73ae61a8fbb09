// Package device binds the audio sink to the system sound card.
package device

import (
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Speaker is the sound card output backed by faiface/beep/speaker.
type Speaker struct{}

// New returns the speaker output.
func New() *Speaker {
	return &Speaker{}
}

func (s *Speaker) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (s *Speaker) Play(streamers ...beep.Streamer) {
	speaker.Play(streamers...)
}

func (s *Speaker) Lock() {
	speaker.Lock()
}

func (s *Speaker) Unlock() {
	speaker.Unlock()
}
