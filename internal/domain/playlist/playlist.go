// Package playlist provides the Playlist domain entity.
package playlist

import (
	"time"

	"github.com/osa030/barplayer/internal/domain/track"
)

// Playlist is an ordered, append-only list of tracks.
// It is not safe for concurrent use; the owner guards it.
type Playlist struct {
	tracks []track.Track
}

// New creates a playlist holding the given tracks.
func New(tracks ...track.Track) *Playlist {
	p := &Playlist{tracks: make([]track.Track, 0, len(tracks))}
	p.tracks = append(p.tracks, tracks...)
	return p
}

// Add appends a track and returns its index.
func (p *Playlist) Add(t track.Track) int {
	p.tracks = append(p.tracks, t)
	return len(p.tracks) - 1
}

// At returns the track at index i.
func (p *Playlist) At(i int) (track.Track, bool) {
	if i < 0 || i >= len(p.tracks) {
		return track.Track{}, false
	}
	return p.tracks[i], true
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// IsEmpty returns true if the playlist holds no tracks.
func (p *Playlist) IsEmpty() bool {
	return len(p.tracks) == 0
}

// Tracks returns a copy of the tracks.
func (p *Playlist) Tracks() []track.Track {
	result := make([]track.Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// TotalDuration returns the total duration of all tracks.
func (p *Playlist) TotalDuration() time.Duration {
	var total time.Duration
	for _, t := range p.tracks {
		total += t.Duration
	}
	return total
}
