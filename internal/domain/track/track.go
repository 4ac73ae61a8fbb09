// Package track provides the Track domain entity.
package track

import (
	"path/filepath"
	"strings"
	"time"
)

// UnknownArtist is used when a file carries no artist tag.
const UnknownArtist = "Unknown artist"

// Track represents a playable local audio file.
// A Track is immutable once loaded from its path.
type Track struct {
	Path     string        // Absolute or relative file path
	Title    string        // Display title
	Artist   string        // Artist name
	Duration time.Duration // Decoded length
}

// New creates a track, filling the title from the file name when empty.
func New(path, title, artist string, duration time.Duration) Track {
	if title == "" {
		title = TitleFromPath(path)
	}
	if artist == "" {
		artist = UnknownArtist
	}
	return Track{
		Path:     path,
		Title:    title,
		Artist:   artist,
		Duration: duration,
	}
}

// Seconds returns the duration in whole seconds.
func (t Track) Seconds() uint64 {
	if t.Duration <= 0 {
		return 0
	}
	return uint64(t.Duration / time.Second)
}

// TitleFromPath returns the file name up to its first dot.
// "song.remix.mp3" becomes "song".
func TitleFromPath(path string) string {
	name := filepath.Base(path)
	if i := strings.Index(name, "."); i > 0 {
		return name[:i]
	}
	return name
}
