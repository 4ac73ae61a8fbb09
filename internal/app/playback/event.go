package playback

import "github.com/osa030/barplayer/internal/domain/track"

// EventType represents a playback event type.
type EventType int

const (
	EventTrackStarted     EventType = iota // Track started rendering
	EventTrackFinished                     // Track progress reached its duration
	EventTrackAdded                        // Track appended to the playlist
	EventStateChanged                      // Playback state changed (pause/resume)
	EventPlaylistFinished                  // No track left to play
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackStarted:
		return "track_started"
	case EventTrackFinished:
		return "track_finished"
	case EventTrackAdded:
		return "track_added"
	case EventStateChanged:
		return "state_changed"
	case EventPlaylistFinished:
		return "playlist_finished"
	default:
		return "unknown"
	}
}

// Event represents a playback event.
type Event struct {
	Type      EventType
	SessionID string
	Track     *track.Track // Track concerned (nil for some events)
	Index     int          // Playlist index of Track
	State     State        // State after the event
}
