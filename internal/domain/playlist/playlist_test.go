package playlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/barplayer/internal/domain/track"
)

func TestPlaylist_Tracks(t *testing.T) {
	tests := []struct {
		name     string
		tracks   []track.Track
		expected []string
	}{
		{
			name:     "empty playlist",
			tracks:   []track.Track{},
			expected: []string{},
		},
		{
			name: "single track",
			tracks: []track.Track{
				{Path: "a.mp3", Title: "A"},
			},
			expected: []string{"A"},
		},
		{
			name: "multiple tracks keep order",
			tracks: []track.Track{
				{Path: "a.mp3", Title: "A"},
				{Path: "b.mp3", Title: "B"},
				{Path: "c.mp3", Title: "C"},
			},
			expected: []string{"A", "B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.tracks...)
			got := p.Tracks()
			titles := make([]string, len(got))
			for i, tr := range got {
				titles[i] = tr.Title
			}
			assert.Equal(t, tt.expected, titles)
			assert.Equal(t, len(tt.tracks), p.Len())
		})
	}
}

func TestPlaylist_TotalDuration(t *testing.T) {
	tests := []struct {
		name     string
		tracks   []track.Track
		expected time.Duration
	}{
		{
			name:     "empty playlist",
			tracks:   []track.Track{},
			expected: 0,
		},
		{
			name: "single track",
			tracks: []track.Track{
				{Path: "a.mp3", Duration: 3 * time.Minute},
			},
			expected: 3 * time.Minute,
		},
		{
			name: "multiple tracks",
			tracks: []track.Track{
				{Path: "a.mp3", Duration: 2 * time.Minute},
				{Path: "b.mp3", Duration: 3*time.Minute + 30*time.Second},
				{Path: "c.mp3", Duration: 4 * time.Minute},
			},
			expected: 9*time.Minute + 30*time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.tracks...)
			assert.Equal(t, tt.expected, p.TotalDuration())
		})
	}
}

func TestPlaylist_AddAndAt(t *testing.T) {
	p := New()
	assert.True(t, p.IsEmpty())

	_, ok := p.At(0)
	assert.False(t, ok)

	idx := p.Add(track.Track{Path: "a.mp3", Title: "A"})
	assert.Equal(t, 0, idx)
	idx = p.Add(track.Track{Path: "b.mp3", Title: "B"})
	assert.Equal(t, 1, idx)

	got, ok := p.At(1)
	assert.True(t, ok)
	assert.Equal(t, "B", got.Title)

	_, ok = p.At(-1)
	assert.False(t, ok)
	assert.False(t, p.IsEmpty())
}

func TestPlaylist_TracksIsCopy(t *testing.T) {
	p := New(track.Track{Path: "a.mp3", Title: "A"})

	tracks := p.Tracks()
	tracks[0].Title = "changed"

	got, _ := p.At(0)
	assert.Equal(t, "A", got.Title)
}
