// Package metadata reads track titles, artists and durations from audio files.
package metadata

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/barplayer/internal/domain/track"
	"github.com/osa030/barplayer/internal/infra/audio"
)

// Tags holds the tag fields used for display.
type Tags struct {
	Title  string
	Artist string
	Album  string
}

// Reader reads track metadata. Durations come from decoding the file, so
// only formats enabled in decoders can be read.
type Reader struct {
	decoders *audio.Decoders
}

// NewReader creates a metadata reader.
func NewReader(decoders *audio.Decoders) *Reader {
	return &Reader{decoders: decoders}
}

// ReadDuration returns the decoded length of the file at path.
func (r *Reader) ReadDuration(path string) (time.Duration, error) {
	src, err := r.decoders.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := src.Close(); err != nil {
			zlog.Warn().Msgf("metadata: failed to close %s: %v", path, err)
		}
	}()
	return src.Duration(), nil
}

// ReadTags reads the tags of the file at path. Files without tags yield
// the file name stem as title and UnknownArtist.
func (r *Reader) ReadTags(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Tags{}, errors.Mark(errors.Wrapf(err, "failed to open %s", path), audio.ErrFileNotFound)
		}
		return Tags{}, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	tags := Tags{}
	m, err := tag.ReadFrom(f)
	switch {
	case err == nil:
		tags.Title = strings.TrimSpace(m.Title())
		tags.Artist = strings.TrimSpace(m.Artist())
		tags.Album = strings.TrimSpace(m.Album())
	case errors.Is(err, tag.ErrNoTagsFound):
		zlog.Debug().Msgf("metadata: no tags in %s", path)
	default:
		// Broken tags do not make the audio unplayable.
		zlog.Warn().Msgf("metadata: failed to read tags from %s: %v", path, err)
	}

	if tags.Title == "" {
		tags.Title = track.TitleFromPath(path)
	}
	if tags.Artist == "" {
		tags.Artist = track.UnknownArtist
	}
	return tags, nil
}

// Load reads everything needed to build a track.
func (r *Reader) Load(path string) (track.Track, error) {
	duration, err := r.ReadDuration(path)
	if err != nil {
		return track.Track{}, err
	}
	tags, err := r.ReadTags(path)
	if err != nil {
		return track.Track{}, err
	}
	return track.New(path, tags.Title, tags.Artist, duration), nil
}
