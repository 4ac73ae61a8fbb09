package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoders_Open(t *testing.T) {
	dir := t.TempDir()
	good := writeWAV(t, dir, "tone.wav", 8000, 2*time.Second)

	garbage := filepath.Join(dir, "broken.wav")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not a riff header"), 0o644))

	d, err := NewDecoders(nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "valid wav", path: good},
		{name: "missing file", path: filepath.Join(dir, "missing.mp3"), wantErr: ErrFileNotFound},
		{name: "unsupported extension", path: filepath.Join(dir, "notes.txt"), wantErr: ErrUnsupportedFormat},
		{name: "corrupt file", path: garbage, wantErr: ErrDecodeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := d.Open(tt.path)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, src)
				return
			}

			require.NoError(t, err)
			defer src.Close()
			assert.Equal(t, tt.path, src.Path())
			assert.Equal(t, 2*time.Second, src.Duration())
		})
	}
}

func TestNewDecoders(t *testing.T) {
	t.Run("all registered formats enabled by default", func(t *testing.T) {
		d, err := NewDecoders(nil)
		require.NoError(t, err)

		for _, path := range []string{"a.mp3", "a.WAV", "a.flac", "a.ogg"} {
			assert.True(t, d.Supports(path), path)
		}
		assert.False(t, d.Supports("a.m4a"))
	})

	t.Run("disabled format", func(t *testing.T) {
		d, err := NewDecoders(map[string]FormatConfig{
			"mp3": {Enabled: false},
		})
		require.NoError(t, err)
		assert.False(t, d.Supports("a.mp3"))
		assert.True(t, d.Supports("a.wav"))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewDecoders(map[string]FormatConfig{
			"aiff": {Enabled: true},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrFormatNotAvailable))
	})

	t.Run("invalid settings", func(t *testing.T) {
		_, err := NewDecoders(map[string]FormatConfig{
			"flac": {Enabled: true, Settings: map[string]any{"resample_quality": 9}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "flac")
	})
}

func TestFormat_ValidateConfig(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
		expected int
		wantErr  bool
	}{
		{name: "nil settings use default", settings: nil, expected: 4},
		{name: "explicit quality", settings: map[string]any{"resample_quality": 6}, expected: 6},
		{name: "quality too high", settings: map[string]any{"resample_quality": 7}, wantErr: true},
		{name: "wrong type", settings: map[string]any{"resample_quality": "best"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &WAVFormat{}
			err := f.ValidateConfig(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f.Settings().ResampleQuality)
		})
	}
}

func TestRegisteredNames(t *testing.T) {
	assert.Equal(t, []string{"flac", "mp3", "ogg", "wav"}, RegisteredNames())
}
