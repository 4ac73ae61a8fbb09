package audio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// Errors
var (
	ErrFileNotFound       = errors.New("file not found")
	ErrDecodeFailure      = errors.New("decode failure")
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrFormatNotAvailable = errors.New("format not registered")
)

// FormatConfig enables a format and carries its settings.
type FormatConfig struct {
	Enabled  bool
	Settings map[string]any
}

// Decoders opens files with the enabled formats, picked by extension.
type Decoders struct {
	byExt map[string]Format
}

// NewDecoders builds the decoder set from configuration. Registered formats
// missing from configs are enabled with default settings.
func NewDecoders(configs map[string]FormatConfig) (*Decoders, error) {
	for name := range configs {
		if _, ok := registry[name]; !ok {
			return nil, errors.Mark(errors.Newf("format %s is not registered", name), ErrFormatNotAvailable)
		}
	}

	d := &Decoders{byExt: make(map[string]Format)}
	for _, name := range RegisteredNames() {
		cfg, configured := configs[name]
		if configured && !cfg.Enabled {
			zlog.Debug().Msgf("audio: format disabled: %s", name)
			continue
		}

		f := registry[name]()
		if err := f.ValidateConfig(cfg.Settings); err != nil {
			return nil, errors.Wrapf(err, "format %s", name)
		}
		for _, ext := range f.Extensions() {
			d.byExt[ext] = f
		}
		zlog.Debug().Msgf("audio: format enabled: %s settings=%+v", name, f.Settings())
	}
	return d, nil
}

// Supports returns true if path has an enabled extension.
func (d *Decoders) Supports(path string) bool {
	_, ok := d.byExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Open decodes path. The error is marked with ErrFileNotFound,
// ErrUnsupportedFormat or ErrDecodeFailure.
func (d *Decoders) Open(path string) (*Source, error) {
	format, ok := d.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, errors.Mark(errors.Newf("unsupported format: %s", path), ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Mark(errors.Wrapf(err, "failed to open %s", path), ErrFileNotFound)
		}
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}

	streamer, beepFormat, err := format.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Mark(errors.Wrapf(err, "failed to decode %s", path), ErrDecodeFailure)
	}

	return &Source{
		path:     path,
		streamer: streamer,
		format:   beepFormat,
		quality:  format.Settings().ResampleQuality,
	}, nil
}
