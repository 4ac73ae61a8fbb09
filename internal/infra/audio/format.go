// Package audio decodes local audio files and plays them through a queued sink.
package audio

import (
	"os"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/faiface/beep"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// FormatSettings are the settings every format accepts.
type FormatSettings struct {
	ResampleQuality int `yaml:"resample_quality" mapstructure:"resample_quality" default:"4" validate:"gte=1,lte=6"`
}

// Format decodes one audio container.
type Format interface {
	// Name returns the format name (used in config).
	Name() string
	// Extensions returns the lower-case file extensions handled, with dot.
	Extensions() []string
	// ValidateConfig decodes and validates the format settings.
	ValidateConfig(settings map[string]any) error
	// Settings returns the validated settings.
	Settings() FormatSettings
	// Decode decodes f. The returned streamer owns f.
	Decode(f *os.File) (beep.StreamSeekCloser, beep.Format, error)
}

// registry holds registered format factories.
var registry = make(map[string]func() Format)

// Register registers a format factory.
func Register(name string, factory func() Format) {
	registry[name] = factory
}

// GetRegistered returns all registered format factories.
func GetRegistered() map[string]func() Format {
	return registry
}

// RegisteredNames returns the registered format names, sorted.
func RegisteredNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// baseFormat implements the settings handling shared by all formats.
type baseFormat struct {
	settings FormatSettings
}

func (b *baseFormat) ValidateConfig(settings map[string]any) error {
	var config FormatSettings

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &config,
		TagName: "mapstructure",
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}

	if err := decoder.Decode(settings); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}

	if err := defaults.Set(&config); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}

	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return errors.Wrap(err, "validation failed")
	}

	b.settings = config
	return nil
}

func (b *baseFormat) Settings() FormatSettings {
	return b.settings
}
