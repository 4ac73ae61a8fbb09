package audio

import (
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// WAVFormat decodes RIFF WAVE files.
type WAVFormat struct{ baseFormat }

func (f *WAVFormat) Name() string         { return "wav" }
func (f *WAVFormat) Extensions() []string { return []string{".wav", ".wave"} }
func (f *WAVFormat) Decode(file *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	return wav.Decode(file)
}

// MP3Format decodes MPEG-1 layer III files.
type MP3Format struct{ baseFormat }

func (f *MP3Format) Name() string         { return "mp3" }
func (f *MP3Format) Extensions() []string { return []string{".mp3"} }
func (f *MP3Format) Decode(file *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	return mp3.Decode(file)
}

// FLACFormat decodes FLAC files.
type FLACFormat struct{ baseFormat }

func (f *FLACFormat) Name() string         { return "flac" }
func (f *FLACFormat) Extensions() []string { return []string{".flac"} }
func (f *FLACFormat) Decode(file *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	return flac.Decode(file)
}

// VorbisFormat decodes Ogg Vorbis files.
type VorbisFormat struct{ baseFormat }

func (f *VorbisFormat) Name() string         { return "ogg" }
func (f *VorbisFormat) Extensions() []string { return []string{".ogg", ".oga"} }
func (f *VorbisFormat) Decode(file *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	return vorbis.Decode(file)
}

func init() {
	Register("wav", func() Format { return &WAVFormat{} })
	Register("mp3", func() Format { return &MP3Format{} })
	Register("flac", func() Format { return &FLACFormat{} })
	Register("ogg", func() Format { return &VorbisFormat{} })
}
