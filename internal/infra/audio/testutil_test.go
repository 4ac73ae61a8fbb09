package audio

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/require"
)

// writeWAV writes a silent stereo WAV file of the given length.
func writeWAV(t *testing.T, dir, name string, rate beep.SampleRate, length time.Duration) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(rate.N(length)), format))
	return path
}

// fakeOutput stands in for the speaker.
type fakeOutput struct {
	sync.Mutex
	rate       beep.SampleRate
	bufferSize int
	streamers  []beep.Streamer
	initErr    error
}

func (o *fakeOutput) Init(rate beep.SampleRate, bufferSize int) error {
	o.rate = rate
	o.bufferSize = bufferSize
	return o.initErr
}

func (o *fakeOutput) Play(s ...beep.Streamer) {
	o.streamers = append(o.streamers, s...)
}

// pull streams n samples from the output the way the speaker does.
func (o *fakeOutput) pull(n int) [][2]float64 {
	o.Lock()
	defer o.Unlock()

	buf := make([][2]float64, n)
	for _, s := range o.streamers {
		s.Stream(buf)
	}
	return buf
}
