package audio

import (
	"github.com/faiface/beep"
	zlog "github.com/rs/zerolog/log"
)

type queueEntry struct {
	streamer beep.Streamer
	source   *Source
}

// queue plays its entries back to back and streams silence when drained.
// Guarded by the output lock.
type queue struct {
	entries []queueEntry
}

func (q *queue) add(src *Source, rate beep.SampleRate) {
	q.entries = append(q.entries, queueEntry{
		streamer: src.streamAt(rate),
		source:   src,
	})
}

func (q *queue) len() int {
	return len(q.entries)
}

func (q *queue) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		if len(q.entries) == 0 {
			for i := range samples[filled:] {
				samples[filled+i] = [2]float64{}
			}
			break
		}

		head := q.entries[0]
		n, ok := head.streamer.Stream(samples[filled:])
		if !ok || n == 0 {
			q.pop()
		}
		filled += n
	}
	return len(samples), true
}

func (q *queue) Err() error {
	return nil
}

func (q *queue) pop() {
	head := q.entries[0]
	q.entries = q.entries[1:]
	if err := head.streamer.Err(); err != nil {
		zlog.Warn().Msgf("audio: stream error: path=%s error=%v", head.source.Path(), err)
	}
	if err := head.source.Close(); err != nil {
		zlog.Warn().Msgf("audio: failed to close source: path=%s error=%v", head.source.Path(), err)
	}
}

func (q *queue) clear() {
	for len(q.entries) > 0 {
		q.pop()
	}
}
