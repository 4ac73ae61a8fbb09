package playback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/barplayer/internal/app/progress"
)

const testTick = 10 * time.Millisecond

func newTestRenderer(state *SharedState, duration uint64, frames *[]progress.Frame) *renderer {
	return &renderer{
		state:     state,
		paint:     func(f progress.Frame) { *frames = append(*frames, f) },
		title:     "Song",
		duration:  duration,
		barWidth:  10,
		tick:      testTick,
		pausePoll: time.Millisecond,
	}
}

func TestRenderer_Step(t *testing.T) {
	clock := newFakeClock()
	state := newSharedState(clock.Now)
	var frames []progress.Frame
	r := newTestRenderer(state, 2, &frames)

	for want := uint64(1); want <= 3; want++ {
		wait, done := r.step()
		assert.False(t, done)
		assert.Equal(t, testTick, wait)
		assert.Equal(t, want, state.Elapsed())

		// Waking early renders nothing.
		clock.Advance(testTick / 2)
		wait, done = r.step()
		assert.False(t, done)
		assert.Equal(t, testTick/2, wait)
		assert.Equal(t, want, state.Elapsed())
		clock.Advance(testTick / 2)
	}

	// Elapsed is now past the duration.
	_, done := r.step()
	assert.True(t, done)
	assert.Equal(t, uint64(3), state.Elapsed())

	require.Len(t, frames, 3)
	assert.Equal(t, "[----------] 00:00|00:02", frames[0].Lines[2])
	assert.Equal(t, "[=====-----] 00:01|00:02", frames[1].Lines[2])
	assert.Equal(t, "[==========] 00:02|00:02", frames[2].Lines[2])
}

func TestRenderer_StepPaused(t *testing.T) {
	state := newSharedState(newFakeClock().Now)
	state.SetPhase(PhasePaused)
	var frames []progress.Frame
	r := newTestRenderer(state, 2, &frames)

	wait, done := r.step()
	assert.False(t, done)
	assert.Equal(t, time.Millisecond, wait)
	assert.Equal(t, uint64(0), state.Elapsed())
	assert.Empty(t, frames)
}

func TestRenderer_PauseResumeDoesNotAddTime(t *testing.T) {
	clock := newFakeClock()
	state := newSharedState(clock.Now)
	var frames []progress.Frame
	r := newTestRenderer(state, 60, &frames)

	_, _ = r.step()
	require.Equal(t, uint64(1), state.Elapsed())

	// Ten short play bursts separated by long pauses add up to one tick.
	for i := 0; i < 10; i++ {
		clock.Advance(testTick / 10)
		state.SetPhase(PhasePaused)
		_, _ = r.step()
		clock.Advance(15 * testTick)
		_, _ = r.step()
		state.SetPhase(PhasePlaying)
		_, _ = r.step()
	}

	assert.Equal(t, uint64(2), state.Elapsed())
	require.Len(t, frames, 2)
	assert.Contains(t, frames[1].Lines[2], "00:01|01:00")
}

func TestRenderer_PausedPastDurationKeepsWaiting(t *testing.T) {
	clock := newFakeClock()
	state := newSharedState(clock.Now)
	var frames []progress.Frame
	r := newTestRenderer(state, 1, &frames)

	for i := 0; i < 2; i++ {
		_, _ = r.step()
		clock.Advance(testTick)
	}
	require.Equal(t, uint64(2), state.Elapsed())
	state.SetPhase(PhasePaused)

	_, done := r.step()
	assert.False(t, done)
	clock.Advance(time.Hour)
	_, done = r.step()
	assert.False(t, done)

	state.SetPhase(PhasePlaying)
	_, done = r.step()
	assert.True(t, done)
}

func TestRenderer_RunCompletes(t *testing.T) {
	state := NewSharedState()
	var frames []progress.Frame
	r := newTestRenderer(state, 1, &frames)
	r.tick = time.Millisecond

	assert.True(t, r.run(context.Background()))
	assert.Len(t, frames, 2)
}

func TestRenderer_RunCancelled(t *testing.T) {
	state := NewSharedState()
	var frames []progress.Frame
	r := newTestRenderer(state, 60, &frames)
	r.tick = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan bool, 1)
	go func() {
		result <- r.run(ctx)
	}()

	require.Eventually(t, func() bool {
		return state.Elapsed() == 1
	}, time.Second, time.Millisecond)
	cancel()

	select {
	case completed := <-result:
		assert.False(t, completed)
	case <-time.After(time.Second):
		require.FailNow(t, "renderer ignored cancellation")
	}
}
