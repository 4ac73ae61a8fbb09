package playback

import (
	"context"
	"time"

	"github.com/osa030/barplayer/internal/app/progress"
)

// renderer repaints the progress bar of one track until the track's
// elapsed time passes its duration or its context is cancelled.
type renderer struct {
	state     *SharedState
	paint     func(progress.Frame)
	title     string
	duration  uint64 // whole seconds
	barWidth  int
	tick      time.Duration
	pausePoll time.Duration
}

// run loops until the track completes (true) or ctx is done (false).
// A paused track past its duration keeps waiting: completion is only
// detected while playing.
func (r *renderer) run(ctx context.Context) bool {
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		wait, done := r.step()
		if done {
			return true
		}

		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
}

// step performs one tick under the shared state lock and returns how long
// to wait before the next one. Second k is rendered once k ticks of playing
// time have passed, so time spent paused is never counted.
func (r *renderer) step() (wait time.Duration, done bool) {
	r.state.Tick(func(phase Phase, elapsed uint64, played time.Duration) bool {
		if phase == PhasePaused {
			wait = r.pausePoll
			return false
		}
		due := time.Duration(elapsed) * r.tick
		if played < due {
			wait = due - played
			return false
		}
		if elapsed > r.duration {
			done = true
			return false
		}
		r.paint(progress.NewFrame(r.title, elapsed, r.duration, r.barWidth))
		wait = due + r.tick - played
		return true
	})
	return wait, done
}
