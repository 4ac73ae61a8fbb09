package progress

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// FrameHeight is the number of terminal rows a frame occupies.
const FrameHeight = 3

// Canvas is the terminal surface frames are painted on.
// Rows and columns are zero-based.
type Canvas interface {
	SaveCursor()
	MoveCursor(row, col int)
	ClearLine()
	ClearRegion(top, height int)
	RestoreCursor()
	Print(s string)
	Flush() error
}

// Frame is a virtual copy of the bar region.
type Frame struct {
	Lines [FrameHeight]string
}

// NewFrame builds the frame for a track at the given position.
func NewFrame(title string, elapsed, duration uint64, width int) Frame {
	return Frame{Lines: [FrameHeight]string{
		"Now playing " + title,
		"",
		fmt.Sprintf("[%s] %s|%s", Bar(elapsed, duration, width), FormatTime(elapsed), FormatTime(duration)),
	}}
}

// Painter flushes frames to a canvas, writing only the lines that changed
// since the previous paint.
type Painter struct {
	canvas Canvas
	top    int
	prev   *Frame
}

// NewPainter creates a painter for the region starting at row top.
func NewPainter(canvas Canvas, top int) *Painter {
	return &Painter{canvas: canvas, top: top}
}

// Paint writes f. Unchanged lines are skipped.
func (p *Painter) Paint(f Frame) error {
	changed := false
	for i, line := range f.Lines {
		if p.prev != nil && p.prev.Lines[i] == line {
			continue
		}
		if !changed {
			p.canvas.SaveCursor()
			changed = true
		}
		p.canvas.MoveCursor(p.top+i, 0)
		p.canvas.ClearLine()
		p.canvas.Print(line)
	}
	if !changed {
		return nil
	}
	p.canvas.RestoreCursor()

	frame := f
	p.prev = &frame
	if err := p.canvas.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush frame")
	}
	return nil
}

// Clear erases the region and forgets the last frame so the next paint
// redraws every line. The cursor is left on the first row below the region.
func (p *Painter) Clear() error {
	p.canvas.ClearRegion(p.top, FrameHeight)
	p.canvas.MoveCursor(p.top+FrameHeight, 0)
	p.prev = nil
	if err := p.canvas.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush clear")
	}
	return nil
}
