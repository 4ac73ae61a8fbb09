package progress

import (
	"math"
	"strings"
)

const (
	// DefaultBarWidth is the number of cells in the bar.
	DefaultBarWidth = 50

	filledCell = "="
	emptyCell  = "-"
)

// Filled returns round(width*elapsed/duration), clamped to [0, width].
// A zero duration counts as complete.
func Filled(elapsed, duration uint64, width int) int {
	if width <= 0 {
		return 0
	}
	if duration == 0 {
		return width
	}
	n := int(math.Round(float64(width) * float64(elapsed) / float64(duration)))
	if n > width {
		return width
	}
	return n
}

// Bar returns the bar cells without brackets.
func Bar(elapsed, duration uint64, width int) string {
	filled := Filled(elapsed, duration, width)
	if width < 0 {
		width = 0
	}
	return strings.Repeat(filledCell, filled) + strings.Repeat(emptyCell, width-filled)
}
