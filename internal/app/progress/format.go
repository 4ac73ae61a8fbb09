// Package progress renders the track progress bar into a fixed terminal region.
package progress

import "fmt"

// FormatTime converts seconds to MM:SS. Minutes are not capped at 59.
func FormatTime(seconds uint64) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
