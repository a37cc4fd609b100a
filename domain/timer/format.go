package timer

import "fmt"

// FormatSeconds renders a second count for display: "H:MM:SS" when at least
// one full hour, otherwise "M:SS". Hours and the leading minute are not
// zero-padded.
func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
