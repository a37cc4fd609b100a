package schedule

import "sort"

// AddBlockedDate appends a YYYY-MM-DD date to the set. Idempotent: adding a
// date already present returns the slice unchanged.
func AddBlockedDate(dates []string, date string) []string {
	if IsBlocked(dates, date) {
		return dates
	}
	return append(dates, date)
}

// RemoveBlockedDate removes an exact match; absent dates are a no-op.
func RemoveBlockedDate(dates []string, date string) []string {
	for i, d := range dates {
		if d == date {
			return append(dates[:i:i], dates[i+1:]...)
		}
	}
	return dates
}

// IsBlocked reports whether date is in the set. The date picker uses this to
// mark blocked days non-selectable; the idempotent add is the real guarantee.
func IsBlocked(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

// SortedBlockedDates returns a copy sorted ascending. Lexicographic order on
// YYYY-MM-DD strings is chronological order.
func SortedBlockedDates(dates []string) []string {
	out := make([]string, len(dates))
	copy(out, dates)
	sort.Strings(out)
	return out
}
