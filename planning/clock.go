package planning

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts an "HH:MM" or "HH:MM:SS" string into minutes
// since midnight. It returns -1 for anything malformed (wrong segment
// count, non-numeric fields, hour outside 0-23, minute outside 0-59).
// The sentinel lets callers feed the result straight into numeric
// comparisons: unknown times simply sort last and add nothing.
func ParseClock(s string) int {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return -1
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return -1
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return -1
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return -1
	}
	// seconds, if present, are ignored
	return hours*60 + minutes
}

// FormatDuration renders a minute total as "4h00". Non-positive
// totals render as "0h00".
func FormatDuration(totalMinutes int) string {
	if totalMinutes <= 0 {
		return "0h00"
	}
	return fmt.Sprintf("%dh%02d", totalMinutes/60, totalMinutes%60)
}
