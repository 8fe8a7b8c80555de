package planning

import (
	"fmt"
	"time"

	"github.com/lmarchou/BENounou/models"
)

// Report window modes.
const (
	WindowDay   = "day"
	WindowWeek  = "week"
	WindowMonth = "month"
)

// ReportWindow computes the inclusive [start, end] date range for a
// reporting mode anchored on a date. Weeks run Monday to Sunday;
// months cover the first through last calendar day. All arithmetic is
// UTC so the boundaries never drift with the server timezone.
func ReportWindow(mode, date string) (string, string, error) {
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return "", "", fmt.Errorf("invalid date %q: %w", date, err)
	}

	var start, end time.Time
	switch mode {
	case WindowDay:
		start, end = t, t
	case WindowWeek:
		start = t.AddDate(0, 0, -mondayIndex(t.Weekday()))
		end = start.AddDate(0, 0, 6)
	case WindowMonth:
		start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	default:
		return "", "", fmt.Errorf("invalid report mode %q", mode)
	}
	return start.Format("2006-01-02"), end.Format("2006-01-02"), nil
}

// RecordMinutes is the billable span of a single record: departure
// minus arrival when both parse and the span is positive, else 0.
// Missing or malformed times are not an error; they contribute
// nothing.
func RecordMinutes(rec models.Attendance) int {
	if rec.ArrivalTime == nil || *rec.ArrivalTime == "" ||
		rec.DepartureTime == nil || *rec.DepartureTime == "" {
		return 0
	}
	arrival := ParseClock(*rec.ArrivalTime)
	departure := ParseClock(*rec.DepartureTime)
	if arrival == -1 || departure == -1 || departure <= arrival {
		return 0
	}
	return departure - arrival
}

// TotalMinutes sums RecordMinutes over a filtered record set.
func TotalMinutes(recs []models.Attendance) int {
	total := 0
	for _, rec := range recs {
		total += RecordMinutes(rec)
	}
	return total
}
