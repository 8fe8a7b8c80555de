package planning

import (
	"sort"

	"github.com/lmarchou/BENounou/models"
)

// PresenceDetail is one child currently present: which record made
// them present and when they arrived.
type PresenceDetail struct {
	ChildID      string `json:"child_id"`
	AttendanceID string `json:"attendance_id"`
	ArrivalTime  string `json:"arrival_time,omitempty"`
}

// DaySummary classifies a day's roster from its attendance records.
// Present + departed + absent need not sum to Expected: a child with
// no record that day is in none of the three buckets.
type DaySummary struct {
	Present       []PresenceDetail `json:"present"`
	PresentCount  int              `json:"present_count"`
	DepartedCount int              `json:"departed_count"`
	AbsentCount   int              `json:"absent_count"`
	Expected      int              `json:"expected"`
}

func arrivalMinutes(rec models.Attendance) int {
	if rec.ArrivalTime == nil {
		return -1
	}
	return ParseClock(*rec.ArrivalTime)
}

// NotDeparted reports whether a departure value means "still here".
// nil and "" are the explicit encodings; "00:00:00" is the legacy
// store's unset sentinel and is still honored on read.
func NotDeparted(departure *string) bool {
	return departure == nil || *departure == "" || *departure == "00:00:00"
}

// SortDayRecords orders one day's records chronologically by parsed
// arrival time. Records with an unparseable or missing arrival sort
// last; ties break on record id, so the order is fully deterministic.
func SortDayRecords(recs []models.Attendance) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := arrivalMinutes(recs[i]), arrivalMinutes(recs[j])
		if a == -1 && b == -1 {
			return recs[i].ID < recs[j].ID
		}
		if a == -1 {
			return false
		}
		if b == -1 {
			return true
		}
		if a != b {
			return a < b
		}
		return recs[i].ID < recs[j].ID
	})
}

// DayRecords returns the records for one date, in canonical order.
func DayRecords(recs []models.Attendance, date string) []models.Attendance {
	day := make([]models.Attendance, 0, len(recs))
	for _, r := range recs {
		if r.Date == date {
			day = append(day, r)
		}
	}
	SortDayRecords(day)
	return day
}

// Summarize derives the present / departed / absent classification for
// a date from all attendance records and the child roster.
//
// Present: fold the day's records in chronological order into a map
// keyed by child — a "present" record with no real departure inserts
// the child, any other record removes them. Departed: the child's last
// record of the day has status "departed". Absent: flat count of
// "absent" records.
func Summarize(recs []models.Attendance, date string, roster []models.Child) DaySummary {
	byID := make(map[string]models.Child, len(roster))
	for _, c := range roster {
		byID[c.ID] = c
	}

	day := DayRecords(recs, date)

	// Insertion-ordered present map: re-inserting an existing child
	// keeps their original position, matching the original behavior.
	presentOrder := make([]string, 0, len(day))
	present := make(map[string]PresenceDetail, len(day))
	insert := func(childID string, d PresenceDetail) {
		if _, ok := present[childID]; !ok {
			presentOrder = append(presentOrder, childID)
		}
		present[childID] = d
	}
	remove := func(childID string) {
		if _, ok := present[childID]; !ok {
			return
		}
		delete(present, childID)
		for i, id := range presentOrder {
			if id == childID {
				presentOrder = append(presentOrder[:i], presentOrder[i+1:]...)
				break
			}
		}
	}

	for _, rec := range day {
		if rec.Status == models.AttendancePresent {
			if _, known := byID[rec.ChildID]; !known {
				continue
			}
			if NotDeparted(rec.DepartureTime) {
				d := PresenceDetail{ChildID: rec.ChildID, AttendanceID: rec.ID}
				if rec.ArrivalTime != nil {
					d.ArrivalTime = *rec.ArrivalTime
				}
				insert(rec.ChildID, d)
			} else {
				remove(rec.ChildID)
			}
		} else {
			remove(rec.ChildID)
		}
	}

	// Departed: per child, the day's last record decides.
	departed := 0
	for _, c := range roster {
		var last *models.Attendance
		for i := range day {
			if day[i].ChildID == c.ID {
				last = &day[i]
			}
		}
		if last != nil && last.Status == models.AttendanceDeparted {
			departed++
		}
	}

	absent := 0
	for _, rec := range day {
		if rec.Status == models.AttendanceAbsent {
			absent++
		}
	}

	out := DaySummary{
		Present:       make([]PresenceDetail, 0, len(presentOrder)),
		DepartedCount: departed,
		AbsentCount:   absent,
		Expected:      len(roster),
	}
	for _, id := range presentOrder {
		out.Present = append(out.Present, present[id])
	}
	out.PresentCount = len(out.Present)
	return out
}

// LastRecordFor returns the authoritative (last by canonical order)
// record for one child on one date, or nil if the child has none.
func LastRecordFor(recs []models.Attendance, date, childID string) *models.Attendance {
	day := DayRecords(recs, date)
	var last *models.Attendance
	for i := range day {
		if day[i].ChildID == childID {
			last = &day[i]
		}
	}
	return last
}
