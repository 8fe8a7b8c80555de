package planning

import (
	"time"

	"github.com/lmarchou/BENounou/models"
)

// GridCell is one slot of a Monday-first month grid. Leading blank
// cells (the tail of the previous month's last week) have Day == 0 and
// an empty Date.
type GridCell struct {
	Day   int                `json:"day"`
	Date  string             `json:"date,omitempty"`
	Entry *models.PlannedDay `json:"entry,omitempty"`
}

// mondayIndex remaps Go/JS weekday numbering (0=Sunday) to a
// Monday-first index (Mon=0 .. Sun=6).
func mondayIndex(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// MonthGrid builds the calendar grid for a month: mondayIndex(first
// weekday) leading blanks, then one cell per day annotated with the
// schedule entry whose date matches exactly, if any.
func MonthGrid(year int, month time.Month, entries []models.PlannedDay) []GridCell {
	// First entry per date wins when a schedule carries duplicates.
	byDate := make(map[string]models.PlannedDay, len(entries))
	for _, e := range entries {
		if _, ok := byDate[e.Date]; !ok {
			byDate[e.Date] = e
		}
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	cells := make([]GridCell, 0, mondayIndex(first.Weekday())+daysInMonth)
	for i := 0; i < mondayIndex(first.Weekday()); i++ {
		cells = append(cells, GridCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		cell := GridCell{Day: day, Date: date}
		if e, ok := byDate[date]; ok {
			entry := e
			cell.Entry = &entry
		}
		cells = append(cells, cell)
	}
	return cells
}

// Default window for a toggled day with no matching weekly slot.
const (
	defaultStartTime = "09:00"
	defaultEndTime   = "17:00"
)

// TogglePlannedDay flips one date on a monthly schedule. A date with
// an existing entry is removed; a date without one gains a "planned"
// entry whose window comes from the weekly recurring slot for that
// weekday, falling back to 09:00-17:00. Editing an existing entry in
// place is not supported; remove and re-add.
func TogglePlannedDay(schedule []models.PlannedDay, date string, regular []models.RegularScheduleEntry) []models.PlannedDay {
	for i, e := range schedule {
		if e.Date == date {
			out := make([]models.PlannedDay, 0, len(schedule)-1)
			out = append(out, schedule[:i]...)
			return append(out, schedule[i+1:]...)
		}
	}

	start, end := defaultStartTime, defaultEndTime
	if t, err := time.ParseInLocation("2006-01-02", date, time.UTC); err == nil {
		for _, r := range regular {
			// 0=Sunday convention on both sides
			if r.DayOfWeek == int(t.Weekday()) {
				start, end = r.StartTime, r.EndTime
				break
			}
		}
	}
	return append(schedule, models.PlannedDay{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    models.PlannedDayPlanned,
	})
}
