package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	ContractActive   = "active"
	ContractInactive = "inactive"
	ContractPending  = "pending"
)

// Contract types.
const (
	ContractCDI = "CDI"
	ContractCDD = "CDD"
)

// Planned-day statuses on a contract's monthly schedule.
const (
	PlannedDayPlanned = "planned"
	PlannedDayAbsent  = "absent_planned"
	PlannedDayHoliday = "holiday_planned"
)

// RegularScheduleEntry is one weekly recurring slot. DayOfWeek follows
// the 0=Sunday .. 6=Saturday convention of the original data.
type RegularScheduleEntry struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

// PlannedDay is a single date-keyed override on a contract's monthly
// schedule. Start/end are empty for planned absences and holidays.
type PlannedDay struct {
	Date      string `json:"date"` // YYYY-MM-DD
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Status    string `json:"status"` // planned | absent_planned | holiday_planned
	Notes     string `json:"notes,omitempty"`
}

type Contract struct {
	ID        string `json:"id" gorm:"type:uuid;primaryKey"`
	ChildID   string `json:"child_id" gorm:"type:uuid;index;not null"`
	StartDate string `json:"start_date" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate   string `json:"end_date" gorm:"size:10"`            // empty = open-ended
	Type      string `json:"type" gorm:"size:10;not null"`       // CDI | CDD

	HoursPerWeek         float64 `json:"hours_per_week"`
	HourlyRate           float64 `json:"hourly_rate"`
	MaintenanceAllowance float64 `json:"maintenance_allowance"`
	MealsProvided        bool    `json:"meals_provided"`
	MealAllowance        float64 `json:"meal_allowance"`

	DocumentsURL pq.StringArray `json:"documents_url" gorm:"type:text[]"`
	Status       string         `json:"status" gorm:"size:20;not null"`
	Notes        string         `json:"notes" gorm:"type:text"`

	// regular_schedule: []RegularScheduleEntry, monthly_schedule:
	// []PlannedDay — embedded JSON, parsed back on read.
	RegularSchedule datatypes.JSON `json:"regular_schedule" gorm:"type:jsonb"`
	MonthlySchedule datatypes.JSON `json:"monthly_schedule" gorm:"type:jsonb"`

	// Distinct weekdays of the regular schedule, recomputed on every
	// write (the original store carried this derived column).
	DaysPerWeek pq.Int64Array `json:"days_per_week" gorm:"type:integer[]"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidContractStatus(s string) bool {
	return s == ContractActive || s == ContractInactive || s == ContractPending
}

func ValidPlannedDayStatus(s string) bool {
	return s == PlannedDayPlanned || s == PlannedDayAbsent || s == PlannedDayHoliday
}
