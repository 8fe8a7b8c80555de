package models

import "time"

// Attendance statuses. One child may have several records on the same
// date (arrival, departure, corrections); the chronologically last one
// is authoritative.
const (
	AttendancePresent  = "present"
	AttendanceAbsent   = "absent"
	AttendanceSick     = "sick"
	AttendanceVacation = "vacation"
	AttendanceHoliday  = "holiday"
	AttendanceDeparted = "departed"
)

// Attendance is one arrival/departure/absence record for a child on a
// given date. Arrival and departure are nullable: the legacy store
// encoded "not set" as "00:00:00", which read-side logic still
// tolerates, but new rows never write that sentinel.
type Attendance struct {
	ID            string  `json:"id" gorm:"type:uuid;primaryKey"`
	ChildID       string  `json:"child_id" gorm:"type:uuid;index;not null"`
	Date          string  `json:"date" gorm:"size:10;index;not null"` // YYYY-MM-DD
	ArrivalTime   *string `json:"arrival_time" gorm:"size:8"`         // HH:MM:SS
	DepartureTime *string `json:"departure_time" gorm:"size:8"`       // HH:MM:SS
	Status        string  `json:"status" gorm:"size:20;not null"`
	Notes         string  `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidAttendanceStatus(s string) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceSick,
		AttendanceVacation, AttendanceHoliday, AttendanceDeparted:
		return true
	}
	return false
}
