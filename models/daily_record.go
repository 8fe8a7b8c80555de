package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Meal / nap document shapes for DailyRecord JSON columns.
type Meal struct {
	Time        string `json:"time"` // HH:MM
	Description string `json:"description"`
	Eaten       string `json:"eaten"` // well | average | poorly
}

type Meals struct {
	Breakfast *Meal `json:"breakfast,omitempty"`
	Lunch     *Meal `json:"lunch,omitempty"`
	Snack     *Meal `json:"snack,omitempty"`
}

type Nap struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Quality   string `json:"quality"` // good | average | poor
}

// DailyRecord is the day diary for a child: meals, naps, activities,
// mood, shared photos.
type DailyRecord struct {
	ID         string         `json:"id" gorm:"type:uuid;primaryKey"`
	ChildID    string         `json:"child_id" gorm:"type:uuid;index;not null"`
	Date       string         `json:"date" gorm:"size:10;index;not null"` // YYYY-MM-DD
	Meals      datatypes.JSON `json:"meals" gorm:"type:jsonb"`
	Naps       datatypes.JSON `json:"naps" gorm:"type:jsonb"`
	Activities pq.StringArray `json:"activities" gorm:"type:text[]"`
	Mood       string         `json:"mood" gorm:"size:10"` // happy | calm | sad | upset | tired
	Notes      string         `json:"notes" gorm:"type:text"`
	Photos     pq.StringArray `json:"photos" gorm:"type:text[]"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidMood(s string) bool {
	switch s {
	case "happy", "calm", "sad", "upset", "tired":
		return true
	}
	return false
}
