package models

import "time"

// Message is one entry on the communication board, optionally tied to
// a child and carrying a shared photo.
type Message struct {
	ID       string `json:"id" gorm:"type:uuid;primaryKey"`
	ChildID  string `json:"child_id" gorm:"size:36;index"` // optional, empty = general note
	Author   string `json:"author" gorm:"size:120;not null"`
	Body     string `json:"body" gorm:"type:text;not null"`
	PhotoURL string `json:"photo_url" gorm:"type:text"`
	Read     bool   `json:"read" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
