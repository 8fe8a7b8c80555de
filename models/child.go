package models

import (
	"time"

	"gorm.io/datatypes"
)

type Child struct {
	ID        string `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName string `json:"first_name" gorm:"size:50;not null"`
	LastName  string `json:"last_name" gorm:"size:50;not null"`
	BirthDate string `json:"birth_date" gorm:"size:10;not null"` // YYYY-MM-DD
	Gender    string `json:"gender" gorm:"size:10;not null"`     // male | female
	Photo     string `json:"photo" gorm:"type:text"`             // public URL

	// Nested records are stored as embedded JSON, the way the original
	// store kept them.
	ParentInfo        datatypes.JSON `json:"parent_info" gorm:"type:jsonb"`
	MedicalInfo       datatypes.JSON `json:"medical_info" gorm:"type:jsonb"`
	AuthorizedPickups datatypes.JSON `json:"authorized_pickups" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParentInfo / MedicalInfo document shapes. Kept as plain structs so
// callers that need typed access can unmarshal the JSON columns into
// them; the handlers mostly pass the documents through opaquely.
type GuardianContact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

type ParentInfo struct {
	Parent1 GuardianContact  `json:"parent1"`
	Parent2 *GuardianContact `json:"parent2,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

type MedicalInfo struct {
	Allergies         []string           `json:"allergies"`
	Medications       []string           `json:"medications"`
	EmergencyContacts []EmergencyContact `json:"emergency_contacts"`
	DoctorName        string             `json:"doctor_name"`
	DoctorPhone       string             `json:"doctor_phone"`
	Notes             string             `json:"notes"`
}

type PickupContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}
