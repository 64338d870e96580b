package models

import "time"

type Student struct {
	ID                 uint   `json:"id" gorm:"primaryKey"`
	FirstName          string `json:"firstName" gorm:"size:80;not null"`
	LastName           string `json:"lastName" gorm:"size:80;not null"`
	// Unique when set; enforced in the handler so that students without a
	// pathway number yet do not collide on the empty string.
	PathwayNumber      string `json:"pathwayNumber" gorm:"size:40;index"`
	RegistrationNumber string `json:"registrationNumber" gorm:"size:40"`
	ClassOrder         int    `json:"classOrder"`
	Gender             string `json:"gender" gorm:"size:10"`
	BirthDate          string `json:"birthDate" gorm:"size:10"` // YYYY-MM-DD or empty

	// The student's single assigned section. Attendance writes are validated
	// against this value.
	SectionID string `json:"sectionId" gorm:"size:40;index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
