package models

import "time"

// Section is a named grouping of students (a class/cohort). IDs are
// human-entered strings like "TCS-1"; a uuid is generated when omitted.
type Section struct {
	ID        string    `json:"id" gorm:"primaryKey;size:40"`
	Name      string    `json:"name" gorm:"size:80;uniqueIndex;not null"`
	Level     string    `json:"level" gorm:"size:40"`
	Specialty string    `json:"specialty" gorm:"size:80"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
