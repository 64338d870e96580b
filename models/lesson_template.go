package models

import (
	"time"

	"gorm.io/datatypes"
)

// LessonTemplate is a reusable curriculum unit. Stages and ScheduledSections
// are stored as JSON documents the way the frontend submits them.
type LessonTemplate struct {
	ID                string         `json:"id" gorm:"primaryKey;size:60"`
	Title             string         `json:"title" gorm:"size:160;not null"`
	Description       string         `json:"description" gorm:"type:text"`
	EstimatedSessions int            `json:"estimatedSessions" gorm:"default:1"`
	Stages            datatypes.JSON `json:"stages"`
	CourseName        string         `json:"courseName" gorm:"size:80"`
	Level             string         `json:"level" gorm:"size:40"`
	WeekNumber        *int           `json:"weekNumber"`
	ScheduledSections datatypes.JSON `json:"scheduledSections"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}
