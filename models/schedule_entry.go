package models

import "time"

// ScheduleEntry is one slot of the administrative timetable.
type ScheduleEntry struct {
	ID          string    `json:"id" gorm:"primaryKey;size:60"`
	Day         string    `json:"day" gorm:"size:12;not null"`
	StartTime   string    `json:"startTime" gorm:"size:5;not null"` // HH:MM
	Duration    int       `json:"duration" gorm:"not null"`         // periods
	SectionID   string    `json:"sectionId" gorm:"size:40;not null;index"`
	Subject     string    `json:"subject" gorm:"size:80"`
	Teacher     string    `json:"teacher" gorm:"size:80"`
	Classroom   string    `json:"classroom" gorm:"size:40"`
	SessionType string    `json:"sessionType" gorm:"size:20"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
