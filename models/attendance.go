package models

import "time"

// AttendanceMark is the present/absent record for one student on one calendar
// day. At most one row exists per (student, date); the section-consistency
// rule on top of that index lives in the attendance handler.
type AttendanceMark struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID uint   `json:"studentId" gorm:"not null;uniqueIndex:idx_attendance_student_date"`
	SectionID string `json:"sectionId" gorm:"size:40;not null;index"`
	Date      string `json:"date" gorm:"size:10;not null;uniqueIndex:idx_attendance_student_date"` // YYYY-MM-DD
	IsPresent bool   `json:"isPresent" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
