package model

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// BaseModel audit timestamps shared by mutable tables
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── course status enum ──

const (
	StatusNotCoursed = "not-coursed"
	StatusInProgress = "in-progress"
	StatusApproved   = "approved"
	StatusFailed     = "failed"
)

// IsValidStatus reports whether s is one of the four course statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusNotCoursed, StatusInProgress, StatusApproved, StatusFailed:
		return true
	}
	return false
}

// NormalizeStatus maps an empty default status onto not-coursed.
func NormalizeStatus(s string) string {
	if s == "" {
		return StatusNotCoursed
	}
	return s
}

// FormatClock renders a time-of-day as zero-padded 24-hour HH:MM.
func FormatClock(t datatypes.Time) string {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int((d%time.Hour)/time.Minute))
}

// FormatDate renders a date column as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}

// All lists every model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Program{},
		&CourseBlock{},
		&Course{},
		&User{},
		&UserCourseStatus{},
		&CourseSection{},
		&CourseMeeting{},
		&UserScheduleEntry{},
		&AcademicEvent{},
	}
}
