package model

import "gorm.io/datatypes"

// CourseSection term offering of a course (course_sections)
type CourseSection struct {
	ID          uint    `gorm:"primaryKey"                json:"id"`
	CourseID    uint    `gorm:"not null;index"            json:"course_id"`
	Term        string  `gorm:"type:varchar(32);not null;index" json:"term"` // e.g. II-2024
	SectionCode string  `gorm:"type:varchar(16);not null" json:"section_code"`
	Professor   *string `gorm:"type:varchar(255)"         json:"professor"`
	Location    *string `gorm:"type:varchar(64)"          json:"location"`

	// associations
	Course   *Course         `gorm:"foreignKey:CourseID"  json:"course,omitempty"`
	Meetings []CourseMeeting `gorm:"foreignKey:SectionID" json:"meetings,omitempty"`
}

func (CourseSection) TableName() string { return "course_sections" }

// CourseMeeting weekly slot of a section (course_meetings)
type CourseMeeting struct {
	ID        uint           `gorm:"primaryKey"                json:"id"`
	SectionID uint           `gorm:"not null;index"            json:"section_id"`
	DayOfWeek string         `gorm:"type:varchar(16);not null" json:"day_of_week"`
	StartTime datatypes.Time `gorm:"not null"                  json:"start_time"`
	EndTime   datatypes.Time `gorm:"not null"                  json:"end_time"`
}

func (CourseMeeting) TableName() string { return "course_meetings" }

// UserScheduleEntry section a user is enrolled in (user_schedule_entries)
type UserScheduleEntry struct {
	ID            uint   `gorm:"primaryKey"                json:"id"`
	UserID        uint   `gorm:"not null;index"            json:"user_id"`
	SectionID     uint   `gorm:"not null;index"            json:"section_id"`
	Term          string `gorm:"type:varchar(32);not null" json:"term"`
	IsCurrentTerm bool   `gorm:"not null"                  json:"is_current_term"`

	// associations
	Section *CourseSection `gorm:"foreignKey:SectionID" json:"section,omitempty"`
}

func (UserScheduleEntry) TableName() string { return "user_schedule_entries" }
