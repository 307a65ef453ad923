package model

import "time"

// User student account (users)
type User struct {
	ID           uint   `gorm:"primaryKey"                             json:"id"`
	Name         string `gorm:"type:varchar(120);not null"             json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"             json:"-"`
	Carne        string `gorm:"type:varchar(32);uniqueIndex;not null"  json:"carne"`
	ProgramID    uint   `gorm:"not null;index"                         json:"program_id"`
	BaseModel

	// associations
	Program *Program `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
}

func (User) TableName() string { return "users" }

// UserCourseStatus per-user course state (user_course_statuses)
type UserCourseStatus struct {
	ID        uint      `gorm:"primaryKey"                              json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_user_course"     json:"user_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:uq_user_course"     json:"course_id"`
	Status    string    `gorm:"type:varchar(16);not null"               json:"status"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"      json:"updated_at"`

	// associations
	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (UserCourseStatus) TableName() string { return "user_course_statuses" }
