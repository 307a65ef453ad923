package model

import "gorm.io/datatypes"

// Program degree curriculum (programs)
type Program struct {
	ID                uint                        `gorm:"primaryKey"                           json:"id"`
	Code              string                      `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Name              string                      `gorm:"type:varchar(255);not null"            json:"name"`
	Jornada           string                      `gorm:"type:varchar(64)"                      json:"jornada"` // schedule type, e.g. Diurno
	Campuses          datatypes.JSONSlice[string] `gorm:"not null"                              json:"sedes"`
	Degree            string                      `gorm:"type:varchar(128)"                     json:"degree"`
	LastUpdated       *datatypes.Date             `json:"last_updated,omitempty"`
	TotalCredits      int                         `gorm:"not null"                              json:"total_credits"`
	NumberOfSemesters int                         `gorm:"not null"                              json:"number_of_semesters"`

	// associations
	Blocks  []CourseBlock `gorm:"foreignKey:ProgramID" json:"blocks,omitempty"`
	Courses []Course      `gorm:"foreignKey:ProgramID" json:"courses,omitempty"`
}

func (Program) TableName() string { return "programs" }

// CourseBlock semester grouping of a program's courses (course_blocks)
type CourseBlock struct {
	ID          uint `gorm:"primaryKey"     json:"id"`
	ProgramID   uint `gorm:"not null;index" json:"program_id"`
	BlockNumber int  `gorm:"not null"       json:"block_number"`

	// associations
	Courses []Course `gorm:"foreignKey:BlockID" json:"courses,omitempty"`
}

func (CourseBlock) TableName() string { return "course_blocks" }
