package model

import "gorm.io/datatypes"

// AcademicEvent calendar milestone (academic_events)
// A nil ProgramID makes the event visible to every program.
type AcademicEvent struct {
	ID          uint           `gorm:"primaryKey"                 json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description *string        `gorm:"type:text"                  json:"description"`
	EventDate   datatypes.Date `gorm:"not null;index"             json:"event_date"`
	Severity    string         `gorm:"type:varchar(32);not null"  json:"severity"`
	ProgramID   *uint          `gorm:"index"                      json:"program_id"`

	// associations
	Program *Program `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
}

func (AcademicEvent) TableName() string { return "academic_events" }
