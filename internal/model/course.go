package model

// Course curriculum course (courses)
type Course struct {
	ID            uint    `gorm:"primaryKey"                            json:"id"`
	ProgramID     uint    `gorm:"not null;index"                        json:"program_id"`
	BlockID       uint    `gorm:"not null;index"                        json:"block_id"`
	Code          string  `gorm:"type:varchar(16);uniqueIndex;not null" json:"code"`
	Name          string  `gorm:"type:varchar(255);not null"            json:"name"`
	Credits       int     `gorm:"not null"                              json:"credits"`
	Hours         int     `gorm:"not null"                              json:"hours"`
	Requirements  *string `gorm:"type:text"                             json:"requirements"`
	Corequisites  *string `gorm:"type:text"                             json:"corequisites"`
	DefaultStatus string  `gorm:"type:varchar(16);not null"             json:"default_status"` // applied when a user joins the program

	// associations
	Block    *CourseBlock    `gorm:"foreignKey:BlockID" json:"block,omitempty"`
	Sections []CourseSection `gorm:"foreignKey:CourseID" json:"sections,omitempty"`
}

func (Course) TableName() string { return "courses" }
