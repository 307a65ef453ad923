package dto

// ── programs ──

// ProgramResponse program summary
type ProgramResponse struct {
	ID                uint     `json:"id"`
	Code              string   `json:"code"`
	Name              string   `json:"name"`
	Jornada           string   `json:"jornada"`
	Sedes             []string `json:"sedes"`
	Degree            string   `json:"degree"`
	LastUpdated       *string  `json:"lastUpdated"` // YYYY-MM-DD
	TotalCredits      int      `json:"totalCredits"`
	NumberOfSemesters int      `json:"numberOfSemesters"`
}

// ProgramDetailResponse program with its full block/course tree
type ProgramDetailResponse struct {
	ProgramResponse
	Blocks []BlockResponse `json:"blocks"`
}

// BlockResponse one semester block
type BlockResponse struct {
	ID          uint             `json:"id"`
	BlockNumber int              `json:"blockNumber"`
	Courses     []CourseResponse `json:"courses"`
}

// CourseResponse course as listed in a program
type CourseResponse struct {
	ID            uint    `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Credits       int     `json:"credits"`
	Hours         int     `json:"hours"`
	Requirements  *string `json:"requirements"`
	Corequisites  *string `json:"corequisites"`
	DefaultStatus string  `json:"defaultStatus"`
}

// SectionResponse term offering of a course
type SectionResponse struct {
	ID         uint              `json:"id"`
	CourseCode string            `json:"courseCode"`
	CourseName string            `json:"courseName"`
	Term       string            `json:"term"`
	Section    string            `json:"section"`
	Professor  *string           `json:"professor"`
	Location   *string           `json:"location"`
	Meetings   []MeetingResponse `json:"meetings"`
}

// SectionQuery optional ?term= filter, defaults to the current term
type SectionQuery struct {
	Term string `form:"term" binding:"omitempty,max=32"`
}
