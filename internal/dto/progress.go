package dto

// ── progress, curriculum, dashboard ──

// ProgressResponse credit progress summary
type ProgressResponse struct {
	Progress           int `json:"progress"` // percent, 0..100
	CompletedCredits   int `json:"completedCredits"`
	TotalCredits       int `json:"totalCredits"`
	CurrentSemester    int `json:"currentSemester"`
	RemainingSemesters int `json:"remainingSemesters"`
}

// CurriculumProgram program header of the curriculum view
type CurriculumProgram struct {
	Code              string   `json:"code"`
	Name              string   `json:"name"`
	Jornada           string   `json:"jornada"`
	Degree            string   `json:"degree"`
	Sedes             []string `json:"sedes"`
	LastUpdated       *string  `json:"lastUpdated"`
	TotalCredits      int      `json:"totalCredits"`
	NumberOfSemesters int      `json:"numberOfSemesters"`
}

// CurriculumCourse course annotated with the user's status
type CurriculumCourse struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Credits      int     `json:"credits"`
	Hours        int     `json:"hours"`
	Requirements *string `json:"requirements"`
	Corequisites *string `json:"corequisites"`
	Status       string  `json:"status"`
}

// CurriculumBlock block of annotated courses
type CurriculumBlock struct {
	BlockNumber int                `json:"blockNumber"`
	Courses     []CurriculumCourse `json:"courses"`
}

// CurriculumResponse GET /users/me/curriculum
type CurriculumResponse struct {
	Program  CurriculumProgram `json:"program"`
	Progress ProgressResponse  `json:"progress"`
	Blocks   []CurriculumBlock `json:"blocks"`
}

// EventResponse academic calendar event
type EventResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Severity    string  `json:"severity"`
	ProgramCode *string `json:"programCode"`
}

// DashboardResponse GET /users/me/dashboard
type DashboardResponse struct {
	User           UserResponse            `json:"user"`
	Progress       ProgressResponse        `json:"progress"`
	CurrentCourses []ScheduleEntryResponse `json:"currentCourses"`
	UpcomingEvents []EventResponse         `json:"upcomingEvents"`
}
