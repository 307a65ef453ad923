package dto

// ── users ──

// UpdateProfileRequest partial profile update; empty fields are left as is.
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Carne       string `json:"carne"`
	ProgramCode string `json:"programCode"`
}

// UpdateCourseStatusRequest new status for one course
type UpdateCourseStatusRequest struct {
	Status string `json:"status"`
}

// ProgramRef short program reference embedded in a user
type ProgramRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// UserResponse public user profile
type UserResponse struct {
	ID      uint       `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Carne   string     `json:"carne"`
	Program ProgramRef `json:"program"`
}

// CourseStatusResponse one row of GET /users/me/course-status
type CourseStatusResponse struct {
	Course      CourseResponse `json:"course"`
	Status      string         `json:"status"`
	BlockNumber *int           `json:"blockNumber"`
}
