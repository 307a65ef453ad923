package dto

// ── schedule ──

// MeetingResponse weekly slot; times are zero-padded 24-hour HH:MM
type MeetingResponse struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ScheduleEntryResponse section the user is enrolled in
type ScheduleEntryResponse struct {
	Code      string            `json:"code"`
	Name      string            `json:"name"`
	Term      string            `json:"term"`
	Section   string            `json:"section"`
	Professor *string           `json:"professor"`
	Location  *string           `json:"location"`
	Meetings  []MeetingResponse `json:"meetings"`
}

// ExportQuery GET /users/me/schedule/export
type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=ics xlsx"`
}
