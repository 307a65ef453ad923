package service

import (
	"tec-planning/backend/internal/dto"
	"tec-planning/backend/internal/model"
)

// ── model → dto ──

func toUserResponse(user *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Carne: user.Carne,
	}
	if user.Program != nil {
		resp.Program = dto.ProgramRef{Code: user.Program.Code, Name: user.Program.Name}
	}
	return resp
}

func lastUpdated(p *model.Program) *string {
	if p.LastUpdated == nil {
		return nil
	}
	s := model.FormatDate(*p.LastUpdated)
	return &s
}

func campuses(p *model.Program) []string {
	if p.Campuses == nil {
		return []string{}
	}
	return []string(p.Campuses)
}

func toProgramResponse(p *model.Program) dto.ProgramResponse {
	return dto.ProgramResponse{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		Jornada:           p.Jornada,
		Sedes:             campuses(p),
		Degree:            p.Degree,
		LastUpdated:       lastUpdated(p),
		TotalCredits:      p.TotalCredits,
		NumberOfSemesters: p.NumberOfSemesters,
	}
}

func toCourseResponse(c *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:            c.ID,
		Code:          c.Code,
		Name:          c.Name,
		Credits:       c.Credits,
		Hours:         c.Hours,
		Requirements:  c.Requirements,
		Corequisites:  c.Corequisites,
		DefaultStatus: model.NormalizeStatus(c.DefaultStatus),
	}
}

func toProgramDetail(p *model.Program) *dto.ProgramDetailResponse {
	detail := &dto.ProgramDetailResponse{
		ProgramResponse: toProgramResponse(p),
		Blocks:          make([]dto.BlockResponse, 0, len(p.Blocks)),
	}
	for i := range p.Blocks {
		b := &p.Blocks[i]
		block := dto.BlockResponse{
			ID:          b.ID,
			BlockNumber: b.BlockNumber,
			Courses:     make([]dto.CourseResponse, 0, len(b.Courses)),
		}
		for j := range b.Courses {
			block.Courses = append(block.Courses, toCourseResponse(&b.Courses[j]))
		}
		detail.Blocks = append(detail.Blocks, block)
	}
	return detail
}

func toMeetings(meetings []model.CourseMeeting) []dto.MeetingResponse {
	out := make([]dto.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, dto.MeetingResponse{
			Day:       m.DayOfWeek,
			StartTime: model.FormatClock(m.StartTime),
			EndTime:   model.FormatClock(m.EndTime),
		})
	}
	return out
}

func toSectionResponse(s *model.CourseSection) dto.SectionResponse {
	resp := dto.SectionResponse{
		ID:        s.ID,
		Term:      s.Term,
		Section:   s.SectionCode,
		Professor: s.Professor,
		Location:  s.Location,
		Meetings:  toMeetings(s.Meetings),
	}
	if s.Course != nil {
		resp.CourseCode = s.Course.Code
		resp.CourseName = s.Course.Name
	}
	return resp
}

// SerializeScheduleEntry renders an enrolment; ok is false when the linked
// section no longer exists.
func SerializeScheduleEntry(entry *model.UserScheduleEntry) (dto.ScheduleEntryResponse, bool) {
	section := entry.Section
	if section == nil {
		return dto.ScheduleEntryResponse{}, false
	}
	resp := dto.ScheduleEntryResponse{
		Term:      entry.Term,
		Section:   section.SectionCode,
		Professor: section.Professor,
		Location:  section.Location,
		Meetings:  toMeetings(section.Meetings),
	}
	if section.Course != nil {
		resp.Code = section.Course.Code
		resp.Name = section.Course.Name
	}
	return resp, true
}

func serializeEntries(entries []model.UserScheduleEntry) []dto.ScheduleEntryResponse {
	out := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for i := range entries {
		if resp, ok := SerializeScheduleEntry(&entries[i]); ok {
			out = append(out, resp)
		}
	}
	return out
}

func toEventResponse(e *model.AcademicEvent) dto.EventResponse {
	resp := dto.EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        model.FormatDate(e.EventDate),
		Severity:    e.Severity,
	}
	if e.Program != nil {
		code := e.Program.Code
		resp.ProgramCode = &code
	}
	return resp
}
