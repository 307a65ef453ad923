package service

import (
	"context"
	"fmt"

	"tec-planning/backend/internal/model"
	"tec-planning/backend/internal/repository"
)

// EnrollOptions controls what Enroll generates besides status rows.
type EnrollOptions struct {
	// CurrentTerm selects the sections that in-progress courses are enrolled in.
	CurrentTerm string
	// SkipSchedule creates status rows only.
	SkipSchedule bool
}

// EnrollResult counts the rows Enroll created.
type EnrollResult struct {
	Statuses int
	Entries  int
}

// Enroll gives userID one status row per course of programID, using each
// course's default status, and current-term schedule entries for every
// section of the courses that default to in-progress. repo should be
// transaction-bound; Enroll does not clear existing rows.
func Enroll(ctx context.Context, repo *repository.Repository, userID, programID uint, opts EnrollOptions) (EnrollResult, error) {
	var res EnrollResult

	courses, err := repo.Course.ListByProgram(ctx, programID)
	if err != nil {
		return res, fmt.Errorf("list program courses: %w", err)
	}

	statuses := make([]model.UserCourseStatus, 0, len(courses))
	var inProgress []uint
	for _, c := range courses {
		status := model.NormalizeStatus(c.DefaultStatus)
		if status == model.StatusInProgress {
			inProgress = append(inProgress, c.ID)
		}
		statuses = append(statuses, model.UserCourseStatus{
			UserID:   userID,
			CourseID: c.ID,
			Status:   status,
		})
	}
	if err := repo.CourseStatus.BatchCreate(ctx, statuses); err != nil {
		return res, fmt.Errorf("create course statuses: %w", err)
	}
	res.Statuses = len(statuses)

	if opts.SkipSchedule || len(inProgress) == 0 {
		return res, nil
	}

	sections, err := repo.Section.ListByCoursesAndTerm(ctx, inProgress, opts.CurrentTerm)
	if err != nil {
		return res, fmt.Errorf("list current sections: %w", err)
	}
	entries := make([]model.UserScheduleEntry, 0, len(sections))
	for _, s := range sections {
		entries = append(entries, model.UserScheduleEntry{
			UserID:        userID,
			SectionID:     s.ID,
			Term:          s.Term,
			IsCurrentTerm: true,
		})
	}
	if err := repo.Schedule.BatchCreate(ctx, entries); err != nil {
		return res, fmt.Errorf("create schedule entries: %w", err)
	}
	res.Entries = len(entries)

	return res, nil
}
