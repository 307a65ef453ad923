package repository

import (
	"context"

	"gorm.io/gorm"

	"tec-planning/backend/internal/model"
)

// SectionRepository course section and meeting data access
type SectionRepository interface {
	Create(ctx context.Context, section *model.CourseSection) error
	CreateMeeting(ctx context.Context, meeting *model.CourseMeeting) error
	Count(ctx context.Context) (int64, error)
	ListByCoursesAndTerm(ctx context.Context, courseIDs []uint, term string) ([]model.CourseSection, error)
	// ListByProgramAndTerm returns the term's sections of every course in the
	// program, ordered by course code then section code.
	ListByProgramAndTerm(ctx context.Context, programID uint, term string) ([]model.CourseSection, error)
}

type sectionRepo struct {
	db *gorm.DB
}

// NewSectionRepo creates a SectionRepository
func NewSectionRepo(db *gorm.DB) SectionRepository {
	return &sectionRepo{db: db}
}

func (r *sectionRepo) Create(ctx context.Context, section *model.CourseSection) error {
	return r.db.WithContext(ctx).Omit("Course", "Meetings").Create(section).Error
}

func (r *sectionRepo) CreateMeeting(ctx context.Context, meeting *model.CourseMeeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *sectionRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CourseSection{}).Count(&n).Error
	return n, err
}

func (r *sectionRepo) ListByCoursesAndTerm(ctx context.Context, courseIDs []uint, term string) ([]model.CourseSection, error) {
	var sections []model.CourseSection
	if len(courseIDs) == 0 {
		return sections, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Meetings", orderMeetings).
		Where("course_id IN ? AND term = ?", courseIDs, term).
		Order("id ASC").
		Find(&sections).Error
	return sections, err
}

func (r *sectionRepo) ListByProgramAndTerm(ctx context.Context, programID uint, term string) ([]model.CourseSection, error) {
	var sections []model.CourseSection
	err := r.db.WithContext(ctx).
		Joins("JOIN courses ON courses.id = course_sections.course_id").
		Preload("Course").
		Preload("Meetings", orderMeetings).
		Where("courses.program_id = ? AND course_sections.term = ?", programID, term).
		Order("courses.code ASC").
		Order("course_sections.section_code ASC").
		Find(&sections).Error
	return sections, err
}

func orderMeetings(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
