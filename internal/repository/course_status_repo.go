package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tec-planning/backend/internal/model"
)

// CourseStatusRepository per-user course status data access
type CourseStatusRepository interface {
	BatchCreate(ctx context.Context, statuses []model.UserCourseStatus) error
	// ListByUser preloads course and block, ordered by course code.
	ListByUser(ctx context.Context, userID uint) ([]model.UserCourseStatus, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*model.UserCourseStatus, error)
	// Upsert inserts the row or overwrites the status of the existing
	// (user, course) row.
	Upsert(ctx context.Context, status *model.UserCourseStatus) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type courseStatusRepo struct {
	db *gorm.DB
}

// NewCourseStatusRepo creates a CourseStatusRepository
func NewCourseStatusRepo(db *gorm.DB) CourseStatusRepository {
	return &courseStatusRepo{db: db}
}

func (r *courseStatusRepo) BatchCreate(ctx context.Context, statuses []model.UserCourseStatus) error {
	if len(statuses) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		CreateInBatches(statuses, 200).Error
}

func (r *courseStatusRepo) ListByUser(ctx context.Context, userID uint) ([]model.UserCourseStatus, error) {
	var statuses []model.UserCourseStatus
	err := r.db.WithContext(ctx).
		Joins("JOIN courses ON courses.id = user_course_statuses.course_id").
		Preload("Course.Block").
		Where("user_course_statuses.user_id = ?", userID).
		Order("courses.code ASC").
		Find(&statuses).Error
	return statuses, err
}

func (r *courseStatusRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*model.UserCourseStatus, error) {
	var status model.UserCourseStatus
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *courseStatusRepo) Upsert(ctx context.Context, status *model.UserCourseStatus) error {
	status.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(status).Error
}

func (r *courseStatusRepo) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.UserCourseStatus{}).Error
}
