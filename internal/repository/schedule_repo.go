package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tec-planning/backend/internal/model"
)

// ScheduleRepository per-user schedule entry data access
type ScheduleRepository interface {
	BatchCreate(ctx context.Context, entries []model.UserScheduleEntry) error
	// ListByUser returns entries in insertion order with section, course
	// and meetings preloaded. currentOnly limits to current-term entries.
	ListByUser(ctx context.Context, userID uint, currentOnly bool) ([]model.UserScheduleEntry, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo creates a ScheduleRepository
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) BatchCreate(ctx context.Context, entries []model.UserScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		CreateInBatches(entries, 200).Error
}

func (r *scheduleRepo) ListByUser(ctx context.Context, userID uint, currentOnly bool) ([]model.UserScheduleEntry, error) {
	var entries []model.UserScheduleEntry
	q := r.db.WithContext(ctx).
		Preload("Section.Course").
		Preload("Section.Meetings", orderMeetings).
		Where("user_id = ?", userID)
	if currentOnly {
		q = q.Where("is_current_term = ?", true)
	}
	err := q.Order("id ASC").Find(&entries).Error
	return entries, err
}

func (r *scheduleRepo) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.UserScheduleEntry{}).Error
}
