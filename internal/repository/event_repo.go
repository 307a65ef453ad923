package repository

import (
	"context"

	"gorm.io/gorm"

	"tec-planning/backend/internal/model"
)

// EventRepository academic event data access
type EventRepository interface {
	Create(ctx context.Context, event *model.AcademicEvent) error
	Count(ctx context.Context) (int64, error)
	// ListUpcoming returns events that apply to every program or to
	// programID, earliest first.
	ListUpcoming(ctx context.Context, programID uint, limit int) ([]model.AcademicEvent, error)
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo creates an EventRepository
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.AcademicEvent) error {
	return r.db.WithContext(ctx).Omit("Program").Create(event).Error
}

func (r *eventRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.AcademicEvent{}).Count(&n).Error
	return n, err
}

func (r *eventRepo) ListUpcoming(ctx context.Context, programID uint, limit int) ([]model.AcademicEvent, error) {
	var events []model.AcademicEvent
	err := r.db.WithContext(ctx).
		Preload("Program").
		Where("program_id IS NULL OR program_id = ?", programID).
		Order("event_date ASC").
		Order("id ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
