package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every repository bound to the same *gorm.DB.
type Repository struct {
	db *gorm.DB

	Program      ProgramRepository
	Course       CourseRepository
	User         UserRepository
	CourseStatus CourseStatusRepository
	Section      SectionRepository
	Schedule     ScheduleRepository
	Event        EventRepository
}

// NewRepository builds the aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		Program:      NewProgramRepo(db),
		Course:       NewCourseRepo(db),
		User:         NewUserRepo(db),
		CourseStatus: NewCourseStatusRepo(db),
		Section:      NewSectionRepo(db),
		Schedule:     NewScheduleRepo(db),
		Event:        NewEventRepo(db),
	}
}

// DB exposes the underlying handle for migrations and health checks.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// WithTx returns a Repository whose every member runs inside tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction runs fn with a transaction-bound Repository. It commits when
// fn returns nil and rolls back on error or panic.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
