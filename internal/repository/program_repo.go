package repository

import (
	"context"

	"gorm.io/gorm"

	"tec-planning/backend/internal/model"
)

// ProgramRepository program and block data access
type ProgramRepository interface {
	Create(ctx context.Context, program *model.Program) error
	CreateBlock(ctx context.Context, block *model.CourseBlock) error
	GetByID(ctx context.Context, id uint) (*model.Program, error)
	GetByCode(ctx context.Context, code string) (*model.Program, error)
	GetByName(ctx context.Context, name string) (*model.Program, error)
	// GetWithCurriculum loads blocks ordered by number and their courses
	// ordered by code.
	GetWithCurriculum(ctx context.Context, id uint) (*model.Program, error)
	List(ctx context.Context) ([]model.Program, error)
}

type programRepo struct {
	db *gorm.DB
}

// NewProgramRepo creates a ProgramRepository
func NewProgramRepo(db *gorm.DB) ProgramRepository {
	return &programRepo{db: db}
}

func (r *programRepo) Create(ctx context.Context, program *model.Program) error {
	return r.db.WithContext(ctx).Omit("Blocks", "Courses").Create(program).Error
}

func (r *programRepo) CreateBlock(ctx context.Context, block *model.CourseBlock) error {
	return r.db.WithContext(ctx).Omit("Courses").Create(block).Error
}

func (r *programRepo) GetByID(ctx context.Context, id uint) (*model.Program, error) {
	var program model.Program
	err := r.db.WithContext(ctx).First(&program, id).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *programRepo) GetByCode(ctx context.Context, code string) (*model.Program, error) {
	var program model.Program
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&program).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *programRepo) GetByName(ctx context.Context, name string) (*model.Program, error) {
	var program model.Program
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id ASC").
		First(&program).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *programRepo) GetWithCurriculum(ctx context.Context, id uint) (*model.Program, error) {
	var program model.Program
	err := r.db.WithContext(ctx).
		Preload("Blocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("block_number ASC")
		}).
		Preload("Blocks.Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("code ASC")
		}).
		First(&program, id).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *programRepo) List(ctx context.Context) ([]model.Program, error) {
	var programs []model.Program
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&programs).Error
	return programs, err
}
