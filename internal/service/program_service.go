package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tec-planning/backend/config"
	"tec-planning/backend/internal/dto"
	"tec-planning/backend/internal/repository"
)

// ProgramService read-only program catalogue
type ProgramService interface {
	List(ctx context.Context) ([]dto.ProgramResponse, error)
	GetByCode(ctx context.Context, code string) (*dto.ProgramDetailResponse, error)
	// ListSections returns the program's sections for term, or for the
	// current term when term is empty.
	ListSections(ctx context.Context, code, term string) ([]dto.SectionResponse, error)
}

type programService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProgramService creates a ProgramService
func NewProgramService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ProgramService {
	return &programService{cfg: cfg, repo: repo, logger: logger}
}

func (s *programService) List(ctx context.Context) ([]dto.ProgramResponse, error) {
	programs, err := s.repo.Program.List(ctx)
	if err != nil {
		s.logger.Error("list programs failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.ProgramResponse, 0, len(programs))
	for i := range programs {
		out = append(out, toProgramResponse(&programs[i]))
	}
	return out, nil
}

func (s *programService) GetByCode(ctx context.Context, code string) (*dto.ProgramDetailResponse, error) {
	program, err := s.repo.Program.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		s.logger.Error("lookup program failed", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	full, err := s.repo.Program.GetWithCurriculum(ctx, program.ID)
	if err != nil {
		s.logger.Error("load program tree failed", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return toProgramDetail(full), nil
}

func (s *programService) ListSections(ctx context.Context, code, term string) ([]dto.SectionResponse, error) {
	program, err := s.repo.Program.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		s.logger.Error("lookup program failed", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	if term == "" {
		term = s.cfg.Academic.CurrentTerm
	}

	sections, err := s.repo.Section.ListByProgramAndTerm(ctx, program.ID, term)
	if err != nil {
		s.logger.Error("list sections failed", zap.String("code", code), zap.String("term", term), zap.Error(err))
		return nil, err
	}
	out := make([]dto.SectionResponse, 0, len(sections))
	for i := range sections {
		out = append(out, toSectionResponse(&sections[i]))
	}
	return out, nil
}
