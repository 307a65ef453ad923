package service

import (
	"go.uber.org/zap"

	"tec-planning/backend/config"
	"tec-planning/backend/internal/repository"
	"tec-planning/backend/pkg/jwt"
)

// Service aggregates every business service
type Service struct {
	Auth    AuthService
	User    UserService
	Program ProgramService
	Export  ExportService
}

// NewService wires the services. blacklist may be nil when redis is not
// configured.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		User:    NewUserService(cfg, repo, logger),
		Program: NewProgramService(cfg, repo, logger),
		Export:  NewExportService(cfg, repo, logger),
	}
}
