package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tec-planning/backend/config"
	"tec-planning/backend/internal/dto"
	"tec-planning/backend/internal/model"
	"tec-planning/backend/internal/repository"
	"tec-planning/backend/pkg/jwt"
)

// TokenBlacklist revoked token store; implemented by pkg/redis.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService account creation, login and token resolution
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// Logout revokes the token described by claims until it expires.
	Logout(ctx context.Context, claims *jwt.Claims) error
	// Authenticate verifies a bearer token and loads its user with program.
	Authenticate(ctx context.Context, token string) (*model.User, *jwt.Claims, error)
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates an AuthService. blacklist may be nil.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	carne := strings.TrimSpace(req.Carne)

	// 1. uniqueness: email before carné
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup user by email failed", zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.User.GetByCarne(ctx, carne); err == nil {
		return nil, ErrCarneExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup user by carne failed", zap.Error(err))
		return nil, err
	}

	// 2. program
	program, err := s.repo.Program.GetByCode(ctx, req.ProgramCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignupProgram
		}
		s.logger.Error("lookup program failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Carne:        carne,
		ProgramID:    program.ID,
	}

	// 3. user, statuses and schedule commit together
	var enrolled EnrollResult
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}
		enrolled, err = Enroll(ctx, tx, user.ID, program.ID, EnrollOptions{CurrentTerm: s.cfg.Academic.CurrentTerm})
		return err
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// a concurrent signup took the email or carné after the checks above
		return nil, s.duplicateUser(ctx, email)
	}
	if err != nil {
		s.logger.Error("signup transaction failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	user.Program = program

	s.logger.Info("user signed up",
		zap.Uint("user_id", user.ID),
		zap.String("program", program.Code),
		zap.Int("statuses", enrolled.Statuses),
		zap.Int("schedule_entries", enrolled.Entries),
	)

	return s.issue(user)
}

// duplicateUser names the unique column a failed insert collided with.
func (s *authService) duplicateUser(ctx context.Context, email string) error {
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return ErrEmailExists
	}
	return ErrCarneExists
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("lookup user failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.blacklist == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("blacklist token failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, *jwt.Claims, error) {
	claims, err := s.jwtMgr.Parse(token)
	if err != nil {
		return nil, nil, ErrTokenInvalid
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, nil, ErrTokenInvalid
	}

	if s.blacklist != nil && claims.ID != "" {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			// redis outage: fall back to signature and expiry only
			s.logger.Warn("blacklist lookup failed", zap.Error(err))
		} else if revoked {
			return nil, nil, ErrTokenInvalid
		}
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		s.logger.Error("load authenticated user failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, nil, err
	}

	return user, claims, nil
}

func (s *authService) issue(user *model.User) (*dto.AuthResponse, error) {
	token, err := s.jwtMgr.Generate(user.ID, user.Email)
	if err != nil {
		s.logger.Error("generate token failed", zap.Error(err))
		return nil, err
	}
	return &dto.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}
