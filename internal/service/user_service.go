package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tec-planning/backend/config"
	"tec-planning/backend/internal/dto"
	"tec-planning/backend/internal/model"
	"tec-planning/backend/internal/repository"
)

const dashboardEventLimit = 10

// UserService operations on the authenticated user. Every method receives
// the user resolved by the auth guard, program preloaded.
type UserService interface {
	GetProfile(ctx context.Context, user *model.User) dto.UserResponse
	UpdateProfile(ctx context.Context, user *model.User, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ListCourseStatuses(ctx context.Context, user *model.User) ([]dto.CourseStatusResponse, error)
	UpdateCourseStatus(ctx context.Context, user *model.User, courseCode, status string) error
	GetCurriculum(ctx context.Context, user *model.User) (*dto.CurriculumResponse, error)
	GetDashboard(ctx context.Context, user *model.User) (*dto.DashboardResponse, error)
	GetSchedule(ctx context.Context, user *model.User) ([]dto.ScheduleEntryResponse, error)
}

type userService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates a UserService
func NewUserService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{cfg: cfg, repo: repo, logger: logger}
}

// ── profile ──

func (s *userService) GetProfile(_ context.Context, user *model.User) dto.UserResponse {
	return toUserResponse(user)
}

// UpdateProfile applies the non-empty fields of req. A new program code
// replaces every status and schedule row of the user in one transaction.
func (s *userService) UpdateProfile(ctx context.Context, user *model.User, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}

	if carne := strings.TrimSpace(req.Carne); carne != "" && carne != user.Carne {
		existing, err := s.repo.User.GetByCarne(ctx, carne)
		switch {
		case err == nil && existing.ID != user.ID:
			return nil, ErrCarneExists
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			s.logger.Error("lookup user by carne failed", zap.Error(err))
			return nil, err
		}
		user.Carne = carne
	}

	var newProgram *model.Program
	code := strings.TrimSpace(req.ProgramCode)
	if code != "" && (user.Program == nil || code != user.Program.Code) {
		program, err := s.repo.Program.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownProgram
			}
			s.logger.Error("lookup program failed", zap.Error(err))
			return nil, err
		}
		newProgram = program
		user.ProgramID = program.ID
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Update(ctx, user); err != nil {
			return err
		}
		if newProgram == nil {
			return nil
		}
		if err := tx.CourseStatus.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		if err := tx.Schedule.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		_, err := Enroll(ctx, tx, user.ID, newProgram.ID, EnrollOptions{CurrentTerm: s.cfg.Academic.CurrentTerm})
		return err
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrCarneExists
	}
	if err != nil {
		s.logger.Error("update profile failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	if newProgram != nil {
		user.Program = newProgram
		s.logger.Info("user changed program",
			zap.Uint("user_id", user.ID),
			zap.String("program", newProgram.Code),
		)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ── course status ──

func (s *userService) ListCourseStatuses(ctx context.Context, user *model.User) ([]dto.CourseStatusResponse, error) {
	statuses, err := s.repo.CourseStatus.ListByUser(ctx, user.ID)
	if err != nil {
		s.logger.Error("list course statuses failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	out := make([]dto.CourseStatusResponse, 0, len(statuses))
	for _, st := range statuses {
		if st.Course == nil {
			continue
		}
		item := dto.CourseStatusResponse{
			Course: toCourseResponse(st.Course),
			Status: st.Status,
		}
		if st.Course.Block != nil {
			n := st.Course.Block.BlockNumber
			item.BlockNumber = &n
		}
		out = append(out, item)
	}
	return out, nil
}

// UpdateCourseStatus validates status before resolving the course, so an
// invalid value never touches the database.
func (s *userService) UpdateCourseStatus(ctx context.Context, user *model.User, courseCode, status string) error {
	if !model.IsValidStatus(status) {
		return ErrInvalidStatus
	}

	course, err := s.repo.Course.GetByCode(ctx, courseCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("lookup course failed", zap.Error(err))
		return err
	}

	row := &model.UserCourseStatus{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   status,
	}
	if err := s.repo.CourseStatus.Upsert(ctx, row); err != nil {
		s.logger.Error("upsert course status failed",
			zap.Uint("user_id", user.ID),
			zap.String("course", courseCode),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ── aggregate views ──

func (s *userService) progress(ctx context.Context, user *model.User) (dto.ProgressResponse, []model.UserCourseStatus, error) {
	statuses, err := s.repo.CourseStatus.ListByUser(ctx, user.ID)
	if err != nil {
		s.logger.Error("list course statuses failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return dto.ProgressResponse{}, nil, err
	}
	return ComputeProgress(user.Program, statuses), statuses, nil
}

func (s *userService) GetCurriculum(ctx context.Context, user *model.User) (*dto.CurriculumResponse, error) {
	if user.ProgramID == 0 {
		return nil, ErrProgramNotAssigned
	}
	program, err := s.repo.Program.GetWithCurriculum(ctx, user.ProgramID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotAssigned
		}
		s.logger.Error("load curriculum failed", zap.Uint("program_id", user.ProgramID), zap.Error(err))
		return nil, err
	}

	progress, statuses, err := s.progress(ctx, user)
	if err != nil {
		return nil, err
	}
	byCourse := make(map[uint]string, len(statuses))
	for _, st := range statuses {
		byCourse[st.CourseID] = st.Status
	}

	resp := &dto.CurriculumResponse{
		Program: dto.CurriculumProgram{
			Code:              program.Code,
			Name:              program.Name,
			Jornada:           program.Jornada,
			Degree:            program.Degree,
			Sedes:             campuses(program),
			LastUpdated:       lastUpdated(program),
			TotalCredits:      program.TotalCredits,
			NumberOfSemesters: program.NumberOfSemesters,
		},
		Progress: progress,
		Blocks:   make([]dto.CurriculumBlock, 0, len(program.Blocks)),
	}

	for _, b := range program.Blocks {
		block := dto.CurriculumBlock{
			BlockNumber: b.BlockNumber,
			Courses:     make([]dto.CurriculumCourse, 0, len(b.Courses)),
		}
		for _, c := range b.Courses {
			status, ok := byCourse[c.ID]
			if !ok {
				status = model.StatusNotCoursed
			}
			block.Courses = append(block.Courses, dto.CurriculumCourse{
				Code:         c.Code,
				Name:         c.Name,
				Credits:      c.Credits,
				Hours:        c.Hours,
				Requirements: c.Requirements,
				Corequisites: c.Corequisites,
				Status:       status,
			})
		}
		resp.Blocks = append(resp.Blocks, block)
	}

	return resp, nil
}

func (s *userService) GetDashboard(ctx context.Context, user *model.User) (*dto.DashboardResponse, error) {
	progress, _, err := s.progress(ctx, user)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.Schedule.ListByUser(ctx, user.ID, true)
	if err != nil {
		s.logger.Error("list schedule failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	events, err := s.repo.Event.ListUpcoming(ctx, user.ProgramID, dashboardEventLimit)
	if err != nil {
		s.logger.Error("list events failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}
	upcoming := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		upcoming = append(upcoming, toEventResponse(&events[i]))
	}

	return &dto.DashboardResponse{
		User:           toUserResponse(user),
		Progress:       progress,
		CurrentCourses: serializeEntries(entries),
		UpcomingEvents: upcoming,
	}, nil
}

func (s *userService) GetSchedule(ctx context.Context, user *model.User) ([]dto.ScheduleEntryResponse, error) {
	entries, err := s.repo.Schedule.ListByUser(ctx, user.ID, false)
	if err != nil {
		s.logger.Error("list schedule failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}
	return serializeEntries(entries), nil
}
