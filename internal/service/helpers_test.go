package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tec-planning/backend/config"
	"tec-planning/backend/internal/dto"
	"tec-planning/backend/internal/model"
	"tec-planning/backend/internal/repository"
	"tec-planning/backend/pkg/jwt"
)

// ── test database ──

// newTestDB opens a private in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "test-secret-key-0123456789",
			TokenTTL:  12 * time.Hour,
		},
		Academic: config.AcademicConfig{
			CurrentTerm: "II-2024",
			NextTerm:    "I-2025",
			TermStart:   "2024-07-22",
			TermWeeks:   18,
		},
	}
}

// ── fixtures ──

type fixture struct {
	t    *testing.T
	repo *repository.Repository
}

func newFixture(t *testing.T) (*fixture, *repository.Repository) {
	repo := repository.NewRepository(newTestDB(t))
	return &fixture{t: t, repo: repo}, repo
}

func (f *fixture) program(code, name string, totalCredits, semesters int) *model.Program {
	f.t.Helper()
	p := &model.Program{
		Code:              code,
		Name:              name,
		Jornada:           "Diurno",
		Campuses:          datatypes.JSONSlice[string]{"Cartago"},
		Degree:            "Bachillerato",
		TotalCredits:      totalCredits,
		NumberOfSemesters: semesters,
	}
	if err := f.repo.Program.Create(context.Background(), p); err != nil {
		f.t.Fatalf("create program %s: %v", code, err)
	}
	return p
}

func (f *fixture) block(p *model.Program, number int) *model.CourseBlock {
	f.t.Helper()
	b := &model.CourseBlock{ProgramID: p.ID, BlockNumber: number}
	if err := f.repo.Program.CreateBlock(context.Background(), b); err != nil {
		f.t.Fatalf("create block %d: %v", number, err)
	}
	return b
}

func (f *fixture) course(b *model.CourseBlock, code string, credits int, status string) *model.Course {
	f.t.Helper()
	c := &model.Course{
		ProgramID:     b.ProgramID,
		BlockID:       b.ID,
		Code:          code,
		Name:          "Curso " + code,
		Credits:       credits,
		Hours:         4,
		DefaultStatus: status,
	}
	if err := f.repo.Course.Create(context.Background(), c); err != nil {
		f.t.Fatalf("create course %s: %v", code, err)
	}
	return c
}

func (f *fixture) section(c *model.Course, term, code string, meetings ...model.CourseMeeting) *model.CourseSection {
	f.t.Helper()
	professor, location := "Prof. "+c.Code, "B3-05"
	s := &model.CourseSection{
		CourseID:    c.ID,
		Term:        term,
		SectionCode: code,
		Professor:   &professor,
		Location:    &location,
	}
	if err := f.repo.Section.Create(context.Background(), s); err != nil {
		f.t.Fatalf("create section: %v", err)
	}
	for i := range meetings {
		meetings[i].SectionID = s.ID
		if err := f.repo.Section.CreateMeeting(context.Background(), &meetings[i]); err != nil {
			f.t.Fatalf("create meeting: %v", err)
		}
	}
	return s
}

func (f *fixture) event(title string, date time.Time, programID *uint) {
	f.t.Helper()
	e := &model.AcademicEvent{
		Title:     title,
		EventDate: datatypes.Date(date),
		Severity:  "info",
		ProgramID: programID,
	}
	if err := f.repo.Event.Create(context.Background(), e); err != nil {
		f.t.Fatalf("create event: %v", err)
	}
}

func meeting(day string, sh, sm, eh, em int) model.CourseMeeting {
	return model.CourseMeeting{
		DayOfWeek: day,
		StartTime: datatypes.NewTime(sh, sm, 0, 0),
		EndTime:   datatypes.NewTime(eh, em, 0, 0),
	}
}

// iswFixture is the single-course program used across scenarios:
// ISW, block 1, IS-101 worth 3 credits and approved by default.
func iswFixture(t *testing.T) (*fixture, *repository.Repository, *model.Program) {
	f, repo := newFixture(t)
	p := f.program("ISW", "Ingeniería en Software", 3, 1)
	b := f.block(p, 1)
	f.course(b, "IS-101", 3, model.StatusApproved)
	return f, repo, p
}

func newTestAuthService(repo *repository.Repository, blacklist TokenBlacklist) (AuthService, *jwt.Manager) {
	cfg := testConfig()
	mgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, repo, mgr, blacklist, zap.NewNop()), mgr
}

// signup creates a user through AuthService and reloads it the way the
// auth guard would.
func signup(t *testing.T, repo *repository.Repository, email, carne, programCode string) *model.User {
	t.Helper()
	svc, _ := newTestAuthService(repo, nil)
	resp, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Name:        "Estudiante",
		Email:       email,
		Password:    "secret123",
		ProgramCode: programCode,
		Carne:       carne,
	})
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	user, err := repo.User.GetByID(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return user
}

func hashPassword(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}
