package seed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tec-planning/backend/config"
	"tec-planning/backend/internal/model"
	"tec-planning/backend/internal/repository"
	"tec-planning/backend/internal/service"
	"tec-planning/backend/pkg/database"
)

const (
	auxJornada = "Diurno"
	auxDegree  = "Bachillerato"
)

// Report counts what one seed run created or left alone.
type Report struct {
	ProgramCode     string
	ProgramCreated  bool
	Blocks          int
	Courses         int
	SectionsCurrent int
	SectionsNext    int
	SectionsSkipped bool
	Events          int
	EventsSkipped   bool
	UsersCreated    int
	UsersSkipped    int
	AuxPrograms     []string
}

// Seeder loads reference data into an empty database. Every step is keyed
// on a uniqueness field or an emptiness check, so running it on every start
// is safe.
type Seeder struct {
	db       *gorm.DB
	repo     *repository.Repository
	fixtures fs.FS
	academic config.AcademicConfig
	logger   *zap.Logger
}

// NewSeeder creates a Seeder. fixtures nil selects the embedded data.
func NewSeeder(db *gorm.DB, fixtures fs.FS, academic config.AcademicConfig, logger *zap.Logger) *Seeder {
	if fixtures == nil {
		fixtures = DefaultFixtures()
	}
	return &Seeder{
		db:       db,
		repo:     repository.NewRepository(db),
		fixtures: fixtures,
		academic: academic,
		logger:   logger,
	}
}

// Bootstrap migrates the schema and seeds. Any failure rolls the seed back
// and is returned; callers are expected to abort startup.
func (s *Seeder) Bootstrap(ctx context.Context) (*Report, error) {
	s.logger.Info("bootstrapping database")
	if err := database.Migrate(s.db, s.logger); err != nil {
		s.logger.Error("schema migration failed", zap.Error(err))
		return nil, err
	}
	report, err := s.Seed(ctx)
	if err != nil {
		s.logger.Error("database bootstrap failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("database bootstrap completed")
	return report, nil
}

// Seed runs every step in one transaction against an existing schema.
func (s *Seeder) Seed(ctx context.Context) (*Report, error) {
	report := &Report{}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		primary, err := s.seedProgram(ctx, tx, report)
		if err != nil {
			return fmt.Errorf("seed program: %w", err)
		}
		if err := s.seedSections(ctx, tx, primary, report); err != nil {
			return fmt.Errorf("seed sections: %w", err)
		}
		if err := s.seedEvents(ctx, tx, primary, report); err != nil {
			return fmt.Errorf("seed events: %w", err)
		}
		if err := s.seedDemoUsers(ctx, tx, primary, report); err != nil {
			return fmt.Errorf("seed demo users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("seed workflow completed",
		zap.String("program", report.ProgramCode),
		zap.Int("new_users", report.UsersCreated),
		zap.Int("skipped_users", report.UsersSkipped),
	)
	return report, nil
}

// ── program ──

func (s *Seeder) seedProgram(ctx context.Context, tx *repository.Repository, report *Report) (*model.Program, error) {
	var doc programFixture
	if err := loadJSON(s.fixtures, programFile, &doc); err != nil {
		return nil, err
	}
	report.ProgramCode = doc.Code

	existing, err := tx.Program.GetByCode(ctx, doc.Code)
	if err == nil {
		s.logger.Info("program already present, skipping", zap.String("code", doc.Code))
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	program := &model.Program{
		Code:              doc.Code,
		Name:              doc.Program,
		Jornada:           doc.Jornada,
		Campuses:          datatypes.JSONSlice[string](nonNil(doc.Sedes)),
		Degree:            doc.Degree,
		TotalCredits:      doc.TotalCredits,
		NumberOfSemesters: doc.NumberOfSemesters,
	}
	if t, ok := ParseLastUpdated(doc.LastUpdated); ok {
		d := datatypes.Date(*t)
		program.LastUpdated = &d
	} else if doc.LastUpdated != "" {
		s.logger.Warn("unparseable program date, storing null", zap.String("value", doc.LastUpdated))
	}
	if err := tx.Program.Create(ctx, program); err != nil {
		return nil, err
	}

	for _, b := range doc.Blocks {
		block := &model.CourseBlock{ProgramID: program.ID, BlockNumber: b.Number}
		if err := tx.Program.CreateBlock(ctx, block); err != nil {
			return nil, err
		}
		for _, c := range b.Courses {
			course := &model.Course{
				ProgramID:     program.ID,
				BlockID:       block.ID,
				Code:          c.Code,
				Name:          c.Name,
				Credits:       c.Credits,
				Hours:         c.Hours,
				Requirements:  c.Requirements,
				Corequisites:  c.Corequisites,
				DefaultStatus: model.NormalizeStatus(c.DefaultStatus),
			}
			if err := tx.Course.Create(ctx, course); err != nil {
				return nil, fmt.Errorf("course %s: %w", c.Code, err)
			}
			report.Courses++
		}
		report.Blocks++
	}
	report.ProgramCreated = true

	s.logger.Info("program created",
		zap.String("code", program.Code),
		zap.Int("blocks", report.Blocks),
		zap.Int("courses", report.Courses),
	)
	return program, nil
}

// ── sections ──

func (s *Seeder) seedSections(ctx context.Context, tx *repository.Repository, primary *model.Program, report *Report) error {
	n, err := tx.Section.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		report.SectionsSkipped = true
		s.logger.Info("course sections already present, skipping")
		return nil
	}

	courses, err := tx.Course.ListByProgram(ctx, primary.ID)
	if err != nil {
		return err
	}
	byCode := make(map[string]*model.Course, len(courses))
	for i := range courses {
		byCode[courses[i].Code] = &courses[i]
	}

	var current, next []offeringFixture
	if err := loadJSON(s.fixtures, currentSectionsFile, &current); err != nil {
		return err
	}
	if err := loadJSON(s.fixtures, nextSectionsFile, &next); err != nil {
		return err
	}

	if report.SectionsCurrent, err = s.createSections(ctx, tx, byCode, current, s.academic.CurrentTerm); err != nil {
		return err
	}
	if report.SectionsNext, err = s.createSections(ctx, tx, byCode, next, s.academic.NextTerm); err != nil {
		return err
	}

	s.logger.Info("course sections created",
		zap.Int("current_term", report.SectionsCurrent),
		zap.Int("next_term", report.SectionsNext),
	)
	return nil
}

// createSections numbers offerings by their 1-based position in the list;
// offerings for unknown courses are dropped but keep their number.
func (s *Seeder) createSections(ctx context.Context, tx *repository.Repository, byCode map[string]*model.Course, offerings []offeringFixture, term string) (int, error) {
	created := 0
	for i, o := range offerings {
		course, ok := byCode[o.Code]
		if !ok {
			s.logger.Debug("offering for unknown course dropped", zap.String("code", o.Code), zap.String("term", term))
			continue
		}

		section := &model.CourseSection{
			CourseID:    course.ID,
			Term:        term,
			SectionCode: fmt.Sprintf("%02d", i+1),
			Professor:   o.Professor,
			Location:    emptyToNil(o.Location),
		}
		if err := tx.Section.Create(ctx, section); err != nil {
			return created, err
		}

		for _, m := range o.Meetings {
			start, err := parseClock(m.StartTime)
			if err != nil {
				return created, fmt.Errorf("section %s/%s: %w", o.Code, section.SectionCode, err)
			}
			end, err := parseClock(m.EndTime)
			if err != nil {
				return created, fmt.Errorf("section %s/%s: %w", o.Code, section.SectionCode, err)
			}
			meeting := &model.CourseMeeting{
				SectionID: section.ID,
				DayOfWeek: m.Day,
				StartTime: start,
				EndTime:   end,
			}
			if err := tx.Section.CreateMeeting(ctx, meeting); err != nil {
				return created, err
			}
		}
		created++
	}
	return created, nil
}

// ── events ──

func (s *Seeder) seedEvents(ctx context.Context, tx *repository.Repository, primary *model.Program, report *Report) error {
	n, err := tx.Event.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		report.EventsSkipped = true
		s.logger.Info("academic events already present, skipping")
		return nil
	}

	var events []eventFixture
	if err := loadJSON(s.fixtures, eventsFile, &events); err != nil {
		return err
	}

	for _, e := range events {
		date, ok := parseISODate(strings.TrimSpace(e.Date))
		if !ok {
			return fmt.Errorf("event %q: invalid date %q", e.Name, e.Date)
		}
		severity := e.Type
		if severity == "" {
			severity = "info"
		}
		programID := primary.ID
		event := &model.AcademicEvent{
			Title:     e.Name,
			EventDate: datatypes.Date(date),
			Severity:  severity,
			ProgramID: &programID,
		}
		if err := tx.Event.Create(ctx, event); err != nil {
			return err
		}
		report.Events++
	}

	s.logger.Info("academic events created", zap.Int("count", report.Events), zap.String("program", primary.Code))
	return nil
}

// ── demo users ──

func (s *Seeder) seedDemoUsers(ctx context.Context, tx *repository.Repository, primary *model.Program, report *Report) error {
	var users []demoUserFixture
	if err := loadJSON(s.fixtures, demoUsersFile, &users); err != nil {
		return err
	}

	aux := &auxAllocator{next: 1}
	for _, u := range users {
		email := strings.ToLower(u.Email)
		if _, err := tx.User.GetByEmail(ctx, email); err == nil {
			report.UsersSkipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		name := u.Program
		if name == "" {
			name = primary.Name
		}
		program, err := s.ensureProgram(ctx, tx, name, primary, aux, report)
		if err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", email, err)
		}
		user := &model.User{
			Name:         u.Name,
			Email:        email,
			PasswordHash: string(hash),
			Carne:        u.Carne,
			ProgramID:    program.ID,
		}
		if err := tx.User.Create(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", email, err)
		}

		_, err = service.Enroll(ctx, tx, user.ID, program.ID, service.EnrollOptions{
			CurrentTerm:  s.academic.CurrentTerm,
			SkipSchedule: program.ID != primary.ID,
		})
		if err != nil {
			return fmt.Errorf("enroll user %s: %w", email, err)
		}
		report.UsersCreated++
	}

	s.logger.Info("demo users seeded",
		zap.Int("created", report.UsersCreated),
		zap.Int("skipped", report.UsersSkipped),
	)
	return nil
}

// auxAllocator hands out AUTO-NNN codes, counting from 1 on every run.
type auxAllocator struct {
	next int
}

// ensureProgram resolves a program by name, creating an empty placeholder
// when no program carries that name yet.
func (s *Seeder) ensureProgram(ctx context.Context, tx *repository.Repository, name string, primary *model.Program, aux *auxAllocator, report *Report) (*model.Program, error) {
	if name == primary.Name {
		return primary, nil
	}

	existing, err := tx.Program.GetByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	code, err := aux.allocate(ctx, tx)
	if err != nil {
		return nil, err
	}
	program := &model.Program{
		Code:     code,
		Name:     name,
		Jornada:  auxJornada,
		Degree:   auxDegree,
		Campuses: datatypes.JSONSlice[string]{},
	}
	if err := tx.Program.Create(ctx, program); err != nil {
		return nil, fmt.Errorf("create auxiliary program %q: %w", name, err)
	}
	report.AuxPrograms = append(report.AuxPrograms, code)

	s.logger.Info("auxiliary program created", zap.String("name", name), zap.String("code", code))
	return program, nil
}

// allocate returns the next free code. Codes left by an earlier run are
// stepped over rather than reused.
func (a *auxAllocator) allocate(ctx context.Context, tx *repository.Repository) (string, error) {
	for {
		code := fmt.Sprintf("AUTO-%03d", a.next)
		a.next++
		_, err := tx.Program.GetByCode(ctx, code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
