package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"tec-planning/backend/config"
	"tec-planning/backend/internal/model"
	"tec-planning/backend/internal/repository"
)

const (
	FormatICS  = "ics"
	FormatXLSX = "xlsx"
)

var errExportGenerate = errors.New("generate export file")

// ExportService schedule downloads
//
//   - ics: one weekly-recurring event per meeting, anchored on the
//     configured term start and repeated for the configured number of weeks
//   - xlsx: one sheet, one row per meeting
//
// Only current-term enrolments are exported. The file is returned in a
// buffer together with a suggested file name; the handler writes headers.
type ExportService interface {
	ExportSchedule(ctx context.Context, user *model.User, format string) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService creates an ExportService
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

func (s *exportService) ExportSchedule(ctx context.Context, user *model.User, format string) (*bytes.Buffer, string, error) {
	if format == "" {
		format = FormatICS
	}
	if format != FormatICS && format != FormatXLSX {
		return nil, "", ErrUnsupportedFormat
	}

	entries, err := s.repo.Schedule.ListByUser(ctx, user.ID, true)
	if err != nil {
		s.logger.Error("list schedule failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, "", err
	}
	live := entries[:0]
	for _, e := range entries {
		if e.Section != nil {
			live = append(live, e)
		}
	}
	if len(live) == 0 {
		return nil, "", ErrNoSchedule
	}

	term := s.cfg.Academic.CurrentTerm
	base := fmt.Sprintf("horario_%s_%s", user.Carne, term)

	switch format {
	case FormatXLSX:
		buf, err := s.renderXLSX(term, live)
		if err != nil {
			return nil, "", err
		}
		return buf, base + ".xlsx", nil
	default:
		return s.renderICS(user, term, live), base + ".ics", nil
	}
}

func (s *exportService) renderICS(user *model.User, term string, entries []model.UserScheduleEntry) *bytes.Buffer {
	start := s.cfg.Academic.TermStartDate()
	if start.IsZero() {
		start = s.now()
	}

	b := newCalendarBuilder(fmt.Sprintf("Horario %s %s", user.Name, term), start, s.cfg.Academic.TermWeeks, s.now())
	for i := range entries {
		entry := &entries[i]
		for j := range entry.Section.Meetings {
			meeting := &entry.Section.Meetings[j]
			if !b.addMeeting(entry, meeting) {
				s.logger.Warn("skip meeting with unknown day",
					zap.Uint("section_id", entry.SectionID),
					zap.String("day", meeting.DayOfWeek),
				)
			}
		}
	}

	s.logger.Info("schedule exported",
		zap.Uint("user_id", user.ID),
		zap.String("format", FormatICS),
		zap.Int("events", b.events),
	)
	return bytes.NewBufferString(b.serialize())
}

// renderXLSX layout:
//
//	row 1     title, merged across all columns
//	row 2     header
//	row 3...  one row per meeting; sections without meetings get one row
func (s *exportService) renderXLSX(term string, entries []model.UserScheduleEntry) (*bytes.Buffer, error) {
	headers := []string{"Code", "Course", "Section", "Professor", "Location", "Day", "Start", "End"}
	widths := []float64{12, 36, 9, 28, 14, 12, 8, 8}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Schedule"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, errExportGenerate
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	for i, w := range widths {
		col := colName(i)
		_ = f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	})

	// title
	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Schedule %s", term))
	_ = f.MergeCell(sheetName, "A1", cell(colName(len(headers)-1), 1))
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	// header
	for i, h := range headers {
		_ = f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	_ = f.SetCellStyle(sheetName, "A2", cell(colName(len(headers)-1), 2), headerStyle)

	// data
	row := 3
	for i := range entries {
		section := entries[i].Section
		code, name := "", ""
		if section.Course != nil {
			code, name = section.Course.Code, section.Course.Name
		}
		prefix := []interface{}{code, name, section.SectionCode, deref(section.Professor), deref(section.Location)}

		if len(section.Meetings) == 0 {
			_ = f.SetSheetRow(sheetName, cell("A", row), &prefix)
			row++
			continue
		}
		for _, m := range section.Meetings {
			values := append(append([]interface{}{}, prefix...),
				m.DayOfWeek, model.FormatClock(m.StartTime), model.FormatClock(m.EndTime))
			_ = f.SetSheetRow(sheetName, cell("A", row), &values)
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, errExportGenerate
	}
	return buf, nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
