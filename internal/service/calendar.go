package service

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"tec-planning/backend/internal/model"
)

// ── iCalendar rendering ──────────────────────────────────────
//
// Each meeting of a current-term section becomes one VEVENT repeating
// weekly from the first matching weekday on or after the term start.
// ─────────────────────────────────────────────────────────────

const (
	campusTimezone = "America/Costa_Rica"
	calendarProdID = "-//tec-planning//schedule//ES"
)

// campusLocation is the zone meeting times are expressed in. Costa Rica has
// no daylight saving, so a fixed offset is an exact fallback.
func campusLocation() *time.Location {
	if loc, err := time.LoadLocation(campusTimezone); err == nil {
		return loc
	}
	return time.FixedZone("CST", -6*60*60)
}

var weekdays = map[string]time.Weekday{
	"domingo":   time.Sunday,
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miércoles": time.Wednesday,
	"miercoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sábado":    time.Saturday,
	"sabado":    time.Saturday,
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// parseWeekday accepts Spanish or English day names in any case.
func parseWeekday(day string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(day))]
	return wd, ok
}

// firstOccurrence is the first date on or after start falling on wd.
func firstOccurrence(start time.Time, wd time.Weekday) time.Time {
	offset := (int(wd) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, offset)
}

// atClock places a time-of-day on date in loc.
func atClock(date time.Time, clock time.Duration, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(clock)
}

type calendarBuilder struct {
	cal       *ics.Calendar
	termStart time.Time
	weeks     int
	loc       *time.Location
	stamp     time.Time
	events    int
}

func newCalendarBuilder(name string, termStart time.Time, weeks int, now time.Time) *calendarBuilder {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProdID)
	cal.SetName(name)
	cal.SetXWRCalName(name)
	cal.SetXWRTimezone(campusTimezone)

	if weeks <= 0 {
		weeks = 1
	}
	return &calendarBuilder{
		cal:       cal,
		termStart: termStart,
		weeks:     weeks,
		loc:       campusLocation(),
		stamp:     now,
	}
}

// addMeeting adds one recurring event; false when the day is unrecognised.
func (b *calendarBuilder) addMeeting(entry *model.UserScheduleEntry, meeting *model.CourseMeeting) bool {
	wd, ok := parseWeekday(meeting.DayOfWeek)
	if !ok {
		return false
	}
	section := entry.Section
	date := firstOccurrence(b.termStart, wd)

	evt := b.cal.AddEvent(fmt.Sprintf("%d-%d@tec-planning", entry.ID, meeting.ID))
	evt.SetDtStampTime(b.stamp)
	evt.SetStartAt(atClock(date, time.Duration(meeting.StartTime), b.loc))
	evt.SetEndAt(atClock(date, time.Duration(meeting.EndTime), b.loc))
	evt.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", b.weeks))

	summary := section.SectionCode
	if section.Course != nil {
		summary = fmt.Sprintf("%s %s (%s)", section.Course.Code, section.Course.Name, section.SectionCode)
	}
	evt.SetSummary(summary)
	if section.Location != nil && *section.Location != "" {
		evt.SetLocation(*section.Location)
	}
	if section.Professor != nil && *section.Professor != "" {
		evt.SetDescription("Profesor: " + *section.Professor)
	}

	b.events++
	return true
}

func (b *calendarBuilder) serialize() string {
	return b.cal.Serialize()
}
