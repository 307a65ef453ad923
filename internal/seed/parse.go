package seed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

var spanishMonths = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.RFC3339Nano,
}

// parseISODate accepts an ISO-8601 date or datetime and keeps the date part.
func parseISODate(value string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseLastUpdated reads a program revision date written either as ISO-8601
// or as "15 de julio de 2024" (Spanish month names, any case). It returns
// ok=false and a nil date for anything else, including impossible dates.
func ParseLastUpdated(value string) (*time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false
	}
	if t, ok := parseISODate(value); ok {
		return &t, true
	}

	parts := strings.Fields(strings.ReplaceAll(value, " de ", " "))
	if len(parts) != 3 {
		return nil, false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, false
	}
	month, ok := spanishMonths[strings.ToLower(parts[1])]
	if !ok {
		return nil, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return nil, false
	}
	return &t, true
}

// parseClock reads a 24-hour "HH:MM" time of day.
func parseClock(value string) (datatypes.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), 0, 0), nil
}
