package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed data/*.json
var embedded embed.FS

const (
	programFile         = "program_data.json"
	currentSectionsFile = "current_term_sections.json"
	nextSectionsFile    = "next_term_sections.json"
	eventsFile          = "academic_events.json"
	demoUsersFile       = "demo_users.json"
)

// DefaultFixtures returns the fixtures compiled into the binary.
func DefaultFixtures() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// ── fixture documents ──
// Key names follow the published data files.

type programFixture struct {
	Code              string         `json:"code"`
	Program           string         `json:"program"`
	Jornada           string         `json:"jornada"`
	Sedes             []string       `json:"sedes"`
	Degree            string         `json:"grado_académico"`
	LastUpdated       string         `json:"última_actualización"`
	TotalCredits      int            `json:"total_credits"`
	NumberOfSemesters int            `json:"number_of_semesters"`
	Blocks            []blockFixture `json:"courses"`
}

type blockFixture struct {
	Number  int             `json:"bloque"`
	Courses []courseFixture `json:"courses"`
}

type courseFixture struct {
	Code          string  `json:"codigo"`
	Name          string  `json:"nombre"`
	Credits       int     `json:"creditos"`
	Hours         int     `json:"horas"`
	Requirements  *string `json:"requisitos"`
	Corequisites  *string `json:"correquisitos"`
	DefaultStatus string  `json:"status"`
}

type offeringFixture struct {
	Code      string           `json:"code"`
	Professor *string          `json:"professor"`
	Location  *string          `json:"location"`
	Meetings  []meetingFixture `json:"sections"`
}

type meetingFixture struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type eventFixture struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Type string `json:"type"`
}

type demoUserFixture struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Carne    string `json:"carne"`
	Program  string `json:"program"`
}

func loadJSON(fsys fs.FS, name string, v interface{}) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}
