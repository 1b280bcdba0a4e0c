package screening

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Application is a single raw submission. Immutable once ingested.
type Application struct {
	ApplicationID        string `json:"application_id"`
	CVText               string `json:"cv_text"`
	ScreeningAnswersText string `json:"screening_answers_text"`
	JobID                string `json:"job_id"`
	LocationID           string `json:"location_id"`
	DeclaredAvailability string `json:"declared_availability"`
}

// Ingest validates the raw submission and fills a missing application
// identifier. An application with no textual content at all cannot be screened.
func (a Application) Ingest() (Application, error) {
	if strings.TrimSpace(a.CVText) == "" && strings.TrimSpace(a.ScreeningAnswersText) == "" {
		return a, fmt.Errorf("application has neither cv text nor screening answers")
	}

	if strings.TrimSpace(a.ApplicationID) == "" {
		a.ApplicationID = uuid.NewString()
	}

	return a, nil
}

// LoadApplications reads every *.json file in dir as an Application.
// Files are processed in lexical order so batch runs are reproducible.
func LoadApplications(dir string) ([]Application, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading applications dir %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	apps := make([]Application, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading application %q: %w", path, err)
		}

		var app Application
		if err := json.Unmarshal(data, &app); err != nil {
			return nil, fmt.Errorf("parsing application %q: %w", path, err)
		}

		apps = append(apps, app)
	}

	return apps, nil
}
