package screening

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIngestValidatesContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		app       Application
		expectErr bool
	}{
		{
			name: "cv text only",
			app:  Application{ApplicationID: "a1", CVText: "warehouse worker"},
		},
		{
			name: "answers only",
			app:  Application{ApplicationID: "a2", ScreeningAnswersText: "available nights"},
		},
		{
			name:      "no content at all",
			app:       Application{ApplicationID: "a3"},
			expectErr: true,
		},
		{
			name:      "whitespace-only content",
			app:       Application{ApplicationID: "a4", CVText: "   ", ScreeningAnswersText: "\n\t"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.app.Ingest()
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected an error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got.ApplicationID != tt.app.ApplicationID {
				t.Fatalf("ingest changed the application id: %q", got.ApplicationID)
			}
		})
	}
}

func TestIngestFillsMissingID(t *testing.T) {
	t.Parallel()

	got, err := Application{CVText: "some cv"}.Ingest()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if got.ApplicationID == "" {
		t.Fatalf("expected a generated application id")
	}
}

func TestLoadApplications(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing fixture: %s", err)
		}
	}

	write("b.json", `{"application_id":"app-b","cv_text":"second"}`)
	write("a.json", `{"application_id":"app-a","cv_text":"first"}`)
	write("notes.txt", "not an application")

	apps, err := LoadApplications(dir)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(apps) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(apps))
	}
	if apps[0].ApplicationID != "app-a" || apps[1].ApplicationID != "app-b" {
		t.Fatalf("applications not in lexical file order: %+v", apps)
	}
}

func TestLoadApplicationsBadJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("writing fixture: %s", err)
	}

	if _, err := LoadApplications(dir); err == nil {
		t.Fatalf("expected an error for malformed json")
	}
}

func TestLoadApplicationsMissingDir(t *testing.T) {
	t.Parallel()

	if _, err := LoadApplications(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected an error for a missing directory")
	}
}
