package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	keyFile := filepath.Join(t.TempDir(), "api-key")
	if err := os.WriteFile(keyFile, []byte("  file-secret \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %s", err)
	}

	emptyFile := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(emptyFile, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %s", err)
	}

	tests := []struct {
		name      string
		src       Source
		expect    string
		expectErr bool
	}{
		{
			name:   "inline value",
			src:    Source{Name: "api key", Value: "  inline-secret  "},
			expect: "inline-secret",
		},
		{
			name:   "file value",
			src:    Source{Name: "api key", File: keyFile},
			expect: "file-secret",
		},
		{
			name:   "file takes precedence over value",
			src:    Source{Name: "api key", Value: "inline-secret", File: keyFile},
			expect: "file-secret",
		},
		{
			name:      "missing file",
			src:       Source{Name: "api key", File: filepath.Join(t.TempDir(), "nope")},
			expectErr: true,
		},
		{
			name:      "empty file",
			src:       Source{Name: "api key", File: emptyFile},
			expectErr: true,
		},
		{
			name:      "nothing configured",
			src:       Source{Name: "api key"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Load(tt.src)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected an error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
