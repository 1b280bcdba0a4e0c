package screening

import (
	"strings"
	"testing"
)

func TestNormalizeTextCanonicalizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cv      string
		answers string
		expect  string
	}{
		{
			name:    "lowercases and collapses whitespace",
			cv:      "  John   DOE\n\tWarehouse ",
			answers: " Night  Shifts ",
			expect:  "john doe warehouse night shifts",
		},
		{
			name:    "empty answers",
			cv:      "Forklift operator",
			answers: "",
			expect:  "forklift operator",
		},
		{
			name:    "both empty",
			cv:      "",
			answers: "",
			expect:  "",
		},
		{
			name:    "newlines and tabs become single spaces",
			cv:      "a\n\nb",
			answers: "c\td",
			expect:  "a b c d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeText(tt.cv, tt.answers); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	t.Parallel()

	once := NormalizeText("  Mixed CASE\t text \n here ", "and  Answers")
	twice := NormalizeText(once, "")

	if once != twice {
		t.Fatalf("normalization is not idempotent: %q vs %q", once, twice)
	}
}

func TestDedupeKeyProperties(t *testing.T) {
	t.Parallel()

	key := DedupeKey("john doe warehouse")

	if len(key) != 16 {
		t.Fatalf("expected 16-character key, got %d: %q", len(key), key)
	}

	if key != strings.ToLower(key) {
		t.Fatalf("expected lowercase hex key, got %q", key)
	}

	for _, r := range key {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Fatalf("non-hex character %q in key %q", r, key)
		}
	}

	if DedupeKey("john doe warehouse") != key {
		t.Fatalf("same text produced different keys")
	}

	if DedupeKey("john doe warehouses") == key {
		t.Fatalf("different text produced the same key")
	}
}

func TestNormalizeSameKeyForWhitespaceVariants(t *testing.T) {
	t.Parallel()

	n := &Normalizer{}

	first := n.Normalize(Application{ApplicationID: "a1", CVText: "John Doe", ScreeningAnswersText: "night shifts"})
	second := n.Normalize(Application{ApplicationID: "a2", CVText: "  JOHN\tdoe ", ScreeningAnswersText: "Night\n shifts "})

	if first.DedupeKey != second.DedupeKey {
		t.Fatalf("whitespace/case variants produced different keys: %q vs %q", first.DedupeKey, second.DedupeKey)
	}

	if first.IsDuplicate || second.IsDuplicate {
		t.Fatalf("expected IsDuplicate to be false without a registry")
	}
}

func TestNormalizeWithRegistryFlagsResubmission(t *testing.T) {
	t.Parallel()

	n := &Normalizer{Registry: NewMemoryKeyRegistry()}
	app := Application{ApplicationID: "a1", CVText: "same text", ScreeningAnswersText: "same answers"}

	if first := n.Normalize(app); first.IsDuplicate {
		t.Fatalf("first submission flagged as duplicate")
	}

	if second := n.Normalize(app); !second.IsDuplicate {
		t.Fatalf("resubmission not flagged as duplicate")
	}
}
