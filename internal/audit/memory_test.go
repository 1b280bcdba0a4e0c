package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/talentgate/screener/internal/screening"
)

func sampleRecord(applicationID, runID string) Record {
	return Record{
		ApplicationID: applicationID,
		RunID:         runID,
		Status:        "COMPLETED",
		Score:         screening.ScoreResult{Score: 100, MissingItems: []string{}},
		Decision:      screening.Decision{Outcome: screening.OutcomeInterviewScheduled, Explanation: "all requirements met"},
	}
}

func TestMemorySinkWriteAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sink := NewMemorySink()

	if err := sink.Write(ctx, sampleRecord("app-1", "run-1")); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	got, err := sink.Get(ctx, "app-1")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if got.RunID != "run-1" || got.Decision.Outcome != screening.OutcomeInterviewScheduled {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set: %+v", got)
	}
}

func TestMemorySinkGetMissing(t *testing.T) {
	t.Parallel()

	sink := NewMemorySink()

	if _, err := sink.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemorySinkRewritePreservesCreatedAt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sink := NewMemorySink()

	if err := sink.Write(ctx, sampleRecord("app-1", "run-1")); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	first, err := sink.Get(ctx, "app-1")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if err := sink.Write(ctx, sampleRecord("app-1", "run-2")); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	second, err := sink.Get(ctx, "app-1")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if second.RunID != "run-2" {
		t.Fatalf("rewrite did not replace the record: %+v", second)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("rewrite changed created_at: %s vs %s", first.CreatedAt, second.CreatedAt)
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Fatalf("updated_at moved backwards: %s vs %s", first.UpdatedAt, second.UpdatedAt)
	}
}

func TestMemorySinkWriteRequiresApplicationID(t *testing.T) {
	t.Parallel()

	if err := NewMemorySink().Write(context.Background(), Record{RunID: "run-1"}); err == nil {
		t.Fatalf("expected an error for a record without an application id")
	}
}

func TestMemorySinkListSorted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sink := NewMemorySink()

	for _, id := range []string{"app-c", "app-a", "app-b"} {
		if err := sink.Write(ctx, sampleRecord(id, "run-"+id)); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	records, err := sink.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, expect := range []string{"app-a", "app-b", "app-c"} {
		if records[i].ApplicationID != expect {
			t.Fatalf("records not sorted by application id: %+v", records)
		}
	}
}
