package audit

import (
	"context"
	"errors"
	"time"

	"github.com/talentgate/screener/internal/jobcontext"
	"github.com/talentgate/screener/internal/screening"
)

// ErrNotFound is returned when no record exists for an application.
var ErrNotFound = errors.New("screening record not found")

// Record is the persisted artifact of one completed run, keyed by
// application. Written once per run, additively: a later run for the same
// application replaces the content but the sink never drops fields a stage
// recorded.
type Record struct {
	ApplicationID string                      `json:"application_id"`
	RunID         string                      `json:"run_id"`
	Status        string                      `json:"status"`
	JobContext    jobcontext.JobContext       `json:"job_context"`
	Application   screening.Application       `json:"application"`
	Normalized    screening.NormalizedRecord  `json:"normalized"`
	Profile       screening.ExtractedProfile  `json:"profile"`
	Score         screening.ScoreResult       `json:"score"`
	Decision      screening.Decision          `json:"decision"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// Sink persists screening records. Writes for different applications never
// contend; a write is a read-modify-write scoped to one application's row.
type Sink interface {
	Write(ctx context.Context, record Record) error
	Get(ctx context.Context, applicationID string) (*Record, error)
	List(ctx context.Context) ([]Record, error)
}
