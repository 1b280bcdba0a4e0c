package ai

import (
	"context"

	"github.com/talentgate/screener/internal/jobcontext"
	"github.com/talentgate/screener/internal/screening"
)

// ExtractionRequest is the input contract of the semantic-extraction
// collaborator.
type ExtractionRequest struct {
	JobContext  jobcontext.JobContext
	Application screening.Application
}

// Extractor turns a raw application into a structured profile. The raw
// collaborator response is returned alongside for the audit trail.
// Implementations must validate and default the response; callers treat any
// returned error as "degrade to the default profile", never as run-fatal.
type Extractor interface {
	Extract(ctx context.Context, req ExtractionRequest) (screening.ExtractedProfile, string, error)
}

// RationaleRequest is the input contract of the rationale collaborator.
// Data flows policy-to-text only: the generated explanation is never consumed
// as a decision input.
type RationaleRequest struct {
	Score        int
	MissingItems []string
	Outcome      string
}

// RationaleWriter produces a short human-readable explanation of a decision.
type RationaleWriter interface {
	Write(ctx context.Context, req RationaleRequest) (string, error)
}
