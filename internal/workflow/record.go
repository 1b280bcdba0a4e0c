package workflow

import (
	"time"

	"github.com/talentgate/screener/internal/jobcontext"
	"github.com/talentgate/screener/internal/screening"
)

// RunStatus is the terminal (or in-flight) state of a screening run.
type RunStatus string

const (
	StatusRunning   RunStatus = "RUNNING"
	StatusCompleted RunStatus = "COMPLETED"
	StatusFailed    RunStatus = "FAILED"
	StatusAborted   RunStatus = "ABORTED"
)

// StageStatus describes how a single stage ended. A degraded stage recorded a
// recoverable problem (e.g. extraction fell back to defaults) but the run
// continued.
type StageStatus string

const (
	StageOK       StageStatus = "ok"
	StageDegraded StageStatus = "degraded"
	StageFailed   StageStatus = "failed"
)

// Stage names, in execution order.
const (
	StageLoadContext    = "load-context"
	StageIngest         = "ingest"
	StageNormalize      = "normalize-dedupe"
	StageExtract        = "extract"
	StageScore          = "score"
	StageDecide         = "decide"
	StageATSUpdate      = "ats-update"
	StageCandidateComms = "candidate-comms"
	StageScheduling     = "interview-scheduling"
	StageOutputMetrics  = "output-metrics"
	StageWriteBack      = "write-back"
)

// StageEntry is the audit marker for one executed stage. Entries are only
// ever appended to a run record, never rewritten.
type StageEntry struct {
	Name       string      `json:"name"`
	Status     StageStatus `json:"status"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	Error      string      `json:"error,omitempty"`
}

// DownstreamResult is the fixed-shape result of a stubbed downstream
// integration: a status plus a simulated reference identifier.
type DownstreamResult struct {
	Status    string `json:"status"`
	Reference string `json:"reference,omitempty"`
}

// RunRecord accumulates the output of every stage of one screening run. Each
// stage appends its own section; no stage deletes or overwrites a prior
// stage's output. That accumulation is the audit contract.
type RunRecord struct {
	RunID      string    `json:"run_id"`
	Status     RunStatus `json:"status"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	JobContext    *jobcontext.JobContext      `json:"job_context,omitempty"`
	Application   *screening.Application      `json:"application,omitempty"`
	Normalized    *screening.NormalizedRecord `json:"normalized,omitempty"`
	Profile       *screening.ExtractedProfile `json:"profile,omitempty"`
	RawExtraction string                      `json:"raw_extraction,omitempty"`
	Score         *screening.ScoreResult      `json:"score,omitempty"`
	Decision      *screening.Decision         `json:"decision,omitempty"`

	ATSUpdate      *DownstreamResult `json:"ats_update,omitempty"`
	CandidateComms *DownstreamResult `json:"candidate_comms,omitempty"`
	Scheduling     *DownstreamResult `json:"scheduling,omitempty"`
	Metrics        *DownstreamResult `json:"metrics,omitempty"`

	Stages []StageEntry `json:"stages"`
}

func (r *RunRecord) appendStage(entry StageEntry) {
	r.Stages = append(r.Stages, entry)
}

// StageNames returns the recorded stage names in execution order.
func (r *RunRecord) StageNames() []string {
	names := make([]string, 0, len(r.Stages))
	for _, stage := range r.Stages {
		names = append(names, stage.Name)
	}
	return names
}
