package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentgate/screener/internal/ai"
	"github.com/talentgate/screener/internal/audit"
	"github.com/talentgate/screener/internal/jobcontext"
	"github.com/talentgate/screener/internal/logger"
	"github.com/talentgate/screener/internal/screening"
)

// Deps aggregates the collaborators a screening run needs. A nil Extractor or
// Rationale is allowed: extraction degrades to the default profile and the
// deterministic fallback explanation is kept.
type Deps struct {
	Logger     *zap.Logger
	Builder    *jobcontext.Builder
	Normalizer *screening.Normalizer
	Extractor  ai.Extractor
	Rationale  ai.RationaleWriter
	Sink       audit.Sink
	ATS        ATSClient
	Comms      CommsClient
	Scheduler  SchedulerClient
	Metrics    MetricsClient
}

// Runner executes screening runs. Runs are independent: each carries its own
// RunRecord and shares no mutable state with other runs, so a single Runner
// is safe for concurrent use.
type Runner struct {
	deps Deps
}

func NewRunner(deps Deps) *Runner {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Builder == nil {
		deps.Builder = &jobcontext.Builder{}
	}
	if deps.Normalizer == nil {
		deps.Normalizer = &screening.Normalizer{}
	}
	if deps.Sink == nil {
		deps.Sink = audit.NewMemorySink()
	}
	if deps.ATS == nil {
		deps.ATS = StubATS{}
	}
	if deps.Comms == nil {
		deps.Comms = StubComms{}
	}
	if deps.Scheduler == nil {
		deps.Scheduler = StubScheduler{}
	}
	if deps.Metrics == nil {
		deps.Metrics = StubMetrics{}
	}

	return &Runner{deps: deps}
}

// Run takes one raw application through the full pipeline and persists the
// final record. The returned RunRecord always describes what happened, even
// when the run failed; the error is non-nil only for FAILED or ABORTED runs.
func (r *Runner) Run(ctx context.Context, jobDescriptionText string, app screening.Application) (*RunRecord, error) {
	rec := &RunRecord{
		RunID:     uuid.NewString(),
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
		Stages:    []StageEntry{},
	}

	log := logger.WithFields(r.deps.Logger, logger.RunFields(rec.RunID, app.ApplicationID)...)
	log.Info("screening run started")

	// load-context and ingest have no data dependency on each other; both
	// must finish before normalization. Stage entries are recorded after the
	// join so writes to the record stay serialized.
	var (
		jobCtx    jobcontext.JobContext
		ingested  screening.Application
		ingestErr error
	)

	openStart := time.Now().UTC()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		jobCtx = r.deps.Builder.Build(jobDescriptionText, app.JobID, app.LocationID)
	}()
	go func() {
		defer wg.Done()
		ingested, ingestErr = app.Ingest()
	}()
	wg.Wait()
	openEnd := time.Now().UTC()

	rec.JobContext = &jobCtx
	rec.appendStage(StageEntry{Name: StageLoadContext, Status: StageOK, StartedAt: openStart, FinishedAt: openEnd})

	ingestEntry := StageEntry{Name: StageIngest, Status: StageOK, StartedAt: openStart, FinishedAt: openEnd}
	if ingestErr != nil {
		ingestEntry.Status = StageFailed
		ingestEntry.Error = ingestErr.Error()
		rec.appendStage(ingestEntry)
		return r.terminate(rec, log, StatusFailed, fmt.Errorf("%s: %w", StageIngest, ingestErr))
	}
	rec.Application = &ingested
	rec.appendStage(ingestEntry)

	if err := r.runStage(ctx, rec, log, StageNormalize, func() (StageStatus, error) {
		normalized := r.deps.Normalizer.Normalize(ingested)
		rec.Normalized = &normalized
		return StageOK, nil
	}); err != nil {
		return r.terminate(rec, log, rec.Status, err)
	}

	if err := r.runStage(ctx, rec, log, StageExtract, func() (StageStatus, error) {
		profile := screening.DefaultProfile()
		status := StageOK
		var stageErr error

		if r.deps.Extractor == nil {
			status = StageDegraded
			stageErr = errors.New("extractor not configured; default profile applied")
		} else {
			extracted, raw, err := r.deps.Extractor.Extract(ctx, ai.ExtractionRequest{
				JobContext:  jobCtx,
				Application: ingested,
			})
			rec.RawExtraction = raw
			if err != nil {
				// Timeouts and malformed output degrade into missing
				// information, never into a rejected-by-accident run.
				status = StageDegraded
				stageErr = fmt.Errorf("extraction degraded to defaults: %w", err)
			} else {
				profile = extracted
			}
		}

		rec.Profile = &profile
		return status, stageErr
	}); err != nil {
		return r.terminate(rec, log, rec.Status, err)
	}

	if err := r.runStage(ctx, rec, log, StageScore, func() (StageStatus, error) {
		result := screening.Score(*rec.Profile)
		if result.Score < 0 || result.Score > 100 {
			return StageFailed, fmt.Errorf("score %d outside [0,100]", result.Score)
		}
		rec.Score = &result
		return StageOK, nil
	}); err != nil {
		return r.terminate(rec, log, rec.Status, err)
	}

	if err := r.runStage(ctx, rec, log, StageDecide, func() (StageStatus, error) {
		// Profile confidence is on the 0-100 scale; the gate compares on 0-1.
		decision := screening.Decide(*rec.Score, rec.Profile.Confidence/100)
		if !screening.ValidOutcome(decision.Outcome) {
			return StageFailed, fmt.Errorf("unrecognized outcome %q", decision.Outcome)
		}

		if r.deps.Rationale != nil {
			text, err := r.deps.Rationale.Write(ctx, ai.RationaleRequest{
				Score:        rec.Score.Score,
				MissingItems: rec.Score.MissingItems,
				Outcome:      string(decision.Outcome),
			})
			if err != nil {
				log.Warn("rationale generation failed, keeping fallback explanation", zap.Error(err))
			} else if text != "" {
				decision.Explanation = text
			}
		}

		rec.Decision = &decision
		return StageOK, nil
	}); err != nil {
		return r.terminate(rec, log, rec.Status, err)
	}

	if err := r.runStage(ctx, rec, log, StageATSUpdate, func() (StageStatus, error) {
		result, err := r.deps.ATS.UpdateStatus(ctx, ingested.ApplicationID, rec.Decision.Outcome)
		return r.recordDownstream(&rec.ATSUpdate, result, err)
	}); err != nil {
		return r.terminate(rec, log, rec.Status, err)
	}

	if err := r.runStage(ctx, rec, log, StageCandidateComms, func() (StageStatus, error) {
		result, err := r.deps.Comms.Notify(ctx, ingested.ApplicationID, *rec.Decision)
		return r.recordDownstream(&rec.CandidateComms, result, err)
	}); err != nil {
		return r.terminate(rec, log, rec.Status, err)
	}

	if err := r.runStage(ctx, rec, log, StageScheduling, func() (StageStatus, error) {
		if rec.Decision.Outcome != screening.OutcomeInterviewScheduled {
			rec.Scheduling = &DownstreamResult{Status: "skipped"}
			return StageOK, nil
		}
		result, err := r.deps.Scheduler.Schedule(ctx, ingested.ApplicationID)
		return r.recordDownstream(&rec.Scheduling, result, err)
	}); err != nil {
		return r.terminate(rec, log, rec.Status, err)
	}

	if err := r.runStage(ctx, rec, log, StageOutputMetrics, func() (StageStatus, error) {
		result, err := r.deps.Metrics.Emit(ctx, rec)
		return r.recordDownstream(&rec.Metrics, result, err)
	}); err != nil {
		return r.terminate(rec, log, rec.Status, err)
	}

	if err := r.runStage(ctx, rec, log, StageWriteBack, func() (StageStatus, error) {
		record := audit.Record{
			ApplicationID: ingested.ApplicationID,
			RunID:         rec.RunID,
			Status:        string(StatusCompleted),
			JobContext:    jobCtx,
			Application:   ingested,
			Normalized:    *rec.Normalized,
			Profile:       *rec.Profile,
			Score:         *rec.Score,
			Decision:      *rec.Decision,
		}
		if err := r.deps.Sink.Write(ctx, record); err != nil {
			return StageFailed, fmt.Errorf("write screening record: %w", err)
		}
		return StageOK, nil
	}); err != nil {
		return r.terminate(rec, log, rec.Status, err)
	}

	rec.Status = StatusCompleted
	rec.FinishedAt = time.Now().UTC()
	log.Info("screening run completed",
		zap.Int("score", rec.Score.Score),
		zap.String("outcome", string(rec.Decision.Outcome)),
	)

	return rec, nil
}

// runStage executes fn as a named stage, appends its audit entry and decides
// whether the run continues. Cancellation aborts the run before fn executes.
func (r *Runner) runStage(ctx context.Context, rec *RunRecord, log *zap.Logger, name string, fn func() (StageStatus, error)) error {
	if err := ctx.Err(); err != nil {
		now := time.Now().UTC()
		rec.appendStage(StageEntry{Name: name, Status: StageFailed, StartedAt: now, FinishedAt: now, Error: err.Error()})
		rec.Status = StatusAborted
		return fmt.Errorf("%s: %w", name, err)
	}

	started := time.Now().UTC()
	status, err := fn()

	entry := StageEntry{Name: name, Status: status, StartedAt: started, FinishedAt: time.Now().UTC()}
	if err != nil {
		entry.Error = err.Error()
	}
	rec.appendStage(entry)

	log.Debug("stage finished",
		zap.String("stage", name),
		zap.String("stage_status", string(status)),
	)

	if status == StageDegraded {
		log.Warn("stage degraded", zap.String("stage", name), zap.Error(err))
	}

	if status == StageFailed {
		rec.Status = StatusFailed
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}

// recordDownstream stores a stub/integration result. Downstream failures are
// recorded but never block the run.
func (r *Runner) recordDownstream(target **DownstreamResult, result DownstreamResult, err error) (StageStatus, error) {
	if err != nil {
		*target = &DownstreamResult{Status: "failed"}
		return StageDegraded, err
	}
	*target = &result
	return StageOK, nil
}

func (r *Runner) terminate(rec *RunRecord, log *zap.Logger, status RunStatus, err error) (*RunRecord, error) {
	rec.Status = status
	rec.FinishedAt = time.Now().UTC()
	log.Error("screening run did not complete",
		zap.String("run_status", string(status)),
		zap.Error(err),
	)
	return rec, err
}
