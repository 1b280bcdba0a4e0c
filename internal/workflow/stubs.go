package workflow

import (
	"context"

	"github.com/google/uuid"

	"github.com/talentgate/screener/internal/screening"
)

// Downstream integration contracts. The implementations below are stubs that
// return contract-shaped results without external calls; real integrations
// swap in behind the same interfaces. A real implementation must map its own
// failures into a recorded, non-blocking result: no candidate-facing decision
// may depend on ATS, communication or scheduling success.

type ATSClient interface {
	UpdateStatus(ctx context.Context, applicationID string, outcome screening.Outcome) (DownstreamResult, error)
}

type CommsClient interface {
	Notify(ctx context.Context, applicationID string, decision screening.Decision) (DownstreamResult, error)
}

type SchedulerClient interface {
	Schedule(ctx context.Context, applicationID string) (DownstreamResult, error)
}

type MetricsClient interface {
	Emit(ctx context.Context, record *RunRecord) (DownstreamResult, error)
}

func simulatedRef(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

type StubATS struct{}

func (StubATS) UpdateStatus(_ context.Context, _ string, _ screening.Outcome) (DownstreamResult, error) {
	return DownstreamResult{Status: "updated", Reference: simulatedRef("ats")}, nil
}

type StubComms struct{}

func (StubComms) Notify(_ context.Context, _ string, _ screening.Decision) (DownstreamResult, error) {
	return DownstreamResult{Status: "sent", Reference: simulatedRef("msg")}, nil
}

type StubScheduler struct{}

func (StubScheduler) Schedule(_ context.Context, _ string) (DownstreamResult, error) {
	return DownstreamResult{Status: "scheduled", Reference: simulatedRef("slot")}, nil
}

type StubMetrics struct{}

func (StubMetrics) Emit(_ context.Context, _ *RunRecord) (DownstreamResult, error) {
	return DownstreamResult{Status: "emitted", Reference: simulatedRef("metric")}, nil
}
