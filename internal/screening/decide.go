package screening

import (
	"fmt"
	"strings"
)

// Outcome is the terminal screening decision for one application.
type Outcome string

const (
	OutcomeInterviewScheduled    Outcome = "INTERVIEW_SCHEDULED"
	OutcomeClarificationRequired Outcome = "CLARIFICATION_REQUIRED"
	OutcomeRejected              Outcome = "REJECTED"
)

// Rejection reason codes.
const (
	ReasonLowConfidence          = "LOW_CONFIDENCE"
	ReasonInsufficientExperience = "INSUFFICIENT_EXPERIENCE"
	ReasonMissingCertification   = "MISSING_CERTIFICATION"
	ReasonUnconfirmedAvailable   = "UNCONFIRMED_AVAILABILITY"
	ReasonLowScore               = "LOW_SCORE"
)

// Score bands and the confidence gate, on their native scales.
const (
	scoreBandHigh   = 75
	scoreBandMedium = 40
	confidenceGate  = 0.6
)

// Decision is the output of the decision policy.
type Decision struct {
	Outcome             Outcome `json:"outcome"`
	RejectionReasonCode string  `json:"rejection_reason_code,omitempty"`
	Explanation         string  `json:"explanation"`
}

// ValidOutcome reports whether o is one of the three recognized outcomes.
func ValidOutcome(o Outcome) bool {
	switch o {
	case OutcomeInterviewScheduled, OutcomeClarificationRequired, OutcomeRejected:
		return true
	}
	return false
}

// Decide maps a score result and extraction confidence to a terminal outcome.
// Pure and deterministic. Confidence may be supplied on a 0-1 or 0-100 scale;
// values above 1 are divided by 100 before the gate comparison.
//
// Band order: a fully qualified top-band result wins over the low-confidence
// gate (a candidate who matched every requirement is never silently rejected
// just because the extractor was unsure of itself), and a low-band result
// rejects on its dominant missing requirement so the candidate learns the
// actual gap. The gate applies in between, downgrading a would-be
// clarification to a rejection.
func Decide(result ScoreResult, confidence float64) Decision {
	normalized := confidence
	if normalized > 1 {
		normalized /= 100
	}

	if result.Score >= scoreBandHigh && len(result.MissingItems) == 0 {
		return withFallbackExplanation(Decision{Outcome: OutcomeInterviewScheduled}, result)
	}

	if result.Score < scoreBandMedium {
		return withFallbackExplanation(Decision{
			Outcome:             OutcomeRejected,
			RejectionReasonCode: dominantReason(result.MissingItems),
		}, result)
	}

	if normalized < confidenceGate {
		return withFallbackExplanation(Decision{
			Outcome:             OutcomeRejected,
			RejectionReasonCode: ReasonLowConfidence,
		}, result)
	}

	return withFallbackExplanation(Decision{Outcome: OutcomeClarificationRequired}, result)
}

// dominantReason maps the first missing item, in the fixed rubric order
// experience -> certification -> availability, to a rejection reason code.
func dominantReason(missingItems []string) string {
	if len(missingItems) == 0 {
		return ReasonLowScore
	}

	switch missingItems[0] {
	case MissingExperience:
		return ReasonInsufficientExperience
	case MissingCertification:
		return ReasonMissingCertification
	case MissingAvailability:
		return ReasonUnconfirmedAvailable
	default:
		return ReasonLowScore
	}
}

// withFallbackExplanation fills a deterministic explanation so a decision is
// always presentable even when the rationale collaborator is unavailable. The
// rationale text may later replace it but can never change the outcome.
func withFallbackExplanation(d Decision, result ScoreResult) Decision {
	switch d.Outcome {
	case OutcomeInterviewScheduled:
		d.Explanation = fmt.Sprintf("Scored %d/100 with all requirements met.", result.Score)
	case OutcomeClarificationRequired:
		d.Explanation = fmt.Sprintf("Scored %d/100; clarification needed on: %s.",
			result.Score, strings.Join(result.MissingItems, ", "))
	case OutcomeRejected:
		if len(result.MissingItems) > 0 {
			d.Explanation = fmt.Sprintf("Scored %d/100; unmet requirements: %s.",
				result.Score, strings.Join(result.MissingItems, ", "))
		} else {
			d.Explanation = fmt.Sprintf("Scored %d/100, below the screening threshold.", result.Score)
		}
	}
	return d
}
