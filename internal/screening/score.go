package screening

import "strings"

// Criterion names as recorded in the score breakdown.
const (
	CriterionExperience      = "experience"
	CriterionCertification   = "certification"
	CriterionAvailability    = "availability"
	CriterionConfidenceBonus = "confidence_bonus"
)

// Missing-item labels, in rubric evaluation order.
const (
	MissingExperience    = "Minimum 2 years experience"
	MissingCertification = "Required certification"
	MissingAvailability  = "Availability confirmation"
)

// Rubric weights. Summed they cannot exceed 100.
const (
	pointsExperience      = 40
	pointsCertification   = 30
	pointsAvailability    = 20
	pointsConfidenceBonus = 10

	minYearsExperience   = 2
	confidenceBonusFloor = 75
)

// ScoreResult is the deterministic output of the scoring rubric.
type ScoreResult struct {
	Score        int            `json:"score"`
	MissingItems []string       `json:"missing_items"`
	Breakdown    map[string]int `json:"breakdown"`
}

// Score applies the fixed screening rubric to an extracted profile. Pure and
// deterministic; every criterion's awarded points land in the breakdown,
// including zeros.
func Score(p ExtractedProfile) ScoreResult {
	result := ScoreResult{
		MissingItems: []string{},
		Breakdown: map[string]int{
			CriterionExperience:      0,
			CriterionCertification:   0,
			CriterionAvailability:    0,
			CriterionConfidenceBonus: 0,
		},
	}

	if p.YearsExperience >= minYearsExperience {
		result.Breakdown[CriterionExperience] = pointsExperience
		result.Score += pointsExperience
	} else {
		result.MissingItems = append(result.MissingItems, MissingExperience)
	}

	if p.HasRequiredCertification {
		result.Breakdown[CriterionCertification] = pointsCertification
		result.Score += pointsCertification
	} else {
		result.MissingItems = append(result.MissingItems, MissingCertification)
	}

	if AvailabilityConfirmed(p.Availability) {
		result.Breakdown[CriterionAvailability] = pointsAvailability
		result.Score += pointsAvailability
	} else {
		result.MissingItems = append(result.MissingItems, MissingAvailability)
	}

	// Bonus only: low confidence is not a deficiency, so no missing item.
	if p.Confidence > confidenceBonusFloor {
		result.Breakdown[CriterionConfidenceBonus] = pointsConfidenceBonus
		result.Score += pointsConfidenceBonus
	}

	return result
}

// AvailabilityConfirmed reports whether the extracted availability counts as a
// confirmed value. Empty strings and explicit refusals do not.
func AvailabilityConfirmed(availability string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(availability))
	switch trimmed {
	case "", "none", "unavailable", "n/a", "no":
		return false
	}
	return true
}
