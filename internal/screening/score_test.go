package screening

import (
	"reflect"
	"testing"
)

func TestScoreRubric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		profile       ExtractedProfile
		expectScore   int
		expectMissing []string
		breakdown     map[string]int
	}{
		{
			name: "fully qualified profile",
			profile: ExtractedProfile{
				YearsExperience:          3,
				HasRequiredCertification: true,
				Availability:             "night shifts",
				Confidence:               82,
			},
			expectScore:   100,
			expectMissing: []string{},
			breakdown: map[string]int{
				CriterionExperience:      40,
				CriterionCertification:   30,
				CriterionAvailability:    20,
				CriterionConfidenceBonus: 10,
			},
		},
		{
			name: "nothing qualifies",
			profile: ExtractedProfile{
				YearsExperience:          1,
				HasRequiredCertification: false,
				Availability:             "",
				Confidence:               50,
			},
			expectScore:   0,
			expectMissing: []string{MissingExperience, MissingCertification, MissingAvailability},
			breakdown: map[string]int{
				CriterionExperience:      0,
				CriterionCertification:   0,
				CriterionAvailability:    0,
				CriterionConfidenceBonus: 0,
			},
		},
		{
			name: "availability missing, confidence at the floor earns no bonus",
			profile: ExtractedProfile{
				YearsExperience:          2,
				HasRequiredCertification: true,
				Availability:             "",
				Confidence:               75,
			},
			expectScore:   70,
			expectMissing: []string{MissingAvailability},
			breakdown: map[string]int{
				CriterionExperience:      40,
				CriterionCertification:   30,
				CriterionAvailability:    0,
				CriterionConfidenceBonus: 0,
			},
		},
		{
			name: "availability missing, confidence above the floor earns the bonus",
			profile: ExtractedProfile{
				YearsExperience:          2,
				HasRequiredCertification: true,
				Availability:             "",
				Confidence:               82,
			},
			expectScore:   80,
			expectMissing: []string{MissingAvailability},
			breakdown: map[string]int{
				CriterionExperience:      40,
				CriterionCertification:   30,
				CriterionAvailability:    0,
				CriterionConfidenceBonus: 10,
			},
		},
		{
			name: "exactly two years counts",
			profile: ExtractedProfile{
				YearsExperience: 2,
				Confidence:      10,
			},
			expectScore:   40,
			expectMissing: []string{MissingCertification, MissingAvailability},
			breakdown: map[string]int{
				CriterionExperience:      40,
				CriterionCertification:   0,
				CriterionAvailability:    0,
				CriterionConfidenceBonus: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Score(tt.profile)

			if got.Score != tt.expectScore {
				t.Fatalf("expected score %d, got %d", tt.expectScore, got.Score)
			}
			if !reflect.DeepEqual(got.MissingItems, tt.expectMissing) {
				t.Fatalf("expected missing items %v, got %v", tt.expectMissing, got.MissingItems)
			}
			if !reflect.DeepEqual(got.Breakdown, tt.breakdown) {
				t.Fatalf("expected breakdown %v, got %v", tt.breakdown, got.Breakdown)
			}
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	t.Parallel()

	profile := ExtractedProfile{
		YearsExperience:          4,
		HasRequiredCertification: true,
		Availability:             "full time",
		Confidence:               88,
	}

	first := Score(profile)
	second := Score(profile)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("scoring is not deterministic: %+v vs %+v", first, second)
	}
}

func TestScoreMonotonicInQualifications(t *testing.T) {
	t.Parallel()

	weaker := Score(ExtractedProfile{YearsExperience: 3, Confidence: 50})
	stronger := Score(ExtractedProfile{
		YearsExperience:          3,
		HasRequiredCertification: true,
		Confidence:               50,
	})

	if stronger.Score <= weaker.Score {
		t.Fatalf("adding a qualification did not raise the score: %d vs %d", weaker.Score, stronger.Score)
	}
	if len(stronger.MissingItems) >= len(weaker.MissingItems) {
		t.Fatalf("adding a qualification did not shrink missing items: %v vs %v", weaker.MissingItems, stronger.MissingItems)
	}
}

func TestAvailabilityConfirmed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value  string
		expect bool
	}{
		{"night shifts", true},
		{"Weekends only", true},
		{"", false},
		{"  ", false},
		{"none", false},
		{"NONE", false},
		{"unavailable", false},
		{"n/a", false},
		{"no", false},
	}

	for _, tt := range tests {
		if got := AvailabilityConfirmed(tt.value); got != tt.expect {
			t.Errorf("AvailabilityConfirmed(%q) = %v, expected %v", tt.value, got, tt.expect)
		}
	}
}
