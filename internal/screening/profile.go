package screening

import (
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ExtractedProfile is the structured view of an application produced by the
// extraction collaborator. It is untrusted input: always build it through
// ProfileFromMap or DefaultProfile, never from a raw unmarshal.
type ExtractedProfile struct {
	YearsExperience          float64  `json:"years_experience"`
	HasRequiredCertification bool     `json:"has_required_certification"`
	EducationLevel           string   `json:"education_level"`
	Skills                   []string `json:"skills"`
	Availability             string   `json:"availability"`
	Confidence               float64  `json:"confidence"`
}

// DefaultProfile is the safe fallback used when extraction output is
// malformed or the collaborator is unavailable. Every field fails its
// scoring criterion so missing items accumulate naturally.
func DefaultProfile() ExtractedProfile {
	return ExtractedProfile{
		YearsExperience:          0,
		HasRequiredCertification: false,
		EducationLevel:           "",
		Skills:                   []string{},
		Availability:             "",
		Confidence:               0,
	}
}

// ProfileFromMap converts a loosely typed JSON object into an
// ExtractedProfile. Missing or wrong-typed fields are defaulted instead of
// failing; out-of-range confidence is clamped into [0,100].
func ProfileFromMap(data map[string]any) ExtractedProfile {
	profile := DefaultProfile()
	if data == nil {
		return profile
	}

	decoded := DefaultProfile()
	cfg := &mapstructure.DecoderConfig{
		Result:           &decoded,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	if decoder, err := mapstructure.NewDecoder(cfg); err == nil {
		if err := decoder.Decode(data); err == nil {
			return sanitizeProfile(decoded)
		}
	}

	// Weak decoding rejected the object as a whole; salvage field by field.
	profile.YearsExperience = coerceFloat(data["years_experience"])
	profile.HasRequiredCertification = coerceBool(data["has_required_certification"])
	profile.EducationLevel = coerceString(data["education_level"])
	profile.Skills = coerceStrings(data["skills"])
	profile.Availability = coerceString(data["availability"])
	profile.Confidence = coerceFloat(data["confidence"])

	return sanitizeProfile(profile)
}

func sanitizeProfile(p ExtractedProfile) ExtractedProfile {
	if math.IsNaN(p.YearsExperience) || math.IsInf(p.YearsExperience, 0) || p.YearsExperience < 0 {
		p.YearsExperience = 0
	}

	if math.IsNaN(p.Confidence) || math.IsInf(p.Confidence, 0) || p.Confidence < 0 {
		p.Confidence = 0
	}
	if p.Confidence > 100 {
		p.Confidence = 100
	}

	p.EducationLevel = strings.TrimSpace(p.EducationLevel)
	p.Availability = strings.TrimSpace(p.Availability)

	skills := make([]string, 0, len(p.Skills))
	for _, skill := range p.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	p.Skills = skills

	return p
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	default:
		return false
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	default:
		return ""
	}
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				result = append(result, s)
			}
		}
		return result
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
		return []string{}
	default:
		return []string{}
	}
}
