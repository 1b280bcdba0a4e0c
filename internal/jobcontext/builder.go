package jobcontext

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const jdVersionLength = 12

// RequirementsSchema lists the requirement tags derived from a job
// description, split into required and nice-to-have.
type RequirementsSchema struct {
	Required []string `json:"required"`
	Optional []string `json:"optional"`
}

// ComplianceFlags carries per-job compliance toggles.
type ComplianceFlags struct {
	AuditEnabled bool `json:"audit_enabled"`
}

// JobContext is the candidate-independent context for one job description
// version. Immutable after creation; a changed description yields a new
// JDVersion.
type JobContext struct {
	JobID        string             `json:"job_id"`
	LocationID   string             `json:"location_id"`
	JDVersion    string             `json:"jd_version"`
	Requirements RequirementsSchema `json:"requirements"`
	Compliance   ComplianceFlags    `json:"compliance"`
}

// Lexicon matches a job description against a vocabulary and returns the
// derived requirements schema. Implementations must be deterministic. The
// interface exists so the keyword matcher can later be swapped for a
// language-aware one without touching the builder contract.
type Lexicon interface {
	Match(jobDescriptionText string) RequirementsSchema
}

// KeywordEntry binds a lexicon term to a requirement tag.
type KeywordEntry struct {
	Term     string `json:"term" mapstructure:"term"`
	Tag      string `json:"tag" mapstructure:"tag"`
	Required bool   `json:"required" mapstructure:"required"`
}

// KeywordLexicon matches entries by case-insensitive substring search.
// Unmatched vocabulary simply yields an empty or partial schema; that is a
// reportable state, never an error.
type KeywordLexicon struct {
	Entries []KeywordEntry
}

func (l *KeywordLexicon) Match(jobDescriptionText string) RequirementsSchema {
	schema := RequirementsSchema{Required: []string{}, Optional: []string{}}
	if l == nil {
		return schema
	}

	text := strings.ToLower(jobDescriptionText)
	seen := make(map[string]struct{}, len(l.Entries))

	for _, entry := range l.Entries {
		term := strings.ToLower(strings.TrimSpace(entry.Term))
		tag := strings.TrimSpace(entry.Tag)
		if term == "" || tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		if !strings.Contains(text, term) {
			continue
		}

		seen[tag] = struct{}{}
		if entry.Required {
			schema.Required = append(schema.Required, tag)
		} else {
			schema.Optional = append(schema.Optional, tag)
		}
	}

	return schema
}

// Builder derives job contexts. Same description text and lexicon always
// produce the same context.
type Builder struct {
	Lexicon      Lexicon
	AuditEnabled bool
}

// Build creates the JobContext for one job description version. It never
// fails: an unmatched description produces an empty requirements schema.
func (b *Builder) Build(jobDescriptionText, jobID, locationID string) JobContext {
	var schema RequirementsSchema
	if b != nil && b.Lexicon != nil {
		schema = b.Lexicon.Match(jobDescriptionText)
	} else {
		schema = RequirementsSchema{Required: []string{}, Optional: []string{}}
	}

	audit := false
	if b != nil {
		audit = b.AuditEnabled
	}

	return JobContext{
		JobID:        jobID,
		LocationID:   locationID,
		JDVersion:    JDVersion(jobDescriptionText),
		Requirements: schema,
		Compliance:   ComplianceFlags{AuditEnabled: audit},
	}
}

// JDVersion fingerprints the raw job description text so any edit produces a
// new version identifier.
func JDVersion(jobDescriptionText string) string {
	sum := sha256.Sum256([]byte(jobDescriptionText))
	return hex.EncodeToString(sum[:])[:jdVersionLength]
}
