package screening

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// dedupeKeyLength truncates the sha256 digest to 16 hex characters. This
// raises the collision probability compared to the full digest and is only a
// duplicate signal, not a collision-resistant identity.
const dedupeKeyLength = 16

// NormalizedRecord is the canonical form of an application's text plus its
// content fingerprint.
type NormalizedRecord struct {
	ApplicationID  string `json:"application_id"`
	NormalizedText string `json:"normalized_text"`
	DedupeKey      string `json:"dedupe_key"`
	IsDuplicate    bool   `json:"is_duplicate"`
}

// KeyRegistry is the seam for duplicate detection against an external key
// store. SeenAndRecord reports whether the key was already present and records
// it either way.
type KeyRegistry interface {
	SeenAndRecord(key string) bool
}

// Normalizer canonicalizes application text and derives the dedupe key.
// With a nil Registry, IsDuplicate is always false.
type Normalizer struct {
	Registry KeyRegistry
}

// Normalize concatenates cv text and screening answers, lower-cases the
// result, collapses all whitespace runs to single spaces and fingerprints the
// outcome. Pure apart from the optional registry lookup.
func (n *Normalizer) Normalize(app Application) NormalizedRecord {
	text := NormalizeText(app.CVText, app.ScreeningAnswersText)
	key := DedupeKey(text)

	duplicate := false
	if n != nil && n.Registry != nil {
		duplicate = n.Registry.SeenAndRecord(key)
	}

	return NormalizedRecord{
		ApplicationID:  app.ApplicationID,
		NormalizedText: text,
		DedupeKey:      key,
		IsDuplicate:    duplicate,
	}
}

// NormalizeText canonicalizes the two text blocks into a single lower-case,
// whitespace-collapsed string. Idempotent.
func NormalizeText(cvText, screeningAnswersText string) string {
	joined := strings.ToLower(strings.TrimSpace(cvText + " " + screeningAnswersText))
	return strings.Join(strings.Fields(joined), " ")
}

// DedupeKey returns the truncated lowercase-hex sha256 fingerprint of the
// UTF-8 encoding of text.
func DedupeKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:dedupeKeyLength]
}

// MemoryKeyRegistry is an in-process KeyRegistry for batch runs and tests.
type MemoryKeyRegistry struct {
	seen map[string]struct{}
}

func NewMemoryKeyRegistry() *MemoryKeyRegistry {
	return &MemoryKeyRegistry{seen: make(map[string]struct{})}
}

func (r *MemoryKeyRegistry) SeenAndRecord(key string) bool {
	if _, ok := r.seen[key]; ok {
		return true
	}
	r.seen[key] = struct{}{}
	return false
}
