package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/talentgate/screener/internal/ai"
	"github.com/talentgate/screener/internal/logger"
	"github.com/talentgate/screener/internal/screening"
)

//go:embed extract_prompt.md
var extractPromptTemplate string

const defaultMaxLogLength = 200

// contentGenerator is the minimal surface the extractor needs from the
// Gemini client; tests substitute a stub.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// profileSchema mirrors the ExtractedProfile field names and types. The model
// response is validated against it before being trusted; validation failure
// routes the object through the coerce-and-default path instead of aborting.
var profileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"years_experience":           map[string]any{"type": "number", "minimum": 0},
		"has_required_certification": map[string]any{"type": "boolean"},
		"education_level":            map[string]any{"type": "string"},
		"skills":                     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"availability":               map[string]any{"type": "string"},
		"confidence":                 map[string]any{"type": "number", "minimum": 0, "maximum": 100},
	},
	"required": []string{
		"years_experience",
		"has_required_certification",
		"education_level",
		"skills",
		"availability",
		"confidence",
	},
}

// Extractor implements ai.Extractor on top of a Gemini content generator.
type Extractor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Extractor{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Extract asks the model for a single JSON object describing the application
// and validates it into a profile. The raw response is returned for the audit
// trail. Errors mean "no usable object at all"; callers degrade to the
// default profile rather than failing the run.
func (e *Extractor) Extract(ctx context.Context, req ai.ExtractionRequest) (screening.ExtractedProfile, string, error) {
	jobJSON, err := json.MarshalIndent(req.JobContext, "", "  ")
	if err != nil {
		return screening.DefaultProfile(), "", fmt.Errorf("marshal job context: %w", err)
	}

	appJSON, err := json.MarshalIndent(req.Application, "", "  ")
	if err != nil {
		return screening.DefaultProfile(), "", fmt.Errorf("marshal application: %w", err)
	}

	prompt := buildExtractionPrompt(string(jobJSON), string(appJSON))

	e.logger.Debug("extraction request",
		zap.String(logger.FieldApplicationID, req.Application.ApplicationID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return screening.DefaultProfile(), "", err
	}

	e.logger.Debug("extraction response",
		zap.String(logger.FieldApplicationID, req.Application.ApplicationID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	obj, err := firstJSONObject(raw)
	if err != nil {
		return screening.DefaultProfile(), raw, fmt.Errorf("parse extraction response: %w", err)
	}

	if err := validateProfileObject(obj); err != nil {
		e.logger.Debug("extraction output failed schema validation, defaulting fields",
			zap.String(logger.FieldApplicationID, req.Application.ApplicationID),
			zap.Error(err),
		)
	}

	return screening.ProfileFromMap(obj), raw, nil
}

func buildExtractionPrompt(jobContextJSON, applicationJSON string) string {
	template := extractPromptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job context:\n{{JOB_CONTEXT_JSON}}\n\nApplication:\n{{APPLICATION_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{JOB_CONTEXT_JSON}}", jobContextJSON)
	prompt = strings.ReplaceAll(prompt, "{{APPLICATION_JSON}}", applicationJSON)
	return prompt
}

// firstJSONObject locates and parses the first syntactically valid JSON
// object in raw, discarding surrounding prose, markdown fences and trailing
// fragments.
func firstJSONObject(raw string) (map[string]any, error) {
	cleaned := stripFences(raw)

	for i := 0; i < len(cleaned); i++ {
		if cleaned[i] != '{' {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(cleaned[i:]))
		var obj map[string]any
		if err := dec.Decode(&obj); err == nil {
			return obj, nil
		}
	}

	return nil, errors.New("no JSON object found in response")
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func validateProfileObject(obj map[string]any) error {
	b, err := json.Marshal(profileSchema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("profile.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}

	schema, err := compiler.Compile("profile.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	if err := schema.Validate(map[string]any(obj)); err != nil {
		return fmt.Errorf("profile does not match schema: %w", err)
	}

	return nil
}
