package gemini

import (
	"context"
	"strconv"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/talentgate/screener/internal/ai"
	"github.com/talentgate/screener/internal/logger"
)

//go:embed rationale_prompt.md
var rationalePromptTemplate string

// RationaleWriter implements ai.RationaleWriter on top of a Gemini content
// generator. It only ever receives score, missing items and outcome; its
// output is presentation text and never feeds back into the decision.
type RationaleWriter struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewRationaleWriter(generator contentGenerator, log *zap.Logger, maxLogLength int) *RationaleWriter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &RationaleWriter{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (w *RationaleWriter) Write(ctx context.Context, req ai.RationaleRequest) (string, error) {
	missing := "none"
	if len(req.MissingItems) > 0 {
		missing = strings.Join(req.MissingItems, "; ")
	}

	template := rationalePromptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Outcome: {{OUTCOME}}\nScore: {{SCORE}}\nMissing: {{MISSING_ITEMS}}\n\nExplain in two sentences:"
	}

	prompt := strings.ReplaceAll(template, "{{OUTCOME}}", req.Outcome)
	prompt = strings.ReplaceAll(prompt, "{{SCORE}}", strconv.Itoa(req.Score))
	prompt = strings.ReplaceAll(prompt, "{{MISSING_ITEMS}}", missing)

	raw, err := w.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	w.logger.Debug("rationale response",
		zap.String("outcome", req.Outcome),
		zap.String("response_preview", logger.TruncateForLog(raw, w.maxLogLen)),
	)

	return strings.TrimSpace(raw), nil
}
