package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentgate/screener/internal/ai"
	"github.com/talentgate/screener/internal/ai/gemini"
	"github.com/talentgate/screener/internal/audit"
	"github.com/talentgate/screener/internal/jobcontext"
	"github.com/talentgate/screener/internal/logger"
	"github.com/talentgate/screener/internal/screening"
	"github.com/talentgate/screener/internal/secrets"
	"github.com/talentgate/screener/internal/workflow"
)

const (
	PromptYes         = "Yes"
	PromptNo          = "No"
	PromptShowContext = "Show derived job context"

	defaultAuditPath = "screener.db"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Screen all pending applications against the configured job",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before screening")
	runCmd.Flags().Bool("dry-run", false, "run the full pipeline without persisting records")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Job == nil || config.Job.DescriptionFile == "" {
		logger.Fatal("job description file is required under job.description-file")
	}

	if config.Applications == nil || config.Applications.Dir == "" {
		logger.Fatal("applications directory is required under applications.dir")
	}

	jdBytes, err := os.ReadFile(config.Job.DescriptionFile)
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}
	jobDescription := string(jdBytes)

	builder := &jobcontext.Builder{
		Lexicon:      &jobcontext.KeywordLexicon{Entries: config.Lexicon},
		AuditEnabled: config.Audit != nil && config.Audit.Enabled,
	}

	jobCtx := builder.Build(jobDescription, config.Job.ID, config.Job.LocationID)
	logger.Info("job context derived",
		zap.String("job_id", jobCtx.JobID),
		zap.String("jd_version", jobCtx.JDVersion),
		zap.Int("required_tags", len(jobCtx.Requirements.Required)),
		zap.Int("optional_tags", len(jobCtx.Requirements.Optional)),
	)

	apps, err := screening.LoadApplications(config.Applications.Dir)
	if err != nil {
		logger.Fatal("loading applications", zap.Error(err))
	}

	if len(apps) == 0 {
		logger.Info("exiting", zap.String("reason", "no applications found"))
		return
	}

	extractor, rationale := prepareCollaborators(ctx, config.AI, logger)

	sink, cleanup, err := prepareSink(ctx, cmd, config)
	if err != nil {
		logger.Fatal("preparing audit sink", zap.Error(err))
	}
	defer cleanup()

	if cmd.Flag("auto-approve").Value.String() == "false" {
		if !confirmBatch(logger, jobCtx, len(apps)) {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	runner := workflow.NewRunner(workflow.Deps{
		Logger:     logger,
		Builder:    builder,
		Normalizer: &screening.Normalizer{Registry: screening.NewMemoryKeyRegistry()},
		Extractor:  extractor,
		Rationale:  rationale,
		Sink:       sink,
	})

	counts := make(map[screening.Outcome]int)
	failed := 0

	for _, app := range apps {
		if app.JobID == "" {
			app.JobID = config.Job.ID
		}
		if app.LocationID == "" {
			app.LocationID = config.Job.LocationID
		}

		rec, err := runner.Run(ctx, jobDescription, app)
		if err != nil {
			failed++
			continue
		}

		counts[rec.Decision.Outcome]++
	}

	logger.Info("screening batch finished",
		zap.Int("applications", len(apps)),
		zap.Int("interviews_scheduled", counts[screening.OutcomeInterviewScheduled]),
		zap.Int("clarification_required", counts[screening.OutcomeClarificationRequired]),
		zap.Int("rejected", counts[screening.OutcomeRejected]),
		zap.Int("failed_runs", failed),
	)
}

func confirmBatch(log *zap.Logger, jobCtx jobcontext.JobContext, total int) bool {
	for {
		prompt := promptui.Select{
			Label: fmt.Sprintf("Screen %d applications for job %s?", total, jobCtx.JobID),
			Items: []string{PromptYes, PromptNo, PromptShowContext},
		}

		_, action, err := prompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}

		switch action {
		case PromptYes:
			return true
		case PromptShowContext:
			pretty, _ := json.MarshalIndent(jobCtx, "", "  ")
			log.Info(string(pretty))
		default:
			return false
		}
	}
}

func prepareSink(ctx context.Context, cmd *cobra.Command, config *Config) (audit.Sink, func(), error) {
	if cmd.Flag("dry-run").Value.String() == "true" {
		return audit.NewMemorySink(), func() {}, nil
	}

	path := defaultAuditPath
	if config.Audit != nil && strings.TrimSpace(config.Audit.Path) != "" {
		path = config.Audit.Path
	}

	sink, err := audit.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	return sink, func() { sink.Close() }, nil
}

// prepareCollaborators builds the extraction and rationale collaborators.
// Any problem here degrades to default-filled profiles instead of blocking
// the batch.
func prepareCollaborators(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Extractor, ai.RationaleWriter) {
	if cfg == nil || !cfg.Enabled {
		log.Warn("ai extraction disabled; profiles will be default-filled")
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		log.Warn("unsupported ai provider; screening without extraction", zap.String("provider", cfg.Provider))
		return nil, nil
	}

	if cfg.Gemini == nil {
		log.Warn("gemini configuration is required when ai is enabled; screening without extraction")
		return nil, nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		log.Warn("loading gemini api key; screening without extraction",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
		)
		return nil, nil
	}

	genLogger := logger.WithCommonFields(log, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(
		ctx,
		apiKey,
		cfg.Gemini.Model,
		cfg.Gemini.MaxRetries,
		time.Duration(cfg.Gemini.TimeoutSeconds)*time.Second,
		genLogger,
	)
	if err != nil {
		log.Warn("building gemini generator; screening without extraction", zap.Error(err))
		return nil, nil
	}

	extractor := gemini.NewExtractor(generator, genLogger, cfg.Gemini.MaxLogLength)
	rationale := gemini.NewRationaleWriter(generator, genLogger, cfg.Gemini.MaxLogLength)

	return extractor, rationale
}
