package cmd

import (
	"context"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentgate/screener/internal/audit"
	"github.com/talentgate/screener/internal/export"
	"github.com/talentgate/screener/internal/logger"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export persisted screening records to an xlsx report",
	Run: func(cmd *cobra.Command, _ []string) {
		report(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringP("output", "o", "screening-report.xlsx", "path of the generated xlsx file")
}

func report(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	path := defaultAuditPath
	if config != nil && config.Audit != nil && strings.TrimSpace(config.Audit.Path) != "" {
		path = config.Audit.Path
	}

	sink, err := audit.OpenSQLite(ctx, path)
	if err != nil {
		logger.Fatal("opening audit store", zap.Error(err))
	}
	defer sink.Close()

	records, err := sink.List(ctx)
	if err != nil {
		logger.Fatal("listing screening records", zap.Error(err))
	}

	if len(records) == 0 {
		logger.Info("exiting", zap.String("reason", "no screening records found"))
		return
	}

	output := cmd.Flag("output").Value.String()
	if err := export.WriteReport(records, output); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}

	logger.Info("report written",
		zap.String("path", output),
		zap.Int("records", len(records)),
	)
}
