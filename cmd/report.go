package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobscout/internal/pipeline"
	"jobscout/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Re-score the stored postings and write the digest and dashboard without fetching",
	Run: func(cmd *cobra.Command, _ []string) {
		runReport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command) {
	ctx := context.Background()

	log := mustLogger()
	config := mustConfig(log)

	p, st, err := buildPipeline(ctx, config, log)
	if err != nil {
		log.Fatal("building pipeline", zap.Error(err))
	}
	defer st.Close()

	now := time.Now().UTC()
	scored, err := p.Collect(ctx, now)
	if err != nil {
		log.Fatal("collecting postings", zap.Error(err))
	}

	dir := config.OutputDir
	if dir == "" {
		dir = defaultOutputDir
	}
	// No ingest happened, so only the board count is meaningful.
	stats := pipeline.Stats{Boards: len(config.boards())}
	digestPath, err := report.WriteDigest(dir, scored, stats, now)
	if err != nil {
		log.Fatal("writing digest", zap.Error(err))
	}
	dashPath, err := report.WriteDashboard(dir, scored, now)
	if err != nil {
		log.Fatal("writing dashboard", zap.Error(err))
	}

	log.Info("reports written",
		zap.String("digest", digestPath),
		zap.String("dashboard", dashPath),
		zap.Int("postings", len(scored)),
	)
}
