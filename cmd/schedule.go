package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobscout/internal/report"
)

const defaultSchedule = "0 8 * * *"

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipeline on a cron schedule until interrupted",
	Run: func(cmd *cobra.Command, _ []string) {
		runSchedule(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(_ *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := mustLogger()
	config := mustConfig(log)

	spec := config.Schedule
	if spec == "" {
		spec = defaultSchedule
	}

	p, st, err := buildPipeline(ctx, config, log)
	if err != nil {
		log.Fatal("building pipeline", zap.Error(err))
	}
	defer st.Close()

	dir := config.OutputDir
	if dir == "" {
		dir = defaultOutputDir
	}

	runner := cron.New()
	_, err = runner.AddFunc(spec, func() {
		now := time.Now().UTC()
		stats, scored, err := p.Run(ctx, now)
		if err != nil {
			log.Error("scheduled run failed", zap.Error(err))
			return
		}
		if _, err := report.WriteDigest(dir, scored, stats, now); err != nil {
			log.Error("writing digest", zap.Error(err))
			return
		}
		if _, err := report.WriteDashboard(dir, scored, now); err != nil {
			log.Error("writing dashboard", zap.Error(err))
			return
		}
		log.Info("scheduled run finished",
			zap.Int("fetched", stats.Fetched),
			zap.Int("inserted", stats.Inserted),
			zap.Int("reposted", stats.Reposted),
			zap.Int("postings", len(scored)),
		)
	})
	if err != nil {
		log.Fatal("invalid cron schedule", zap.String("schedule", spec), zap.Error(err))
	}

	log.Info("scheduler started", zap.String("schedule", spec))
	runner.Start()

	<-ctx.Done()
	log.Info("shutting down scheduler")

	// Let an in-flight run finish.
	<-runner.Stop().Done()
}
