package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"jobscout/internal/logger"
	"jobscout/internal/normalize"
	"jobscout/internal/pipeline"
	"jobscout/internal/report"
	"jobscout/internal/resume"
	"jobscout/internal/secrets"
	"jobscout/internal/source"
	"jobscout/internal/store"
)

const defaultOutputDir = "out"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch all configured boards, update the store and write the digest and dashboard",
	Run: func(cmd *cobra.Command, _ []string) {
		runOnce(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("no-report", false, "update the store without writing the digest and dashboard")
	viper.BindPFlag("no-report", runCmd.Flags().Lookup("no-report"))
}

func runOnce(_ *cobra.Command) {
	ctx := context.Background()

	log := mustLogger()
	config := mustConfig(log)

	log.Info("starting jobscout", zap.String("version", version))

	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	p, st, err := buildPipeline(ctx, config, log)
	if err != nil {
		log.Fatal("building pipeline", zap.Error(err))
	}
	defer st.Close()

	now := time.Now().UTC()
	stats, scored, err := p.Run(ctx, now)
	if err != nil {
		log.Fatal("pipeline run failed", zap.Error(err))
	}

	log.Info("ingest finished",
		zap.Int("boards", stats.Boards),
		zap.Int("failed_boards", stats.Failed),
		zap.Int("fetched", stats.Fetched),
		zap.Int("filtered", stats.Filtered),
		zap.Int("malformed", stats.Malformed),
		zap.Int("inserted", stats.Inserted),
		zap.Int("refreshed", stats.Refreshed),
		zap.Int("reposted", stats.Reposted),
	)

	if viper.GetBool("no-report") {
		return
	}

	dir := config.OutputDir
	if dir == "" {
		dir = defaultOutputDir
	}
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

func mustLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

func mustConfig(log *zap.Logger) *Config {
	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		log.Fatal("config is required")
	}
	if len(config.boards()) == 0 {
		log.Fatal("at least one board is required under the boards key")
	}
	return config
}

// buildPipeline wires the store, source client, normalizer and resume
// profile into a ready pipeline. A broken resume profile degrades scoring
// instead of aborting.
func buildPipeline(ctx context.Context, config *Config, log *zap.Logger) (*pipeline.Pipeline, store.Store, error) {
	st, err := openStore(ctx, config)
	if err != nil {
		return nil, nil, err
	}

	scoringCfg, err := config.scoringConfig()
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("scoring config: %w", err)
	}

	var titles *normalize.TitleFilter
	if config.Titles != nil {
		titles, err = normalize.NewTitleFilter(config.Titles.Include, config.Titles.Exclude)
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("title filter: %w", err)
		}
	}

	client := source.NewClient()
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	p := &pipeline.Pipeline{
		Fetcher:    client,
		Store:      st,
		Normalizer: normalize.New(titles),
		Scoring:    scoringCfg,
		Boards:     config.boards(),
		Log:        log,
	}

	if config.Resume != nil && config.Resume.Path != "" {
		profile, err := resume.Load(config.Resume.Path)
		switch {
		case errors.Is(err, resume.ErrInvalidProfile):
			log.Warn("resume profile is invalid, fit scoring and gap analysis disabled", zap.Error(err))
		case err != nil:
			st.Close()
			return nil, nil, fmt.Errorf("loading resume: %w", err)
		default:
			p.Profile = profile
			p.UserCountry = config.Resume.Country
			p.UserCity = config.Resume.City
			if p.UserCountry == "" {
				p.UserCountry = profile.Country
			}
			if p.UserCity == "" {
				p.UserCity = profile.City
			}
		}
	}

	return p, st, nil
}

func openStore(ctx context.Context, config *Config) (store.Store, error) {
	if config.Store == nil || config.Store.Driver == "" || config.Store.Driver == "memory" {
		return store.NewMemory(), nil
	}
	if config.Store.Driver != "postgres" {
		return nil, fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}

	dsn, err := secrets.Load(secrets.Source{
		Name:  "store dsn",
		Value: config.Store.DSN,
		File:  config.Store.DSNFile,
	})
	if err != nil {
		return nil, err
	}
	return store.NewPostgres(ctx, dsn)
}
