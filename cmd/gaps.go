package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobscout/internal/ai"
	"jobscout/internal/ai/gemini"
	"jobscout/internal/pipeline"
	"jobscout/internal/secrets"
)

const (
	promptNextPosting = "Next posting"
	promptAIAdvice    = "Ask for tailored advice"
	promptQuit        = "Quit"
)

var errExit = errors.New("exit requested")

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Walk the top postings interactively and see what the resume is missing for each",
	Run: func(cmd *cobra.Command, _ []string) {
		runGaps(cmd)
	},
}

func init() {
	rootCmd.AddCommand(gapsCmd)

	gapsCmd.Flags().IntP("limit", "n", 10, "how many postings to walk through")
}

func runGaps(cmd *cobra.Command) {
	ctx := context.Background()

	log := mustLogger()
	config := mustConfig(log)

	p, st, err := buildPipeline(ctx, config, log)
	if err != nil {
		log.Fatal("building pipeline", zap.Error(err))
	}
	defer st.Close()

	if p.Profile == nil {
		log.Fatal("gap analysis needs a loadable resume profile under resume.path")
	}

	scored, err := p.Collect(ctx, time.Now().UTC())
	if err != nil {
		log.Fatal("collecting postings", zap.Error(err))
	}
	if len(scored) == 0 {
		log.Info("store is empty, run `jobscout run` first")
		return
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	advisor := maybeAdvisor(ctx, config, log)

	for _, s := range scored {
		printPosting(s)

		items := []string{promptNextPosting, promptQuit}
		if advisor != nil {
			items = []string{promptAIAdvice, promptNextPosting, promptQuit}
		}

		if err := promptLoop(ctx, s, advisor, items, p.Profile.FlattenText(), log); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			log.Fatal("prompt failed", zap.Error(err))
		}
	}
}

func printPosting(s pipeline.ScoredPosting) {
	p := s.Posting
	fmt.Printf("\n%s — %s (%s)\n", p.Company, p.Title, p.Location)
	fmt.Printf("  tier %s · fresh %d · fit %d · %s\n", s.Score.Tier, s.Score.Freshness, s.Score.Fit, p.URL)
	if len(s.Gaps) == 0 {
		fmt.Println("  no scored buckets to analyze")
		return
	}
	for _, g := range s.Gaps {
		if g.Delta == 0 {
			fmt.Printf("  ✓ %s covered\n", g.Bucket)
			continue
		}
		fmt.Printf("  ✗ %s: %s (+%d possible)\n", g.Bucket, g.Status, g.Delta)
		if g.Suggestion != "" {
			fmt.Printf("    %s\n", g.Suggestion)
		}
	}
}

func promptLoop(ctx context.Context, s pipeline.ScoredPosting, advisor ai.Advisor, items []string, resumeText string, log *zap.Logger) error {
	for {
		prompt := promptui.Select{Label: "Proceed?", Items: items}
		_, answer, err := prompt.Run()
		if err != nil {
			return err
		}

		switch answer {
		case promptNextPosting:
			return nil
		case promptQuit:
			return errExit
		case promptAIAdvice:
			advice, err := advisor.Advise(ctx, s.Posting, s.Gaps, resumeText)
			if err != nil {
				log.Warn("advisor failed", zap.Error(err))
				continue
			}
			if len(advice) == 0 {
				fmt.Println("  nothing to improve for this posting")
				continue
			}
			for _, a := range advice {
				fmt.Printf("  %s: %s\n", a.Bucket, a.Suggestion)
				if a.Bullet != "" {
					fmt.Printf("    → %s\n", a.Bullet)
				}
			}
		}
	}
}

// maybeAdvisor builds the Gemini advisor when AI is enabled and configured.
// Any setup problem only disables the option.
func maybeAdvisor(ctx context.Context, config *Config, log *zap.Logger) ai.Advisor {
	if config.AI == nil || !config.AI.Enabled || config.AI.Gemini == nil {
		return nil
	}

	key, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.AI.Gemini.APIKey,
		File:  config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		log.Warn("ai enabled but no usable api key, advice disabled", zap.Error(err))
		return nil
	}

	gen, err := gemini.NewGenerator(ctx, key, config.AI.Gemini.Model)
	if err != nil {
		log.Warn("creating gemini client failed, advice disabled", zap.Error(err))
		return nil
	}

	return gemini.NewAdvisor(gen, log, config.AI.Gemini.MaxLogLength)
}
