package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jobscout/internal/pipeline"
	"jobscout/internal/posting"
	"jobscout/internal/scoring"
)

const (
	app = "jobscout"
)

type Config struct {
	Store     *StoreConfig        `mapstructure:"store"`
	Resume    *ResumeConfig       `mapstructure:"resume"`
	Boards    map[string][]string `mapstructure:"boards"`
	Companies map[string]string   `mapstructure:"companies"`
	Titles    *TitlesConfig       `mapstructure:"titles"`
	Scoring   *scoring.Config     `mapstructure:"scoring"`
	OutputDir string              `mapstructure:"output-dir"`
	UserAgent string              `mapstructure:"user-agent"`
	Schedule  string              `mapstructure:"schedule"`
	AI        *AIConfig           `mapstructure:"ai"`
}

type StoreConfig struct {
	Driver  string `mapstructure:"driver"`
	DSN     string `mapstructure:"dsn"`
	DSNFile string `mapstructure:"dsn-file"`
}

type ResumeConfig struct {
	Path    string `mapstructure:"path"`
	Country string `mapstructure:"country"`
	City    string `mapstructure:"city"`
}

type TitlesConfig struct {
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobscout discovers fresh job postings across company boards and ranks them against your resume",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("store.dsn-file", "JOBSCOUT_DSN_FILE"); err != nil {
		log.Fatalf("binding JOBSCOUT_DSN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Only the pipeline commands need a config file.
	needsConfig := runCmd.CalledAs() != "" || reportCmd.CalledAs() != "" ||
		gapsCmd.CalledAs() != "" || scheduleCmd.CalledAs() != ""
	if !needsConfig {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	return config, nil
}

// boards flattens the per-platform board lists into pipeline boards, with
// display names resolved from the companies map.
func (c *Config) boards() []pipeline.Board {
	var out []pipeline.Board
	for _, platform := range []posting.Platform{
		posting.PlatformGreenhouse,
		posting.PlatformLever,
		posting.PlatformAshby,
		posting.PlatformWorkable,
	} {
		for _, slug := range c.Boards[string(platform)] {
			out = append(out, pipeline.Board{
				Platform:    platform,
				Slug:        slug,
				DisplayName: c.Companies[slug],
			})
		}
	}
	return out
}

// scoringConfig merges the built-in profile with config-file overrides.
func (c *Config) scoringConfig() (*scoring.Config, error) {
	cfg := scoring.DefaultConfig()
	if c.Scoring != nil {
		if len(c.Scoring.Buckets) > 0 {
			cfg.Buckets = c.Scoring.Buckets
		}
		if c.Scoring.AIBucket != "" {
			cfg.AIBucket = c.Scoring.AIBucket
		}
		if c.Scoring.TodayMinFresh > 0 {
			cfg.TodayMinFresh = c.Scoring.TodayMinFresh
		}
		if c.Scoring.TodayMinFit > 0 {
			cfg.TodayMinFit = c.Scoring.TodayMinFit
		}
		if c.Scoring.WeekMinFresh > 0 {
			cfg.WeekMinFresh = c.Scoring.WeekMinFresh
		}
		if c.Scoring.WeekMinFit > 0 {
			cfg.WeekMinFit = c.Scoring.WeekMinFit
		}
		if c.Scoring.RepostPenalty > 0 {
			cfg.RepostPenalty = c.Scoring.RepostPenalty
		}
	}
	if err := cfg.Compile(); err != nil {
		return nil, err
	}
	return cfg, nil
}
