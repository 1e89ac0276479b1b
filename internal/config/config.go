// Package config loads configuration from a .env file, the environment,
// and an optional YAML file, in that order of discovery.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultActorID          = "apify~instagram-reel-scraper"
	defaultDownloadsDir     = "downloads"
	defaultOutputDir        = "output"
	defaultLanguage         = "en"
	defaultMaxVideoDuration = 180.0
	defaultPollInterval     = 5 * time.Second
	defaultPollBudget       = 300 * time.Second
	defaultDownloadTimeout  = 30 * time.Second
	defaultWhisperBinary    = "whisper-cli"
	defaultWhisperModel     = "models/ggml-base.bin"
	defaultServerAddr       = ":8080"
)

// Config holds every tunable of the pipeline.
type Config struct {
	ApifyToken   string `mapstructure:"apify_token"`
	ApifyActorID string `mapstructure:"apify_actor_id"`

	DownloadsDir string `mapstructure:"downloads_dir"`
	OutputDir    string `mapstructure:"output_dir"`

	// Language is the creator language hint for recognition; "en" selects
	// auto-detection.
	Language string `mapstructure:"creator_language"`

	// MaxVideoDuration is the per-clip duration cap in seconds.
	MaxVideoDuration float64 `mapstructure:"max_video_duration"`

	PollInterval    time.Duration `mapstructure:"poll_interval"`
	PollBudget      time.Duration `mapstructure:"poll_budget"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`

	WhisperBinary string `mapstructure:"whisper_binary"`
	WhisperModel  string `mapstructure:"whisper_model"`

	ServerAddr string `mapstructure:"server_addr"`
}

// Load reads configuration. A missing .env or config.yaml is fine;
// a missing APIFY_TOKEN is not.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("apify_actor_id", defaultActorID)
	v.SetDefault("downloads_dir", defaultDownloadsDir)
	v.SetDefault("output_dir", defaultOutputDir)
	v.SetDefault("creator_language", defaultLanguage)
	v.SetDefault("max_video_duration", defaultMaxVideoDuration)
	v.SetDefault("poll_interval", defaultPollInterval)
	v.SetDefault("poll_budget", defaultPollBudget)
	v.SetDefault("download_timeout", defaultDownloadTimeout)
	v.SetDefault("whisper_binary", defaultWhisperBinary)
	v.SetDefault("whisper_model", defaultWhisperModel)
	v.SetDefault("server_addr", defaultServerAddr)

	v.AutomaticEnv()
	for _, key := range []string{
		"apify_token", "apify_actor_id", "downloads_dir", "output_dir",
		"creator_language", "max_video_duration", "poll_interval",
		"poll_budget", "download_timeout", "whisper_binary",
		"whisper_model", "server_addr",
	} {
		_ = v.BindEnv(key)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the required settings.
func (c *Config) Validate() error {
	if c.ApifyToken == "" {
		return fmt.Errorf("APIFY_TOKEN is not set")
	}
	if c.MaxVideoDuration <= 0 {
		return fmt.Errorf("max_video_duration must be positive, got %v", c.MaxVideoDuration)
	}
	return nil
}
