// Command reelscribe scrapes a profile's reels, downloads them, and
// produces a transcript report, either as a one-shot CLI run or behind
// a small HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"reelscribe/internal/adapters/apify"
	"reelscribe/internal/adapters/downloader"
	"reelscribe/internal/adapters/ffprobe"
	"reelscribe/internal/adapters/localstorage"
	"reelscribe/internal/adapters/whisper"
	"reelscribe/internal/config"
	"reelscribe/internal/service"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "reelscribe",
	Short: "Reel scraping and transcription pipeline",
	Long:  "Scrapes a profile's reels, downloads each clip, and produces a transcript report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("reelscribe 1.0.0")
		},
	})
}

func newLogger() (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// buildPipeline wires every adapter and stage from configuration.
func buildPipeline(cfg *config.Config, log *zap.SugaredLogger) *service.Orchestrator {
	source := apify.NewClient(cfg.ApifyToken, cfg.ApifyActorID, log,
		apify.WithPolling(cfg.PollInterval, cfg.PollBudget))
	dl := downloader.NewHTTPDownloader(cfg.DownloadTimeout)
	storage := localstorage.New(cfg.DownloadsDir, cfg.OutputDir)
	model := whisper.NewRecognizer(cfg.WhisperBinary, cfg.WhisperModel)
	prober := ffprobe.NewProber("")

	materializer := service.NewMaterializer(dl, storage, log)
	engine := service.NewEngine(model, prober, cfg.Language, cfg.MaxVideoDuration, log)

	return service.NewOrchestrator(source, materializer, engine, storage, log)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return nil, err
	}
	return cfg, nil
}
