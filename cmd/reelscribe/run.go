package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"reelscribe/internal/core/domain"
	"reelscribe/internal/service"
)

var (
	runURL       string
	runLimit     int
	runLanguage  string
	runKeepFiles bool
	runQuiet     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scrape-download-transcribe batch",
	Example: `  reelscribe run --url https://instagram.com/username --limit 5
  reelscribe run --url @username --limit 3 --lang it --keep-files`,
	RunE: runBatch,
}

func init() {
	runCmd.Flags().StringVar(&runURL, "url", "", "profile URL, @handle, or username (required)")
	runCmd.Flags().IntVar(&runLimit, "limit", 10, "maximum number of reels to process")
	runCmd.Flags().StringVar(&runLanguage, "lang", "", "creator language hint (default from config)")
	runCmd.Flags().BoolVar(&runKeepFiles, "keep-files", false, "keep downloaded video files")
	runCmd.Flags().BoolVar(&runQuiet, "quiet", false, "suppress the summary, print only the report JSON")
	_ = runCmd.MarkFlagRequired("url")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	orch := buildPipeline(cfg, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	status := service.NewStatus()
	report, path, err := orch.Run(ctx, service.RunRequest{
		Target:    runURL,
		Limit:     runLimit,
		Language:  runLanguage,
		KeepFiles: runKeepFiles,
	}, status)
	if err != nil {
		log.Errorw("pipeline failed", "error", err)
		return err
	}

	if runQuiet {
		return printReportJSON(report)
	}

	printSummary(report, path)
	return nil
}

func printReportJSON(report *domain.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printSummary(report *domain.Report, path string) {
	s := report.Summary
	fmt.Println()
	fmt.Println("=== Processing Summary ===")
	fmt.Printf("Total reels:           %d\n", s.TotalReels)
	fmt.Printf("Successful:            %d\n", s.SuccessfulTranscriptions)
	fmt.Printf("Failed:                %d\n", s.FailedTranscriptions)
	fmt.Printf("Total words:           %d\n", s.TotalWords)
	fmt.Printf("Total duration:        %.1fs\n", s.TotalDuration)
	if s.SuccessfulTranscriptions > 0 {
		fmt.Printf("Average words/reel:    %.1f\n",
			float64(s.TotalWords)/float64(s.SuccessfulTranscriptions))
	}
	fmt.Printf("Report:                %s\n", path)
	fmt.Println()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Status", "Words", "Duration", "Caption"})
	for i, entry := range report.Reels {
		status := "ok"
		if !entry.TranscriptionSuccess {
			status = "failed"
		}
		t.AppendRow(table.Row{
			i + 1, status, entry.WordCount,
			fmt.Sprintf("%.1fs", entry.Duration),
			text.Snip(entry.Caption, 50, "..."),
		})
	}
	t.Render()
}
