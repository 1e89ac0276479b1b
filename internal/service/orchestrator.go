// Package service contains the pipeline stages and the orchestrator that
// runs them: acquire → materialize → transcribe → aggregate, strictly
// stage by stage and item by item within a stage.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"reelscribe/internal/core/domain"
	"reelscribe/internal/core/ports"
)

// RunRequest describes one pipeline invocation.
type RunRequest struct {
	// Target is the profile URL, @handle, or bare username to scrape.
	Target string
	// Limit caps how many reels are processed.
	Limit int
	// Language overrides the configured creator language when non-empty.
	Language string
	// KeepFiles leaves the downloads directory in place after the run.
	KeepFiles bool
}

// Orchestrator coordinates the full batch pipeline. Item-level failures are
// isolated inside each stage; only a stage producing zero items aborts the
// run. One Orchestrator must not run two batches concurrently because the
// stages share the downloads directory and the recognition model.
type Orchestrator struct {
	source       ports.Source
	materializer *Materializer
	engine       *Engine
	storage      ports.Storage
	log          *zap.SugaredLogger
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(
	source ports.Source,
	materializer *Materializer,
	engine *Engine,
	storage ports.Storage,
	log *zap.SugaredLogger,
) *Orchestrator {
	return &Orchestrator{
		source:       source,
		materializer: materializer,
		engine:       engine,
		storage:      storage,
		log:          log,
	}
}

// Run executes one batch and returns the report plus the path it was
// written to. status is updated as the run progresses; on error it is
// marked failed before the error is returned.
func (o *Orchestrator) Run(ctx context.Context, req RunRequest, status *Status) (*domain.Report, string, error) {
	report, path, err := o.run(ctx, req, status)
	if err != nil {
		status.Fail(err)
		return nil, "", err
	}
	status.Complete(path)
	return report, path, nil
}

func (o *Orchestrator) run(ctx context.Context, req RunRequest, status *Status) (*domain.Report, string, error) {
	o.log.Infow("pipeline starting", "target", req.Target, "limit", req.Limit)

	if err := o.storage.EnsureDirs(); err != nil {
		return nil, "", fmt.Errorf("failed to prepare storage: %w", err)
	}

	status.SetStep("Scraping reels...", 10)
	records, err := o.source.Fetch(ctx, req.Target, req.Limit)
	if err != nil {
		return nil, "", err
	}

	reels := Acquire(records)
	if len(reels) == 0 {
		return nil, "", fmt.Errorf("no reels found for %s", req.Target)
	}
	o.log.Infow("reels acquired", "count", len(reels))
	status.SetTotal(len(reels))

	status.SetStep("Downloading videos...", 25)
	downloaded := o.materializer.Materialize(ctx, reels)
	if len(downloaded) == 0 {
		return nil, "", fmt.Errorf("no videos downloaded successfully")
	}

	status.SetStep("Transcribing videos...", 50)
	results := make([]domain.TranscriptionResult, 0, len(downloaded))
	for i, reel := range downloaded {
		o.log.Infow("transcribing", "item", i+1, "total", len(downloaded), "file", reel.Filename)
		results = append(results, o.engine.Transcribe(ctx, reel, req.Language))
		status.ItemDone()
		status.SetStep("Transcribing videos...", 50+40*(i+1)/len(downloaded))
	}

	status.SetStep("Formatting results...", 95)
	report := BuildReport(downloaded, results)

	path, err := o.storage.WriteReport(report)
	if err != nil {
		return nil, "", err
	}
	o.log.Infow("report written", "path", path,
		"total", report.Summary.TotalReels,
		"successful", report.Summary.SuccessfulTranscriptions,
		"failed", report.Summary.FailedTranscriptions)

	if !req.KeepFiles {
		if err := o.storage.RemoveDownloads(); err != nil {
			o.log.Warnw("failed to clean up downloads", "error", err)
		}
	}

	return report, path, nil
}
