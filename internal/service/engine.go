package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"reelscribe/internal/core/domain"
	"reelscribe/internal/core/ports"
	"reelscribe/internal/transcript"
)

// Engine runs speech-to-text over downloaded clips, one at a time. The
// recognition model is constructed once and reused; it is not safe for
// concurrent calls, so Transcribe must stay sequential.
type Engine struct {
	model       ports.SpeechModel
	prober      ports.MediaProber
	defaultLang string
	maxDuration float64
	log         *zap.SugaredLogger
}

// NewEngine creates an Engine with the given language default and
// per-clip duration cap in seconds.
func NewEngine(model ports.SpeechModel, prober ports.MediaProber, language string, maxDuration float64, log *zap.SugaredLogger) *Engine {
	return &Engine{
		model:       model,
		prober:      prober,
		defaultLang: language,
		maxDuration: maxDuration,
		log:         log,
	}
}

// Transcribe produces a TranscriptionResult for one reel. All failures are
// converted into a failure result; the method never returns an error. An
// empty language falls back to the engine default, and the default "en"
// requests auto-detection from the model.
func (e *Engine) Transcribe(ctx context.Context, reel domain.Reel, language string) domain.TranscriptionResult {
	result := domain.TranscriptionResult{ItemID: reel.ID}

	if _, err := os.Stat(reel.LocalPath); err != nil {
		result.Error = fmt.Sprintf("video file not found: %s", reel.LocalPath)
		return result
	}

	duration, err := e.prober.Duration(ctx, reel.LocalPath)
	if err != nil {
		// A failed probe leaves duration at 0, which the cap below cannot
		// catch. Logged loudly because the limit is unenforced for this item.
		e.log.Warnw("duration probe failed, duration cap not enforced",
			"path", reel.LocalPath, "error", err)
		duration = 0
	}

	if duration > e.maxDuration {
		result.Duration = duration
		result.Error = fmt.Sprintf("video duration (%.1fs) exceeds limit (%.0fs)",
			duration, e.maxDuration)
		e.log.Warnw("skipping clip", "file", reel.Filename,
			"duration_s", duration, "error", domain.ErrDurationExceeded)
		return result
	}

	if language == "" {
		language = e.defaultLang
	}
	hint := language
	if hint == "en" {
		hint = ""
	}

	start := time.Now()
	rawText, err := e.model.Transcribe(ctx, reel.LocalPath, hint)
	processingTime := time.Since(start).Seconds()
	if err != nil {
		result.Error = err.Error()
		e.log.Errorw("model invocation failed", "file", reel.Filename,
			"error", fmt.Errorf("%w: %v", domain.ErrTranscriptionFailed, err))
		return result
	}

	clean := transcript.Normalize(rawText)

	result.Success = true
	result.Transcript = clean
	result.WordCount = transcript.WordCount(clean)
	result.Duration = duration
	result.ProcessingTime = processingTime
	result.RawText = rawText

	e.log.Infow("transcription completed",
		"file", reel.Filename, "duration_s", duration, "words", result.WordCount)
	return result
}
