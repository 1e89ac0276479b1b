package domain

import "errors"

// Failure taxonomy for the pipeline. Item-level errors (media missing,
// download failed, duration exceeded, transcription failed) never abort a
// batch; whole-stage errors (source unavailable, source timeout) do, and
// that decision belongs to the orchestrator.
var (
	ErrSourceUnavailable   = errors.New("source unavailable")
	ErrSourceTimeout       = errors.New("timed out waiting for source job")
	ErrMediaMissing        = errors.New("no usable media url")
	ErrDownloadFailed      = errors.New("download failed")
	ErrDurationExceeded    = errors.New("duration exceeds limit")
	ErrTranscriptionFailed = errors.New("transcription failed")
)
