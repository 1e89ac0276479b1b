package ports

import (
	"context"
	"io"

	"reelscribe/internal/core/domain"
)

// Source defines the contract for discovering reels via the remote
// job-based scraping service.
type Source interface {
	// Fetch submits a scraping job for the target profile, waits for it to
	// finish, and returns at most limit raw records that carry a usable
	// media reference. A failed or timed-out job surfaces as
	// domain.ErrSourceUnavailable or domain.ErrSourceTimeout.
	Fetch(ctx context.Context, target string, limit int) ([]domain.RawRecord, error)
}

// Downloader defines the contract for fetching media files.
type Downloader interface {
	// Download streams the media at mediaURL. It returns the body, which
	// the caller must close, and the response content type.
	Download(ctx context.Context, mediaURL string) (io.ReadCloser, string, error)
}

// Storage defines the contract for persisting batch artifacts.
type Storage interface {
	// EnsureDirs creates the downloads and output directories.
	EnsureDirs() error

	// SaveMedia streams a media file into the downloads directory and
	// returns its full path and size in bytes.
	SaveMedia(filename string, r io.Reader) (string, int64, error)

	// WriteReport writes the report as a timestamped JSON file in the
	// output directory, never overwriting an existing file, and returns
	// the path written.
	WriteReport(report *domain.Report) (string, error)

	// RemoveDownloads deletes the downloads directory and its contents.
	RemoveDownloads() error
}

// SpeechModel is the opaque recognition capability: local file in, raw
// transcript text out. An empty languageHint requests auto-detection.
// Implementations are not safe for concurrent calls.
type SpeechModel interface {
	Transcribe(ctx context.Context, path, languageHint string) (string, error)
}

// MediaProber reports the duration of a local media file in seconds.
type MediaProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}
