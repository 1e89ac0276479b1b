package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"reelscribe/internal/core/domain"
	"reelscribe/internal/core/ports"
)

// Materializer downloads each reel's media to local storage. Items are
// processed one at a time in input order; a failed item is dropped and the
// batch continues.
type Materializer struct {
	downloader ports.Downloader
	storage    ports.Storage
	log        *zap.SugaredLogger
}

// NewMaterializer creates a Materializer.
func NewMaterializer(downloader ports.Downloader, storage ports.Storage, log *zap.SugaredLogger) *Materializer {
	return &Materializer{
		downloader: downloader,
		storage:    storage,
		log:        log,
	}
}

// Materialize downloads every reel's media and returns only the reels whose
// file landed on disk with size > 0, each enriched with Filename and
// LocalPath, preserving relative order.
func (m *Materializer) Materialize(ctx context.Context, reels []domain.Reel) []domain.Reel {
	m.log.Infow("starting downloads", "count", len(reels))

	downloaded := make([]domain.Reel, 0, len(reels))
	for i, reel := range reels {
		if reel.VideoURL == "" {
			m.log.Warnw("skipping item", "index", i+1, "error", domain.ErrMediaMissing)
			continue
		}

		filename := buildFilename(reel.Caption, reel.Timestamp, i+1)
		path, err := m.fetch(ctx, reel.VideoURL, filename)
		if err != nil {
			m.log.Warnw("download failed, dropping item",
				"index", i+1, "filename", filename, "error", err)
			continue
		}

		reel.Filename = filename
		reel.LocalPath = path
		downloaded = append(downloaded, reel)
		m.log.Infow("downloaded", "index", i+1, "filename", filename)
	}

	m.log.Infow("download summary",
		"successful", len(downloaded), "failed", len(reels)-len(downloaded))
	return downloaded
}

func (m *Materializer) fetch(ctx context.Context, mediaURL, filename string) (string, error) {
	body, contentType, err := m.downloader.Download(ctx, mediaURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	// Advisory only; some hosts mislabel video responses.
	lower := strings.ToLower(contentType)
	if !strings.Contains(lower, "video") && !strings.Contains(lower, "octet-stream") {
		m.log.Warnw("unexpected content type", "content_type", contentType, "filename", filename)
	}

	path, size, err := m.storage.SaveMedia(filename, body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}
	if size == 0 {
		return "", fmt.Errorf("%w: downloaded file is empty", domain.ErrDownloadFailed)
	}
	return path, nil
}
