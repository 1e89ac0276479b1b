package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"reelscribe/internal/core/domain"
)

// fakeSource serves a canned record list.
type fakeSource struct {
	records []domain.RawRecord
	err     error
}

func (f *fakeSource) Fetch(ctx context.Context, target string, limit int) ([]domain.RawRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.records) > limit {
		return f.records[:limit], nil
	}
	return f.records, nil
}

// fakeDownloader maps URLs to canned bodies; unknown URLs fail.
type fakeDownloader struct {
	bodies      map[string]string
	contentType string
}

func (f *fakeDownloader) Download(ctx context.Context, mediaURL string) (io.ReadCloser, string, error) {
	body, ok := f.bodies[mediaURL]
	if !ok {
		return nil, "", fmt.Errorf("%w: connection refused", domain.ErrDownloadFailed)
	}
	ct := f.contentType
	if ct == "" {
		ct = "video/mp4"
	}
	return io.NopCloser(strings.NewReader(body)), ct, nil
}

// fakeStorage writes media under a temp dir and remembers written reports.
type fakeStorage struct {
	dir string

	mu      sync.Mutex
	reports []*domain.Report
}

func (f *fakeStorage) EnsureDirs() error { return nil }

func (f *fakeStorage) SaveMedia(filename string, r io.Reader) (string, int64, error) {
	path := filepath.Join(f.dir, filename)
	file, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer file.Close()
	n, err := io.Copy(file, r)
	return path, n, err
}

func (f *fakeStorage) WriteReport(report *domain.Report) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, report)
	return filepath.Join(f.dir, "results_test.json"), nil
}

func (f *fakeStorage) RemoveDownloads() error { return nil }

// fakeModel returns fixed text and records whether it was invoked.
type fakeModel struct {
	text  string
	err   error
	calls int
	langs []string
}

func (f *fakeModel) Transcribe(ctx context.Context, path, languageHint string) (string, error) {
	f.calls++
	f.langs = append(f.langs, languageHint)
	return f.text, f.err
}

// fakeProber returns a fixed duration.
type fakeProber struct {
	duration float64
	err      error
}

func (f *fakeProber) Duration(ctx context.Context, path string) (float64, error) {
	return f.duration, f.err
}
