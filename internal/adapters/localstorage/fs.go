// Package localstorage implements ports.Storage on the local filesystem:
// a downloads directory for media files and an output directory for
// one timestamped report per run.
package localstorage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"reelscribe/internal/core/domain"
)

// LocalStorage implements ports.Storage.
type LocalStorage struct {
	DownloadsDir string
	OutputDir    string

	// now is swappable in tests.
	now func() time.Time
}

// New creates a LocalStorage rooted at the given directories.
func New(downloadsDir, outputDir string) *LocalStorage {
	return &LocalStorage{
		DownloadsDir: downloadsDir,
		OutputDir:    outputDir,
		now:          time.Now,
	}
}

// EnsureDirs creates the downloads and output directories.
func (s *LocalStorage) EnsureDirs() error {
	for _, dir := range []string{s.DownloadsDir, s.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SaveMedia streams r into the downloads directory under filename and
// returns the full path and the number of bytes written.
func (s *LocalStorage) SaveMedia(filename string, r io.Reader) (string, int64, error) {
	path := filepath.Join(s.DownloadsDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create media file %s: %w", path, err)
	}
	defer file.Close()

	n, err := io.Copy(file, r)
	if err != nil {
		return "", n, fmt.Errorf("failed to write media file %s: %w", path, err)
	}
	return path, n, nil
}

// WriteReport writes the report as results_<YYYYMMDD_HHMMSS>.json in the
// output directory. An existing file of the same name is never overwritten;
// a numeric suffix is appended instead.
func (s *LocalStorage) WriteReport(report *domain.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	stamp := s.now().Format("20060102_150405")
	path := filepath.Join(s.OutputDir, fmt.Sprintf("results_%s.json", stamp))
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(s.OutputDir, fmt.Sprintf("results_%s_%d.json", stamp, i))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}

// RemoveDownloads deletes the downloads directory and everything in it.
func (s *LocalStorage) RemoveDownloads() error {
	if err := os.RemoveAll(s.DownloadsDir); err != nil {
		return fmt.Errorf("failed to remove downloads directory: %w", err)
	}
	return nil
}
