// Package ffprobe implements ports.MediaProber via the ffprobe binary.
package ffprobe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const probeTimeout = 15 * time.Second

// Prober reads media durations with ffprobe.
type Prober struct {
	binaryPath string
}

// NewProber creates a Prober. An empty binaryPath assumes ffprobe on PATH.
func NewProber(binaryPath string) *Prober {
	if binaryPath == "" {
		binaryPath = "ffprobe"
	}
	return &Prober{binaryPath: binaryPath}
}

// Duration returns the container duration of the file at path in seconds.
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.binaryPath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w, stderr: %s", err, stderr.String())
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out.String()), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe returned unparseable duration %q: %w", out.String(), err)
	}
	return duration, nil
}
