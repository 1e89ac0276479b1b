// Package whisper implements ports.SpeechModel by shelling out to the
// whisper.cpp command-line binary.
package whisper

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Recognizer runs a local whisper-cli binary against media files. The
// model file is fixed at construction and reused for every invocation;
// calls must stay sequential because inference saturates the CPU and the
// binary offers no concurrency of its own.
type Recognizer struct {
	binaryPath string
	modelPath  string
}

// NewRecognizer creates a Recognizer. An empty binaryPath falls back to
// whisper-cli on PATH; a local ./whisper-cli takes precedence when present.
func NewRecognizer(binaryPath, modelPath string) *Recognizer {
	if binaryPath == "" {
		binaryPath = "whisper-cli"
		if _, err := os.Stat("./whisper-cli"); err == nil {
			binaryPath = "./whisper-cli"
		}
	}
	return &Recognizer{binaryPath: binaryPath, modelPath: modelPath}
}

// Transcribe runs recognition over the file at path and returns the raw
// transcript text. An empty languageHint requests auto-detection.
func (r *Recognizer) Transcribe(ctx context.Context, path, languageHint string) (string, error) {
	lang := languageHint
	if lang == "" {
		lang = "auto"
	}

	// --no-timestamps keeps stdout as plain prose; -np silences progress.
	args := []string{
		"-m", r.modelPath,
		"-f", path,
		"-l", lang,
		"--no-timestamps",
		"-np",
	}

	cmd := exec.CommandContext(ctx, r.binaryPath, args...)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("whisper failed: %w, stderr: %s", err, stderr.String())
	}

	return strings.TrimSpace(out.String()), nil
}
