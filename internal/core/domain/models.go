package domain

import "time"

// Reel is one discovered media item flowing through the pipeline.
// The Acquirer creates it from a raw source record; the Materializer
// adds Filename and LocalPath once the clip is on disk. All other
// fields are immutable after acquisition.
type Reel struct {
	ID        string `json:"id"`
	ReelURL   string `json:"reelUrl"`
	VideoURL  string `json:"videoUrl"`
	Caption   string `json:"caption"`
	Timestamp string `json:"timestamp"`
	Likes     int    `json:"likes"`
	Comments  int    `json:"comments"`
	Filename  string `json:"filename,omitempty"`
	LocalPath string `json:"localPath,omitempty"`
}

// TranscriptionResult is the outcome of one speech-to-text pass.
// ItemID ties the result back to the Reel it was produced for.
type TranscriptionResult struct {
	ItemID         string
	Success        bool
	Transcript     string
	WordCount      int
	Duration       float64
	ProcessingTime float64
	RawText        string
	Error          string
}

// EntryMetadata carries the per-item bookkeeping fields of a report entry.
type EntryMetadata struct {
	Timestamp string `json:"timestamp"`
	Likes     int    `json:"likes"`
	Comments  int    `json:"comments"`
	Filename  string `json:"filename"`
	LocalPath string `json:"localPath"`
}

// ReportEntry joins one reel with its transcription outcome. Field names
// are consumed downstream and must not change.
type ReportEntry struct {
	Platform             string        `json:"platform"`
	ReelURL              string        `json:"reelUrl"`
	VideoURL             string        `json:"videoUrl"`
	Caption              string        `json:"caption"`
	Metadata             EntryMetadata `json:"metadata"`
	Transcript           string        `json:"transcript"`
	WordCount            int           `json:"wordCount"`
	Duration             float64       `json:"duration"`
	ProcessingTime       float64       `json:"processingTime"`
	TranscriptionSuccess bool          `json:"transcriptionSuccess"`
	TranscriptionError   string        `json:"transcriptionError,omitempty"`
	ProcessedAt          time.Time     `json:"processedAt"`
}

// Summary aggregates the counts for a completed batch.
type Summary struct {
	TotalReels               int       `json:"totalReels"`
	SuccessfulTranscriptions int       `json:"successfulTranscriptions"`
	FailedTranscriptions     int       `json:"failedTranscriptions"`
	TotalWords               int       `json:"totalWords"`
	TotalDuration            float64   `json:"totalDuration"`
	ProcessedAt              time.Time `json:"processedAt"`
}

// Report is the final document written once per pipeline run.
type Report struct {
	Summary Summary       `json:"summary"`
	Reels   []ReportEntry `json:"reels"`
}
