package service

import (
	"regexp"
	"strings"
	"time"

	"reelscribe/internal/core/domain"
)

const platformName = "Instagram"

var (
	trailingHashtagsRE = regexp.MustCompile(`\s+#[\p{L}\p{N}_]+(\s+#[\p{L}\p{N}_]+)*\s*$`)
	ellipsisRunRE      = regexp.MustCompile(`\.{3,}`)
	bangRunRE          = regexp.MustCompile(`!{2,}`)
	questionRunRE      = regexp.MustCompile(`\?{2,}`)
)

// BuildReport joins reels with their transcription results by item ID,
// preserving reel order, and computes the batch summary. A reel with no
// matching result gets an explicit "No transcription data" entry rather
// than an error.
func BuildReport(reels []domain.Reel, results []domain.TranscriptionResult) *domain.Report {
	byID := make(map[string]domain.TranscriptionResult, len(results))
	for _, res := range results {
		byID[res.ItemID] = res
	}

	entries := make([]domain.ReportEntry, 0, len(reels))
	summary := domain.Summary{ProcessedAt: time.Now()}
	for _, reel := range reels {
		res, found := byID[reel.ID]
		entry := buildEntry(reel, res, found)
		entries = append(entries, entry)

		summary.TotalReels++
		if entry.TranscriptionSuccess {
			summary.SuccessfulTranscriptions++
			summary.TotalWords += entry.WordCount
			summary.TotalDuration += entry.Duration
		} else {
			summary.FailedTranscriptions++
		}
	}

	return &domain.Report{Summary: summary, Reels: entries}
}

func buildEntry(reel domain.Reel, res domain.TranscriptionResult, found bool) domain.ReportEntry {
	entry := domain.ReportEntry{
		Platform: platformName,
		ReelURL:  reel.ReelURL,
		VideoURL: reel.VideoURL,
		Caption:  CleanCaption(reel.Caption),
		Metadata: domain.EntryMetadata{
			Timestamp: reel.Timestamp,
			Likes:     reel.Likes,
			Comments:  reel.Comments,
			Filename:  reel.Filename,
			LocalPath: reel.LocalPath,
		},
		ProcessedAt: time.Now(),
	}

	switch {
	case found && res.Success:
		entry.Transcript = res.Transcript
		entry.WordCount = res.WordCount
		entry.Duration = res.Duration
		entry.ProcessingTime = res.ProcessingTime
		entry.TranscriptionSuccess = true
	case found:
		entry.TranscriptionError = res.Error
		if entry.TranscriptionError == "" {
			entry.TranscriptionError = "No transcription attempted"
		}
	default:
		entry.TranscriptionError = "No transcription data"
	}
	return entry
}

// CleanCaption tidies a caption for the report: whitespace collapsed, the
// trailing hashtag block stripped (inline hashtags stay), dot runs collapsed
// to an ellipsis, and repeated !/? collapsed to a single mark.
func CleanCaption(caption string) string {
	if caption == "" {
		return ""
	}

	caption = strings.Join(strings.Fields(caption), " ")
	caption = trailingHashtagsRE.ReplaceAllString(caption, "")
	caption = ellipsisRunRE.ReplaceAllString(caption, "...")
	caption = bangRunRE.ReplaceAllString(caption, "!")
	caption = questionRunRE.ReplaceAllString(caption, "?")

	return strings.TrimSpace(caption)
}
