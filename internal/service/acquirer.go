package service

import (
	"strings"

	"github.com/google/uuid"

	"reelscribe/internal/core/domain"
)

const maxCaptionLen = 500

// Acquire maps raw source records into reel descriptors, dropping records
// without a usable media reference. Each descriptor gets an opaque ID that
// every later stage joins on. This is a pure mapping and never fails.
func Acquire(records []domain.RawRecord) []domain.Reel {
	reels := make([]domain.Reel, 0, len(records))
	for _, r := range records {
		mediaURL := r.MediaURL()
		if mediaURL == "" {
			continue
		}
		reels = append(reels, domain.Reel{
			ID:        uuid.NewString(),
			ReelURL:   r.SourceURL(),
			VideoURL:  mediaURL,
			Caption:   normalizeCaption(r.CaptionText()),
			Timestamp: r.TimestampText(),
			Likes:     r.LikeCount(),
			Comments:  r.CommentCount(),
		})
	}
	return reels
}

// normalizeCaption collapses whitespace and caps the caption at 500
// characters with an ellipsis marker.
func normalizeCaption(caption string) string {
	caption = strings.Join(strings.Fields(caption), " ")
	if runes := []rune(caption); len(runes) > maxCaptionLen {
		caption = string(runes[:maxCaptionLen]) + "..."
	}
	return caption
}
