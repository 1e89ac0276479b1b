package domain

import "strings"

// RawRecord is one loosely-typed item as returned by the scraping service.
// Scraper actors disagree on field names, so every accessor tries an ordered
// list of known shapes and returns the first non-empty match.
type RawRecord map[string]any

type extractor func(RawRecord) string

var mediaURLExtractors = []extractor{
	func(r RawRecord) string { return r.stringField("videoUrl") },
	extractDisplayURL,
	extractMediaList,
}

var captionExtractors = []extractor{
	func(r RawRecord) string { return r.stringField("caption") },
	func(r RawRecord) string { return r.stringField("text") },
	func(r RawRecord) string { return r.stringField("description") },
	func(r RawRecord) string { return r.stringField("alt") },
}

var sourceURLExtractors = []extractor{
	func(r RawRecord) string { return r.stringField("url") },
	func(r RawRecord) string { return r.stringField("shortCode") },
	func(r RawRecord) string { return r.stringField("reelUrl") },
}

// MediaURL returns the direct media link, or "" when the record has no
// usable media reference. Records returning "" are dropped at acquisition.
func (r RawRecord) MediaURL() string {
	return r.firstMatch(mediaURLExtractors)
}

// CaptionText returns the raw caption text, untrimmed.
func (r RawRecord) CaptionText() string {
	return r.firstMatch(captionExtractors)
}

// SourceURL returns the page/permalink reference for the item.
func (r RawRecord) SourceURL() string {
	return r.firstMatch(sourceURLExtractors)
}

// TimestampText returns the item's timestamp string when the record has one.
func (r RawRecord) TimestampText() string {
	return r.stringField("timestamp")
}

// LikeCount returns the like count, 0 when absent.
func (r RawRecord) LikeCount() int {
	return r.intField("likesCount", "likes")
}

// CommentCount returns the comment count, 0 when absent.
func (r RawRecord) CommentCount() int {
	return r.intField("commentsCount", "comments")
}

func (r RawRecord) firstMatch(chain []extractor) string {
	for _, extract := range chain {
		if v := extract(r); v != "" {
			return v
		}
	}
	return ""
}

func (r RawRecord) stringField(key string) string {
	v, _ := r[key].(string)
	return v
}

func (r RawRecord) intField(keys ...string) int {
	for _, key := range keys {
		switch v := r[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		}
	}
	return 0
}

// extractDisplayURL accepts a display-asset field only when it looks like a
// video file rather than a thumbnail image.
func extractDisplayURL(r RawRecord) string {
	display := r.stringField("displayUrl")
	if display == "" {
		return ""
	}
	lower := strings.ToLower(display)
	for _, ext := range []string{".mp4", ".webm", ".avi"} {
		if strings.Contains(lower, ext) {
			return display
		}
	}
	return ""
}

// extractMediaList walks a typed media sub-list looking for a video entry.
func extractMediaList(r RawRecord) string {
	media, ok := r["media"].([]any)
	if !ok {
		return ""
	}
	for _, entry := range media {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if t, _ := m["type"].(string); t != "video" {
			continue
		}
		if u, _ := m["url"].(string); u != "" {
			return u
		}
	}
	return ""
}
