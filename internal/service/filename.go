package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxFilenameLen = 100

var (
	captionTokenRE  = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	illegalCharsRE  = regexp.MustCompile(`[<>:"/\\|?*]`)
	filenameSpaceRE = regexp.MustCompile(`\s+`)
	underscoreRunRE = regexp.MustCompile(`_+`)
	datePartRE      = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "a": {}, "an": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "this": {},
	"that": {}, "these": {}, "those": {},
}

// buildFilename derives a filesystem-safe, collision-free name for the
// item at the given 1-based batch index: the index is always embedded, a
// few caption words and a date fragment are appended when available.
func buildFilename(caption, timestamp string, index int) string {
	name := fmt.Sprintf("item_%02d", index)

	if words := captionWords(caption); words != "" {
		name += "_" + words
	}
	if date := dateFragment(timestamp); date != "" {
		name += "_" + date
	}

	return sanitizeFilename(name) + ".mp4"
}

// captionWords picks up to three meaningful caption tokens: lowercased,
// at least three characters, not a stop word.
func captionWords(caption string) string {
	if caption == "" {
		return ""
	}
	var picked []string
	for _, word := range captionTokenRE.FindAllString(strings.ToLower(caption), -1) {
		if utf8.RuneCountInString(word) < 3 {
			continue
		}
		if _, skip := stopWords[word]; skip {
			continue
		}
		picked = append(picked, word)
		if len(picked) == 3 {
			break
		}
	}
	return strings.Join(picked, "_")
}

// dateFragment extracts a YYYYMMDD fragment from an ISO-like timestamp.
func dateFragment(timestamp string) string {
	match := datePartRE.FindString(timestamp)
	if match == "" {
		return ""
	}
	return strings.ReplaceAll(match, "-", "")
}

func sanitizeFilename(name string) string {
	name = illegalCharsRE.ReplaceAllString(name, "")
	name = filenameSpaceRE.ReplaceAllString(name, "_")
	name = underscoreRunRE.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if runes := []rune(name); len(runes) > maxFilenameLen {
		name = string(runes[:maxFilenameLen])
	}
	if name == "" {
		return "video"
	}
	return name
}
