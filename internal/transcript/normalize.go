// Package transcript turns raw speech-to-text output into clean prose.
// The cleaning steps are order-sensitive: punctuation spacing is fixed
// before filler removal so bracket stripping cannot reopen spacing issues.
package transcript

import (
	"regexp"
	"strings"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)

	// Keep word characters, whitespace, and basic punctuation only.
	// \p{L}\p{N} rather than \w so non-English transcripts survive.
	disallowedRE = regexp.MustCompile(`[^\p{L}\p{N}_\s.,?!'"-]`)

	spaceBeforePunctRE = regexp.MustCompile(`\s+([,.?!])`)
	spaceAfterPunctRE  = regexp.MustCompile(`([,.?!])\s*`)
	repeatedPunctRE    = regexp.MustCompile(`([,.?!]){2,}`)
	repeatedQuoteRE    = regexp.MustCompile(`["']{2,}`)
)

// Filler patterns removed after punctuation cleanup. The second pattern
// only strips phrase-leading words, so "so" inside "also" or before a
// period is left alone. Bracketed spans are transcription artifacts.
var fillerREs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(um|uh|er|ah|like|you know|basically|actually|literally)\b`),
	regexp.MustCompile(`(?i)\b(so|well|okay|alright)\s`),
	regexp.MustCompile(`\[[^\[\]]*\]`),
	regexp.MustCompile(`\([^()]*\)`),
}

// Normalize cleans raw transcript text deterministically. It is idempotent:
// normalizing already-normalized text is a no-op.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = whitespaceRE.ReplaceAllString(text, " ")
	text = disallowedRE.ReplaceAllString(text, "")

	text = spaceBeforePunctRE.ReplaceAllString(text, "$1")
	text = spaceAfterPunctRE.ReplaceAllString(text, "$1 ")

	text = repeatedPunctRE.ReplaceAllString(text, "$1")
	text = repeatedQuoteRE.ReplaceAllString(text, `"`)

	text = strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))

	text = removeFillers(text)

	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}

// WordCount counts whitespace-separated tokens in normalized text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func removeFillers(text string) string {
	for _, re := range fillerREs {
		text = re.ReplaceAllString(text, "")
	}
	return text
}
