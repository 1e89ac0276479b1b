package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawRecordMediaURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record RawRecord
		want   string
	}{
		{
			name:   "direct field wins",
			record: RawRecord{"videoUrl": "https://cdn.example/a.mp4", "displayUrl": "https://cdn.example/b.mp4"},
			want:   "https://cdn.example/a.mp4",
		},
		{
			name:   "display url with video extension",
			record: RawRecord{"displayUrl": "https://cdn.example/clip.MP4?x=1"},
			want:   "https://cdn.example/clip.MP4?x=1",
		},
		{
			name:   "display url thumbnail rejected",
			record: RawRecord{"displayUrl": "https://cdn.example/thumb.jpg"},
			want:   "",
		},
		{
			name: "media list video entry",
			record: RawRecord{"media": []any{
				map[string]any{"type": "image", "url": "https://cdn.example/i.jpg"},
				map[string]any{"type": "video", "url": "https://cdn.example/v.mp4"},
			}},
			want: "https://cdn.example/v.mp4",
		},
		{
			name:   "nothing usable",
			record: RawRecord{"caption": "text only"},
			want:   "",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.record.MediaURL())
		})
	}
}

func TestRawRecordCaptionText(t *testing.T) {
	t.Parallel()

	r := RawRecord{"text": "fallback text", "description": "ignored"}
	assert.Equal(t, "fallback text", r.CaptionText())

	r = RawRecord{"alt": "last resort"}
	assert.Equal(t, "last resort", r.CaptionText())

	assert.Equal(t, "", RawRecord{}.CaptionText())
}

func TestRawRecordSourceURL(t *testing.T) {
	t.Parallel()

	r := RawRecord{"shortCode": "ABC123"}
	assert.Equal(t, "ABC123", r.SourceURL())

	r = RawRecord{"url": "https://instagram.com/reel/ABC", "shortCode": "ABC"}
	assert.Equal(t, "https://instagram.com/reel/ABC", r.SourceURL())
}

func TestRawRecordCounts(t *testing.T) {
	t.Parallel()

	// JSON numbers decode as float64.
	r := RawRecord{"likesCount": float64(1500), "commentsCount": float64(42)}
	assert.Equal(t, 1500, r.LikeCount())
	assert.Equal(t, 42, r.CommentCount())

	r = RawRecord{"likes": float64(7)}
	assert.Equal(t, 7, r.LikeCount())
	assert.Equal(t, 0, r.CommentCount())
}
