package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "collapses whitespace",
			in:   "hello   world\n\tagain",
			want: "hello world again",
		},
		{
			name: "removes filler words",
			in:   "um I think this is uh really er great",
			want: "I think this is really great",
		},
		{
			name: "removes filler phrases",
			in:   "this is you know fine and basically done",
			want: "this is fine and done",
		},
		{
			name: "phrase leading fillers need trailing space",
			in:   "well that went fine",
			want: "that went fine",
		},
		{
			name: "removes bracketed artifacts",
			in:   "hello [music] world (laughs) there",
			want: "hello world there",
		},
		{
			name: "strips disallowed characters",
			in:   "price is 100€ today",
			want: "price is 100 today",
		},
		{
			name: "keeps allowed punctuation",
			in:   "wait, what? yes! it's \"fine\" - ok",
			want: "wait, what? yes! it's \"fine\" - ok",
		},
		{
			name: "fixes space before punctuation",
			in:   "hello , world . done",
			want: "hello, world. done",
		},
		{
			name: "collapses repeated quotes",
			in:   `she said ""hello"" to me`,
			want: `she said "hello" to me`,
		},
		{
			name: "keeps accented letters",
			in:   "oggi è una giornata perfetta",
			want: "oggi è una giornata perfetta",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	samples := []string{
		"um hello   world [noise] , this is ! a test",
		"Welcome to my kitchen! Today I'm sharing three tips.",
		"wait , what ?? (inaudible) okay fine",
		"già fatto, davvero. sì!",
	}
	for _, s := range samples {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "normalizing %q twice diverged", s)
	}
}

func TestWordCountMatchesFields(t *testing.T) {
	t.Parallel()

	samples := []string{
		"",
		"one",
		"um so here we uh go [music] again, friends!",
		"multiple   spaces   between words",
	}
	for _, s := range samples {
		clean := Normalize(s)
		assert.Equal(t, len(strings.Fields(clean)), WordCount(clean))
	}
}
