package slug

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple title", input: "Hello World", want: "hello-world"},
		{name: "punctuation stripped", input: "Hello, World!", want: "hello-world"},
		{name: "numbers kept", input: "Top 10 Shows of 2026", want: "top-10-shows-of-2026"},
		{name: "leading and trailing spaces", input: "  Spaced Out  ", want: "spaced-out"},
		{name: "consecutive separators collapse", input: "one -- two -- three", want: "one-two-three"},
		{name: "unicode stripped", input: "Café Résumé", want: "caf-rsum"},
		{name: "already a slug", input: "already-a-slug", want: "already-a-slug"},
		{name: "empty input", input: "", want: ""},
		{name: "only punctuation", input: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateLongTitleTruncatesAtWord(t *testing.T) {
	long := strings.Repeat("word ", 100) // 500 chars of input
	got := Generate(long)

	if len(got) > MaxLength {
		t.Fatalf("slug length = %d, want <= %d", len(got), MaxLength)
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug ends with hyphen: %q", got)
	}
	if strings.Contains(got, "--") {
		t.Errorf("slug contains double hyphen: %q", got)
	}
	// Cut must land on a word boundary, never mid-word.
	for _, part := range strings.Split(got, "-") {
		if part != "word" {
			t.Errorf("truncation split a word: %q", part)
		}
	}
}
