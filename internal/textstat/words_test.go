package textstat

import "testing"

func TestCountWords(t *testing.T) {
	cases := []struct {
		name string
		text string
		want WordCounts
	}{
		{name: "empty", text: "", want: WordCounts{}},
		{name: "two words", text: "hello world", want: WordCounts{Words: 2, AlphaNumeric: 10}},
		{name: "hyphenated", text: "well-known", want: WordCounts{Words: 1, LongWords: 1, AlphaNumeric: 9}},
		{name: "double dash", text: "done--next", want: WordCounts{Words: 2, AlphaNumeric: 8}},
		{name: "triple dash", text: "a---b", want: WordCounts{Words: 2, AlphaNumeric: 2}},
		{name: "trailing punctuation", text: "Hello, world!", want: WordCounts{Words: 2, AlphaNumeric: 10}},
		{name: "punctuation only", text: "  ...  !! ", want: WordCounts{}},
		{name: "decimal", text: "3.14", want: WordCounts{Words: 1, AlphaNumeric: 3}},
		{name: "long threshold", text: "abcdef abcdefg", want: WordCounts{Words: 2, LongWords: 1, AlphaNumeric: 13}},
		{name: "leading spaces", text: "   one", want: WordCounts{Words: 1, AlphaNumeric: 3}},
		{name: "tabs and newlines", text: "one\ttwo\nthree", want: WordCounts{Words: 3, AlphaNumeric: 11}},
		{name: "unicode letters", text: "naïve café", want: WordCounts{Words: 2, AlphaNumeric: 9}},
		{name: "separator then space", text: "end. next", want: WordCounts{Words: 2, AlphaNumeric: 7}},
		{name: "quote before word", text: "\"quoted\"", want: WordCounts{Words: 1, AlphaNumeric: 6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CountWords(tc.text)
			if got != tc.want {
				t.Fatalf("CountWords(%q) = %+v, want %+v", tc.text, got, tc.want)
			}
		})
	}
}

func TestCountWordsDeterministic(t *testing.T) {
	text := "The state-of-the-art engine -- surprisingly -- counts everything."
	first := CountWords(text)
	second := CountWords(text)
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if first.LongWords > first.Words {
		t.Fatalf("long words %d exceed words %d", first.LongWords, first.Words)
	}
}
