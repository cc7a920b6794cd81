package textstat

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// BoundaryFinder segments text into sentences.
type BoundaryFinder interface {
	// Boundaries returns the rune offsets at which each sentence of text
	// ends, in ascending order. The last offset is the rune length of text.
	Boundaries(text string) []int
}

// UnicodeSentences finds sentence boundaries following UAX #29.
type UnicodeSentences struct{}

// Boundaries implements BoundaryFinder.
func (UnicodeSentences) Boundaries(text string) []int {
	var out []int
	pos := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var sentence string
		sentence, rest, state = uniseg.FirstSentenceInString(rest, state)
		pos += utf8.RuneCountInString(sentence)
		out = append(out, pos)
	}
	return out
}

// Counter counts sentences with a pluggable boundary finder.
type Counter struct {
	finder BoundaryFinder
}

// NewCounter returns a Counter using finder. A nil finder selects UnicodeSentences.
func NewCounter(finder BoundaryFinder) *Counter {
	if finder == nil {
		finder = UnicodeSentences{}
	}
	return &Counter{finder: finder}
}

// DefaultCounter counts sentences using Unicode segmentation.
var DefaultCounter = NewCounter(nil)

// CountSentences counts sentences in text with DefaultCounter.
func CountSentences(text string) int {
	return DefaultCounter.CountSentences(text)
}

// CountSentences counts the sentences of text. Segments made of a single
// whitespace rune are boundary artifacts and are skipped.
func (c *Counter) CountSentences(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	runes := []rune(trimmed)

	count := 0
	prev := 0
	for _, next := range c.finder.Boundaries(trimmed) {
		if next > len(runes) {
			next = len(runes)
		}
		switch n := next - prev; {
		case n > 1:
			count++
		case n == 1 && !unicode.IsSpace(runes[prev]):
			count++
		}
		if next > prev {
			prev = next
		}
	}
	return count
}
