package textstat

import (
	"math"
	"strconv"
)

const (
	// WordsPerPage is the page size used for page estimates.
	WordsPerPage = 250
	// WordsPerMinute is the reading speed used for reading time.
	WordsPerMinute = 270
)

// PageCount estimates the number of full pages.
func PageCount(words int) int {
	return words / WordsPerPage
}

// ReadingTime estimates reading time in whole minutes.
func ReadingTime(words int) int {
	return words / WordsPerMinute
}

// ComplexWordPercentage returns the share of long words, rounded up.
func ComplexWordPercentage(totalWords, longWords int) int {
	if totalWords <= 0 {
		return 0
	}
	return int(math.Ceil(float64(longWords) / float64(totalWords) * 100.0))
}

// LIX computes the Läsbarhetsindex: average sentence length plus the
// percentage of long words, rounded up.
func LIX(totalWords, longWords, sentences int) int {
	if totalWords <= 0 || sentences <= 0 {
		return 0
	}
	return int(math.Ceil(
		float64(totalWords)/float64(sentences) +
			float64(float64(longWords)/float64(totalWords)*100.0),
	))
}

// CLI computes a Coleman-Liau style grade from characters, words and
// sentences. The result is rounded up and never negative.
//
// Characters per word is computed in single precision. Products are
// converted explicitly so they are rounded before the subtraction and
// never fused.
func CLI(characters, words, sentences int) int {
	if words <= 0 || sentences <= 0 {
		return 0
	}
	cli := int(math.Ceil(
		float64(5.88*float64(float32(characters)/float32(words))) -
			float64(29.6*(float64(sentences)/float64(words))) -
			15.8,
	))
	if cli < 0 {
		return 0
	}
	return cli
}

// ReadingEase names the LIX band a score falls into.
func ReadingEase(lix int) string {
	switch {
	case lix < 30:
		return "Very easy"
	case lix < 40:
		return "Easy"
	case lix < 50:
		return "Medium"
	case lix < 60:
		return "Difficult"
	default:
		return "Very difficult"
	}
}

// FormatReadingTime renders minutes for display.
func FormatReadingTime(minutes int) string {
	if minutes <= 0 {
		return "< 1 min"
	}
	return strconv.Itoa(minutes) + " min"
}
