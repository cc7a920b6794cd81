// Package textstat implements word, sentence and readability counting.
package textstat

import "unicode"

// LongWordLength is the length a word must exceed to count as long.
const LongWordLength = 6

// WordCounts is the result of a word scan.
type WordCounts struct {
	Words        int
	LongWords    int
	AlphaNumeric int
}

// CountWords scans text once and counts words, long words and the
// letters and digits that belong to words.
//
// A single separator between letters, as in "well-known", keeps the word
// together. Two separators in a row, as in "done--next", end it. Separators
// never count toward a word's length.
func CountWords(text string) WordCounts {
	var (
		c         WordCounts
		inWord    bool
		wordLen   int
		separator int
	)

	closeWord := func() {
		c.Words++
		if wordLen > LongWordLength {
			c.LongWords++
		}
		inWord = false
		wordLen = 0
		separator = 0
	}

	for _, r := range text {
		switch {
		case isLetterOrNumber(r):
			inWord = true
			separator = 0
			wordLen++
			c.AlphaNumeric++
		case !inWord:
			// Punctuation and spaces between words.
		case unicode.IsSpace(r):
			closeWord()
		default:
			separator++
			if separator > 1 {
				closeWord()
			}
		}
	}
	if inWord {
		closeWord()
	}
	return c
}

func isLetterOrNumber(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
