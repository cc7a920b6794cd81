// Package document provides a plain-text document split into paragraphs.
package document

import (
	"strings"
	"unicode/utf8"
)

// ParagraphID identifies a paragraph for as long as its text is unchanged.
type ParagraphID uint64

// Paragraph is one line of a document.
type Paragraph struct {
	ID    ParagraphID
	Text  string
	Start int // rune offset of the first character in Document.Text
}

// Len returns the paragraph length in runes, without the separator.
func (p Paragraph) Len() int {
	return utf8.RuneCountInString(p.Text)
}

// Document stores text as an ordered list of paragraphs separated by '\n'.
// It is not safe for concurrent use.
type Document struct {
	paragraphs []Paragraph
	nextID     ParagraphID

	onChange []func()
	onClear  []func()
}

// New returns an empty document.
func New() *Document {
	d := &Document{}
	d.paragraphs = []Paragraph{{ID: d.newID()}}
	return d
}

// FromText returns a document holding text. No listeners are notified.
func FromText(text string) *Document {
	d := New()
	d.replace(text)
	return d
}

// OnChange registers fn to run after every content change.
func (d *Document) OnChange(fn func()) {
	d.onChange = append(d.onChange, fn)
}

// OnClear registers fn to run after the document is cleared.
func (d *Document) OnClear(fn func()) {
	d.onClear = append(d.onClear, fn)
}

// SetText replaces the document content and notifies change listeners.
// Paragraphs in the unchanged prefix and suffix keep their IDs.
func (d *Document) SetText(text string) {
	d.replace(text)
	for _, fn := range d.onChange {
		fn()
	}
}

// Clear empties the document and notifies clear listeners.
func (d *Document) Clear() {
	d.paragraphs = []Paragraph{{ID: d.newID()}}
	for _, fn := range d.onClear {
		fn()
	}
}

// Text returns the full document text.
func (d *Document) Text() string {
	lines := make([]string, len(d.paragraphs))
	for i, p := range d.paragraphs {
		lines[i] = p.Text
	}
	return strings.Join(lines, "\n")
}

// Paragraphs returns the paragraphs in document order.
func (d *Document) Paragraphs() []Paragraph {
	out := make([]Paragraph, len(d.paragraphs))
	copy(out, d.paragraphs)
	return out
}

// ParagraphCount returns the number of paragraphs, blank ones included.
func (d *Document) ParagraphCount() int {
	return len(d.paragraphs)
}

// Paragraph returns the paragraph at index i.
func (d *Document) Paragraph(i int) (Paragraph, bool) {
	if i < 0 || i >= len(d.paragraphs) {
		return Paragraph{}, false
	}
	return d.paragraphs[i], true
}

// Len returns the document length in runes.
func (d *Document) Len() int {
	last := d.paragraphs[len(d.paragraphs)-1]
	return last.Start + last.Len()
}

// CharacterCount returns the document length including the final
// paragraph terminator, so an empty document has one character.
func (d *Document) CharacterCount() int {
	return d.Len() + 1
}

// ParagraphsBetween returns the paragraphs containing the rune offsets
// start through end, inclusive. Offsets are clamped to the document.
func (d *Document) ParagraphsBetween(start, end int) []Paragraph {
	if end < start {
		start, end = end, start
	}
	first := d.find(start)
	last := d.find(end)
	out := make([]Paragraph, last-first+1)
	copy(out, d.paragraphs[first:last+1])
	return out
}

// find returns the index of the paragraph that contains offset. An offset
// on a separator belongs to the paragraph the separator ends.
func (d *Document) find(offset int) int {
	if offset <= 0 {
		return 0
	}
	for i, p := range d.paragraphs {
		if offset <= p.Start+p.Len() {
			return i
		}
	}
	return len(d.paragraphs) - 1
}

func (d *Document) replace(text string) {
	lines := strings.Split(text, "\n")
	old := d.paragraphs

	prefix := 0
	for prefix < len(old) && prefix < len(lines) && old[prefix].Text == lines[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(lines)-prefix &&
		old[len(old)-1-suffix].Text == lines[len(lines)-1-suffix] {
		suffix++
	}

	next := make([]Paragraph, len(lines))
	offset := 0
	for i, line := range lines {
		var id ParagraphID
		switch {
		case i < prefix:
			id = old[i].ID
		case i >= len(lines)-suffix:
			id = old[len(old)-(len(lines)-i)].ID
		default:
			id = d.newID()
		}
		next[i] = Paragraph{ID: id, Text: line, Start: offset}
		offset += utf8.RuneCountInString(line) + 1
	}
	d.paragraphs = next
}

func (d *Document) newID() ParagraphID {
	d.nextID++
	return d.nextID
}
