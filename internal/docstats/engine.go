// Package docstats keeps live statistics for an edited document.
package docstats

import (
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/readstat/internal/document"
	"github.com/verte-zerg/readstat/internal/model"
	"github.com/verte-zerg/readstat/internal/textstat"
)

// Document is the text the engine observes.
type Document interface {
	Paragraphs() []document.Paragraph
	ParagraphsBetween(start, end int) []document.Paragraph
	CharacterCount() int
}

// Mode tells whether published metrics cover the document or a selection.
type Mode int

const (
	ModeDocument Mode = iota
	ModeSelection
)

func (m Mode) String() string {
	if m == ModeSelection {
		return "selection"
	}
	return "document"
}

// Options configures an Engine.
type Options struct {
	// CacheGatedSelection counts a selected paragraph only when the
	// paragraph already has a cache entry.
	CacheGatedSelection bool
	// Counter counts sentences. Nil selects textstat.DefaultCounter.
	Counter *textstat.Counter
}

// Engine computes metrics for one document. It is not safe for concurrent
// use; every method runs to completion before returning.
type Engine struct {
	doc     Document
	opts    Options
	counter *textstat.Counter
	cache   *cache

	mode       Mode
	totalWords int
	metrics    model.Metrics

	observers []observer
	nextObsID int
}

type observer struct {
	id int
	fn func(model.Metrics)
}

type totals struct {
	words        int
	longWords    int
	alphaNumeric int
	sentences    int
	paragraphs   int
}

// New returns an engine for doc. Nothing is computed until the first event.
func New(doc Document, opts Options) *Engine {
	counter := opts.Counter
	if counter == nil {
		counter = textstat.DefaultCounter
	}
	return &Engine{
		doc:     doc,
		opts:    opts,
		counter: counter,
		cache:   newCache(),
	}
}

// Attach builds an engine for d and subscribes it to d's change and clear
// notifications. The initial metrics are computed immediately.
func Attach(d *document.Document, opts Options) *Engine {
	e := New(d, opts)
	d.OnChange(e.ContentChanged)
	d.OnClear(e.Cleared)
	e.ContentChanged()
	return e
}

// Subscribe registers fn to receive every published snapshot. The returned
// function removes the subscription.
func (e *Engine) Subscribe(fn func(model.Metrics)) func() {
	e.nextObsID++
	id := e.nextObsID
	e.observers = append(e.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range e.observers {
			if o.id == id {
				e.observers = append(e.observers[:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

// Metrics returns the last published snapshot.
func (e *Engine) Metrics() model.Metrics {
	return e.metrics
}

// Mode returns the scope of the last published snapshot.
func (e *Engine) Mode() Mode {
	return e.mode
}

// ParagraphStats returns the cached statistics of a paragraph.
func (e *Engine) ParagraphStats(id document.ParagraphID) (model.ParagraphStats, bool) {
	ent, ok := e.cache.lookup(id)
	if !ok {
		return model.ParagraphStats{}, false
	}
	return ent.stats, true
}

// CacheLen returns the number of allocated paragraph entries.
func (e *Engine) CacheLen() int {
	return e.cache.len()
}

// ContentChanged rescans the whole document and publishes document metrics.
func (e *Engine) ContentChanged() {
	var t totals
	paragraphs := e.doc.Paragraphs()
	seen := make(map[document.ParagraphID]struct{}, len(paragraphs))
	for _, p := range paragraphs {
		ent := e.cache.getOrCreate(p.ID)
		ent.refresh(p.Text, e.counter)
		seen[p.ID] = struct{}{}

		t.words += ent.stats.Words
		t.longWords += ent.stats.LongWords
		t.alphaNumeric += ent.stats.AlphaNumeric
		t.sentences += ent.stats.Sentences
		if strings.TrimSpace(p.Text) != "" {
			t.paragraphs++
		}
	}
	e.cache.retain(seen)

	e.mode = ModeDocument
	e.totalWords = t.words
	characters := e.doc.CharacterCount() - 1
	if characters < 0 {
		characters = 0
	}
	e.publish(buildMetrics(t, characters, t.words))
}

// Cleared drops all cached state and republishes, which yields zero
// metrics for an emptied document.
func (e *Engine) Cleared() {
	e.cache.reset()
	e.totalWords = 0
	e.metrics = model.Metrics{}
	e.ContentChanged()
}

// SelectionChanged publishes metrics for selectedText, which spans the rune
// offsets start to end of the document. An empty selection restores the
// document metrics.
func (e *Engine) SelectionChanged(selectedText string, start, end int) {
	if selectedText == "" {
		e.SelectionCleared()
		return
	}
	wc := textstat.CountWords(selectedText)
	t := totals{
		words:        wc.Words,
		longWords:    wc.LongWords,
		alphaNumeric: wc.AlphaNumeric,
		sentences:    e.counter.CountSentences(selectedText),
		paragraphs:   e.selectedParagraphs(start, end),
	}
	e.mode = ModeSelection
	e.publish(buildMetrics(t, utf8.RuneCountInString(selectedText), e.totalWords))
}

// SelectionCleared restores document-wide metrics.
func (e *Engine) SelectionCleared() {
	e.ContentChanged()
}

func (e *Engine) selectedParagraphs(start, end int) int {
	count := 0
	for _, p := range e.doc.ParagraphsBetween(start, end) {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		if e.opts.CacheGatedSelection {
			if _, ok := e.cache.lookup(p.ID); !ok {
				continue
			}
		}
		count++
	}
	return count
}

func (e *Engine) publish(m model.Metrics) {
	e.metrics = m
	for _, o := range e.observers {
		o.fn(m)
	}
}

func buildMetrics(t totals, characters, totalWords int) model.Metrics {
	return model.Metrics{
		Words:          t.words,
		TotalWords:     totalWords,
		Characters:     characters,
		Sentences:      t.sentences,
		Paragraphs:     t.paragraphs,
		Pages:          textstat.PageCount(t.words),
		ComplexWords:   textstat.ComplexWordPercentage(t.words, t.longWords),
		ReadingMinutes: textstat.ReadingTime(t.words),
		LIX:            textstat.LIX(t.words, t.longWords, t.sentences),
		Readability:    textstat.CLI(t.alphaNumeric, t.words, t.sentences),
	}
}
