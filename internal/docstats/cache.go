package docstats

import (
	"github.com/verte-zerg/readstat/internal/document"
	"github.com/verte-zerg/readstat/internal/model"
	"github.com/verte-zerg/readstat/internal/textstat"
)

// entry is the cached statistics of one paragraph.
type entry struct {
	text    string
	counted bool
	stats   model.ParagraphStats
}

// cache maps paragraph ids to their statistics.
type cache struct {
	entries map[document.ParagraphID]*entry
}

func newCache() *cache {
	return &cache{entries: map[document.ParagraphID]*entry{}}
}

// getOrCreate returns the entry for id, allocating a zeroed one if needed.
func (c *cache) getOrCreate(id document.ParagraphID) *entry {
	e, ok := c.entries[id]
	if !ok {
		e = &entry{}
		c.entries[id] = e
	}
	return e
}

func (c *cache) lookup(id document.ParagraphID) (*entry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// retain drops every entry whose id is not in keep.
func (c *cache) retain(keep map[document.ParagraphID]struct{}) {
	for id := range c.entries {
		if _, ok := keep[id]; !ok {
			delete(c.entries, id)
		}
	}
}

func (c *cache) reset() {
	c.entries = map[document.ParagraphID]*entry{}
}

func (c *cache) len() int {
	return len(c.entries)
}

// refresh recomputes e for text. Unchanged text keeps the stored counts.
func (e *entry) refresh(text string, counter *textstat.Counter) {
	if e.counted && e.text == text {
		return
	}
	wc := textstat.CountWords(text)
	e.stats = model.ParagraphStats{
		Words:        wc.Words,
		LongWords:    wc.LongWords,
		AlphaNumeric: wc.AlphaNumeric,
		Sentences:    counter.CountSentences(text),
	}
	e.text = text
	e.counted = true
}
