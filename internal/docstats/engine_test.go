package docstats

import (
	"strings"
	"testing"

	"github.com/verte-zerg/readstat/internal/document"
	"github.com/verte-zerg/readstat/internal/model"
	"github.com/verte-zerg/readstat/internal/textstat"
)

func TestWholeDocumentEndToEnd(t *testing.T) {
	doc := document.FromText("The quick brown fox.\n\nIt jumps.")
	e := New(doc, Options{})
	e.ContentChanged()

	m := e.Metrics()
	if m.Paragraphs != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", m.Paragraphs)
	}
	if m.Sentences != 2 {
		t.Fatalf("expected 2 sentences, got %d", m.Sentences)
	}
	if m.Words != 6 || m.TotalWords != 6 {
		t.Fatalf("expected 6 words, got %d (total %d)", m.Words, m.TotalWords)
	}
	if m.Characters != len("The quick brown fox.\n\nIt jumps.") {
		t.Fatalf("unexpected character count %d", m.Characters)
	}
	if e.Mode() != ModeDocument {
		t.Fatalf("expected document mode, got %v", e.Mode())
	}
}

func TestWholeDocumentSumsParagraphs(t *testing.T) {
	doc := document.FromText(strings.Join([]string{
		"Readability metrics summarize text.",
		"A well-known formula -- LIX -- counts long words.",
		"",
		"   ",
		"Short one. Another one!",
	}, "\n"))
	e := New(doc, Options{})
	e.ContentChanged()

	var words, sentences int
	for _, p := range doc.Paragraphs() {
		stats, ok := e.ParagraphStats(p.ID)
		if !ok {
			t.Fatalf("paragraph %d has no cache entry", p.ID)
		}
		words += stats.Words
		sentences += stats.Sentences
	}
	m := e.Metrics()
	if m.Words != words {
		t.Fatalf("document words %d != paragraph sum %d", m.Words, words)
	}
	if m.Sentences != sentences {
		t.Fatalf("document sentences %d != paragraph sum %d", m.Sentences, sentences)
	}
	if m.Paragraphs != 3 {
		t.Fatalf("expected 3 non-blank paragraphs, got %d", m.Paragraphs)
	}
	if e.CacheLen() != doc.ParagraphCount() {
		t.Fatalf("expected %d cache entries, got %d", doc.ParagraphCount(), e.CacheLen())
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	doc := document.FromText("One sentence here. And another one.\nSecond paragraph, with extraordinary words.")
	e := New(doc, Options{})
	var published []model.Metrics
	e.Subscribe(func(m model.Metrics) { published = append(published, m) })

	e.ContentChanged()
	e.ContentChanged()

	if len(published) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(published))
	}
	if published[0] != published[1] {
		t.Fatalf("expected identical snapshots, got %+v and %+v", published[0], published[1])
	}
}

func TestAttachFollowsEdits(t *testing.T) {
	doc := document.New()
	e := Attach(doc, Options{})
	if e.Metrics() != (model.Metrics{}) {
		t.Fatalf("expected zero metrics for empty document, got %+v", e.Metrics())
	}

	doc.SetText("Hello world.\nSecond line here.")
	if got := e.Metrics().Words; got != 5 {
		t.Fatalf("expected 5 words, got %d", got)
	}
	first := doc.Paragraphs()[0].ID

	doc.SetText("Hello world.\nSecond line was edited.")
	if got := e.Metrics().Words; got != 6 {
		t.Fatalf("expected 6 words, got %d", got)
	}
	if _, ok := e.ParagraphStats(first); !ok {
		t.Fatalf("expected unchanged paragraph to keep its cache entry")
	}
	if e.CacheLen() != 2 {
		t.Fatalf("expected stale entries to be dropped, got %d entries", e.CacheLen())
	}
}

func TestClearResetsMetrics(t *testing.T) {
	doc := document.FromText("Some words here. More words there.")
	e := Attach(doc, Options{})
	if e.Metrics().Words == 0 {
		t.Fatalf("expected non-zero words before clear")
	}

	var last model.Metrics
	calls := 0
	e.Subscribe(func(m model.Metrics) {
		last = m
		calls++
	})
	doc.Clear()

	if calls != 1 {
		t.Fatalf("expected one snapshot on clear, got %d", calls)
	}
	if last != (model.Metrics{}) {
		t.Fatalf("expected all-zero metrics after clear, got %+v", last)
	}
}

func TestSelectionMetrics(t *testing.T) {
	text := "First paragraph has words.\nSecond paragraph. It has two sentences.\nThird."
	doc := document.FromText(text)
	e := Attach(doc, Options{})
	total := e.Metrics().Words

	second, _ := doc.Paragraph(1)
	selected := second.Text
	e.SelectionChanged(selected, second.Start, second.Start+second.Len())

	m := e.Metrics()
	if e.Mode() != ModeSelection {
		t.Fatalf("expected selection mode")
	}
	if m.Words != 6 {
		t.Fatalf("expected 6 selected words, got %d", m.Words)
	}
	if m.Sentences != 2 {
		t.Fatalf("expected 2 selected sentences, got %d", m.Sentences)
	}
	if m.Paragraphs != 1 {
		t.Fatalf("expected 1 selected paragraph, got %d", m.Paragraphs)
	}
	if m.Characters != len(selected) {
		t.Fatalf("expected %d characters, got %d", len(selected), m.Characters)
	}
	if m.TotalWords != total {
		t.Fatalf("expected total words %d to be kept, got %d", total, m.TotalWords)
	}

	e.SelectionCleared()
	if e.Mode() != ModeDocument || e.Metrics().Words != total {
		t.Fatalf("expected document metrics after clearing selection, got %+v", e.Metrics())
	}
}

func TestEmptySelectionRestoresDocument(t *testing.T) {
	doc := document.FromText("Alpha beta gamma.")
	e := Attach(doc, Options{})
	e.SelectionChanged("Alpha", 0, 5)
	e.SelectionChanged("", 0, 0)
	if e.Mode() != ModeDocument {
		t.Fatalf("expected document mode")
	}
	if e.Metrics().Words != 3 {
		t.Fatalf("expected 3 words, got %d", e.Metrics().Words)
	}
}

func TestSelectionParagraphCountSpansParagraphs(t *testing.T) {
	doc := document.FromText("one\n\ntwo\nthree")
	e := Attach(doc, Options{})
	text := doc.Text()
	e.SelectionChanged(text[:8], 0, 8)
	if got := e.Metrics().Paragraphs; got != 2 {
		t.Fatalf("expected 2 selected paragraphs, got %d", got)
	}
}

func TestCacheGatedSelection(t *testing.T) {
	doc := document.FromText("alpha\nbeta")

	gated := New(doc, Options{CacheGatedSelection: true})
	gated.SelectionChanged("alpha\nbeta", 0, 10)
	if got := gated.Metrics().Paragraphs; got != 0 {
		t.Fatalf("expected 0 paragraphs without cache entries, got %d", got)
	}
	if got := gated.Metrics().Words; got != 2 {
		t.Fatalf("expected 2 words, got %d", got)
	}
	gated.ContentChanged()
	gated.SelectionChanged("alpha\nbeta", 0, 10)
	if got := gated.Metrics().Paragraphs; got != 2 {
		t.Fatalf("expected 2 paragraphs once cached, got %d", got)
	}

	plain := New(doc, Options{})
	plain.SelectionChanged("alpha\nbeta", 0, 10)
	if got := plain.Metrics().Paragraphs; got != 2 {
		t.Fatalf("expected cache-independent count of 2, got %d", got)
	}
}

type countingFinder struct {
	calls int
}

func (f *countingFinder) Boundaries(text string) []int {
	f.calls++
	return textstat.UnicodeSentences{}.Boundaries(text)
}

func TestUnchangedParagraphsAreNotRescanned(t *testing.T) {
	finder := &countingFinder{}
	doc := document.FromText("Alpha one.\nBeta two.\nGamma three.")
	e := Attach(doc, Options{Counter: textstat.NewCounter(finder)})
	if finder.calls != 3 {
		t.Fatalf("expected 3 scans, got %d", finder.calls)
	}

	doc.SetText("Alpha one.\nBeta changed.\nGamma three.")
	if finder.calls != 4 {
		t.Fatalf("expected only the edited paragraph to be rescanned, got %d scans", finder.calls)
	}
	if e.Metrics().Sentences != 3 {
		t.Fatalf("expected 3 sentences, got %d", e.Metrics().Sentences)
	}
}

func TestUnsubscribe(t *testing.T) {
	doc := document.FromText("word")
	e := New(doc, Options{})
	calls := 0
	cancel := e.Subscribe(func(model.Metrics) { calls++ })
	e.ContentChanged()
	cancel()
	e.ContentChanged()
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestInvariants(t *testing.T) {
	texts := []string{
		"",
		"\n\n\n",
		"Extraordinarily sophisticated vocabulary everywhere.",
		"a-b-c d--e f",
		"Multiple. Sentences! Here? Yes.",
	}
	for _, text := range texts {
		e := New(document.FromText(text), Options{})
		e.ContentChanged()
		m := e.Metrics()
		if m.LIX < 0 || m.Readability < 0 || m.ComplexWords < 0 || m.ComplexWords > 100 {
			t.Fatalf("out of range metrics for %q: %+v", text, m)
		}
		if text == "" && m != (model.Metrics{}) {
			t.Fatalf("expected zero metrics for empty document, got %+v", m)
		}
	}
}
