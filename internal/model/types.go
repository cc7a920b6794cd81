// Package model defines shared data structures.
package model

import "time"

// Config defines editor and engine settings after config and flags are merged.
type Config struct {
	Width               int
	LineNumbers         bool
	CacheGatedSelection bool
	Record              bool
}

// ParagraphStats holds the memoized counts of a single paragraph.
type ParagraphStats struct {
	Words        int
	LongWords    int
	AlphaNumeric int
	Sentences    int
}

// Metrics is one published batch of text statistics.
// Every field is refreshed together on each recompute.
type Metrics struct {
	Words          int
	TotalWords     int
	Characters     int
	Sentences      int
	Paragraphs     int
	Pages          int
	ComplexWords   int
	ReadingMinutes int
	LIX            int
	Readability    int
}

// Snapshot is a recorded set of metrics for a file.
type Snapshot struct {
	ID         int64
	RecordedAt time.Time
	Path       string
	Mode       string
	Metrics    Metrics
}

// HistoryFilter narrows history queries.
type HistoryFilter struct {
	Path  string
	Since *time.Time
}
