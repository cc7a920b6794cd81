// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/readstat/internal/model"
	"github.com/verte-zerg/readstat/internal/textstat"
)

const (
	sparkChars = " .:-=+*#%@"
	bold       = "\x1b[1m"
	colorReset = "\x1b[0m"
)

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// MetricRows returns label/value pairs for every metric, in display order.
func MetricRows(m model.Metrics) [][]string {
	return [][]string{
		{"Words", fmt.Sprintf("%d", m.Words)},
		{"Total words", fmt.Sprintf("%d", m.TotalWords)},
		{"Characters", fmt.Sprintf("%d", m.Characters)},
		{"Sentences", fmt.Sprintf("%d", m.Sentences)},
		{"Paragraphs", fmt.Sprintf("%d", m.Paragraphs)},
		{"Pages", fmt.Sprintf("%d", m.Pages)},
		{"Complex words", fmt.Sprintf("%d%%", m.ComplexWords)},
		{"Reading time", textstat.FormatReadingTime(m.ReadingMinutes)},
		{"LIX", fmt.Sprintf("%d (%s)", m.LIX, textstat.ReadingEase(m.LIX))},
		{"Readability index", fmt.Sprintf("%d", m.Readability)},
	}
}

// RenderMetrics prints a metrics table under title.
func RenderMetrics(w io.Writer, title string, m model.Metrics, useColor bool) error {
	heading := title
	if useColor {
		heading = bold + title + colorReset
	}
	if _, err := fmt.Fprintln(w, heading); err != nil {
		return err
	}
	lines := formatTable([]string{"Metric", "Value"}, MetricRows(m), map[int]bool{1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderHistory prints recorded snapshots and a word-count trend.
func RenderHistory(w io.Writer, snapshots []model.Snapshot, window int) error {
	if len(snapshots) == 0 {
		_, err := fmt.Fprintln(w, "No snapshots found.")
		return err
	}
	headers := []string{"Recorded", "Path", "Mode", "Words", "Sentences", "LIX", "Index"}
	rows := make([][]string, 0, len(snapshots))
	words := make([]float64, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, []string{
			s.RecordedAt.Local().Format("2006-01-02 15:04"),
			s.Path,
			s.Mode,
			fmt.Sprintf("%d", s.Metrics.Words),
			fmt.Sprintf("%d", s.Metrics.Sentences),
			fmt.Sprintf("%d", s.Metrics.LIX),
			fmt.Sprintf("%d", s.Metrics.Readability),
		})
		words = append(words, float64(s.Metrics.Words))
	}
	rightAlign := map[int]bool{3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(snapshots) > 1 {
		trend := Sparkline(MovingAverage(words, window))
		if _, err := fmt.Fprintf(w, "\nWords trend: [%s]\n", trend); err != nil {
			return err
		}
	}
	return nil
}
