// Package tui provides the Bubble Tea editor interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const segmentSeparator = "  "

// wrapSegments packs segments into lines no wider than width. A segment
// is never split; one wider than width sits on a line of its own and is
// truncated.
func wrapSegments(segments []string, width int) []string {
	if len(segments) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(segments, segmentSeparator)}
	}
	sepWidth := runewidth.StringWidth(segmentSeparator)

	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, seg := range segments {
		segWidth := runewidth.StringWidth(seg)
		if lineWidth > 0 && lineWidth+sepWidth+segWidth > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString(segmentSeparator)
			lineWidth += sepWidth
		}
		if segWidth > width {
			seg = runewidth.Truncate(seg, width, "…")
			segWidth = runewidth.StringWidth(seg)
		}
		line.WriteString(seg)
		lineWidth += segWidth
	}
	if lineWidth > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
