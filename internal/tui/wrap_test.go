package tui

import "testing"

func TestWrapSegmentsSingleLine(t *testing.T) {
	lines := wrapSegments([]string{"Words 3", "LIX 12"}, 40)
	if len(lines) != 1 || lines[0] != "Words 3  LIX 12" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestWrapSegmentsBreaksBetweenSegments(t *testing.T) {
	lines := wrapSegments([]string{"Words 3", "Sentences 1", "LIX 12"}, 20)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	if lines[0] != "Words 3  Sentences 1" || lines[1] != "LIX 12" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestWrapSegmentsTruncatesWideSegment(t *testing.T) {
	lines := wrapSegments([]string{"abcdefghij"}, 5)
	if len(lines) != 1 || lines[0] != "abcd…" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestWrapSegmentsNoWidth(t *testing.T) {
	lines := wrapSegments([]string{"a", "b"}, 0)
	if len(lines) != 1 || lines[0] != "a  b" {
		t.Fatalf("unexpected lines: %q", lines)
	}
	if wrapSegments(nil, 10) != nil {
		t.Fatalf("expected nil for no segments")
	}
}
