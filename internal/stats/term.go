package stats

import (
	"io"
	"os"

	"golang.org/x/term"
)

// UseColor reports whether ANSI colors should be written to w.
func UseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
