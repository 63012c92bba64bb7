// Package stream renders go test -json events live, printing every finished
// test with its reduced verdict and report name above a footer of the
// packages still running.
package stream

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

const (
	eraseLine = "\r\033[2K"
	cursorUp  = "\033[1A"
)

// termWriter owns the terminal while a stream runs: a scrolling history of
// verdict lines with a live footer redrawn beneath it. Nothing else writes
// to out.
type termWriter struct {
	out    io.Writer
	width  int
	height int
	live   int // footer lines currently on screen
}

func newTermWriter(out io.Writer, width, height int) *termWriter {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return &termWriter{out: out, width: width, height: height}
}

// Emit clears the footer and appends s to the history.
func (w *termWriter) Emit(s string) {
	w.Settle()
	fmt.Fprintln(w.out, s)
}

// Settle removes the footer, leaving the cursor at the start of its first line.
func (w *termWriter) Settle() {
	if w.live == 0 {
		return
	}
	// the cursor sits on the line below the footer
	for range w.live {
		fmt.Fprint(w.out, cursorUp+eraseLine)
	}
	w.live = 0
}

// Live replaces the footer with lines, each cut to the terminal width. At
// most a third of the screen (and never fewer than 3 lines) is used; the
// last visible line then reports how many were left out.
func (w *termWriter) Live(lines []string) {
	w.Settle()

	room := max(w.height/3, 3)
	shown := lines
	var hidden int
	if len(lines) > room {
		shown = lines[:room-1]
		hidden = len(lines) - len(shown)
	}
	for _, line := range shown {
		fmt.Fprintln(w.out, truncateToWidth(line, w.width))
	}
	if hidden > 0 {
		fmt.Fprintln(w.out, truncateToWidth(fmt.Sprintf("  ... and %d more", hidden), w.width))
	}
	w.live = len(shown)
	if hidden > 0 {
		w.live++
	}
}

// truncateToWidth cuts s to at most width display cells.
func truncateToWidth(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(s, width, tail)
}
