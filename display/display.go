// Package display paints cell grids onto a terminal.
//
// Two backends implement Display: ANSI, which encodes the escape sequences
// itself onto any io.Writer, and Tcell, which drives a tcell.Screen.
package display

// Display is the drawing capability consumed by the game loop. Coordinates
// passed to MoveCursor are 1-based, X being the column and Y the row.
type Display interface {
	Clear() error
	ClearHistory() error
	HideCursor() error
	ShowCursor() error
	MoveCursor(x, y int) error
	SetColor(attrs ...Attr) error
	// PaintCell writes one blank cell at the cursor using the current colors
	// and advances the cursor by one column.
	PaintCell() error
	// Present flushes everything written since the previous Present.
	Present() error
}

// RestoreSequence resets colors, clears the screen and scrollback, homes the
// cursor and makes it visible again. It is meant to be written straight to
// the terminal when the buffered Display path cannot be trusted.
const RestoreSequence = "\x1b[0m\x1b[2J\x1b[3J\x1b[1;1H\x1b[?25h"

// Teardown runs the shutdown sequence on d: reset colors, clear, show the
// cursor and flush. Every step is attempted and the first error is returned.
func Teardown(d Display) error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	keep(d.SetColor(Reset))
	keep(d.Clear())
	keep(d.ClearHistory())
	keep(d.MoveCursor(1, 1))
	keep(d.ShowCursor())
	keep(d.Present())
	return first
}
