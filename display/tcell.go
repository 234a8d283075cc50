package display

import "github.com/gdamore/tcell/v2"

// Tcell is a Display backed by a tcell.Screen. The screen owns raw mode and
// the alternate buffer; callers still Init and Fini it themselves.
type Tcell struct {
	screen tcell.Screen
	style  tcell.Style
	x, y   int
}

// NewTcell wraps an initialised screen.
func NewTcell(screen tcell.Screen) *Tcell {
	return &Tcell{
		screen: screen,
		style:  tcell.StyleDefault,
	}
}

func (t *Tcell) Clear() error {
	t.screen.Clear()
	return nil
}

// ClearHistory is a no-op: tcell draws on the alternate screen, which has no
// scrollback.
func (t *Tcell) ClearHistory() error { return nil }

func (t *Tcell) HideCursor() error {
	t.screen.HideCursor()
	return nil
}

func (t *Tcell) ShowCursor() error {
	t.screen.ShowCursor(t.x, t.y)
	return nil
}

func (t *Tcell) MoveCursor(x, y int) error {
	t.x, t.y = x-1, y-1
	return nil
}

func (t *Tcell) SetColor(attrs ...Attr) error {
	if len(attrs) == 0 {
		t.style = tcell.StyleDefault
		return nil
	}
	for _, attr := range attrs {
		t.style = applyAttr(t.style, attr)
	}
	return nil
}

func (t *Tcell) PaintCell() error {
	t.screen.SetContent(t.x, t.y, ' ', nil, t.style)
	t.x++
	return nil
}

func (t *Tcell) Present() error {
	t.screen.Show()
	return nil
}

func applyAttr(style tcell.Style, attr Attr) tcell.Style {
	switch {
	case attr == Reset:
		return tcell.StyleDefault
	case attr == Bold:
		return style.Bold(true)
	case attr == Italic:
		return style.Italic(true)
	case attr == Underline:
		return style.Underline(true)
	case attr == Strike:
		return style.StrikeThrough(true)
	case attr.IsForeground():
		return style.Foreground(tcell.PaletteColor(attr.PaletteIndex()))
	case attr.IsBackground():
		return style.Background(tcell.PaletteColor(attr.PaletteIndex()))
	}
	return style
}
