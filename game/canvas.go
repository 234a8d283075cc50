package game

import (
	"github.com/Ilingu/corrodis/display"
	"github.com/Ilingu/corrodis/geom"
	"github.com/Ilingu/corrodis/tetris"
)

// BorderColor paints the frame around the board and the panel.
const BorderColor = display.WhiteBG

// Canvas is the composed picture handed to the display: the static border,
// the board with the active piece overlaid, and the preview panel. It is
// rebuilt every frame and never feeds back into the stack.
type Canvas struct {
	bounds tetris.Bounds
	cells  [][]display.Attr

	// Generation changes whenever the whole canvas must be repainted.
	Generation int
}

// NewCanvas returns a blank canvas with the border of l drawn in.
func NewCanvas(l Layout) *Canvas {
	c := &Canvas{
		bounds: l.Canvas,
		cells:  make([][]display.Attr, l.Canvas.Height),
	}
	for y := range c.cells {
		c.cells[y] = make([]display.Attr, l.Canvas.Width)
		for x := range c.cells[y] {
			c.cells[y][x] = tetris.Background
		}
	}

	right := l.Canvas.Width - 1
	bottom := l.Canvas.Height - 1
	separator := l.BoardOrigin.X + l.Board.Width
	for x := uint(0); x <= right; x++ {
		c.cells[0][x] = BorderColor
		c.cells[bottom][x] = BorderColor
	}
	for y := uint(0); y <= bottom; y++ {
		c.cells[y][0] = BorderColor
		c.cells[y][separator] = BorderColor
		c.cells[y][right] = BorderColor
	}
	return c
}

func (c *Canvas) Bounds() tetris.Bounds {
	return c.bounds
}

// At returns the color of the canvas cell (x, y).
func (c *Canvas) At(x, y uint) display.Attr {
	return c.cells[y][x]
}

// Set paints p, ignoring points outside the canvas.
func (c *Canvas) Set(p geom.Point, color display.Attr) {
	if p.X < c.bounds.Width && p.Y < c.bounds.Height {
		c.cells[p.Y][p.X] = color
	}
}

// fill paints the area of size b anchored at origin.
func (c *Canvas) fill(origin geom.Point, b tetris.Bounds, color display.Attr) {
	for y := uint(0); y < b.Height; y++ {
		for x := uint(0); x < b.Width; x++ {
			c.Set(origin.Add(geom.Pt(x, y)), color)
		}
	}
}

// overlay paints every cell covered by p inside area b anchored at origin.
func (c *Canvas) overlay(origin geom.Point, b tetris.Bounds, p tetris.Piece) {
	for cell := range p.Covered() {
		if cell.X < b.Width && cell.Y < b.Height {
			c.Set(origin.Add(cell), p.Color)
		}
	}
}
