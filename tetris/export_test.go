package tetris

import "github.com/Ilingu/corrodis/display"

// SetCell paints a single grid cell without touching the skyline.
func (s *Stack) SetCell(x, y uint, color display.Attr) {
	s.grid[y][x] = color
}

// SetHeight overrides one skyline entry.
func (s *Stack) SetHeight(col, height uint) {
	s.heights[col] = height
}
