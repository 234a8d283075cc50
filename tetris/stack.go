package tetris

import (
	"github.com/Ilingu/corrodis/display"
)

// Stack holds the landed blocks: the grid of painted cells and the skyline,
// a per-column record of the lowest row a falling block may still reach.
//
// heights[c] is Height-1 (the floor row) for an empty column, and one row
// above the topmost landed cell otherwise, saturating at 0. Recording the
// landed row itself would let a resting block's bottom share that row and
// overlap the cell; the off-by-one is deliberate. Commit and
// ClearFullRows both keep the skyline equal to the value derived from grid.
type Stack struct {
	bounds  Bounds
	heights []uint
	grid    [][]display.Attr
}

// NewStack returns an empty stack covering b.
func NewStack(b Bounds) *Stack {
	s := &Stack{
		bounds:  b,
		heights: make([]uint, b.Width),
		grid:    make([][]display.Attr, b.Height),
	}
	for y := range s.grid {
		s.grid[y] = make([]display.Attr, b.Width)
	}
	s.Reset()
	return s
}

// Reset empties the stack.
func (s *Stack) Reset() {
	for c := range s.heights {
		s.heights[c] = s.floor()
	}
	for _, row := range s.grid {
		for x := range row {
			row[x] = Background
		}
	}
}

func (s *Stack) floor() uint {
	if s.bounds.Height == 0 {
		return 0
	}
	return s.bounds.Height - 1
}

// restingRow is the lowest row a block may occupy above a landed cell on row y.
func restingRow(y uint) uint {
	if y == 0 {
		return 0
	}
	return y - 1
}

// Bounds returns the size of the stack.
func (s *Stack) Bounds() Bounds {
	return s.bounds
}

// Height returns the skyline value of column col.
func (s *Stack) Height(col uint) uint {
	return s.heights[col]
}

// Heights returns a copy of the skyline.
func (s *Stack) Heights() []uint {
	return append([]uint(nil), s.heights...)
}

// Cell returns the color painted at (x, y).
func (s *Stack) Cell(x, y uint) display.Attr {
	return s.grid[y][x]
}

// Row returns row y of the grid. The slice is owned by the stack and must not
// be modified.
func (s *Stack) Row(y uint) []display.Attr {
	return s.grid[y]
}

// Rows returns the whole grid, row 0 first, under the same contract as Row.
func (s *Stack) Rows() [][]display.Attr {
	return s.grid
}

// WouldCollide reports whether p has reached the skyline: some block's bottom
// row is at or below the recorded height of a column it covers.
func (s *Stack) WouldCollide(p Piece) bool {
	scale := max(p.Scale, 1)
	for _, c := range p.Cells {
		bottom := c.Y + scale - 1
		for dx := uint(0); dx < scale; dx++ {
			col := c.X + dx
			if col >= s.bounds.Width {
				continue
			}
			if bottom >= s.heights[col] {
				return true
			}
		}
	}
	return false
}

// Overlaps reports whether any cell covered by p is already painted.
func (s *Stack) Overlaps(p Piece) bool {
	for cell := range p.Covered() {
		if cell.X < s.bounds.Width && cell.Y < s.bounds.Height && s.grid[cell.Y][cell.X] != Background {
			return true
		}
	}
	return false
}

// Commit lands p: every column it covers has its height lowered to rest on
// the piece's topmost block in that column, and every covered cell is
// painted with the piece color. Heights are never raised.
func (s *Stack) Commit(p Piece) error {
	scale := max(p.Scale, 1)

	tops := make(map[uint]uint, 4*scale)
	for _, c := range p.Cells {
		for dx := uint(0); dx < scale; dx++ {
			col := c.X + dx
			if col >= s.bounds.Width || c.Y >= s.bounds.Height {
				continue
			}
			if top, ok := tops[col]; !ok || c.Y < top {
				tops[col] = c.Y
			}
		}
	}
	if len(tops) == 0 {
		return ErrNoLandingCells
	}

	for col, top := range tops {
		if r := restingRow(top); r < s.heights[col] {
			s.heights[col] = r
		}
	}

	for cell := range p.Covered() {
		if cell.X < s.bounds.Width && cell.Y < s.bounds.Height {
			s.grid[cell.Y][cell.X] = p.Color
		}
	}
	return nil
}

// ClearFullRows resets every row whose cells are all painted back to
// Background and returns how many rows were cleared. Rows above are not
// shifted down. The skyline is recomputed from the grid afterwards.
func (s *Stack) ClearFullRows() int {
	cleared := 0
	for _, row := range s.grid {
		if !rowFull(row) {
			continue
		}
		for x := range row {
			row[x] = Background
		}
		cleared++
	}

	if cleared > 0 {
		copy(s.heights, s.Skyline())
	}
	return cleared
}

func rowFull(row []display.Attr) bool {
	for _, c := range row {
		if c == Background {
			return false
		}
	}
	return len(row) > 0
}

// Skyline derives the per-column heights from the grid alone.
func (s *Stack) Skyline() []uint {
	heights := make([]uint, s.bounds.Width)
	for col := range heights {
		heights[col] = s.floor()
		for y, row := range s.grid {
			if row[col] != Background {
				heights[col] = restingRow(uint(y))
				break
			}
		}
	}
	return heights
}

// IsGameOver reports whether p, having just collided, never left the spawn row.
func (s *Stack) IsGameOver(p Piece) bool {
	return p.OnRow(SpawnRow)
}
