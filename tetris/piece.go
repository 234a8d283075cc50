package tetris

import (
	"fmt"
	"iter"
	"time"

	"github.com/Ilingu/corrodis/display"
	"github.com/Ilingu/corrodis/geom"
)

const (
	// DefaultFallInterval is how long a piece rests before dropping one row.
	DefaultFallInterval = 250 * time.Millisecond

	// SpawnRow is the row pivots are placed on when a piece enters the board.
	SpawnRow = 1
)

// Bounds is the size, in board cells, of the area a piece may occupy.
type Bounds struct {
	Width, Height uint
}

// Fits reports whether the scale x scale block anchored at c lies inside b.
func (b Bounds) Fits(c geom.Point, scale uint) bool {
	return c.X+scale <= b.Width && c.Y+scale <= b.Height
}

// Piece is a group of four blocks. Cells[0] is the pivot used for rotation.
// Every cell is the top-left board cell of a Scale x Scale block.
type Piece struct {
	Kind         ShapeKind
	Cells        [4]geom.Point
	Scale        uint
	FallInterval time.Duration
	LastFallAt   time.Time
	Color        display.Attr
}

type spawnConfig struct {
	kind         *ShapeKind
	pivot        *geom.Point
	scale        uint
	fallInterval time.Duration
}

// SpawnOption customises Spawn.
type SpawnOption func(*spawnConfig)

// WithShape fixes the kind instead of drawing it at random.
func WithShape(kind ShapeKind) SpawnOption {
	return func(c *spawnConfig) { c.kind = &kind }
}

// AtPosition fixes the pivot instead of drawing a random column on SpawnRow.
func AtPosition(pivot geom.Point) SpawnOption {
	return func(c *spawnConfig) { c.pivot = &pivot }
}

// WithScale sets the block size. Values below 1 are treated as 1.
func WithScale(scale uint) SpawnOption {
	return func(c *spawnConfig) { c.scale = max(scale, 1) }
}

// WithFallInterval sets how long the piece rests between falls.
func WithFallInterval(d time.Duration) SpawnOption {
	return func(c *spawnConfig) { c.fallInterval = d }
}

// Spawn materialises a new piece inside b. Unless overridden, the kind is
// uniform over the seven shapes, the pivot column is drawn from
// [2*scale, width-2*scale] on SpawnRow, and the color is drawn from Palette.
func Spawn(r Rand, b Bounds, now time.Time, opts ...SpawnOption) (Piece, error) {
	cfg := spawnConfig{scale: 1, fallInterval: DefaultFallInterval}
	for _, opt := range opts {
		opt(&cfg)
	}

	var kind ShapeKind
	if cfg.kind != nil {
		kind = *cfg.kind
	} else {
		kind = RandomShape(r)
	}

	var pivot geom.Point
	if cfg.pivot != nil {
		pivot = *cfg.pivot
	} else {
		col, ok := spawnColumn(r, b.Width, cfg.scale)
		if !ok {
			return Piece{}, fmt.Errorf("%w: board %dx%d cannot hold scale %d", ErrPieceOutOfBounds, b.Width, b.Height, cfg.scale)
		}
		pivot = geom.Pt(col, SpawnRow)
	}

	cells, ok := layout(kind, pivot, cfg.scale)
	if !ok || !allFit(b, cells, cfg.scale) {
		return Piece{}, fmt.Errorf("%w: %v at %v", ErrPieceOutOfBounds, kind, pivot)
	}

	return Piece{
		Kind:         kind,
		Cells:        cells,
		Scale:        cfg.scale,
		FallInterval: cfg.fallInterval,
		LastFallAt:   now,
		Color:        RandomColor(r),
	}, nil
}

// spawnColumn picks a pivot column. Shapes reach one block left of the pivot
// and end one block right of it, so [scale, width-2*scale] is always safe.
func spawnColumn(r Rand, width, scale uint) (uint, bool) {
	if width < 3*scale {
		return 0, false
	}
	lo, hi := 2*scale, width-2*scale
	if hi < lo {
		lo = scale
	}
	return lo + uint(r.IntN(int(hi-lo+1))), true
}

// layout computes the absolute cells of kind around pivot, in spawn orientation.
func layout(kind ShapeKind, pivot geom.Point, scale uint) ([4]geom.Point, bool) {
	cells := [4]geom.Point{pivot}
	for i, off := range kind.Offsets() {
		c, ok := pivot.Offset(off.Scale(int(scale)))
		if !ok {
			return cells, false
		}
		cells[i+1] = c
	}
	return cells, true
}

func allFit(b Bounds, cells [4]geom.Point, scale uint) bool {
	for _, c := range cells {
		if !b.Fits(c, scale) {
			return false
		}
	}
	return true
}

// WithShape returns a copy of p re-laid as kind around the same pivot, in
// spawn orientation. Color and cadence are kept. It panics under the same
// condition as AtPosition.
func (p Piece) WithShape(kind ShapeKind) Piece {
	return p.relayout(kind, p.Cells[0])
}

// AtPosition returns a copy of p re-laid around a new pivot, in spawn
// orientation. It panics if a cell would land left of column 0, which a
// pivot at least one block from the left edge always avoids.
func (p Piece) AtPosition(pivot geom.Point) Piece {
	return p.relayout(p.Kind, pivot)
}

func (p Piece) relayout(kind ShapeKind, pivot geom.Point) Piece {
	cells, ok := layout(kind, pivot, max(p.Scale, 1))
	if !ok {
		panic(fmt.Sprintf("tetris: %v does not fit around pivot %v", kind, pivot))
	}
	p.Kind = kind
	p.Cells = cells
	return p
}

// Rotate turns the three non-pivot cells a quarter turn around the pivot.
// The rotation is applied only if every resulting cell fits in b; otherwise
// the piece is left untouched. It reports whether the rotation was applied.
func (p *Piece) Rotate(clockwise bool, b Bounds) bool {
	pivot := p.Cells[0]
	next := p.Cells
	for i := 1; i < len(next); i++ {
		off := p.Cells[i].Sub(pivot)
		if clockwise {
			off = off.RotateCW()
		} else {
			off = off.RotateCCW()
		}
		c, ok := pivot.Offset(off)
		if !ok || !b.Fits(c, p.Scale) {
			return false
		}
		next[i] = c
	}
	p.Cells = next
	return true
}

// TranslateLeft shifts the piece one block left if every cell stays in
// columns [scale, width-scale]. The leftmost block column is only reachable
// by rotation.
func (p *Piece) TranslateLeft(b Bounds) bool {
	return p.translate(-int(p.Scale), b)
}

// TranslateRight shifts the piece one block right under the same rule as
// TranslateLeft.
func (p *Piece) TranslateRight(b Bounds) bool {
	return p.translate(int(p.Scale), b)
}

func (p *Piece) translate(dx int, b Bounds) bool {
	scale := max(p.Scale, 1)
	next := p.Cells
	for i, c := range p.Cells {
		moved, ok := c.Offset(geom.Offset{DX: dx})
		if !ok || moved.X < scale || !b.Fits(moved, scale) {
			return false
		}
		next[i] = moved
	}
	p.Cells = next
	return true
}

// Fall moves every cell down one row. Callers check for collisions first.
func (p *Piece) Fall() {
	for i := range p.Cells {
		p.Cells[i].Y++
	}
}

// Tick reports whether the piece has rested for at least FallInterval.
func (p *Piece) Tick(now time.Time) bool {
	return now.Sub(p.LastFallAt) >= p.FallInterval
}

// Reset restarts the rest timer at now.
func (p *Piece) Reset(now time.Time) {
	p.LastFallAt = now
}

// OnRow reports whether any cell is anchored on row y.
func (p *Piece) OnRow(y uint) bool {
	for _, c := range p.Cells {
		if c.Y == y {
			return true
		}
	}
	return false
}

// Covered yields every board cell covered by the piece's blocks.
func (p Piece) Covered() iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		scale := max(p.Scale, 1)
		for _, c := range p.Cells {
			for dy := uint(0); dy < scale; dy++ {
				for dx := uint(0); dx < scale; dx++ {
					if !yield(geom.Pt(c.X+dx, c.Y+dy)) {
						return
					}
				}
			}
		}
	}
}
