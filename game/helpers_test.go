package game_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Ilingu/corrodis/display"
	"github.com/Ilingu/corrodis/game"
	"github.com/Ilingu/corrodis/geom"
	"github.com/Ilingu/corrodis/input"
	"github.com/Ilingu/corrodis/sim"
	"github.com/Ilingu/corrodis/tetris"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const fall = 250 * time.Millisecond

// screen is a Display that keeps the painted colors and counts calls.
type screen struct {
	x, y     int
	color    display.Attr
	cells    map[geom.Point]display.Attr
	paints   int
	presents int
	cleared  bool
	hidden   bool

	failPresent error
}

func newScreen() *screen {
	return &screen{cells: make(map[geom.Point]display.Attr)}
}

func (s *screen) Clear() error {
	s.cleared = true
	clear(s.cells)
	return nil
}

func (s *screen) ClearHistory() error { return nil }

func (s *screen) HideCursor() error {
	s.hidden = true
	return nil
}

func (s *screen) ShowCursor() error {
	s.hidden = false
	return nil
}

func (s *screen) MoveCursor(x, y int) error {
	if x < 1 || y < 1 {
		return errors.New("cursor out of range")
	}
	s.x, s.y = x, y
	return nil
}

func (s *screen) SetColor(attrs ...display.Attr) error {
	if len(attrs) > 0 {
		s.color = attrs[len(attrs)-1]
	}
	return nil
}

func (s *screen) PaintCell() error {
	s.cells[geom.Pt(uint(s.x-1), uint(s.y-1))] = s.color
	s.x++
	s.paints++
	return nil
}

func (s *screen) Present() error {
	s.presents++
	return s.failPresent
}

type fixture struct {
	loop   *game.Loop
	screen *screen
	clock  *sim.ManualClock
}

func testConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.FallInterval = fall
	cfg.Seed = 1
	return cfg
}

func newFixture(t *testing.T, src input.Source) *fixture {
	t.Helper()
	layout, err := game.NewLayout(tetris.Bounds{Width: 10, Height: 20}, 1)
	require.NoError(t, err)

	clock := sim.NewManualClock(start)
	scr := newScreen()
	if src == nil {
		src = input.NewScript()
	}
	loop, err := game.New(testConfig(), layout, scr, src, game.WithClock(clock), game.WithRand(tetris.NewRand(7)))
	require.NoError(t, err)
	return &fixture{loop: loop, screen: scr, clock: clock}
}

// place puts a piece of kind at pivot as the active piece, resting since start.
func (f *fixture) place(t *testing.T, kind tetris.ShapeKind, pivot geom.Point) tetris.Piece {
	t.Helper()
	p, err := tetris.Spawn(tetris.NewRand(1), f.loop.Layout().Board, start,
		tetris.WithShape(kind), tetris.AtPosition(pivot), tetris.WithFallInterval(fall))
	require.NoError(t, err)
	f.loop.SetPiece(p)
	return p
}

// land commits a piece of kind at pivot straight into the stack.
func (f *fixture) land(t *testing.T, kind tetris.ShapeKind, pivot geom.Point) {
	t.Helper()
	p, err := tetris.Spawn(tetris.NewRand(2), f.loop.Layout().Board, start,
		tetris.WithShape(kind), tetris.AtPosition(pivot))
	require.NoError(t, err)
	require.NoError(t, f.loop.Stack().Commit(p))
}

func shifted(cells [4]geom.Point, dx, dy int) [4]geom.Point {
	var out [4]geom.Point
	for i, c := range cells {
		out[i] = geom.Pt(uint(int(c.X)+dx), uint(int(c.Y)+dy))
	}
	return out
}
