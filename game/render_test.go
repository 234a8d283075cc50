package game_test

import (
	"testing"

	"github.com/Ilingu/corrodis/game"
	"github.com/Ilingu/corrodis/geom"
	"github.com/Ilingu/corrodis/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeOverlaysWithoutCommitting(t *testing.T) {
	f := newFixture(t, nil)
	p := f.place(t, tetris.Square, geom.Pt(4, 5))
	require.NoError(t, f.loop.Tick(start))

	layout := f.loop.Layout()
	canvas := f.loop.Canvas()
	for _, c := range p.Cells {
		at := layout.BoardOrigin.Add(c)
		assert.Equal(t, p.Color, canvas.At(at.X, at.Y))
		assert.Equal(t, tetris.Background, f.loop.Stack().Cell(c.X, c.Y), "stack is left alone")
	}

	for rank := range tetris.QueueLen {
		preview := f.loop.Queue().Peek(rank)
		for cell := range preview.Covered() {
			at := layout.PanelOrigin.Add(cell)
			assert.Equal(t, preview.Color, canvas.At(at.X, at.Y), "preview %d", rank)
		}
	}

	b := canvas.Bounds()
	separator := layout.BoardOrigin.X + layout.Board.Width
	for y := range b.Height {
		assert.Equal(t, game.BorderColor, canvas.At(0, y))
		assert.Equal(t, game.BorderColor, canvas.At(separator, y))
		assert.Equal(t, game.BorderColor, canvas.At(b.Width-1, y))
	}
	for x := range b.Width {
		assert.Equal(t, game.BorderColor, canvas.At(x, 0))
		assert.Equal(t, game.BorderColor, canvas.At(x, b.Height-1))
	}
}

func TestRenderSendsOnlyChanges(t *testing.T) {
	f := newFixture(t, nil)
	f.place(t, tetris.Square, geom.Pt(4, 5))
	b := f.loop.Canvas().Bounds()

	require.NoError(t, f.loop.Tick(start))
	assert.Equal(t, int(b.Width*b.Height), f.loop.Painted(), "first frame paints everything")
	assert.Equal(t, 1, f.screen.presents)

	require.NoError(t, f.loop.Tick(start.Add(fall/2)))
	assert.Zero(t, f.loop.Painted())
	assert.Equal(t, 2, f.screen.presents, "unchanged frames are still presented")

	require.NoError(t, f.loop.Tick(start.Add(fall)))
	assert.Equal(t, 4, f.loop.Painted(), "a square falling one row changes two cells above and two below")

	canvas := f.loop.Canvas()
	for y := range b.Height {
		for x := range b.Width {
			assert.Equal(t, canvas.At(x, y), f.screen.cells[geom.Pt(x, y)], "cell %d,%d", x, y)
		}
	}
}

func TestGameOverFrameIsDrawn(t *testing.T) {
	f := newFixture(t, nil)
	for y := uint(18); y >= 2; y -= 2 {
		f.land(t, tetris.Square, geom.Pt(4, y))
	}
	f.place(t, tetris.Square, geom.Pt(4, tetris.SpawnRow))

	require.NoError(t, f.loop.Tick(start.Add(fall)))
	require.Equal(t, game.GameOver, f.loop.State())
	assert.Equal(t, 1, f.screen.presents)
}
