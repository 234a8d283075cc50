package game_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ilingu/corrodis/game"
	"github.com/Ilingu/corrodis/geom"
	"github.com/Ilingu/corrodis/input"
	"github.com/Ilingu/corrodis/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareFallsOneRow(t *testing.T) {
	f := newFixture(t, nil)
	before := f.place(t, tetris.Square, geom.Pt(4, 5))

	require.NoError(t, f.loop.Tick(start.Add(fall-time.Millisecond)))
	assert.Equal(t, before, f.loop.Piece(), "gate still closed")

	require.NoError(t, f.loop.Tick(start.Add(fall)))
	after := f.loop.Piece()

	assert.Equal(t, shifted(before.Cells, 0, 1), after.Cells)
	assert.Equal(t, start.Add(fall), after.LastFallAt)

	after.Cells = before.Cells
	after.LastFallAt = before.LastFallAt
	assert.Equal(t, before, after, "nothing else changes")
}

// dropUntilSettled ticks once per fall interval until the active piece lands
// or the game ends.
func dropUntilSettled(t *testing.T, f *fixture) time.Time {
	t.Helper()
	for i := 1; i <= 40; i++ {
		now := start.Add(time.Duration(i) * fall)
		require.NoError(t, f.loop.Tick(now))
		if f.loop.Session().Landed > 0 || f.loop.State() != game.Running {
			return now
		}
	}
	t.Fatal("piece never settled")
	return time.Time{}
}

func TestLandingAndGameOver(t *testing.T) {
	tests := []struct {
		name       string
		towerTop   uint // topmost row of a two-wide tower under columns 4 and 5; 0 for none
		wantState  game.State
		wantLanded int
		wantRows   []uint // rows the landed square occupies
	}{
		{name: "floor", wantState: game.Running, wantLanded: 1, wantRows: []uint{18, 19}},
		{name: "tower below the spawn row", towerTop: 4, wantState: game.Running, wantLanded: 1, wantRows: []uint{2, 3}},
		{name: "tower reaching the spawn row", towerTop: 2, wantState: game.GameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			if tt.towerTop > 0 {
				for y := uint(18); y >= tt.towerTop; y -= 2 {
					f.land(t, tetris.Square, geom.Pt(4, y))
				}
			}
			kinds := f.loop.Queue().Kinds()
			f.place(t, tetris.Square, geom.Pt(4, tetris.SpawnRow))

			settled := dropUntilSettled(t, f)

			assert.Equal(t, tt.wantState, f.loop.State())
			assert.Equal(t, tt.wantLanded, f.loop.Session().Landed)
			if tt.wantLanded == 0 {
				assert.Equal(t, kinds, f.loop.Queue().Kinds(), "nothing promoted")
				return
			}

			for _, y := range tt.wantRows {
				assert.NotEqual(t, tetris.Background, f.loop.Stack().Cell(4, y))
				assert.NotEqual(t, tetris.Background, f.loop.Stack().Cell(5, y))
			}
			assert.Equal(t, tt.wantRows[0]-1, f.loop.Stack().Height(4))
			assert.Equal(t, f.loop.Stack().Skyline(), f.loop.Stack().Heights())

			next := f.loop.Piece()
			assert.Equal(t, kinds[0], next.Kind, "next piece comes from the queue")
			assert.Equal(t, uint(tetris.SpawnRow), next.Cells[0].Y)
			assert.Equal(t, settled, next.LastFallAt)
			promoted := f.loop.Queue().Kinds()
			assert.Equal(t, kinds[1:], promoted[:tetris.QueueLen-1])
			assert.Equal(t, tetris.QueueLen, f.loop.Queue().Len())
		})
	}
}

func TestLandingClearsFullRows(t *testing.T) {
	f := newFixture(t, nil)
	// Fill the two bottom rows except columns 8 and 9.
	for x := uint(0); x < 8; x += 2 {
		f.land(t, tetris.Square, geom.Pt(x, 18))
	}
	f.place(t, tetris.Square, geom.Pt(8, 17))

	dropUntilSettled(t, f)

	assert.Equal(t, 2, f.loop.Session().Cleared)
	for x := uint(0); x < 10; x++ {
		assert.Equal(t, tetris.Background, f.loop.Stack().Cell(x, 18))
		assert.Equal(t, tetris.Background, f.loop.Stack().Cell(x, 19))
	}
	assert.Equal(t, f.loop.Stack().Skyline(), f.loop.Stack().Heights())
}

func TestMovement(t *testing.T) {
	t.Run("translate", func(t *testing.T) {
		f := newFixture(t, input.NewScript(input.Left, input.Right, input.Right))
		p := f.place(t, tetris.Square, geom.Pt(4, 5))

		require.NoError(t, f.loop.Tick(start))
		assert.Equal(t, shifted(p.Cells, -1, 0), f.loop.Piece().Cells)
		require.NoError(t, f.loop.Tick(start))
		require.NoError(t, f.loop.Tick(start))
		assert.Equal(t, shifted(p.Cells, 1, 0), f.loop.Piece().Cells)
	})

	t.Run("rotate", func(t *testing.T) {
		f := newFixture(t, input.NewScript(input.RotateCW, input.RotateCCW))
		p := f.place(t, tetris.Bar, geom.Pt(4, 5))

		require.NoError(t, f.loop.Tick(start))
		assert.Equal(t, [4]geom.Point{geom.Pt(4, 5), geom.Pt(3, 5), geom.Pt(2, 5), geom.Pt(1, 5)}, f.loop.Piece().Cells)
		require.NoError(t, f.loop.Tick(start))
		assert.Equal(t, p.Cells, f.loop.Piece().Cells)
	})

	t.Run("rejected against the wall", func(t *testing.T) {
		f := newFixture(t, input.NewScript(input.Left))
		p := f.place(t, tetris.Bar, geom.Pt(0, 5))

		require.NoError(t, f.loop.Tick(start))
		assert.Equal(t, p.Cells, f.loop.Piece().Cells)
	})

	t.Run("rejected against landed cells", func(t *testing.T) {
		f := newFixture(t, input.NewScript(input.Left))
		f.land(t, tetris.Bar, geom.Pt(3, 3))
		p := f.place(t, tetris.Square, geom.Pt(4, 5))

		require.NoError(t, f.loop.Tick(start))
		assert.Equal(t, p.Cells, f.loop.Piece().Cells)
	})

	t.Run("soft drop", func(t *testing.T) {
		f := newFixture(t, input.NewScript(input.SoftDrop))
		p := f.place(t, tetris.Square, geom.Pt(4, 5))
		now := start.Add(10 * time.Millisecond)

		require.NoError(t, f.loop.Tick(now))
		assert.Equal(t, shifted(p.Cells, 0, 1), f.loop.Piece().Cells)
		assert.Equal(t, now, f.loop.Piece().LastFallAt)
	})

	t.Run("hard drop lands on the next gravity step", func(t *testing.T) {
		f := newFixture(t, input.NewScript(input.HardDrop))
		f.place(t, tetris.Square, geom.Pt(4, 5))

		// Input runs before gravity, so the piece lands within the same frame.
		require.NoError(t, f.loop.Tick(start.Add(10*time.Millisecond)))
		assert.Equal(t, 1, f.loop.Session().Landed)
		assert.NotEqual(t, tetris.Background, f.loop.Stack().Cell(4, 19))
		assert.NotEqual(t, tetris.Background, f.loop.Stack().Cell(5, 18))
	})
}

func TestPause(t *testing.T) {
	f := newFixture(t, input.NewScript(input.Pause, input.Left, input.None, input.Pause))
	p := f.place(t, tetris.Square, geom.Pt(4, 5))

	require.NoError(t, f.loop.Tick(start.Add(fall)))
	assert.Equal(t, game.Paused, f.loop.State())
	assert.Equal(t, p.Cells, f.loop.Piece().Cells, "gravity is suspended")
	assert.Zero(t, f.screen.presents, "nothing is rendered while paused")

	require.NoError(t, f.loop.Tick(start.Add(2*fall)))
	assert.Equal(t, p.Cells, f.loop.Piece().Cells, "movement is ignored while paused")

	require.NoError(t, f.loop.Tick(start.Add(3*fall)))
	require.NoError(t, f.loop.Tick(start.Add(4*fall)))
	assert.Equal(t, game.Running, f.loop.State())
	assert.Equal(t, shifted(p.Cells, 0, 1), f.loop.Piece().Cells)
	assert.Equal(t, 1, f.screen.presents)
}

func TestPauseStillPacesFrames(t *testing.T) {
	steps := []input.Key{input.Pause, input.None, input.None, input.None, input.None, input.None, input.Quit}
	f := newFixture(t, input.NewScript(steps...))

	state, err := f.loop.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Quit, state)

	period := testConfig().FramePeriod
	assert.Equal(t, time.Duration(len(steps)-1)*period, f.clock.Slept())
	assert.Equal(t, int64(len(steps)), f.loop.Stats().Frames)
	assert.Equal(t, 1, f.screen.presents, "only the display preparation presented")
}

func TestNewGame(t *testing.T) {
	f := newFixture(t, input.NewScript(input.None, input.Pause, input.NewGame))
	f.land(t, tetris.Bar, geom.Pt(2, 16))
	f.land(t, tetris.Square, geom.Pt(6, 18))

	require.NoError(t, f.loop.Tick(start))
	canvas := f.loop.Canvas().Bounds()
	require.Equal(t, int(canvas.Width*canvas.Height), f.loop.Painted())
	generation := f.loop.Canvas().Generation

	require.NoError(t, f.loop.Tick(start.Add(time.Millisecond)))
	require.Equal(t, game.Paused, f.loop.State())

	restartAt := start.Add(2 * time.Millisecond)
	require.NoError(t, f.loop.Tick(restartAt))

	assert.Equal(t, game.Running, f.loop.State())
	assert.Equal(t, 2, f.loop.Session().Games)
	assert.Equal(t, f.loop.Stack().Skyline(), f.loop.Stack().Heights())
	for _, h := range f.loop.Stack().Heights() {
		assert.Equal(t, uint(19), h)
	}
	assert.Equal(t, restartAt, f.loop.Piece().LastFallAt)
	assert.Equal(t, generation+1, f.loop.Canvas().Generation)

	// The reset is applied after the frame's systems ran; the next frame
	// repaints the whole canvas.
	require.NoError(t, f.loop.Tick(start.Add(3*time.Millisecond)))
	assert.Equal(t, int(canvas.Width*canvas.Height), f.loop.Painted())
}

func TestRunUntilQuit(t *testing.T) {
	f := newFixture(t, input.NewScript(input.None, input.Left, input.Quit))

	state, err := f.loop.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Quit, state)
	assert.True(t, f.screen.hidden)
	assert.True(t, f.screen.cleared)
	assert.Equal(t, int64(3), f.loop.Stats().Frames)
}

func TestRunUntilGameOver(t *testing.T) {
	steps := make([]input.Key, 2000)
	for i := range steps {
		steps[i] = input.HardDrop
	}
	f := newFixture(t, input.NewScript(steps...))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	state, err := f.loop.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, game.GameOver, state)
	assert.Positive(t, f.loop.Session().Landed)
	assert.Equal(t, f.loop.Stack().Skyline(), f.loop.Stack().Heights())
}

func TestRunCancelled(t *testing.T) {
	f := newFixture(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := f.loop.Run(ctx)
	assert.NoError(t, err)
	assert.Equal(t, game.Quit, state)
}

func TestDisplayErrorsPropagate(t *testing.T) {
	broken := errors.New("broken pipe")

	t.Run("while preparing", func(t *testing.T) {
		f := newFixture(t, nil)
		f.screen.failPresent = broken

		_, err := f.loop.Run(context.Background())
		assert.ErrorIs(t, err, broken)
		assert.Zero(t, f.loop.Stats().Frames)
	})

	t.Run("while rendering", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.loop.Tick(start))

		f.screen.failPresent = broken
		err := f.loop.Tick(start.Add(time.Millisecond))
		assert.ErrorIs(t, err, broken)
		assert.Contains(t, err.Error(), "RenderSystem")
	})
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	layout, err := game.NewLayout(tetris.Bounds{Width: 10, Height: 20}, 1)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.FramePeriod = 0
	_, err = game.New(cfg, layout, newScreen(), input.NewScript())
	assert.ErrorContains(t, err, "frame period")
}
