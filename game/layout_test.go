package game_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Ilingu/corrodis/game"
	"github.com/Ilingu/corrodis/geom"
	"github.com/Ilingu/corrodis/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinBoard(t *testing.T) {
	assert.Equal(t, tetris.Bounds{Width: 4, Height: 15}, game.MinBoard(1))
	assert.Equal(t, tetris.Bounds{Width: 4, Height: 15}, game.MinBoard(0))
	assert.Equal(t, tetris.Bounds{Width: 16, Height: 18}, game.MinBoard(4))
}

func TestLayoutForViewport(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		scale      uint
		wantBoard  tetris.Bounds
		wantCanvas tetris.Bounds
	}{
		{
			name: "roomy terminal caps the board",
			cols: 80, rows: 24, scale: 1,
			wantBoard:  tetris.Bounds{Width: 10, Height: 20},
			wantCanvas: tetris.Bounds{Width: 19, Height: 22},
		},
		{
			name: "short terminal shrinks the board",
			cols: 80, rows: 18, scale: 1,
			wantBoard:  tetris.Bounds{Width: 10, Height: 16},
			wantCanvas: tetris.Bounds{Width: 19, Height: 18},
		},
		{
			name: "scaled",
			cols: 80, rows: 24, scale: 2,
			wantBoard:  tetris.Bounds{Width: 20, Height: 22},
			wantCanvas: tetris.Bounds{Width: 29, Height: 24},
		},
		{
			name: "exact minimum",
			cols: 13, rows: 17, scale: 1,
			wantBoard:  tetris.Bounds{Width: 4, Height: 15},
			wantCanvas: tetris.Bounds{Width: 13, Height: 17},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := game.LayoutForViewport(tt.cols, tt.rows, tt.scale)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBoard, l.Board)
			assert.Equal(t, tt.wantCanvas, l.Canvas)
			assert.Equal(t, tt.scale, l.Scale)
			assert.Equal(t, geom.Pt(1, 1), l.BoardOrigin)
			assert.Equal(t, geom.Pt(tt.wantBoard.Width+2, 1), l.PanelOrigin)
			assert.Equal(t, tetris.Bounds{Width: game.PanelWidth, Height: tt.wantBoard.Height}, l.Panel)
			assert.NoError(t, l.CheckViewport(tt.cols, tt.rows))
		})
	}
}

func TestLayoutForViewportTooSmall(t *testing.T) {
	for _, size := range [][2]int{{12, 24}, {80, 16}, {0, 0}} {
		_, err := game.LayoutForViewport(size[0], size[1], 1)
		require.ErrorIs(t, err, game.ErrViewportTooSmall)

		var precondition *game.PreconditionError
		require.True(t, errors.As(err, &precondition))
		assert.Contains(t, precondition.Reason, "needs at least 13x17")
	}
}

func TestCheckViewport(t *testing.T) {
	l, err := game.NewLayout(tetris.Bounds{Width: 10, Height: 20}, 1)
	require.NoError(t, err)

	assert.NoError(t, l.CheckViewport(19, 22))
	assert.ErrorIs(t, l.CheckViewport(18, 22), game.ErrViewportTooSmall)
	assert.ErrorIs(t, l.CheckViewport(19, 21), game.ErrViewportTooSmall)
}

func TestNewLayoutRejectsSmallBoards(t *testing.T) {
	_, err := game.NewLayout(tetris.Bounds{Width: 3, Height: 20}, 1)
	assert.ErrorIs(t, err, game.ErrBoardTooSmall)

	_, err = game.NewLayout(tetris.Bounds{Width: 10, Height: 20}, 3)
	assert.ErrorIs(t, err, game.ErrBoardTooSmall)
}

func TestEveryShapeFitsEveryPreviewSlot(t *testing.T) {
	l, err := game.NewLayout(game.MinBoard(1), 1)
	require.NoError(t, err)

	for _, slot := range l.Slots {
		for _, kind := range tetris.Shapes {
			_, err := tetris.Spawn(tetris.NewRand(1), l.Panel, time.Time{},
				tetris.WithShape(kind), tetris.AtPosition(slot))
			assert.NoError(t, err, "%v at %v", kind, slot)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, game.DefaultConfig().Validate())

	cfg := game.DefaultConfig()
	cfg.Scale = 0
	cfg.FallInterval = -time.Second
	cfg.Board = tetris.Bounds{Width: 10}
	err := cfg.Validate()
	assert.ErrorContains(t, err, "scale")
	assert.ErrorContains(t, err, "fall interval")
	assert.ErrorContains(t, err, "set both dimensions")
	assert.NotContains(t, err.Error(), "frame period")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Running", game.Running.String())
	assert.Equal(t, "GameOver", game.GameOver.String())
	assert.Equal(t, "State(9)", game.State(9).String())
	assert.True(t, game.Quit.Finished())
	assert.False(t, game.Paused.Finished())
}
