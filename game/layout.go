package game

import (
	"fmt"

	"github.com/Ilingu/corrodis/geom"
	"github.com/Ilingu/corrodis/tetris"
)

const (
	// BoardBlocksWide and BoardBlocksHigh bound a board sized from the viewport.
	BoardBlocksWide = 10
	BoardBlocksHigh = 20

	// PanelWidth is the width of the preview panel, borders excluded.
	PanelWidth = 6

	// minPanelHeight fits a bar in the last preview slot.
	minPanelHeight = 15
)

// PreviewSlots are the pivots of the preview ranks, relative to the panel.
var PreviewSlots = [tetris.QueueLen]geom.Point{{X: 2, Y: 1}, {X: 2, Y: 6}, {X: 2, Y: 11}}

// Layout places the board and the preview panel on the canvas. A one cell
// border surrounds both:
//
//	+----------+------+
//	|  board   |panel |
//	+----------+------+
type Layout struct {
	Scale       uint
	Board       tetris.Bounds
	Panel       tetris.Bounds
	Slots       [tetris.QueueLen]geom.Point
	BoardOrigin geom.Point
	PanelOrigin geom.Point
	Canvas      tetris.Bounds
}

// MinBoard returns the smallest board that can spawn every shape at scale.
func MinBoard(scale uint) tetris.Bounds {
	scale = max(scale, 1)
	return tetris.Bounds{
		Width:  4 * scale,
		Height: max(tetris.SpawnRow+4*scale+1, minPanelHeight),
	}
}

// NewLayout lays out a board of the given size.
func NewLayout(board tetris.Bounds, scale uint) (Layout, error) {
	scale = max(scale, 1)
	if least := MinBoard(scale); board.Width < least.Width || board.Height < least.Height {
		return Layout{}, fmt.Errorf("%w: %dx%d at scale %d, need at least %dx%d",
			ErrBoardTooSmall, board.Width, board.Height, scale, least.Width, least.Height)
	}

	return Layout{
		Scale:       scale,
		Board:       board,
		Panel:       tetris.Bounds{Width: PanelWidth, Height: board.Height},
		Slots:       PreviewSlots,
		BoardOrigin: geom.Pt(1, 1),
		PanelOrigin: geom.Pt(board.Width+2, 1),
		Canvas: tetris.Bounds{
			Width:  board.Width + PanelWidth + 3,
			Height: board.Height + 2,
		},
	}, nil
}

// LayoutForViewport sizes the board to a terminal of cols x rows cells, up to
// BoardBlocksWide x BoardBlocksHigh blocks.
func LayoutForViewport(cols, rows int, scale uint) (Layout, error) {
	scale = max(scale, 1)
	least := MinBoard(scale)
	minCols, minRows := int(least.Width+PanelWidth+3), int(least.Height+2)
	if cols < minCols || rows < minRows {
		return Layout{}, Precondition(ErrViewportTooSmall,
			"terminal is %dx%d, scale %d needs at least %dx%d", cols, rows, scale, minCols, minRows)
	}

	board := tetris.Bounds{
		Width:  min(BoardBlocksWide*scale, uint(cols-PanelWidth-3)),
		Height: min(BoardBlocksHigh*scale, uint(rows-2)),
	}
	return NewLayout(board, scale)
}

// CheckViewport reports whether the canvas fits a terminal of cols x rows.
func (l Layout) CheckViewport(cols, rows int) error {
	if cols < int(l.Canvas.Width) || rows < int(l.Canvas.Height) {
		return Precondition(ErrViewportTooSmall,
			"terminal is %dx%d, board needs %dx%d", cols, rows, l.Canvas.Width, l.Canvas.Height)
	}
	return nil
}
