package tetris

import "errors"

var (
	ErrNoLandingCells   = errors.New("piece has no cells on the board")
	ErrPieceOutOfBounds = errors.New("piece does not fit on the board")
)
