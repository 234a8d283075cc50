package game

import "github.com/Ilingu/corrodis/tetris"

// SetPiece replaces the active piece.
func (l *Loop) SetPiece(p tetris.Piece) {
	l.session.Piece = p
}
