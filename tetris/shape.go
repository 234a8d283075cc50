package tetris

import (
	"github.com/Ilingu/corrodis/display"
	"github.com/Ilingu/corrodis/geom"
)

//go:generate go tool stringer -type=ShapeKind

// ShapeKind is one of the seven tetromino silhouettes.
type ShapeKind uint8

const (
	Bar ShapeKind = iota
	Square
	Pyramid
	LLeft
	LRight
	SnakeLeft
	SnakeRight
)

const NumShapes = 7

// Shapes lists every kind in declaration order.
var Shapes = [NumShapes]ShapeKind{Bar, Square, Pyramid, LLeft, LRight, SnakeLeft, SnakeRight}

// shapeOffsets holds, per kind, the unit offsets of the three cells that
// surround the pivot. They are multiplied by the piece scale.
var shapeOffsets = [NumShapes][3]geom.Offset{
	Bar:        {{DX: 0, DY: 1}, {DX: 0, DY: 2}, {DX: 0, DY: 3}},
	Square:     {{DX: 1, DY: 0}, {DX: 0, DY: 1}, {DX: 1, DY: 1}},
	Pyramid:    {{DX: -1, DY: 0}, {DX: 1, DY: 0}, {DX: 0, DY: 1}},
	LLeft:      {{DX: 0, DY: 1}, {DX: 0, DY: 2}, {DX: -1, DY: 2}},
	LRight:     {{DX: 0, DY: 1}, {DX: 0, DY: 2}, {DX: 1, DY: 2}},
	SnakeLeft:  {{DX: -1, DY: 0}, {DX: 0, DY: 1}, {DX: 1, DY: 1}},
	SnakeRight: {{DX: 1, DY: 0}, {DX: 0, DY: 1}, {DX: -1, DY: 1}},
}

// Offsets returns the unit offsets of the non-pivot cells of k.
func (k ShapeKind) Offsets() [3]geom.Offset {
	return shapeOffsets[k]
}

// RandomShape draws a kind uniformly from r.
func RandomShape(r Rand) ShapeKind {
	return ShapeKind(r.IntN(NumShapes))
}

// Background is the color of an empty cell.
const Background = display.BlackBG

// Palette lists the colors a spawned piece may take.
var Palette = [...]display.Attr{
	display.BlueBG,
	display.CyanBG,
	display.GreenBG,
	display.MagentaBG,
	display.RedBG,
}

// RandomColor draws a color uniformly from Palette.
func RandomColor(r Rand) display.Attr {
	return Palette[r.IntN(len(Palette))]
}
