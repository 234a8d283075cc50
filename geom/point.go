package geom

// Point is a cell coordinate in a row-major grid. X is the column and Y the row.
type Point struct {
	X, Y uint
}

// Offset is a signed displacement between two points.
type Offset struct {
	DX, DY int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y uint) Point {
	return Point{X: x, Y: y}
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the displacement that takes q to p.
func (p Point) Sub(q Point) Offset {
	return Offset{DX: int(p.X) - int(q.X), DY: int(p.Y) - int(q.Y)}
}

// Offset applies o to p. It returns false if either component would become
// negative, in which case the returned point is meaningless.
func (p Point) Offset(o Offset) (Point, bool) {
	x := int(p.X) + o.DX
	y := int(p.Y) + o.DY
	if x < 0 || y < 0 {
		return Point{}, false
	}
	return Point{X: uint(x), Y: uint(y)}, true
}

// Scale multiplies both components of o by s.
func (o Offset) Scale(s int) Offset {
	return Offset{DX: o.DX * s, DY: o.DY * s}
}

// RotateCW turns o by 90 degrees clockwise in screen coordinates (Y grows downward).
func (o Offset) RotateCW() Offset {
	return Offset{DX: -o.DY, DY: o.DX}
}

// RotateCCW turns o by 90 degrees counter-clockwise in screen coordinates.
func (o Offset) RotateCCW() Offset {
	return Offset{DX: o.DY, DY: -o.DX}
}
