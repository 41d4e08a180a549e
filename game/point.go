package game

import "fmt"

// Point is a location on the board in layout units.
//
// Two points are equal when they differ by less than one unit on both axes.
// Intersections shared by neighbouring hexagons are computed from different
// centers and only agree up to floating point error, so this is what
// deduplicates them.
type Point struct {
	X float64
	Y float64
}

// PointKey is the truncated integer cell of a Point. Equal points have keys
// that differ by at most one on each axis; the board resolves lookups by
// probing the neighbouring cells (see Board.Canonical).
type PointKey struct {
	X int
	Y int
}

func (p Point) Equal(o Point) bool {
	return int(p.X-o.X) == 0 && int(p.Y-o.Y) == 0
}

func (p Point) Key() PointKey {
	return PointKey{X: int(p.X), Y: int(p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", int(p.X), int(p.Y))
}

// Edge is an undirected pair of points. Edges compare equal regardless of
// endpoint order.
type Edge struct {
	A Point
	B Point
}

// EdgeKey is an order-independent key for an Edge built from canonical
// endpoints.
type EdgeKey struct {
	Lo PointKey
	Hi PointKey
}

func NewEdge(a, b Point) Edge {
	return Edge{A: a, B: b}
}

func (e Edge) Equal(o Edge) bool {
	return (e.A.Equal(o.A) && e.B.Equal(o.B)) || (e.A.Equal(o.B) && e.B.Equal(o.A))
}

// Key orders the endpoint keys so Edge{a,b} and Edge{b,a} share a key.
// Only meaningful for edges whose endpoints are canonical intersections.
func (e Edge) Key() EdgeKey {
	a, b := e.A.Key(), e.B.Key()
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	return EdgeKey{Lo: a, Hi: b}
}

// Touches reports whether p is one of the edge's endpoints.
func (e Edge) Touches(p Point) bool {
	return e.A.Equal(p) || e.B.Equal(p)
}

// Other returns the endpoint opposite p.
func (e Edge) Other(p Point) Point {
	if e.A.Equal(p) {
		return e.B
	}
	return e.A
}

func (e Edge) String() string {
	return e.A.String() + "-" + e.B.String()
}
