package game

// Layout fixes the geometry of the board: a 19 hexagon island centred on
// (CenterX, CenterY). Hexagons are flat-topped with corners at (±Width, 0)
// and (±SmallWidth, ±Height) from their center.
type Layout struct {
	CenterX    float64
	CenterY    float64
	Height     float64
	Width      float64
	SmallWidth float64
}

// adjacencyTolerance is how far (in layout units) a distance may stray from
// one edge length and still count as adjacent. Edges along the diagonal are
// slightly longer than horizontal ones since Width is not exactly
// Height*2/sqrt(3).
const adjacencyTolerance = 2.0

// DefaultLayout is sized for a 1920x1080 canvas.
func DefaultLayout() Layout {
	return NewLayout(960, 540)
}

func NewLayout(centerX, centerY float64) Layout {
	height := centerY / 5.6
	width := height * 1.15
	return Layout{
		CenterX:    centerX,
		CenterY:    centerY,
		Height:     height,
		Width:      width,
		SmallWidth: width / 2,
	}
}

// EdgeLength is the distance between two adjacent intersections.
func (l Layout) EdgeLength() float64 {
	return l.SmallWidth * 2
}

// offset is a position relative to the board center in multiples of Width
// and Height.
type offset struct {
	w float64
	h float64
}

func (l Layout) at(o offset) Point {
	return Point{X: l.CenterX + o.w*l.Width, Y: l.CenterY + o.h*l.Height}
}

// tileOffsets is the outer ring clockwise from the top, then the inner ring,
// then the center.
var tileOffsets = [NumTiles]offset{
	{0, -4}, {-1.5, -3}, {-3, -2}, {-3, 0}, {-3, 2}, {-1.5, 3},
	{0, 4}, {1.5, 3}, {3, 2}, {3, 0}, {3, -2}, {1.5, -3},
	{0, -2}, {-1.5, -1}, {-1.5, 1}, {0, 2}, {1.5, 1}, {1.5, -1},
	{0, 0},
}

// portOffsets are the two coastal intersections served by each port.
var portOffsets = [NumPorts][2]offset{
	{{-0.5, 5}, {0.5, 5}},
	{{-2, 4}, {-2.5, 3}},
	{{-4, 0}, {-3.5, 1}},
	{{-4, -2}, {-3.5, -3}},
	{{-2, -4}, {-1, -4}},
	{{2, -4}, {1, -4}},
	{{4, -2}, {3.5, -3}},
	{{4, 0}, {3.5, 1}},
	{{2, 4}, {2.5, 3}},
}

var cornerOffsets = [6]offset{
	{1, 0}, {-1, 0}, {0.5, 1}, {-0.5, 1}, {0.5, -1}, {-0.5, -1},
}

// TileCenters returns the fixed tile center locations.
func (l Layout) TileCenters() []Point {
	centers := make([]Point, len(tileOffsets))
	for i, o := range tileOffsets {
		centers[i] = l.at(o)
	}
	return centers
}

// Corners returns the six corner intersections of the hexagon centred at c.
func (l Layout) Corners(c Point) [6]Point {
	var corners [6]Point
	for i, o := range cornerOffsets {
		corners[i] = Point{X: c.X + o.w*l.Width, Y: c.Y + o.h*l.Height}
	}
	return corners
}

// PortEdges returns the fixed port locations.
func (l Layout) PortEdges() []Edge {
	edges := make([]Edge, len(portOffsets))
	for i, o := range portOffsets {
		edges[i] = NewEdge(l.at(o[0]), l.at(o[1]))
	}
	return edges
}
