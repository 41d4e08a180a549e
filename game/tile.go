package game

const (
	NumTiles         = 19
	NumPorts         = 9
	NumIntersections = 54
)

// tileKinds is the fixed multiset of tiles shuffled onto the layout.
var tileKinds = []Resource{
	Desert,
	Ore, Ore, Ore,
	Brick, Brick, Brick,
	Sheep, Sheep, Sheep, Sheep,
	Wheat, Wheat, Wheat, Wheat,
	Wood, Wood, Wood, Wood,
}

// numberTokens are handed out in this order to non-desert tiles after the
// shuffle.
var numberTokens = []int{5, 2, 6, 3, 8, 10, 9, 12, 11, 4, 8, 10, 9, 4, 5, 6, 3, 11}

var portKinds = []PortKind{
	GeneralPort, GeneralPort, GeneralPort, GeneralPort,
	BrickPort, OrePort, SheepPort, WheatPort, WoodPort,
}

// Tile is a resource hexagon.
type Tile struct {
	Kind     Resource
	Number   int // 0 for the desert
	Location Point
}

// Pips is the number of dice combinations that roll the tile's number out of
// 36, which is how the tile is valued. The desert is worth nothing.
func (t Tile) Pips() int {
	return pipValue(t.Number)
}

func pipValue(number int) int {
	switch {
	case number < 2 || number > 12:
		return 0
	case number < 7:
		return number - 1
	default:
		return 13 - number
	}
}

// Port lets a settlement or city on either of its intersections trade at a
// better rate.
type Port struct {
	Kind PortKind
	Edge Edge
}
