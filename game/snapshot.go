package game

// Snapshot is a read-only copy of the public board state.
type Snapshot struct {
	Tiles          []Tile
	Ports          []Port
	Robber         Point
	Settlements    [][]Building
	Cities         [][]Building
	Roads          [][]Road
	ResourceCounts []int
	Scores         []int
	Turn           int
	Winner         PlayerID
}

// Snapshot deep copies the board so a renderer may keep it after the board
// moves on.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Tiles:          append([]Tile(nil), b.Tiles...),
		Ports:          append([]Port(nil), b.Ports...),
		Robber:         b.Robber,
		Settlements:    copyNested(b.Settlements),
		Cities:         copyNested(b.Cities),
		Roads:          copyNested(b.Roads),
		ResourceCounts: append([]int(nil), b.ResourceCounts...),
		Scores:         append([]int(nil), b.Scores...),
		Turn:           b.Turn,
		Winner:         b.Winner,
	}
}

func copyNested[T any](src [][]T) [][]T {
	dst := make([][]T, len(src))
	for i, inner := range src {
		dst[i] = append([]T(nil), inner...)
	}
	return dst
}
