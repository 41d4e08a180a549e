package game

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// PlayerID identifies a seat, starting at 1.
type PlayerID int

const (
	// NoPlayer marks an unset winner.
	NoPlayer PlayerID = 0
	// AnyPlayer disables the owner filter of the Find* lookups.
	AnyPlayer PlayerID = -1
)

// Building is a settlement or a city.
type Building struct {
	Kind     Structure
	Location Point
	Player   PlayerID
	Color    string
}

type Road struct {
	Edge   Edge
	Player PlayerID
	Color  string
}

// Board holds the tile and port layout and every placed structure. It is
// created once per game and mutated in place; per player slices are indexed
// by PlayerID-1.
type Board struct {
	Layout         Layout
	Tiles          []Tile
	Ports          []Port
	Intersections  []Point
	Robber         Point
	Settlements    [][]Building
	Cities         [][]Building
	Roads          [][]Road
	ResourceCounts []int // Public hand sizes, for discard and robbery decisions
	Scores         []int // Public victory points
	Turn           int
	Winner         PlayerID

	rng    *rand.Rand
	events EventLog

	pointIndex map[PointKey]int // Truncated cell -> index into Intersections
	neighbors  [][]int          // Adjacent intersections per intersection
	hexes      [][]int          // Adjacent tiles per intersection
	ports      map[int]int      // Intersection -> index into Ports
	buildings  map[int]Building // Intersection -> occupant
	roadOwners map[EdgeKey]PlayerID
}

type BoardOption func(b *Board)

func WithLayout(layout Layout) BoardOption {
	return func(b *Board) {
		b.Layout = layout
	}
}

func WithEventLog(events EventLog) BoardOption {
	return func(b *Board) {
		if events != nil {
			b.events = events
		}
	}
}

// NewBoard creates a board for numPlayers seats and lays out tiles and
// ports. A malformed layout fails here rather than mid game.
func NewBoard(numPlayers int, rng *rand.Rand, options ...BoardOption) (*Board, error) {
	if numPlayers <= 0 {
		return nil, fmt.Errorf("%w: %d players", ErrMalformedBoard, numPlayers)
	}
	b := &Board{
		Layout:         DefaultLayout(),
		Settlements:    make([][]Building, numPlayers),
		Cities:         make([][]Building, numPlayers),
		Roads:          make([][]Road, numPlayers),
		ResourceCounts: make([]int, numPlayers),
		Scores:         make([]int, numPlayers),
		Turn:           1,
		Winner:         NoPlayer,
		rng:            rng,
		events:         NopLog,
		buildings:      make(map[int]Building),
		roadOwners:     make(map[EdgeKey]PlayerID),
	}
	for _, option := range options {
		option(b)
	}
	if err := b.InitializeTiles(); err != nil {
		return nil, err
	}
	if err := b.InitializePorts(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) NumPlayers() int {
	return len(b.Scores)
}

// SetEventLog replaces the sink that receives placement events.
func (b *Board) SetEventLog(events EventLog) {
	if events == nil {
		events = NopLog
	}
	b.events = events
}

// InitializeTiles shuffles the tile kinds onto the fixed layout, hands out
// number tokens, puts the robber on the desert and computes the deduplicated
// intersections.
func (b *Board) InitializeTiles() error {
	kinds := make([]Resource, len(tileKinds))
	copy(kinds, tileKinds)
	b.rng.Shuffle(len(kinds), func(i, j int) {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	})

	centers := b.Layout.TileCenters()
	if len(centers) != len(kinds) {
		return fmt.Errorf("%w: %d tile locations for %d tiles", ErrMalformedBoard, len(centers), len(kinds))
	}

	b.Tiles = make([]Tile, len(kinds))
	token := 0
	for i, kind := range kinds {
		b.Tiles[i] = Tile{Kind: kind, Location: centers[i]}
		if kind == Desert {
			b.Robber = centers[i]
			continue
		}
		if token >= len(numberTokens) {
			return fmt.Errorf("%w: ran out of number tokens", ErrMalformedBoard)
		}
		b.Tiles[i].Number = numberTokens[token]
		token++
	}

	b.Intersections = nil
	b.pointIndex = make(map[PointKey]int)
	for _, tile := range b.Tiles {
		for _, corner := range b.Layout.Corners(tile.Location) {
			if _, ok := b.lookup(corner); !ok {
				b.pointIndex[corner.Key()] = len(b.Intersections)
				b.Intersections = append(b.Intersections, corner)
			}
		}
	}
	if len(b.Intersections) != NumIntersections {
		return fmt.Errorf("%w: %d intersections", ErrMalformedBoard, len(b.Intersections))
	}

	b.hexes = make([][]int, len(b.Intersections))
	for t, tile := range b.Tiles {
		for _, corner := range b.Layout.Corners(tile.Location) {
			i, _ := b.lookup(corner)
			b.hexes[i] = append(b.hexes[i], t)
		}
	}

	b.neighbors = make([][]int, len(b.Intersections))
	for i := range b.Intersections {
		for j := i + 1; j < len(b.Intersections); j++ {
			if b.IsAdjacent(b.Intersections[i], b.Intersections[j]) {
				b.neighbors[i] = append(b.neighbors[i], j)
				b.neighbors[j] = append(b.neighbors[j], i)
			}
		}
	}
	return nil
}

// InitializePorts shuffles the port kinds onto the fixed coastal edges.
func (b *Board) InitializePorts() error {
	if len(b.Intersections) == 0 {
		return fmt.Errorf("%w: ports placed before tiles", ErrMalformedBoard)
	}
	kinds := make([]PortKind, len(portKinds))
	copy(kinds, portKinds)
	b.rng.Shuffle(len(kinds), func(i, j int) {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	})

	edges := b.Layout.PortEdges()
	if len(edges) != len(kinds) {
		return fmt.Errorf("%w: %d port locations for %d ports", ErrMalformedBoard, len(edges), len(kinds))
	}

	b.Ports = make([]Port, len(kinds))
	b.ports = make(map[int]int)
	for i, kind := range kinds {
		a, okA := b.lookup(edges[i].A)
		c, okC := b.lookup(edges[i].B)
		if !okA || !okC {
			return fmt.Errorf("%w: port %d is not on the coast", ErrMalformedBoard, i)
		}
		b.Ports[i] = Port{Kind: kind, Edge: NewEdge(b.Intersections[a], b.Intersections[c])}
		b.ports[a] = i
		b.ports[c] = i
	}
	return nil
}

// lookup resolves p to the index of the intersection equal to it.
func (b *Board) lookup(p Point) (int, bool) {
	k := p.Key()
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			i, ok := b.pointIndex[PointKey{X: k.X + dx, Y: k.Y + dy}]
			if ok && b.Intersections[i].Equal(p) {
				return i, true
			}
		}
	}
	return -1, false
}

// Canonical returns the board intersection equal to p.
func (b *Board) Canonical(p Point) (Point, bool) {
	i, ok := b.lookup(p)
	if !ok {
		return Point{}, false
	}
	return b.Intersections[i], true
}

func (b *Board) seat(player PlayerID) (int, bool) {
	i := int(player) - 1
	return i, i >= 0 && i < len(b.Scores)
}

// RollDice returns the sum of two six sided dice.
func (b *Board) RollDice() int {
	return b.rng.Intn(6) + 1 + b.rng.Intn(6) + 1
}

// IsAdjacent reports whether two points are one edge length apart.
func (b *Board) IsAdjacent(p1, p2 Point) bool {
	distance := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
	return math.Abs(distance-b.Layout.EdgeLength()) < adjacencyTolerance
}

// AdjacentIntersections returns the intersections one edge away from p.
func (b *Board) AdjacentIntersections(p Point) []Point {
	var adjacent []Point
	if i, ok := b.lookup(p); ok {
		for _, j := range b.neighbors[i] {
			adjacent = append(adjacent, b.Intersections[j])
		}
		return adjacent
	}
	for _, q := range b.Intersections {
		if b.IsAdjacent(p, q) {
			adjacent = append(adjacent, q)
		}
	}
	return adjacent
}

// AdjacentHexes returns the tiles that have p as a corner.
func (b *Board) AdjacentHexes(p Point) []Tile {
	i, ok := b.lookup(p)
	if !ok {
		return nil
	}
	tiles := make([]Tile, 0, len(b.hexes[i]))
	for _, t := range b.hexes[i] {
		tiles = append(tiles, b.Tiles[t])
	}
	return tiles
}

// FindTileIndex returns the index of the tile centred at p, or -1.
func (b *Board) FindTileIndex(p Point) int {
	for i, tile := range b.Tiles {
		if tile.Location.Equal(p) {
			return i
		}
	}
	return -1
}

// TileCorners returns the six intersections around tile t.
func (b *Board) TileCorners(t int) []Point {
	corners := make([]Point, 0, 6)
	for _, c := range b.Layout.Corners(b.Tiles[t].Location) {
		if p, ok := b.Canonical(c); ok {
			corners = append(corners, p)
		}
	}
	return corners
}

// PortType returns the kind of port at p, if any.
func (b *Board) PortType(p Point) (PortKind, bool) {
	i, ok := b.lookup(p)
	if !ok {
		return 0, false
	}
	port, ok := b.ports[i]
	if !ok {
		return 0, false
	}
	return b.Ports[port].Kind, true
}

// BuildingAt returns the settlement or city at p.
func (b *Board) BuildingAt(p Point) (Building, bool) {
	i, ok := b.lookup(p)
	if !ok {
		return Building{}, false
	}
	building, ok := b.buildings[i]
	return building, ok
}

// FindSettlementIndex returns the index of the settlement at p within its
// owner's settlements, or -1. player may be AnyPlayer.
func (b *Board) FindSettlementIndex(p Point, player PlayerID) int {
	return b.findBuilding(p, player, SettlementStructure, b.Settlements)
}

// FindCityIndex returns the index of the city at p within its owner's
// cities, or -1. player may be AnyPlayer.
func (b *Board) FindCityIndex(p Point, player PlayerID) int {
	return b.findBuilding(p, player, CityStructure, b.Cities)
}

func (b *Board) findBuilding(p Point, player PlayerID, kind Structure, owned [][]Building) int {
	building, ok := b.BuildingAt(p)
	if !ok || building.Kind != kind || (player != AnyPlayer && building.Player != player) {
		return -1
	}
	seat, _ := b.seat(building.Player)
	for i, candidate := range owned[seat] {
		if candidate.Location.Equal(p) {
			return i
		}
	}
	return -1
}

// FindRoadIndex returns the index of the road between p1 and p2 within its
// owner's roads, or -1. player may be AnyPlayer.
func (b *Board) FindRoadIndex(p1, p2 Point, player PlayerID) int {
	edge, ok := b.canonicalEdge(p1, p2)
	if !ok {
		return -1
	}
	owner, ok := b.roadOwners[edge.Key()]
	if !ok || (player != AnyPlayer && owner != player) {
		return -1
	}
	seat, _ := b.seat(owner)
	for i, road := range b.Roads[seat] {
		if road.Edge.Equal(edge) {
			return i
		}
	}
	return -1
}

func (b *Board) canonicalEdge(p1, p2 Point) (Edge, bool) {
	a, okA := b.Canonical(p1)
	c, okC := b.Canonical(p2)
	if !okA || !okC {
		return Edge{}, false
	}
	return NewEdge(a, c), true
}

// LegalPlacement reports whether a settlement may go at p under the distance
// rule: p and every neighbour of p must be empty.
func (b *Board) LegalPlacement(p Point) bool {
	i, ok := b.lookup(p)
	if !ok {
		return false
	}
	if _, occupied := b.buildings[i]; occupied {
		return false
	}
	for _, j := range b.neighbors[i] {
		if _, occupied := b.buildings[j]; occupied {
			return false
		}
	}
	return true
}

// PossibleCityLocations returns the player's settlement locations.
func (b *Board) PossibleCityLocations(player PlayerID) []Point {
	seat, ok := b.seat(player)
	if !ok {
		return nil
	}
	locations := make([]Point, 0, len(b.Settlements[seat]))
	for _, s := range b.Settlements[seat] {
		locations = append(locations, s.Location)
	}
	return locations
}

// roadPoints returns the distinct intersections touched by the player's
// roads, in placement order.
func (b *Board) roadPoints(seat int) []Point {
	seen := make(map[PointKey]bool)
	var points []Point
	for _, road := range b.Roads[seat] {
		for _, p := range []Point{road.Edge.A, road.Edge.B} {
			if !seen[p.Key()] {
				seen[p.Key()] = true
				points = append(points, p)
			}
		}
	}
	return points
}

// PossibleSettlementLocations returns the intersections on the player's road
// network that satisfy the distance rule.
func (b *Board) PossibleSettlementLocations(player PlayerID) []Point {
	seat, ok := b.seat(player)
	if !ok {
		return nil
	}
	var locations []Point
	for _, p := range b.roadPoints(seat) {
		if b.LegalPlacement(p) {
			locations = append(locations, p)
		}
	}
	return locations
}

// PossibleRoadLocations returns the unbuilt edges leaving the player's
// network. Intersections holding another player's settlement or city break
// the network and are not extended from.
func (b *Board) PossibleRoadLocations(player PlayerID) []Edge {
	seat, ok := b.seat(player)
	if !ok {
		return nil
	}
	points := b.roadPoints(seat)
	for _, owned := range [][]Building{b.Settlements[seat], b.Cities[seat]} {
		for _, building := range owned {
			points = append(points, building.Location)
		}
	}

	seen := make(map[EdgeKey]bool)
	var edges []Edge
	for _, p := range points {
		if building, ok := b.BuildingAt(p); ok && building.Player != player {
			continue
		}
		for _, q := range b.AdjacentIntersections(p) {
			edge := NewEdge(p, q)
			key := edge.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			if _, built := b.roadOwners[key]; !built {
				edges = append(edges, edge)
			}
		}
	}
	return edges
}

// Yield is a resource payout to one player.
type Yield struct {
	Player   PlayerID
	Resource Resource
	Amount   int
}

// Yields returns the payouts for a roll: one per settlement and two per city
// on each tile with that number, except the tile under the robber.
func (b *Board) Yields(roll int) []Yield {
	var yields []Yield
	for seat := range b.Scores {
		for _, owned := range [][]Building{b.Settlements[seat], b.Cities[seat]} {
			for _, building := range owned {
				amount := 1
				if building.Kind == CityStructure {
					amount = 2
				}
				for _, tile := range b.AdjacentHexes(building.Location) {
					if tile.Number != roll || tile.Location.Equal(b.Robber) {
						continue
					}
					yields = append(yields, Yield{Player: building.Player, Resource: tile.Kind, Amount: amount})
				}
			}
		}
	}
	return yields
}

// AdjustResources keeps the public hand size of a player in step with its
// ledger.
func (b *Board) AdjustResources(player PlayerID, delta int) {
	if seat, ok := b.seat(player); ok {
		b.ResourceCounts[seat] += delta
	}
}

// MoveRobber places the robber on the tile centred at p.
func (b *Board) MoveRobber(p Point) error {
	t := b.FindTileIndex(p)
	if t == -1 {
		return fmt.Errorf("cannot move robber: no tile at %s", p)
	}
	b.Robber = b.Tiles[t].Location
	return nil
}

// Count returns how many structures of kind the player has on the board.
func (b *Board) Count(player PlayerID, s Structure) int {
	seat, ok := b.seat(player)
	if !ok {
		return 0
	}
	switch s {
	case SettlementStructure:
		return len(b.Settlements[seat])
	case CityStructure:
		return len(b.Cities[seat])
	case RoadStructure:
		return len(b.Roads[seat])
	}
	return 0
}

// Score returns the public score of a player.
func (b *Board) Score(player PlayerID) int {
	seat, ok := b.seat(player)
	if !ok {
		return 0
	}
	return b.Scores[seat]
}

// HandSize returns the public number of resources a player holds.
func (b *Board) HandSize(player PlayerID) int {
	seat, ok := b.seat(player)
	if !ok {
		return 0
	}
	return b.ResourceCounts[seat]
}
