package game

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type recorder struct {
	events []Event
}

func (r *recorder) Record(e Event) {
	r.events = append(r.events, e)
}

func newTestBoard(t *testing.T, seed uint64) (*Board, *recorder) {
	t.Helper()
	events := &recorder{}
	b, err := NewBoard(4, rand.New(rand.NewSource(seed)), WithEventLog(events))
	require.NoError(t, err)
	return b, events
}

// spreadPoints returns intersections that are pairwise non-adjacent.
func spreadPoints(b *Board, n int) []Point {
	var points []Point
	for _, p := range b.Intersections {
		ok := true
		for _, q := range points {
			if b.IsAdjacent(p, q) {
				ok = false
				break
			}
		}
		if ok {
			points = append(points, p)
		}
		if len(points) == n {
			break
		}
	}
	return points
}

func TestNewBoard(t *testing.T) {
	b, _ := newTestBoard(t, 1)

	t.Run("lays out 19 distinct tiles with one desert", func(t *testing.T) {
		require.Len(t, b.Tiles, NumTiles)
		counts := map[Resource]int{}
		for i, tile := range b.Tiles {
			counts[tile.Kind]++
			for j := i + 1; j < len(b.Tiles); j++ {
				require.False(t, tile.Location.Equal(b.Tiles[j].Location), "tile locations should be distinct")
			}
		}
		require.Equal(t, map[Resource]int{Desert: 1, Ore: 3, Brick: 3, Sheep: 4, Wheat: 4, Wood: 4}, counts)
	})

	t.Run("assigns the fixed number tokens to non-desert tiles", func(t *testing.T) {
		var numbers []int
		for _, tile := range b.Tiles {
			if tile.Kind == Desert {
				require.Zero(t, tile.Number)
				require.Zero(t, tile.Pips())
				require.True(t, tile.Location.Equal(b.Robber), "robber should start on the desert")
				continue
			}
			numbers = append(numbers, tile.Number)
		}
		want := append([]int(nil), numberTokens...)
		sort.Ints(want)
		sort.Ints(numbers)
		require.Equal(t, want, numbers)
	})

	t.Run("deduplicates 54 intersections", func(t *testing.T) {
		require.Len(t, b.Intersections, NumIntersections)
		for i, p := range b.Intersections {
			for j := i + 1; j < len(b.Intersections); j++ {
				require.False(t, p.Equal(b.Intersections[j]))
			}
			hexes := b.AdjacentHexes(p)
			require.GreaterOrEqual(t, len(hexes), 1)
			require.LessOrEqual(t, len(hexes), 3)
			neighbors := b.AdjacentIntersections(p)
			require.GreaterOrEqual(t, len(neighbors), 2)
			require.LessOrEqual(t, len(neighbors), 3)
		}
	})

	t.Run("places nine ports on coastal edges", func(t *testing.T) {
		require.Len(t, b.Ports, NumPorts)
		general := 0
		for _, port := range b.Ports {
			require.True(t, b.IsAdjacent(port.Edge.A, port.Edge.B))
			kind, ok := b.PortType(port.Edge.A)
			require.True(t, ok)
			require.Equal(t, port.Kind, kind)
			kind, ok = b.PortType(port.Edge.B)
			require.True(t, ok)
			require.Equal(t, port.Kind, kind)
			if port.Kind == GeneralPort {
				general++
			}
		}
		require.Equal(t, 4, general)
	})

	t.Run("rejects a player count of zero", func(t *testing.T) {
		_, err := NewBoard(0, rand.New(rand.NewSource(1)))
		require.ErrorIs(t, err, ErrMalformedBoard)
	})

	t.Run("same seed gives the same layout", func(t *testing.T) {
		other, _ := newTestBoard(t, 1)
		require.Equal(t, b.Tiles, other.Tiles)
		require.Equal(t, b.Ports, other.Ports)
	})
}

func TestPipValue(t *testing.T) {
	want := map[int]int{0: 0, 2: 1, 3: 2, 4: 3, 5: 4, 6: 5, 8: 5, 9: 4, 10: 3, 11: 2, 12: 1}
	for number, pips := range want {
		require.Equal(t, pips, Tile{Number: number}.Pips(), "number %d", number)
	}
}

func TestCanonical(t *testing.T) {
	b, _ := newTestBoard(t, 2)
	p := b.Intersections[10]

	got, ok := b.Canonical(Point{X: p.X + 0.6, Y: p.Y - 0.6})
	require.True(t, ok, "nearby point should resolve to the intersection")
	require.Equal(t, p, got)

	_, ok = b.Canonical(Point{X: -500, Y: -500})
	require.False(t, ok)
}

func TestAddSettlement(t *testing.T) {
	t.Run("placing next to a settlement violates the distance rule", func(t *testing.T) {
		b, events := newTestBoard(t, 3)
		p := b.Intersections[0]
		require.NoError(t, b.AddSettlement(p, 1, "red", false))
		require.Equal(t, 1, b.Score(1))

		neighbor := b.AdjacentIntersections(p)[0]
		err := b.AddSettlement(neighbor, 2, "blue", false)

		var placementErr *PlacementError
		require.ErrorIs(t, err, ErrIllegalPlacement)
		require.True(t, errors.As(err, &placementErr))
		require.Equal(t, ReasonDistanceRule, placementErr.Reason)
		require.Empty(t, b.Settlements[1], "rejected settlement should not be added")
		require.Equal(t, 0, b.Score(2))
		require.Equal(t, PlacementRejected{Player: 2, Structure: SettlementStructure, Reason: ReasonDistanceRule},
			events.events[len(events.events)-1])
	})

	t.Run("placing on an occupied point is rejected", func(t *testing.T) {
		b, _ := newTestBoard(t, 3)
		p := b.Intersections[5]
		require.NoError(t, b.AddSettlement(p, 1, "red", true))

		err := b.AddSettlement(Point{X: p.X + 0.3, Y: p.Y}, 1, "red", false)
		require.ErrorIs(t, err, ErrIllegalPlacement)
		require.Len(t, b.Settlements[0], 1)
	})

	t.Run("initial placement still applies the distance rule", func(t *testing.T) {
		b, _ := newTestBoard(t, 3)
		p := b.Intersections[7]
		require.NoError(t, b.AddSettlement(p, 1, "red", true))
		require.ErrorIs(t, b.AddSettlement(b.AdjacentIntersections(p)[0], 2, "blue", true), ErrIllegalPlacement)
	})

	t.Run("a sixth settlement exceeds the cap", func(t *testing.T) {
		b, _ := newTestBoard(t, 4)
		points := spreadPoints(b, MaxSettlements+1)
		require.Len(t, points, MaxSettlements+1)
		for _, p := range points[:MaxSettlements] {
			require.NoError(t, b.AddSettlement(p, 1, "red", false))
		}

		err := b.AddSettlement(points[MaxSettlements], 1, "red", false)
		require.ErrorIs(t, err, ErrCapacityExceeded)
		require.Len(t, b.Settlements[0], MaxSettlements)
		require.Equal(t, MaxSettlements, b.Score(1))
	})

	t.Run("unknown points and players are rejected", func(t *testing.T) {
		b, _ := newTestBoard(t, 4)
		require.ErrorIs(t, b.AddSettlement(Point{X: 1, Y: 1}, 1, "red", false), ErrIllegalPlacement)
		require.ErrorIs(t, b.AddSettlement(b.Intersections[0], 9, "red", false), ErrIllegalPlacement)
	})

	t.Run("settlements stay apart after many random attempts", func(t *testing.T) {
		b, _ := newTestBoard(t, 5)
		rng := rand.New(rand.NewSource(5))
		for i := 0; i < 200; i++ {
			p := b.Intersections[rng.Intn(len(b.Intersections))]
			_ = b.AddSettlement(p, PlayerID(rng.Intn(4)+1), "", false)
		}
		var all []Point
		for seat := range b.Settlements {
			require.LessOrEqual(t, len(b.Settlements[seat]), MaxSettlements)
			for _, s := range b.Settlements[seat] {
				all = append(all, s.Location)
			}
		}
		for i := range all {
			for j := i + 1; j < len(all); j++ {
				require.False(t, b.IsAdjacent(all[i], all[j]))
				require.False(t, all[i].Equal(all[j]))
			}
		}
	})
}

func TestAddCity(t *testing.T) {
	t.Run("upgrading replaces the settlement and scores one point", func(t *testing.T) {
		b, events := newTestBoard(t, 6)
		p := b.Intersections[3]
		require.NoError(t, b.AddSettlement(p, 2, "blue", false))
		before := b.Score(2)

		require.NoError(t, b.AddCity(p, 2, "blue", false))

		require.Empty(t, b.Settlements[1])
		require.Len(t, b.Cities[1], 1)
		require.Equal(t, before+1, b.Score(2))
		require.Equal(t, -1, b.FindSettlementIndex(p, AnyPlayer))
		require.Equal(t, 0, b.FindCityIndex(p, 2))
		require.Equal(t, -1, b.FindCityIndex(p, 1))
		require.IsType(t, CityPlaced{}, events.events[len(events.events)-1])
	})

	t.Run("a city needs the player's own settlement", func(t *testing.T) {
		b, _ := newTestBoard(t, 6)
		p := b.Intersections[3]
		require.NoError(t, b.AddSettlement(p, 2, "blue", false))

		var placementErr *PlacementError
		err := b.AddCity(p, 1, "red", false)
		require.True(t, errors.As(err, &placementErr))
		require.Equal(t, ReasonNoSettlement, placementErr.Reason)
		require.Empty(t, b.Cities[0])
		require.Len(t, b.Settlements[1], 1)
	})

	t.Run("a fifth city exceeds the cap", func(t *testing.T) {
		b, _ := newTestBoard(t, 7)
		points := spreadPoints(b, MaxCities+1)
		for _, p := range points {
			require.NoError(t, b.AddSettlement(p, 1, "red", false))
		}
		for _, p := range points[:MaxCities] {
			require.NoError(t, b.AddCity(p, 1, "red", false))
		}

		require.ErrorIs(t, b.AddCity(points[MaxCities], 1, "red", false), ErrCapacityExceeded)
		require.Len(t, b.Cities[0], MaxCities)
		require.Len(t, b.Settlements[0], 1)
	})
}

func TestAddRoad(t *testing.T) {
	t.Run("initial roads skip the connection check", func(t *testing.T) {
		b, _ := newTestBoard(t, 8)
		p := b.Intersections[0]
		q := b.AdjacentIntersections(p)[0]
		require.NoError(t, b.AddRoad(p, q, 1, "red", true))
		require.Equal(t, 0, b.FindRoadIndex(q, p, 1), "lookup should ignore endpoint order")
		require.Equal(t, 0, b.FindRoadIndex(p, q, AnyPlayer))
		require.Equal(t, -1, b.FindRoadIndex(p, q, 2))
	})

	t.Run("later roads must extend the network", func(t *testing.T) {
		b, _ := newTestBoard(t, 8)
		p := b.Intersections[0]
		q := b.AdjacentIntersections(p)[0]

		var placementErr *PlacementError
		err := b.AddRoad(p, q, 1, "red", false)
		require.True(t, errors.As(err, &placementErr))
		require.Equal(t, ReasonDisconnected, placementErr.Reason)

		require.NoError(t, b.AddSettlement(p, 1, "red", true))
		require.NoError(t, b.AddRoad(p, q, 1, "red", false))
		r := b.AdjacentIntersections(q)[0]
		if r.Equal(p) {
			r = b.AdjacentIntersections(q)[1]
		}
		require.NoError(t, b.AddRoad(q, r, 1, "red", false), "road touching own road should connect")
	})

	t.Run("an existing edge cannot be built again", func(t *testing.T) {
		b, _ := newTestBoard(t, 8)
		p := b.Intersections[0]
		q := b.AdjacentIntersections(p)[0]
		require.NoError(t, b.AddRoad(p, q, 1, "red", true))

		var placementErr *PlacementError
		require.True(t, errors.As(b.AddRoad(q, p, 2, "blue", true), &placementErr))
		require.Equal(t, ReasonRoadExists, placementErr.Reason)
		require.Empty(t, b.Roads[1])
	})

	t.Run("endpoints must be adjacent", func(t *testing.T) {
		b, _ := newTestBoard(t, 8)
		p := b.Intersections[0]
		var far Point
		for _, q := range b.Intersections[1:] {
			if !b.IsAdjacent(p, q) {
				far = q
				break
			}
		}
		var placementErr *PlacementError
		require.True(t, errors.As(b.AddRoad(p, far, 1, "red", true), &placementErr))
		require.Equal(t, ReasonNotAdjacent, placementErr.Reason)
	})

	t.Run("a sixteenth road exceeds the cap", func(t *testing.T) {
		b, _ := newTestBoard(t, 9)
		built := 0
		for _, p := range b.Intersections {
			for _, q := range b.AdjacentIntersections(p) {
				if built < MaxRoads && b.AddRoad(p, q, 1, "red", true) == nil {
					built++
				}
			}
		}
		require.Equal(t, MaxRoads, built)
		for _, edge := range b.PossibleRoadLocations(1) {
			require.ErrorIs(t, b.AddRoad(edge.A, edge.B, 1, "red", false), ErrCapacityExceeded)
		}
		require.Len(t, b.Roads[0], MaxRoads)
	})
}

func TestPossibleLocations(t *testing.T) {
	b, _ := newTestBoard(t, 10)
	p := b.Intersections[20]
	require.NoError(t, b.AddSettlement(p, 1, "red", true))
	q := b.AdjacentIntersections(p)[0]
	require.NoError(t, b.AddRoad(p, q, 1, "red", true))

	t.Run("city locations are the player's settlements", func(t *testing.T) {
		require.Equal(t, []Point{p}, b.PossibleCityLocations(1))
		require.Empty(t, b.PossibleCityLocations(2))
	})

	t.Run("settlement locations follow the distance rule", func(t *testing.T) {
		for _, s := range b.PossibleSettlementLocations(1) {
			require.True(t, b.LegalPlacement(s))
		}
		require.Empty(t, b.PossibleSettlementLocations(1), "both road ends are next to or on the settlement")
	})

	t.Run("road locations are new unique edges off the network", func(t *testing.T) {
		edges := b.PossibleRoadLocations(1)
		require.NotEmpty(t, edges)
		seen := map[EdgeKey]bool{}
		for _, e := range edges {
			require.False(t, seen[e.Key()], "edges should be deduplicated")
			seen[e.Key()] = true
			require.Equal(t, -1, b.FindRoadIndex(e.A, e.B, AnyPlayer))
			require.True(t, e.Touches(p) || e.Touches(q))
			require.True(t, b.IsAdjacent(e.A, e.B))
		}
	})
}

func TestOpponentSettlementBlocksRoads(t *testing.T) {
	b, _ := newTestBoard(t, 10)
	p := b.Intersections[20]
	q := b.AdjacentIntersections(p)[0]
	var r Point
	for _, candidate := range b.AdjacentIntersections(q) {
		if !candidate.Equal(p) {
			r = candidate
			break
		}
	}
	require.NoError(t, b.AddSettlement(p, 1, "red", true))
	require.NoError(t, b.AddRoad(p, q, 1, "red", true))
	require.NoError(t, b.AddRoad(q, r, 1, "red", true))
	require.NoError(t, b.AddSettlement(r, 2, "blue", true))

	for _, e := range b.PossibleRoadLocations(1) {
		require.False(t, e.Touches(r), "should not extend through an opponent settlement")
	}
	require.Empty(t, b.PossibleSettlementLocations(1))
}

func TestRollDice(t *testing.T) {
	b, _ := newTestBoard(t, 11)
	const rolls = 72000
	counts := map[int]int{}
	for i := 0; i < rolls; i++ {
		roll := b.RollDice()
		require.GreaterOrEqual(t, roll, 2)
		require.LessOrEqual(t, roll, 12)
		counts[roll]++
	}
	for sum := 2; sum <= 12; sum++ {
		ways := 6 - abs(sum-7)
		expected := float64(rolls*ways) / 36
		require.InEpsilon(t, expected, float64(counts[sum]), 0.1, "frequency of %d", sum)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func TestYields(t *testing.T) {
	b, _ := newTestBoard(t, 12)
	var tile Tile
	for _, candidate := range b.Tiles {
		if candidate.Kind != Desert {
			tile = candidate
			break
		}
	}
	t0 := b.FindTileIndex(tile.Location)
	corners := b.TileCorners(t0)
	require.Len(t, corners, 6)
	require.NoError(t, b.AddSettlement(corners[0], 1, "red", true))
	require.NoError(t, b.AddSettlement(corners[1], 2, "blue", true))
	require.NoError(t, b.AddCity(corners[1], 2, "blue", false))

	yields := b.Yields(tile.Number)
	require.Contains(t, yields, Yield{Player: 1, Resource: tile.Kind, Amount: 1})
	require.Contains(t, yields, Yield{Player: 2, Resource: tile.Kind, Amount: 2})

	require.NoError(t, b.MoveRobber(tile.Location))
	require.Len(t, b.Yields(tile.Number), len(yields)-2, "robbed tile should not produce")
	require.Error(t, b.MoveRobber(Point{X: -1000, Y: 0}))
}

func TestSnapshotIsolation(t *testing.T) {
	b, _ := newTestBoard(t, 13)
	require.NoError(t, b.AddSettlement(b.Intersections[0], 1, "red", true))
	snap := b.Snapshot()

	require.NoError(t, b.AddCity(b.Intersections[0], 1, "red", false))
	require.Len(t, snap.Settlements[0], 1, "snapshot should not see later mutations")
	require.Empty(t, snap.Cities[0])
	require.Equal(t, 1, snap.Scores[0])
}
