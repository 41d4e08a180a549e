package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRatesWithPort(t *testing.T) {
	rates := [NumResources]int{4, 4, 4, 4, 4}

	rates = RatesWithPort(rates, WheatPort)
	require.Equal(t, [NumResources]int{4, 2, 4, 4, 4}, rates)

	rates = RatesWithPort(rates, GeneralPort)
	require.Equal(t, [NumResources]int{3, 2, 3, 3, 3}, rates, "general port should not raise a specific rate")

	rates = RatesWithPort(rates, OrePort)
	require.Equal(t, [NumResources]int{2, 2, 3, 3, 3}, rates)

	rates = RatesWithPort(rates, GeneralPort)
	require.Equal(t, [NumResources]int{2, 2, 3, 3, 3}, rates, "rates should never go up")
}

func TestLedgerResources(t *testing.T) {
	b, events := newTestBoard(t, 20)
	l := NewLedger(1, "red", b, events)
	require.Equal(t, [NumResources]int{4, 4, 4, 4, 4}, l.TradeRates)

	t.Run("gain and lose keep the public hand size in step", func(t *testing.T) {
		require.NoError(t, l.GainResource(Wood))
		require.NoError(t, l.GainResource(Wood))
		require.NoError(t, l.Collect(Brick, 2))
		require.NoError(t, l.Collect(Desert, 3))
		require.Equal(t, 4, l.TotalResources())
		require.Equal(t, 4, b.HandSize(1))

		require.NoError(t, l.LoseResource(Wood))
		require.Equal(t, 1, l.Resources[Wood])
		require.Equal(t, 3, b.HandSize(1))
	})

	t.Run("invalid resources are rejected", func(t *testing.T) {
		require.ErrorIs(t, l.GainResource(Desert), ErrInvalidResource)
		require.ErrorIs(t, l.GainResource(Resource(42)), ErrInvalidResource)
		require.ErrorIs(t, l.LoseResource(Resource(-1)), ErrInvalidResource)
		require.ErrorIs(t, l.PortResource(Wood, Desert), ErrInvalidResource)
		require.Equal(t, 3, l.TotalResources())
	})

	t.Run("losing a resource not held fails", func(t *testing.T) {
		require.Error(t, l.LoseResource(Ore))
		require.Zero(t, l.Resources[Ore])
	})

	t.Run("paying removes the cost", func(t *testing.T) {
		require.True(t, l.CanAfford(RoadCost))
		require.NoError(t, l.Pay(RoadCost))
		require.Equal(t, 1, l.TotalResources())
		require.Equal(t, 1, b.HandSize(1))
		require.False(t, l.CanAfford(RoadCost))
		require.Error(t, l.Pay(RoadCost))
		require.Equal(t, 1, l.TotalResources())
	})
}

func TestRandomResourceToLose(t *testing.T) {
	rng := rand.New(rand.NewSource(21))

	t.Run("empty hand has nothing to lose", func(t *testing.T) {
		l := NewLedger(1, "red", nil, nil)
		_, ok := l.RandomResourceToLose(rng)
		require.False(t, ok)
	})

	t.Run("only held resources are picked", func(t *testing.T) {
		l := NewLedger(1, "red", nil, nil)
		l.Resources[Sheep] = 3
		l.Resources[Ore] = 1
		for i := 0; i < 100; i++ {
			r, ok := l.RandomResourceToLose(rng)
			require.True(t, ok)
			require.Contains(t, []Resource{Sheep, Ore}, r)
		}
	})
}

func TestPortResource(t *testing.T) {
	events := &recorder{}
	l := NewLedger(2, "blue", nil, events)
	l.Resources[Sheep] = 5

	require.NoError(t, l.PortResource(Sheep, Ore))
	require.Equal(t, 1, l.Resources[Sheep])
	require.Equal(t, 1, l.Resources[Ore])
	require.Equal(t, ResourceTraded{Player: 2, From: Sheep, To: Ore, Rate: 4, ViaPort: false}, events.events[0])

	require.Error(t, l.PortResource(Sheep, Ore), "one sheep is not enough at rate 4")

	l.GainPortPower(SheepPort)
	require.Equal(t, PortAcquired{Player: 2, Kind: SheepPort}, events.events[1])
	l.Resources[Sheep] = 2
	require.NoError(t, l.PortResource(Sheep, Wood))
	require.Zero(t, l.Resources[Sheep])
	require.Equal(t, ResourceTraded{Player: 2, From: Sheep, To: Wood, Rate: 2, ViaPort: true}, events.events[2])
}

func TestUpdateResourceProbability(t *testing.T) {
	b, _ := newTestBoard(t, 22)
	l := NewLedger(1, "red", b, nil)
	p := b.Intersections[30]

	var want [NumResources]int
	for _, tile := range b.AdjacentHexes(p) {
		if tile.Kind != Desert {
			want[tile.Kind] += tile.Pips()
		}
	}
	l.UpdateResourceProbability(b, p)
	require.Equal(t, want, l.ResourcePoints)
}

func TestParseResource(t *testing.T) {
	for _, r := range Resources {
		parsed, err := ParseResource(r.String())
		require.NoError(t, err)
		require.Equal(t, r, parsed)
	}
	_, err := ParseResource("gold")
	require.ErrorIs(t, err, ErrInvalidResource)
}
