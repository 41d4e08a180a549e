package strategy

import (
	"catan/game"
	"catan/utils"
	"errors"
	"math"

	"golang.org/x/exp/rand"
)

const (
	DefaultHexWeight = 4.0
	DefaultJitter    = 2.0
)

// Block scoring for structures of the deciding player on a candidate tile.
const (
	selfSettlementPenalty = 20
	selfCityPenalty       = 40
)

type Option func(g *RandomGreedy)

// WithHexWeight scales the hex valuation of candidate locations.
func WithHexWeight(weight float64) Option {
	return func(g *RandomGreedy) {
		if weight > 0 {
			g.hexWeight = weight
		}
	}
}

// WithJitter sets the width of the uniform noise added to every valuation.
// Zero makes the strategy deterministic apart from uniform picks.
func WithJitter(jitter float64) Option {
	return func(g *RandomGreedy) {
		if jitter >= 0 {
			g.jitter = jitter
		}
	}
}

// RandomGreedy values locations by the production they add, adjusted for
// trade rates, and builds whatever it can afford each turn: cities first,
// then settlements, then roads.
type RandomGreedy struct {
	rng       *rand.Rand
	hexWeight float64
	jitter    float64
}

func NewRandomGreedy(rng *rand.Rand, options ...Option) *RandomGreedy {
	g := &RandomGreedy{ // Default values
		rng:       rng,
		hexWeight: DefaultHexWeight,
		jitter:    DefaultJitter,
	}
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *RandomGreedy) noise() float64 {
	if g.jitter == 0 {
		return 0
	}
	return g.rng.Float64() * g.jitter
}

// HexValue is the gain in expected production from building at p: for each
// resource, the pips collected divided by the trade rate, after minus
// before, summed. A port at p counts through its lower rates.
func (g *RandomGreedy) HexValue(b *game.Board, me *game.Ledger, p game.Point) float64 {
	points := me.ResourcePoints
	for _, tile := range b.AdjacentHexes(p) {
		if tile.Kind.Valid() {
			points[tile.Kind] += tile.Pips()
		}
	}
	rates := me.TradeRates
	if kind, ok := b.PortType(p); ok {
		rates = game.RatesWithPort(rates, kind)
	}

	value := 0.0
	for _, r := range game.Resources {
		value += float64(points[r])/float64(rates[r]) - float64(me.ResourcePoints[r])/float64(me.TradeRates[r])
	}
	return g.hexWeight * value
}

// best returns the index of the candidate with the highest jittered value,
// or -1 when there are none.
func (g *RandomGreedy) best(b *game.Board, me *game.Ledger, candidates []game.Point) int {
	index := -1
	max := math.Inf(-1)
	for i, p := range candidates {
		value := g.HexValue(b, me, p) + g.noise()
		if value > max {
			max = value
			index = i
		}
	}
	return index
}

func (g *RandomGreedy) ChooseInitialSettlement(b *game.Board, me *game.Ledger) (game.Point, bool) {
	var candidates []game.Point
	for _, p := range b.Intersections {
		if b.LegalPlacement(p) {
			candidates = append(candidates, p)
		}
	}
	i := g.best(b, me, candidates)
	if i == -1 {
		return game.Point{}, false
	}
	return candidates[i], true
}

func (g *RandomGreedy) ChooseInitialRoad(b *game.Board, me *game.Ledger, settlement game.Point) (game.Point, bool) {
	var candidates []game.Point
	for _, q := range b.AdjacentIntersections(settlement) {
		if b.FindRoadIndex(settlement, q, game.AnyPlayer) == -1 {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		return game.Point{}, false
	}
	return candidates[g.rng.Intn(len(candidates))], true
}

// ChoosePlayerToRob favours the leaders, with noise. Players holding no
// resources are only considered when nobody else holds any.
func (g *RandomGreedy) ChoosePlayerToRob(b *game.Board, me *game.Ledger) (game.PlayerID, bool) {
	anyHolding := false
	for seat := 0; seat < b.NumPlayers(); seat++ {
		player := game.PlayerID(seat + 1)
		if player != me.ID && b.HandSize(player) > 0 {
			anyHolding = true
		}
	}

	target := game.NoPlayer
	max := math.Inf(-1)
	for seat := 0; seat < b.NumPlayers(); seat++ {
		player := game.PlayerID(seat + 1)
		if player == me.ID || (anyHolding && b.HandSize(player) == 0) {
			continue
		}
		value := float64(b.Score(player)) + g.noise()
		if value > max {
			max = value
			target = player
		}
	}
	return target, target != game.NoPlayer
}

// ChoosePointToBlock picks the tile around the robbed player's buildings
// that hurts opponents most: every opposing settlement adds its owner's
// score and every opposing city twice that, own structures subtract, and the
// total is multiplied by the tile's pips. Ties are broken uniformly.
func (g *RandomGreedy) ChoosePointToBlock(b *game.Board, me *game.Ledger, robbed game.PlayerID) (game.Point, bool) {
	candidates := blockCandidates(b, robbed)
	if len(candidates) == 0 {
		for t := range b.Tiles {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return game.Point{}, false
	}

	var ties []int
	max := math.MinInt
	for _, t := range candidates {
		value := 0
		for _, p := range b.TileCorners(t) {
			building, ok := b.BuildingAt(p)
			if !ok {
				continue
			}
			switch {
			case building.Player == me.ID && building.Kind == game.CityStructure:
				value -= selfCityPenalty
			case building.Player == me.ID:
				value -= selfSettlementPenalty
			case building.Kind == game.CityStructure:
				value += 2 * b.Score(building.Player)
			default:
				value += b.Score(building.Player)
			}
		}
		value *= b.Tiles[t].Pips()

		if value > max {
			max = value
			ties = []int{t}
		} else if value == max {
			ties = append(ties, t)
		}
	}
	return b.Tiles[ties[g.rng.Intn(len(ties))]].Location, true
}

// blockCandidates returns the distinct tile indices touching a settlement or
// city of player.
func blockCandidates(b *game.Board, player game.PlayerID) []int {
	seat := int(player) - 1
	if seat < 0 || seat >= b.NumPlayers() {
		return nil
	}
	var tiles []int
	for _, owned := range [][]game.Building{b.Settlements[seat], b.Cities[seat]} {
		for _, building := range owned {
			for _, tile := range b.AdjacentHexes(building.Location) {
				t := b.FindTileIndex(tile.Location)
				if t != -1 && utils.FindIndex(tiles, t) == -1 {
					tiles = append(tiles, t)
				}
			}
		}
	}
	return tiles
}

func (g *RandomGreedy) Discard(me *game.Ledger) error {
	n := me.TotalResources() / 2
	for i := 0; i < n; i++ {
		r, ok := me.RandomResourceToLose(g.rng)
		if !ok {
			return nil
		}
		if err := me.LoseResource(r); err != nil {
			return err
		}
	}
	return nil
}

// TakeTurn builds cities until it cannot, then settlements, then roads,
// trading with the bank when that makes a build affordable.
func (g *RandomGreedy) TakeTurn(b *game.Board, me *game.Ledger) error {
	for _, build := range []func(*game.Board, *game.Ledger) (bool, error){g.buildCity, g.buildSettlement, g.buildRoad} {
		for {
			built, err := build(b, me)
			if err != nil {
				return err
			}
			if !built {
				break
			}
		}
	}
	return nil
}

func (g *RandomGreedy) buildCity(b *game.Board, me *game.Ledger) (bool, error) {
	candidates := b.PossibleCityLocations(me.ID)
	if len(candidates) == 0 || b.Count(me.ID, game.CityStructure) >= game.MaxCities {
		return false, nil
	}
	p, ok, err := g.place(b, me, candidates, game.CityCost, b.AddCity)
	if !ok || err != nil {
		return false, err
	}
	me.UpdateResourceProbability(b, p)
	me.Score++
	return true, nil
}

func (g *RandomGreedy) buildSettlement(b *game.Board, me *game.Ledger) (bool, error) {
	candidates := b.PossibleSettlementLocations(me.ID)
	if len(candidates) == 0 || b.Count(me.ID, game.SettlementStructure) >= game.MaxSettlements {
		return false, nil
	}
	p, ok, err := g.place(b, me, candidates, game.SettlementCost, b.AddSettlement)
	if !ok || err != nil {
		return false, err
	}
	if kind, ok := b.PortType(p); ok {
		me.GainPortPower(kind)
	}
	me.UpdateResourceProbability(b, p)
	me.Score++
	return true, nil
}

// place trades for cost, then builds at the best candidate the board
// accepts and pays. Rejected candidates are dropped and the next best tried.
func (g *RandomGreedy) place(b *game.Board, me *game.Ledger, candidates []game.Point, cost game.Cost,
	add func(game.Point, game.PlayerID, string, bool) error) (game.Point, bool, error) {
	ok, err := afford(me, cost)
	if !ok || err != nil {
		return game.Point{}, false, err
	}
	for len(candidates) > 0 {
		i := g.best(b, me, candidates)
		p := candidates[i]
		err := add(p, me.ID, me.Color, false)
		if isRejection(err) {
			candidates = utils.RemoveAt(candidates, i)
			continue
		}
		if err != nil {
			return game.Point{}, false, err
		}
		return p, true, me.Pay(cost)
	}
	return game.Point{}, false, nil
}

func (g *RandomGreedy) buildRoad(b *game.Board, me *game.Ledger) (bool, error) {
	candidates := b.PossibleRoadLocations(me.ID)
	if len(candidates) == 0 || b.Count(me.ID, game.RoadStructure) >= game.MaxRoads {
		return false, nil
	}
	ok, err := afford(me, game.RoadCost)
	if !ok || err != nil {
		return false, err
	}
	for len(candidates) > 0 {
		i := g.rng.Intn(len(candidates))
		edge := candidates[i]
		err := b.AddRoad(edge.A, edge.B, me.ID, me.Color, false)
		if isRejection(err) {
			candidates = utils.RemoveAt(candidates, i)
			continue
		}
		if err != nil {
			return false, err
		}
		return true, me.Pay(game.RoadCost)
	}
	return false, nil
}

func isRejection(err error) bool {
	return errors.Is(err, game.ErrIllegalPlacement) || errors.Is(err, game.ErrCapacityExceeded)
}
