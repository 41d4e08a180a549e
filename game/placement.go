package game

// Placement validates and applies builds. Every rejection is reported both
// as a returned *PlacementError and a PlacementRejected event; the board is
// left unchanged.

func (b *Board) reject(err *PlacementError) error {
	b.events.Record(PlacementRejected{Player: err.Player, Structure: err.Structure, Reason: err.Reason})
	return err
}

// AddSettlement places a settlement for player at p and scores a point.
// The distance rule applies during initial placement too.
func (b *Board) AddSettlement(p Point, player PlayerID, color string, initial bool) error {
	seat, ok := b.seat(player)
	if !ok {
		return b.reject(illegal(player, SettlementStructure, ReasonUnknownPlayer))
	}
	i, ok := b.lookup(p)
	if !ok {
		return b.reject(illegal(player, SettlementStructure, ReasonUnknownIntersection))
	}
	if _, occupied := b.buildings[i]; occupied {
		return b.reject(illegal(player, SettlementStructure, ReasonOccupied))
	}
	if !b.LegalPlacement(p) {
		return b.reject(illegal(player, SettlementStructure, ReasonDistanceRule))
	}
	if len(b.Settlements[seat]) >= MaxSettlements {
		return b.reject(overCap(player, SettlementStructure, ReasonSettlementCap))
	}

	settlement := Building{Kind: SettlementStructure, Location: b.Intersections[i], Player: player, Color: color}
	b.Settlements[seat] = append(b.Settlements[seat], settlement)
	b.buildings[i] = settlement
	b.Scores[seat]++
	b.events.Record(SettlementPlaced{Player: player, Point: settlement.Location, IsInitial: initial, Turn: b.Turn})
	return nil
}

// AddCity upgrades the player's settlement at p. The settlement is removed,
// so the public score rises by one.
func (b *Board) AddCity(p Point, player PlayerID, color string, initial bool) error {
	seat, ok := b.seat(player)
	if !ok {
		return b.reject(illegal(player, CityStructure, ReasonUnknownPlayer))
	}
	index := b.FindSettlementIndex(p, player)
	if index == -1 {
		return b.reject(illegal(player, CityStructure, ReasonNoSettlement))
	}
	if len(b.Cities[seat]) >= MaxCities {
		return b.reject(overCap(player, CityStructure, ReasonCityCap))
	}

	location := b.Settlements[seat][index].Location
	i, _ := b.lookup(location)
	city := Building{Kind: CityStructure, Location: location, Player: player, Color: color}
	b.Settlements[seat] = append(b.Settlements[seat][:index], b.Settlements[seat][index+1:]...)
	b.Cities[seat] = append(b.Cities[seat], city)
	b.buildings[i] = city
	b.Scores[seat]++
	b.events.Record(CityPlaced{Player: player, Point: location, IsInitial: initial, Turn: b.Turn})
	return nil
}

// AddRoad places a road between two adjacent intersections. Outside the
// initial placement the road must extend the player's network, i.e. touch
// one of its roads or buildings.
func (b *Board) AddRoad(p1, p2 Point, player PlayerID, color string, initial bool) error {
	seat, ok := b.seat(player)
	if !ok {
		return b.reject(illegal(player, RoadStructure, ReasonUnknownPlayer))
	}
	edge, ok := b.canonicalEdge(p1, p2)
	if !ok {
		return b.reject(illegal(player, RoadStructure, ReasonUnknownIntersection))
	}
	if !b.IsAdjacent(edge.A, edge.B) {
		return b.reject(illegal(player, RoadStructure, ReasonNotAdjacent))
	}
	if _, built := b.roadOwners[edge.Key()]; built {
		return b.reject(illegal(player, RoadStructure, ReasonRoadExists))
	}
	if len(b.Roads[seat]) >= MaxRoads {
		return b.reject(overCap(player, RoadStructure, ReasonRoadCap))
	}
	if !initial && !b.connects(seat, edge) {
		return b.reject(illegal(player, RoadStructure, ReasonDisconnected))
	}

	b.Roads[seat] = append(b.Roads[seat], Road{Edge: edge, Player: player, Color: color})
	b.roadOwners[edge.Key()] = player
	b.events.Record(RoadPlaced{Player: player, Edge: edge, IsInitial: initial, Turn: b.Turn})
	return nil
}

func (b *Board) connects(seat int, edge Edge) bool {
	player := PlayerID(seat + 1)
	for _, end := range []Point{edge.A, edge.B} {
		if building, ok := b.BuildingAt(end); ok && building.Player == player {
			return true
		}
		for _, road := range b.Roads[seat] {
			if road.Edge.Touches(end) {
				return true
			}
		}
	}
	return false
}
