package game

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalPlacement = errors.New("illegal placement")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrInvalidResource  = errors.New("invalid resource")
	ErrNoLegalMove      = errors.New("no legal move")
	ErrMalformedBoard   = errors.New("malformed board")
)

// Placement rejection reasons.
const (
	ReasonUnknownPlayer       = "unknown-player"
	ReasonUnknownIntersection = "unknown-intersection"
	ReasonOccupied            = "occupied"
	ReasonDistanceRule        = "distance-rule"
	ReasonNoSettlement        = "no-settlement"
	ReasonSettlementCap       = "settlement-cap"
	ReasonCityCap             = "city-cap"
	ReasonRoadCap             = "road-cap"
	ReasonNotAdjacent         = "not-adjacent"
	ReasonRoadExists          = "road-exists"
	ReasonDisconnected        = "disconnected"
)

// Structure names what a player tried to build.
type Structure int

const (
	SettlementStructure Structure = iota
	CityStructure
	RoadStructure
)

func (s Structure) String() string {
	switch s {
	case SettlementStructure:
		return "settlement"
	case CityStructure:
		return "city"
	case RoadStructure:
		return "road"
	default:
		return fmt.Sprintf("structure(%d)", int(s))
	}
}

// PlacementError is returned when the board rejects a build. It wraps either
// ErrIllegalPlacement or ErrCapacityExceeded.
type PlacementError struct {
	Player    PlayerID
	Structure Structure
	Reason    string
	Err       error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("player %d cannot place %s: %s: %v", e.Player, e.Structure, e.Reason, e.Err)
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}

func illegal(player PlayerID, s Structure, reason string) *PlacementError {
	return &PlacementError{Player: player, Structure: s, Reason: reason, Err: ErrIllegalPlacement}
}

func overCap(player PlayerID, s Structure, reason string) *PlacementError {
	return &PlacementError{Player: player, Structure: s, Reason: reason, Err: ErrCapacityExceeded}
}

func invalidResource(r Resource) error {
	return fmt.Errorf("%w: %d", ErrInvalidResource, int(r))
}
