package game

import "fmt"

// Resource is a tile kind. The first NumResources values are the tradeable
// resources, in the fixed order used by every per-resource array.
type Resource int

const (
	Ore Resource = iota
	Wheat
	Sheep
	Brick
	Wood
	Desert
)

const NumResources = 5

// Resources lists the tradeable resources in ledger order.
var Resources = [NumResources]Resource{Ore, Wheat, Sheep, Brick, Wood}

var resourceNames = []string{"ore", "wheat", "sheep", "brick", "wood", "desert"}

func (r Resource) String() string {
	if r < 0 || int(r) >= len(resourceNames) {
		return fmt.Sprintf("resource(%d)", int(r))
	}
	return resourceNames[r]
}

// Valid reports whether r is one of the five tradeable resources.
func (r Resource) Valid() bool {
	return r >= Ore && r <= Wood
}

// ParseResource maps a name such as "wheat" to its Resource.
func ParseResource(name string) (Resource, error) {
	for i, n := range resourceNames {
		if n == name {
			return Resource(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown resource %q", ErrInvalidResource, name)
}

// PortKind is the trade kind of a port. The specific kinds share their values
// with the matching Resource so PortKind(Wheat) == WheatPort.
type PortKind int

const (
	OrePort PortKind = iota
	WheatPort
	SheepPort
	BrickPort
	WoodPort
	GeneralPort
)

// Resource returns the resource a specific port trades and false for a
// general port.
func (k PortKind) Resource() (Resource, bool) {
	if k >= OrePort && k <= WoodPort {
		return Resource(k), true
	}
	return 0, false
}

func (k PortKind) String() string {
	if r, ok := k.Resource(); ok {
		return r.String()
	}
	if k == GeneralPort {
		return "general"
	}
	return fmt.Sprintf("port(%d)", int(k))
}

// Cost is an amount of each tradeable resource, indexed by Resource.
type Cost [NumResources]int

// Build costs.
var (
	RoadCost       = Cost{Brick: 1, Wood: 1}
	SettlementCost = Cost{Wheat: 1, Sheep: 1, Brick: 1, Wood: 1}
	CityCost       = Cost{Ore: 3, Wheat: 2}
)

// Outstanding structure caps per player.
const (
	MaxSettlements = 5
	MaxCities      = 4
	MaxRoads       = 15
)

// DefaultTradeRate is the bank exchange rate without any port.
const DefaultTradeRate = 4

const (
	generalPortRate  = 3
	specificPortRate = 2
)
