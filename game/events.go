package game

// Event is a notable game action. The core emits events instead of writing
// any output itself.
type Event interface {
	EventName() string
}

type SettlementPlaced struct {
	Player    PlayerID
	Point     Point
	IsInitial bool
	Turn      int
}

type CityPlaced struct {
	Player    PlayerID
	Point     Point
	IsInitial bool
	Turn      int
}

type RoadPlaced struct {
	Player    PlayerID
	Edge      Edge
	IsInitial bool
	Turn      int
}

type PortAcquired struct {
	Player PlayerID
	Kind   PortKind
}

type ResourceTraded struct {
	Player  PlayerID
	From    Resource
	To      Resource
	Rate    int
	ViaPort bool
}

type PlacementRejected struct {
	Player    PlayerID
	Structure Structure
	Reason    string
}

type GameWon struct {
	Player PlayerID
	Score  int
	Turn   int
}

func (SettlementPlaced) EventName() string  { return "settlement_placed" }
func (CityPlaced) EventName() string        { return "city_placed" }
func (RoadPlaced) EventName() string        { return "road_placed" }
func (PortAcquired) EventName() string      { return "port_acquired" }
func (ResourceTraded) EventName() string    { return "resource_traded" }
func (PlacementRejected) EventName() string { return "placement_rejected" }
func (GameWon) EventName() string           { return "game_won" }

// EventLog receives one event per notable action.
type EventLog interface {
	Record(Event)
}

// Renderer receives a board snapshot for display. Implementations must not
// block the game.
type Renderer interface {
	Render(Snapshot)
}

type nopLog struct{}

func (nopLog) Record(Event) {}

// NopLog discards every event.
var NopLog EventLog = nopLog{}
