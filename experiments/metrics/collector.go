package metrics

import (
	"catan/game"
	"sync"
	"time"
)

type PlayerMetric struct {
	Player      int // Player ID
	Score       int
	Settlements int // Settlements placed, including upgraded ones
	Cities      int
	Roads       int
	Trades      int
	PortTrades  int
	Ports       int
	Rejections  int
}

type GameMetric struct {
	Seed         uint64
	Winner       int // Player ID, 0 when the turn cap was reached
	WinningScore int
	Turns        int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// Collector counts what each player does in one game by listening to its
// events.
type Collector interface {
	game.EventLog
	Start(seed uint64)
	Complete(b *game.Board) (GameMetric, []PlayerMetric)
}

type collector struct {
	mu        sync.Mutex
	seed      uint64
	startTime time.Time
	players   map[game.PlayerID]*PlayerMetric
}

func NewCollector() Collector {
	return &collector{players: make(map[game.PlayerID]*PlayerMetric)}
}

func (m *collector) Start(seed uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seed = seed
	m.startTime = time.Now()
	m.players = make(map[game.PlayerID]*PlayerMetric)
}

func (m *collector) player(id game.PlayerID) *PlayerMetric {
	p, ok := m.players[id]
	if !ok {
		p = &PlayerMetric{Player: int(id)}
		m.players[id] = p
	}
	return p
}

func (m *collector) Record(e game.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch e := e.(type) {
	case game.SettlementPlaced:
		m.player(e.Player).Settlements++
	case game.CityPlaced:
		m.player(e.Player).Cities++
	case game.RoadPlaced:
		m.player(e.Player).Roads++
	case game.PortAcquired:
		m.player(e.Player).Ports++
	case game.ResourceTraded:
		p := m.player(e.Player)
		p.Trades++
		if e.ViaPort {
			p.PortTrades++
		}
	case game.PlacementRejected:
		m.player(e.Player).Rejections++
	}
}

// Complete returns the game metric and one metric per seat, in seat order.
func (m *collector) Complete(b *game.Board) (GameMetric, []PlayerMetric) {
	m.mu.Lock()
	defer m.mu.Unlock()
	end := time.Now()
	gameMetric := GameMetric{
		Seed:      m.seed,
		Winner:    int(b.Winner),
		Turns:     b.Turn,
		StartTime: m.startTime,
		EndTime:   end,
		Duration:  end.Sub(m.startTime),
	}
	if b.Winner != game.NoPlayer {
		gameMetric.WinningScore = b.Score(b.Winner)
	}

	players := make([]PlayerMetric, b.NumPlayers())
	for seat := range players {
		id := game.PlayerID(seat + 1)
		players[seat] = *m.player(id)
		players[seat].Score = b.Score(id)
	}
	return gameMetric, players
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Record(e game.Event) {}
func (m *dummyCollector) Start(seed uint64)   {}
func (m *dummyCollector) Complete(b *game.Board) (GameMetric, []PlayerMetric) {
	return GameMetric{Winner: int(b.Winner), Turns: b.Turn}, nil
}
