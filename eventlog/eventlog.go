package eventlog

import (
	"catan/game"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger writes every event as one structured zerolog entry. Initial
// placements are logged at debug level, everything else at info.
type Logger struct {
	logger zerolog.Logger
}

func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{logger: logger}
}

// Global logs through the global zerolog logger.
func Global() *Logger {
	return NewLogger(log.Logger)
}

func (l *Logger) entry(e game.Event, initial bool) *zerolog.Event {
	event := l.logger.Info()
	if initial {
		event = l.logger.Debug()
	}
	return event.Str("event", e.EventName())
}

func (l *Logger) Record(e game.Event) {
	switch e := e.(type) {
	case game.SettlementPlaced:
		entry := l.entry(e, e.IsInitial).Int("player", int(e.Player)).
			Float64("x", e.Point.X).Float64("y", e.Point.Y).Int("turn", e.Turn)
		if e.IsInitial {
			entry.Msgf("player %d placed a settlement at %s", e.Player, e.Point)
		} else {
			entry.Msgf("player %d built a settlement at %s and scored a point", e.Player, e.Point)
		}
	case game.CityPlaced:
		entry := l.entry(e, e.IsInitial).Int("player", int(e.Player)).
			Float64("x", e.Point.X).Float64("y", e.Point.Y).Int("turn", e.Turn)
		if e.IsInitial {
			entry.Msgf("player %d placed a city at %s", e.Player, e.Point)
		} else {
			entry.Msgf("player %d built a city at %s and scored a point", e.Player, e.Point)
		}
	case game.RoadPlaced:
		l.entry(e, e.IsInitial).Int("player", int(e.Player)).
			Stringer("edge", e.Edge).Int("turn", e.Turn).
			Msgf("player %d built a road %s", e.Player, e.Edge)
	case game.PortAcquired:
		l.entry(e, false).Int("player", int(e.Player)).Stringer("kind", e.Kind).
			Msgf("player %d just acquired a %s port", e.Player, e.Kind)
	case game.ResourceTraded:
		l.entry(e, false).Int("player", int(e.Player)).
			Stringer("from", e.From).Stringer("to", e.To).Int("rate", e.Rate).Bool("via_port", e.ViaPort).
			Msgf("player %d traded %d %s for 1 %s", e.Player, e.Rate, e.From, e.To)
	case game.PlacementRejected:
		l.entry(e, false).Int("player", int(e.Player)).Stringer("structure", e.Structure).Str("reason", e.Reason).
			Msgf("player %d could not place %s: %s", e.Player, e.Structure, e.Reason)
	case game.GameWon:
		l.entry(e, false).Int("player", int(e.Player)).Int("score", e.Score).Int("turn", e.Turn).
			Msgf("player %d won with %d points on turn %d", e.Player, e.Score, e.Turn)
	default:
		l.logger.Warn().Str("event", e.EventName()).Msg("unknown event")
	}
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []game.Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(e game.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the events recorded so far.
func (r *Recorder) Events() []game.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]game.Event(nil), r.events...)
}

// Count returns how many recorded events have the given name.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.EventName() == name {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Multi fans every event out to each of its logs in order.
type Multi []game.EventLog

func (m Multi) Record(e game.Event) {
	for _, l := range m {
		l.Record(e)
	}
}

// Combine returns a log recording to every non-nil log.
func Combine(logs ...game.EventLog) game.EventLog {
	var m Multi
	for _, l := range logs {
		if l != nil {
			m = append(m, l)
		}
	}
	switch len(m) {
	case 0:
		return game.NopLog
	case 1:
		return m[0]
	}
	return m
}
