package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// HandObserver mirrors a ledger's hand size onto public state. *Board
// implements it.
type HandObserver interface {
	AdjustResources(player PlayerID, delta int)
}

// Ledger is a player's private bookkeeping: resources in hand, bank trade
// rates, the pip total it collects per resource and its score including
// hidden points.
type Ledger struct {
	ID             PlayerID
	Color          string
	Resources      [NumResources]int
	TradeRates     [NumResources]int
	ResourcePoints [NumResources]int
	Score          int

	hand   HandObserver
	events EventLog
}

func NewLedger(id PlayerID, color string, hand HandObserver, events EventLog) *Ledger {
	if events == nil {
		events = NopLog
	}
	l := &Ledger{
		ID:     id,
		Color:  color,
		hand:   hand,
		events: events,
	}
	for i := range l.TradeRates {
		l.TradeRates[i] = DefaultTradeRate
	}
	return l
}

func (l *Ledger) adjustHand(delta int) {
	if l.hand != nil {
		l.hand.AdjustResources(l.ID, delta)
	}
}

func (l *Ledger) GainResource(r Resource) error {
	if !r.Valid() {
		return invalidResource(r)
	}
	l.Resources[r]++
	l.adjustHand(1)
	return nil
}

func (l *Ledger) LoseResource(r Resource) error {
	if !r.Valid() {
		return invalidResource(r)
	}
	if l.Resources[r] == 0 {
		return fmt.Errorf("player %d has no %s to lose", l.ID, r)
	}
	l.Resources[r]--
	l.adjustHand(-1)
	return nil
}

// Collect adds a resource by tile kind. Desert tiles produce nothing.
func (l *Ledger) Collect(kind Resource, amount int) error {
	if kind == Desert {
		return nil
	}
	for i := 0; i < amount; i++ {
		if err := l.GainResource(kind); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) TotalResources() int {
	total := 0
	for _, n := range l.Resources {
		total += n
	}
	return total
}

// UpdateResourceProbability adds the pips of every tile around location. It
// is called once per new settlement or city and never subtracts, so a city
// counts its location a second time on top of the settlement it replaced.
func (l *Ledger) UpdateResourceProbability(b *Board, location Point) {
	for _, tile := range b.AdjacentHexes(location) {
		if tile.Kind.Valid() {
			l.ResourcePoints[tile.Kind] += tile.Pips()
		}
	}
}

// GainPortPower lowers trade rates for a newly acquired port.
func (l *Ledger) GainPortPower(kind PortKind) {
	l.TradeRates = RatesWithPort(l.TradeRates, kind)
	l.events.Record(PortAcquired{Player: l.ID, Kind: kind})
}

// RatesWithPort returns rates after acquiring a port of the given kind. A
// general port lowers every rate still at the default to 3; a specific port
// lowers its resource to 2. Rates never go up.
func RatesWithPort(rates [NumResources]int, kind PortKind) [NumResources]int {
	if r, ok := kind.Resource(); ok {
		rates[r] = min(rates[r], specificPortRate)
		return rates
	}
	if kind == GeneralPort {
		for i := range rates {
			if rates[i] == DefaultTradeRate {
				rates[i] = generalPortRate
			}
		}
	}
	return rates
}

// RandomResourceToLose picks a resource weighted by the number held. It
// returns false when the hand is empty.
func (l *Ledger) RandomResourceToLose(rng *rand.Rand) (Resource, bool) {
	total := l.TotalResources()
	if total == 0 {
		return 0, false
	}
	pick := rng.Intn(total)
	for _, r := range Resources {
		if pick < l.Resources[r] {
			return r, true
		}
		pick -= l.Resources[r]
	}
	return 0, false
}

// PortResource trades TradeRates[give] of one resource to the bank for a
// single get.
func (l *Ledger) PortResource(give, get Resource) error {
	if !give.Valid() {
		return invalidResource(give)
	}
	if !get.Valid() {
		return invalidResource(get)
	}
	rate := l.TradeRates[give]
	if l.Resources[give] < rate {
		return fmt.Errorf("player %d needs %d %s to trade and has %d", l.ID, rate, give, l.Resources[give])
	}
	l.Resources[give] -= rate
	l.Resources[get]++
	l.adjustHand(1 - rate)
	l.events.Record(ResourceTraded{Player: l.ID, From: give, To: get, Rate: rate, ViaPort: rate < DefaultTradeRate})
	return nil
}

func (l *Ledger) CanAfford(cost Cost) bool {
	for r, n := range cost {
		if l.Resources[r] < n {
			return false
		}
	}
	return true
}

// Pay removes cost from the hand.
func (l *Ledger) Pay(cost Cost) error {
	if !l.CanAfford(cost) {
		return fmt.Errorf("player %d cannot afford %v", l.ID, cost)
	}
	spent := 0
	for r, n := range cost {
		l.Resources[r] -= n
		spent += n
	}
	l.adjustHand(-spent)
	return nil
}
