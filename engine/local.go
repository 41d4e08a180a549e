package engine

import (
	"catan/game"
	"catan/meta"
	"catan/strategy"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(e *Local)

func WithWinScore(score int) Option {
	return func(e *Local) {
		if score > 0 {
			e.winScore = score
		}
	}
}

// WithHandCap sets how many resources a player may hold on a 7 without
// discarding.
func WithHandCap(n int) Option {
	return func(e *Local) {
		if n > 0 {
			e.handCap = n
		}
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithEventLog(events game.EventLog) Option {
	return func(e *Local) {
		if events != nil {
			e.events = events
		}
	}
}

func WithRenderer(renderer game.Renderer) Option {
	return func(e *Local) {
		e.renderer = renderer
	}
}

// Local runs a game in process. It owns the board and the ledgers and hands
// them to the strategy whose turn it is.
type Local struct {
	Board      *game.Board
	Ledgers    []*game.Ledger
	Strategies []strategy.Strategy

	rng      *rand.Rand
	events   game.EventLog
	renderer game.Renderer
	winScore int
	handCap  int
	maxTurns int
	current  game.PlayerID
}

// NewLocal sets up a board with one seat per strategy. Every random draw of
// the game comes from rng.
func NewLocal(strategies []strategy.Strategy, rng *rand.Rand, options ...Option) (*Local, error) {
	if len(strategies) < 2 {
		return nil, fmt.Errorf("need at least two players, got %d", len(strategies))
	}
	e := &Local{ // Default values
		Strategies: strategies,
		rng:        rng,
		events:     game.NopLog,
		winScore:   meta.WIN_SCORE,
		handCap:    meta.HAND_CAP,
		maxTurns:   meta.MAX_TURNS,
		current:    1,
	}
	for _, option := range options {
		option(e)
	}

	board, err := game.NewBoard(len(strategies), rng, game.WithEventLog(e.events))
	if err != nil {
		return nil, fmt.Errorf("failed to set up board: %w", err)
	}
	e.Board = board
	e.Ledgers = make([]*game.Ledger, len(strategies))
	for i := range e.Ledgers {
		e.Ledgers[i] = game.NewLedger(game.PlayerID(i+1), color(i), board, e.events)
	}
	return e, nil
}

func color(seat int) string {
	if seat < len(Colors) {
		return Colors[seat]
	}
	return fmt.Sprintf("player%d", seat+1)
}

func (e *Local) ledger(player game.PlayerID) *game.Ledger {
	return e.Ledgers[player-1]
}

func (e *Local) strategy(player game.PlayerID) strategy.Strategy {
	return e.Strategies[player-1]
}

func (e *Local) Run() (game.PlayerID, error) {
	if err := e.InitialPlacement(); err != nil {
		return game.NoPlayer, err
	}

	log.Info().Msgf("player %d is starting", e.current)

	for e.Board.Winner == game.NoPlayer && e.Board.Turn <= e.maxTurns {
		if err := e.TakeTurn(); err != nil {
			return game.NoPlayer, err
		}
	}

	if e.Board.Winner != game.NoPlayer {
		log.Info().Msgf("player %d won with %d points at the end of turn %d",
			e.Board.Winner, e.ledger(e.Board.Winner).Score, e.Board.Turn)
	} else {
		log.Info().Msgf("stopped after %d turns without a winner", e.maxTurns)
	}
	return e.Board.Winner, nil
}

// InitialPlacement has every player place a settlement and a road in seat
// order, then a second pair in reverse order. The second settlement yields
// one resource per adjacent tile.
func (e *Local) InitialPlacement() error {
	n := len(e.Ledgers)
	for i := 0; i < n; i++ {
		if err := e.placeInitial(game.PlayerID(i+1), false); err != nil {
			return err
		}
	}
	for i := n - 1; i >= 0; i-- {
		if err := e.placeInitial(game.PlayerID(i+1), true); err != nil {
			return err
		}
	}
	e.render()
	return nil
}

func (e *Local) placeInitial(player game.PlayerID, second bool) error {
	me := e.ledger(player)
	s := e.strategy(player)

	settlement, ok := s.ChooseInitialSettlement(e.Board, me)
	if !ok {
		log.Warn().Msgf("player %d has nowhere to place an initial settlement", player)
		return nil
	}
	if err := e.Board.AddSettlement(settlement, player, me.Color, true); err != nil {
		log.Warn().Err(err).Msgf("player %d initial settlement rejected", player)
		return nil
	}
	me.UpdateResourceProbability(e.Board, settlement)
	me.Score++
	if kind, ok := e.Board.PortType(settlement); ok {
		me.GainPortPower(kind)
	}
	if second {
		for _, tile := range e.Board.AdjacentHexes(settlement) {
			if err := me.Collect(tile.Kind, 1); err != nil {
				return err
			}
		}
	}

	end, ok := s.ChooseInitialRoad(e.Board, me, settlement)
	if !ok {
		log.Warn().Msgf("player %d has nowhere to place an initial road", player)
		return nil
	}
	if err := e.Board.AddRoad(settlement, end, player, me.Color, true); err != nil {
		log.Warn().Err(err).Msgf("player %d initial road rejected", player)
	}
	return nil
}

// TakeTurn rolls for the current player, lets its strategy build, checks for
// a win and passes the dice on. The turn number advances after the last
// seat.
func (e *Local) TakeTurn() error {
	player := e.current
	me := e.ledger(player)

	if err := e.CollectResources(player, e.Board.RollDice()); err != nil {
		return err
	}
	if err := e.strategy(player).TakeTurn(e.Board, me); err != nil {
		return fmt.Errorf("player %d turn %d: %w", player, e.Board.Turn, err)
	}

	if me.Score >= e.winScore {
		e.Board.Winner = player
		e.events.Record(game.GameWon{Player: player, Score: me.Score, Turn: e.Board.Turn})
	}
	e.render()

	if int(player) == len(e.Ledgers) {
		e.current = 1
		e.Board.Turn++
	} else {
		e.current++
	}
	return nil
}

// CollectResources applies a roll. A 7 makes every player over the hand cap
// discard, then the roller moves the robber and steals; any other roll pays
// out the matching tiles.
func (e *Local) CollectResources(player game.PlayerID, roll int) error {
	if roll != 7 {
		for _, y := range e.Board.Yields(roll) {
			if err := e.ledger(y.Player).Collect(y.Resource, y.Amount); err != nil {
				return err
			}
		}
		return nil
	}

	for seat, ledger := range e.Ledgers {
		if ledger.TotalResources() > e.handCap {
			if err := e.Strategies[seat].Discard(ledger); err != nil {
				return fmt.Errorf("player %d discard: %w", ledger.ID, err)
			}
		}
	}

	me := e.ledger(player)
	s := e.strategy(player)
	target, ok := s.ChoosePlayerToRob(e.Board, me)
	if !ok {
		return nil
	}
	if location, ok := s.ChoosePointToBlock(e.Board, me, target); ok {
		if err := e.Board.MoveRobber(location); err != nil {
			log.Warn().Err(err).Msgf("player %d robber move rejected", player)
		}
	}

	victim := e.ledger(target)
	resource, ok := victim.RandomResourceToLose(e.rng)
	if !ok {
		return nil
	}
	return errors.Join(victim.LoseResource(resource), me.GainResource(resource))
}

func (e *Local) render() {
	if e.renderer != nil {
		e.renderer.Render(e.Board.Snapshot())
	}
}
