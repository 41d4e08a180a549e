package strategy

import (
	"catan/game"
	"fmt"

	"golang.org/x/exp/rand"
)

// Strategy makes every decision for one player. Implementations keep no game
// state between calls: each decision depends only on the board, the player's
// ledger and fresh randomness. A false result means there is no legal move.
type Strategy interface {
	ChooseInitialSettlement(b *game.Board, me *game.Ledger) (game.Point, bool)
	// ChooseInitialRoad returns the far end of a road leaving settlement
	ChooseInitialRoad(b *game.Board, me *game.Ledger, settlement game.Point) (game.Point, bool)
	ChoosePlayerToRob(b *game.Board, me *game.Ledger) (game.PlayerID, bool)
	// ChoosePointToBlock returns the location of the tile to move the robber to
	ChoosePointToBlock(b *game.Board, me *game.Ledger, robbed game.PlayerID) (game.Point, bool)
	// Discard drops half of the hand, rounded down
	Discard(me *game.Ledger) error
	// TakeTurn trades and builds in place on b
	TakeTurn(b *game.Board, me *game.Ledger) error
}

type Kind string

const (
	RandomGreedyKind Kind = "random-greedy"
)

// New creates a strategy of the given kind drawing randomness from rng.
func New(kind Kind, rng *rand.Rand, options ...Option) (Strategy, error) {
	switch kind {
	case RandomGreedyKind, "":
		return NewRandomGreedy(rng, options...), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", kind)
	}
}
