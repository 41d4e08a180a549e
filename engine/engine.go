package engine

import "catan/game"

type Engine interface {
	// Run plays a game till a player reaches the win score or the turn cap
	// is reached, in which case the winner is game.NoPlayer
	Run() (winner game.PlayerID, err error)
}

// Colors are handed out to seats in order.
var Colors = []string{"red", "blue", "white", "orange"}
