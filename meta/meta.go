// meta/meta.go
package meta

// PLAYERS is the number of seats in the reference rules.
const PLAYERS = 4

// WIN_SCORE is the score that ends the game.
const WIN_SCORE = 10

// HAND_CAP is the most resources a player may hold on a 7 roll without
// discarding.
const HAND_CAP = 7

// MAX_TURNS ends a game without a winner.
const MAX_TURNS = 300

// GAMES defines the number of games per simulation run.
const GAMES = 10

// GO_ROUTINES defines the number of games simulated concurrently.
const GO_ROUTINES = 8

// OUTPUT_DIR is where simulation records are written.
const OUTPUT_DIR = "experiments/simulations"
