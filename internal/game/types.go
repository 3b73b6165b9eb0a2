// internal/game/types.go
//
// Core type definitions for the Hangman game engine.
// Defines:
//   - Status: lifecycle of a single game (playing/won/lost).
//   - Outcome: classification of one applied guess (correct/wrong/repeat).
//   - Game: state for a single in-progress or finished game.
//   - Snapshot: the wire representation of a game at a point in time.

package game

import "sync"

// Status represents the lifecycle state of a game.
// Transitions are one-directional: playing → won or playing → lost.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Outcome classifies a single applied guess.
// Possible values:
//   - "correct": the letter occurs in the word and was not guessed before.
//   - "wrong":   the letter does not occur in the word.
//   - "repeat":  the letter was already guessed; state is unchanged.
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
	OutcomeRepeat  Outcome = "repeat"
)

// Game holds the state of a single Hangman session.
// All reads and writes go through its methods; the embedded mutex makes a
// Game safe to share between handlers without any broader lock.
type Game struct {
	mu       sync.Mutex
	id       string        // Unique game identifier (UUID).
	word     string        // The secret word (always uppercase).
	guessed  map[byte]bool // Letters guessed so far, correct or not.
	wrong    int           // Number of wrong guesses made.
	maxWrong int           // Wrong guesses allowed before the game is lost.
	status   Status
}

// Snapshot is the JSON view of a game returned by every endpoint. The
// secret word stays masked with '*' until the game reaches a terminal
// state, and Guesses counts the remaining wrong attempts, not those used.
type Snapshot struct {
	ID      string   `json:"id"`
	Word    string   `json:"word"`
	Guessed []string `json:"guessed"`
	Guesses int      `json:"guesses"`
	Status  Status   `json:"status"`
	Message string   `json:"message,omitempty"`
}
