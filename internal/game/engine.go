// internal/game/engine.go
//
// Core game engine for a single Hangman session.
// Responsibilities:
//   - Create new games around a secret word and a wrong-guess allowance.
//   - Validate and apply single-letter guesses.
//   - Track state transitions: playing → won/lost.
//   - Render point-in-time snapshots with the word masked while play
//     continues and revealed once the game ends.
//
// Notes:
//   - Secret words are provided by the words package; identifiers by the
//     store. The engine itself never touches I/O.
//   - A repeated letter is a no-op: the caller gets the current snapshot
//     back and no counter moves.
package game

import (
	"errors"
	"sort"
	"strings"
)

const (
	// defaultMaxWrong matches the seven stages of the classic gallows drawing.
	defaultMaxWrong = 7

	// flawlessThreshold is the number of remaining wrong guesses a winner
	// must still hold for the win to count as flawless.
	flawlessThreshold = 3
)

// End-of-game flavor text. The transition messages appear on the guess
// that ends the game; the recap messages on every read after that.
const (
	msgWonFlawless = "FLAWLESS VICTORY!"
	msgWon         = "Victory is yours!"
	msgLost        = "Sorry, friend. You've been hanged!"
	msgWonRecap    = "I said you won! Stop rubbing it in. >.<"
	msgLostRecap   = "Better luck next time!"
)

var (
	// ErrInvalidLetter reports a guess that is not a single ASCII letter.
	ErrInvalidLetter = errors.New("guess must be a single letter a-z")

	// ErrGameOver reports a guess against an already-finished game.
	ErrGameOver = errors.New("game is already over")
)

// New constructs a game around the given secret word. The word is
// normalized to uppercase; a non-positive maxWrong falls back to the
// default allowance.
func New(id, word string, maxWrong int) *Game {
	if maxWrong <= 0 {
		maxWrong = defaultMaxWrong
	}
	return &Game{
		id:       id,
		word:     strings.ToUpper(word),
		guessed:  make(map[byte]bool),
		maxWrong: maxWrong,
		status:   StatusPlaying,
	}
}

// ID returns the game's identifier.
func (g *Game) ID() string { return g.id }

// ApplyGuess validates and applies a single-letter guess, mutating the
// game state. Returns the resulting snapshot, the outcome of the guess,
// or an error.
//
// Validation rules, in order:
//   - Guess must be exactly one ASCII letter, either case (ErrInvalidLetter).
//   - Game must not be finished (ErrGameOver).
//
// State transitions:
//   - All letters of the word guessed → won.
//   - Wrong-guess count reaches the allowance → lost, on that same guess.
//   - A letter guessed before changes nothing and reports OutcomeRepeat.
func (g *Game) ApplyGuess(letter string) (Snapshot, Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := normalizeLetter(letter)
	if !ok {
		return g.snapshot(false), "", ErrInvalidLetter
	}

	if g.status != StatusPlaying {
		return g.snapshot(false), "", ErrGameOver
	}

	if g.guessed[c] {
		return g.snapshot(false), OutcomeRepeat, nil
	}
	g.guessed[c] = true

	if strings.IndexByte(g.word, c) < 0 {
		g.wrong++
		if g.wrong >= g.maxWrong {
			g.status = StatusLost
		}
		return g.snapshot(true), OutcomeWrong, nil
	}

	if g.revealed() {
		g.status = StatusWon
	}
	return g.snapshot(true), OutcomeCorrect, nil
}

// Snapshot returns the current state of the game for a plain read.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot(false)
}

// normalizeLetter reduces a raw guess to one uppercase ASCII letter.
func normalizeLetter(s string) (byte, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return 0, false
	}
	c := s[0]
	switch {
	case c >= 'a' && c <= 'z':
		return c - 'a' + 'A', true
	case c >= 'A' && c <= 'Z':
		return c, true
	}
	return 0, false
}

// revealed reports whether every letter of the word has been guessed.
func (g *Game) revealed() bool {
	for i := 0; i < len(g.word); i++ {
		if !g.guessed[g.word[i]] {
			return false
		}
	}
	return true
}

// snapshot renders the wire view of the game. Callers must hold g.mu.
// justFinished selects the transition flavor text over the recap text
// for terminal games; it is true only on the guess that ended the game.
func (g *Game) snapshot(justFinished bool) Snapshot {
	s := Snapshot{
		ID:      g.id,
		Word:    g.maskedWord(),
		Guessed: g.guessedLetters(),
		Guesses: g.remaining(),
		Status:  g.status,
	}
	switch g.status {
	case StatusWon:
		switch {
		case !justFinished:
			s.Message = msgWonRecap
		case g.remaining() >= flawlessThreshold:
			s.Message = msgWonFlawless
		default:
			s.Message = msgWon
		}
	case StatusLost:
		if justFinished {
			s.Message = msgLost
		} else {
			s.Message = msgLostRecap
		}
	}
	return s
}

// maskedWord substitutes '*' for every unguessed letter. Finished games
// show the full word, win or lose.
func (g *Game) maskedWord() string {
	if g.status != StatusPlaying {
		return g.word
	}
	b := []byte(g.word)
	for i, c := range b {
		if !g.guessed[c] {
			b[i] = '*'
		}
	}
	return string(b)
}

// guessedLetters returns every guessed letter as a sorted slice of
// single-letter strings. Never nil, so the JSON field is always an array.
func (g *Game) guessedLetters() []string {
	out := make([]string, 0, len(g.guessed))
	for c := range g.guessed {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}

// remaining reports how many wrong guesses are still allowed.
func (g *Game) remaining() int {
	if g.wrong >= g.maxWrong {
		return 0
	}
	return g.maxWrong - g.wrong
}
