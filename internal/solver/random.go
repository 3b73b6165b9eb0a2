package solver

import (
	"errors"
	"math/rand"

	"github.com/robalobadob/hangman/internal/game"
)

// ErrNoLettersLeft reports that the whole alphabet has been guessed.
var ErrNoLettersLeft = errors.New("solver: no letters left to guess")

// Random guesses a uniformly random letter it has not seen in the
// snapshot's guessed list yet.
type Random struct {
	rng *rand.Rand
}

// NewRandom builds a random solver around the given RNG.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// NextLetter picks among the letters the game has not recorded yet.
func (r *Random) NextLetter(snap game.Snapshot) (string, error) {
	pool := unguessedLetters(snap.Guessed)
	if len(pool) == 0 {
		return "", ErrNoLettersLeft
	}
	return string(pool[r.rng.Intn(len(pool))]), nil
}
