// Package solver picks letters for automated or interactive play. A
// solver sees the latest server snapshot and nothing else, so it can
// never rely on the hidden word.
package solver

import "github.com/robalobadob/hangman/internal/game"

// Solver produces the next letter to guess given the latest snapshot.
// Implementations return lowercase letters; the server accepts either
// case.
type Solver interface {
	NextLetter(snap game.Snapshot) (string, error)
}

// unguessedLetters returns the lowercase alphabet minus the letters the
// snapshot already records.
func unguessedLetters(guessed []string) []byte {
	var taken [26]bool
	for _, l := range guessed {
		if l == "" {
			continue
		}
		c := l[0]
		if c >= 'A' && c <= 'Z' {
			taken[c-'A'] = true
		}
		if c >= 'a' && c <= 'z' {
			taken[c-'a'] = true
		}
	}
	var pool []byte
	for j := 0; j < 26; j++ {
		if !taken[j] {
			pool = append(pool, byte('a'+j))
		}
	}
	return pool
}
