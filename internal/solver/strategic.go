// internal/solver/strategic.go
//
// Dictionary-driven solver. Each turn it narrows a word list down to the
// candidates still compatible with the mask, then guesses the letter
// appearing in the most candidates. Works entirely from the snapshot:
// a guessed letter missing from the mask must have been wrong, so words
// containing it are ruled out.

package solver

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/robalobadob/hangman/internal/game"
)

// Strategic narrows a dictionary against the revealed mask.
type Strategic struct {
	dictionary []string
	rng        *rand.Rand
}

// NewStrategic builds a strategic solver over an uppercase dictionary,
// typically the same list the server draws from.
func NewStrategic(dictionary []string, rng *rand.Rand) *Strategic {
	return &Strategic{dictionary: dictionary, rng: rng}
}

// NextLetter guesses the unguessed letter occurring in the most
// candidate words. Ties break randomly; when no candidate survives it
// falls back to a blind guess.
func (s *Strategic) NextLetter(snap game.Snapshot) (string, error) {
	submitted := make(map[byte]bool, len(snap.Guessed))
	for _, l := range snap.Guessed {
		if l != "" {
			submitted[upper(l[0])] = true
		}
	}

	// Letters we guessed that the mask does not show were wrong guesses:
	// no candidate word may contain them.
	disallowed := make(map[byte]bool)
	for c := range submitted {
		if !strings.Contains(snap.Word, string(c)) {
			disallowed[c] = true
		}
	}

	re, err := regexp.Compile("^" + maskPattern(snap.Word) + "$")
	if err != nil {
		return "", fmt.Errorf("compile mask pattern: %w", err)
	}

	// Count, per unguessed letter, the number of candidates containing it.
	var counts [26]int
	for _, w := range s.dictionary {
		if !re.MatchString(w) || containsAny(w, disallowed) {
			continue
		}
		var seen [26]bool
		for i := 0; i < len(w); i++ {
			c := w[i]
			if c < 'A' || c > 'Z' || submitted[c] {
				continue
			}
			j := int(c - 'A')
			if !seen[j] {
				seen[j] = true
				counts[j]++
			}
		}
	}

	best := 0
	for _, n := range counts {
		if n > best {
			best = n
		}
	}
	if best > 0 {
		var top []byte
		for j, n := range counts {
			if n == best {
				top = append(top, byte('a'+j))
			}
		}
		return string(top[s.rng.Intn(len(top))]), nil
	}

	// The word is not in our dictionary; guess blind.
	pool := unguessedLetters(snap.Guessed)
	if len(pool) == 0 {
		return "", ErrNoLettersLeft
	}
	return string(pool[s.rng.Intn(len(pool))]), nil
}

// maskPattern turns a mask like "G***ER" into the regexp body "G...ER".
// Masks only ever hold uppercase letters and '*', so no escaping is
// needed.
func maskPattern(mask string) string {
	return strings.ReplaceAll(mask, "*", ".")
}

func containsAny(w string, letters map[byte]bool) bool {
	for i := 0; i < len(w); i++ {
		if letters[w[i]] {
			return true
		}
	}
	return false
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
