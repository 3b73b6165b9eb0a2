// internal/words/words.go
//
// Word list loading and secret-word selection.
//
// Responsibilities:
//   - Load a line-delimited word list from the path given on the command line.
//   - Keep only usable entries: ASCII letters only, at least 5 characters,
//     normalized to uppercase.
//   - Draw one word per new game from an injectable PRNG so selection is
//     deterministic under test and entropy-seeded in production.
//
// Constraints:
//   • The list is read once at startup and never reloaded.
//   • A list with no usable entries is a fatal startup condition.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
)

// Words shorter than this make for a dull round and are dropped at load.
const minLength = 5

// ErrEmptyList reports that no usable words remained after filtering.
var ErrEmptyList = errors.New("words: no usable words in list")

// Load reads one candidate word per line from path. Lines are trimmed and
// uppercased; lines that are too short or contain anything besides ASCII
// letters are dropped. Returns ErrEmptyList if nothing survives.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	out := Filter(lines)
	if len(out) == 0 {
		return nil, ErrEmptyList
	}
	return out, nil
}

// Filter reduces raw candidate lines to the usable words: trimmed,
// uppercased, at least 5 ASCII letters and nothing else. Every list a
// game draws from goes through here, whatever its source.
func Filter(lines []string) []string {
	var out []string
	for _, l := range lines {
		w := strings.ToUpper(strings.TrimSpace(l))
		if len(w) >= minLength && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Source is a fixed pool of candidate secret words plus the RNG used to
// draw from it. The RNG is supplied by the caller: production seeds it
// from OS entropy, tests seed it with a constant.
type Source struct {
	mu    sync.Mutex // guards rng
	rng   *rand.Rand
	words []string
}

// NewSource wraps an already-loaded word list.
func NewSource(list []string, rng *rand.Rand) *Source {
	return &Source{rng: rng, words: list}
}

// Pick returns one word uniformly at random. Safe for concurrent use.
func (s *Source) Pick() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.words[s.rng.Intn(len(s.words))]
}

// Count reports how many words are available.
func (s *Source) Count() int { return len(s.words) }
