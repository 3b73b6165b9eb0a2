// internal/store/memory.go
//
// In-memory registry of live game sessions.
// State is ephemeral: everything is lost when the process restarts, which
// is the intended durability level for this service.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - The map itself is guarded by an RWMutex; each Game carries its own
//     lock, so guesses against different games never contend with each
//     other and only map lookups take the registry lock.
//   - Owns game creation: picks the secret word, mints the UUID, and
//     keeps the Prometheus counters honest as games start and finish.

package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/metrics"
	"github.com/robalobadob/hangman/internal/words"
)

// ErrGameNotFound reports a lookup for an ID this store never issued.
var ErrGameNotFound = errors.New("game not found")

// Store is the in-memory session registry.
type Store struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID()

	words    *words.Source
	maxWrong int
	metrics  *metrics.Metrics
}

// New constructs a Store drawing secret words from src. A non-positive
// maxWrong defers to the engine's default allowance.
func New(src *words.Source, maxWrong int, m *metrics.Metrics) *Store {
	return &Store{
		games:    make(map[string]*game.Game),
		words:    src,
		maxWrong: maxWrong,
		metrics:  m,
	}
}

// Create starts a new game with a fresh ID and a freshly drawn word.
func (s *Store) Create() *game.Game {
	id := uuid.NewString()
	g := game.New(id, s.words.Pick(), s.maxWrong)

	s.mu.Lock()
	if _, exists := s.games[id]; exists {
		s.mu.Unlock()
		// UUIDs colliding means something is deeply broken upstream.
		panic("store: duplicate game id " + id)
	}
	s.games[id] = g
	s.mu.Unlock()

	s.metrics.GamesCreatedTotal.Inc()
	s.metrics.GamesActive.Inc()
	return g
}

// Get looks up a game by ID.
func (s *Store) Get(id string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g, ok := s.games[id]; ok {
		return g, nil
	}
	return nil, ErrGameNotFound
}

// Update applies one guess to the identified game and records the guess
// and any finish in the metrics. Errors from the engine pass through
// untouched so callers can map them onto HTTP status codes.
func (s *Store) Update(id, letter string) (game.Snapshot, error) {
	g, err := s.Get(id)
	if err != nil {
		return game.Snapshot{}, err
	}

	snap, outcome, err := g.ApplyGuess(letter)
	if err != nil {
		return snap, err
	}

	s.metrics.GuessesTotal.WithLabelValues(string(outcome)).Inc()
	// A non-error terminal snapshot can only come from the guess that
	// ended the game, so this fires exactly once per game.
	if snap.Status != game.StatusPlaying {
		s.metrics.GamesFinishedTotal.WithLabelValues(string(snap.Status)).Inc()
		s.metrics.GamesActive.Dec()
	}
	return snap, nil
}

// GameCount reports how many games the store currently holds, finished
// games included.
func (s *Store) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// WordCount reports the size of the word pool behind new games.
func (s *Store) WordCount() int { return s.words.Count() }
