package store

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/metrics"
	"github.com/robalobadob/hangman/internal/words"
)

func newTestStore(t *testing.T, list ...string) (*Store, *metrics.Metrics) {
	t.Helper()
	if len(list) == 0 {
		list = []string{"CAT"}
	}
	m := metrics.NewMetrics()
	src := words.NewSource(list, rand.New(rand.NewSource(1)))
	return New(src, 7, m), m
}

func TestCreate(t *testing.T) {
	st, m := newTestStore(t)

	a := st.Create()
	b := st.Create()

	assert.NotEqual(t, a.ID(), b.ID(), "every game gets its own id")
	assert.Equal(t, 2, st.GameCount())
	assert.Equal(t, float64(2), testutil.ToFloat64(m.GamesCreatedTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.GamesActive))

	got, err := st.Get(a.ID())
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestGetUnknown(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.Get("no-such-id")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestUpdate(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		st, _ := newTestStore(t)
		_, err := st.Update("no-such-id", "a")
		assert.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("counts outcomes", func(t *testing.T) {
		st, m := newTestStore(t) // word is CAT
		g := st.Create()

		_, err := st.Update(g.ID(), "c")
		require.NoError(t, err)
		_, err = st.Update(g.ID(), "c")
		require.NoError(t, err)
		_, err = st.Update(g.ID(), "z")
		require.NoError(t, err)

		assert.Equal(t, float64(1), testutil.ToFloat64(m.GuessesTotal.WithLabelValues("correct")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.GuessesTotal.WithLabelValues("repeat")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.GuessesTotal.WithLabelValues("wrong")))
	})

	t.Run("win settles metrics", func(t *testing.T) {
		st, m := newTestStore(t)
		g := st.Create()

		for _, l := range []string{"c", "a", "t"} {
			_, err := st.Update(g.ID(), l)
			require.NoError(t, err)
		}

		snap := g.Snapshot()
		assert.Equal(t, game.StatusWon, snap.Status)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.GamesFinishedTotal.WithLabelValues("won")))
		assert.Equal(t, float64(0), testutil.ToFloat64(m.GamesActive))

		// Finished games stay readable.
		_, err := st.Get(g.ID())
		assert.NoError(t, err)
	})

	t.Run("loss settles metrics", func(t *testing.T) {
		st, m := newTestStore(t)
		g := st.Create()

		for _, l := range []string{"q", "w", "e", "r", "u", "i", "o"} {
			_, err := st.Update(g.ID(), l)
			require.NoError(t, err)
		}

		assert.Equal(t, game.StatusLost, g.Snapshot().Status)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.GamesFinishedTotal.WithLabelValues("lost")))

		// Further guesses surface the engine error and count nothing.
		_, err := st.Update(g.ID(), "c")
		assert.ErrorIs(t, err, game.ErrGameOver)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.GamesFinishedTotal.WithLabelValues("lost")))
	})
}

func TestConcurrentGames(t *testing.T) {
	st, _ := newTestStore(t, "GOPHER")

	const n = 16
	ids := make([]string, n)
	for i := range ids {
		ids[i] = st.Create().ID()
	}

	// Hammer every game from its own goroutine plus concurrent creates;
	// the race detector keeps this honest.
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for _, l := range []string{"g", "o", "p", "h", "e", "r"} {
				_, err := st.Update(id, l)
				assert.NoError(t, err)
			}
		}(id)
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Create()
		}()
	}
	wg.Wait()

	assert.Equal(t, 2*n, st.GameCount())
	for _, id := range ids {
		g, err := st.Get(id)
		require.NoError(t, err)
		assert.Equal(t, game.StatusWon, g.Snapshot().Status)
	}
}

func TestSameGameSerializes(t *testing.T) {
	st, m := newTestStore(t, "GOPHER")
	g := st.Create()

	// Many goroutines guessing the same letters: repeats must absorb the
	// duplicates and the game must finish exactly once.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, l := range []string{"g", "o", "p", "h", "e", "r"} {
				_, err := st.Update(g.ID(), l)
				if err != nil {
					assert.ErrorIs(t, err, game.ErrGameOver)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, game.StatusWon, g.Snapshot().Status)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.GamesFinishedTotal.WithLabelValues("won")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.GamesActive))
}

func TestWordCount(t *testing.T) {
	st, _ := newTestStore(t, "ALPHA", "BRAVO", "DELTA")
	assert.Equal(t, 3, st.WordCount())
}
