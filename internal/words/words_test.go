package words

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("filters and normalizes", func(t *testing.T) {
		path := writeList(t, "  gopher \nBANANA\ncat\nnope!\nstream\n\n")

		got, err := Load(path)
		require.NoError(t, err)

		// "cat" is too short, "nope!" is not alphabetic.
		assert.Equal(t, []string{"GOPHER", "BANANA", "STREAM"}, got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
		assert.Error(t, err)
	})

	t.Run("nothing usable", func(t *testing.T) {
		path := writeList(t, "cat\ndog\n123\n")

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrEmptyList)
	})
}

func TestFilter(t *testing.T) {
	raw := []string{"  gopher ", "BANANA", "cat", "nope!", "", "stream"}

	// Same rules as Load: trim, uppercase, drop short or non-alphabetic
	// entries, whatever the list's source.
	assert.Equal(t, []string{"GOPHER", "BANANA", "STREAM"}, Filter(raw))
	assert.Empty(t, Filter([]string{"cat", "123"}))
	assert.Empty(t, Filter(nil))
}

func TestSourcePick(t *testing.T) {
	list := []string{"ALPHA", "BRAVO", "DELTA"}

	t.Run("deterministic with fixed seed", func(t *testing.T) {
		a := NewSource(list, rand.New(rand.NewSource(42)))
		b := NewSource(list, rand.New(rand.NewSource(42)))
		for i := 0; i < 20; i++ {
			assert.Equal(t, a.Pick(), b.Pick())
		}
	})

	t.Run("only returns listed words", func(t *testing.T) {
		s := NewSource(list, rand.New(rand.NewSource(1)))
		for i := 0; i < 50; i++ {
			assert.Contains(t, list, s.Pick())
		}
	})

	t.Run("varies across picks", func(t *testing.T) {
		s := NewSource(list, rand.New(rand.NewSource(7)))
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			seen[s.Pick()] = true
		}
		assert.Greater(t, len(seen), 1)
	})

	t.Run("count", func(t *testing.T) {
		s := NewSource(list, rand.New(rand.NewSource(1)))
		assert.Equal(t, 3, s.Count())
	})
}
