package featurize

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHashing(t *testing.T) {
	t.Run("valid dimensions", func(t *testing.T) {
		h, err := NewHashing(64)
		require.NoError(t, err)
		assert.Equal(t, 64, h.Dimensions())
	})

	t.Run("zero dimensions", func(t *testing.T) {
		_, err := NewHashing(0)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	})

	t.Run("negative dimensions", func(t *testing.T) {
		_, err := NewHashing(-1)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	})
}

func TestHashing_Featurize(t *testing.T) {
	h, err := NewHashing(DefaultDimensions)
	require.NoError(t, err)

	t.Run("fixed length and unit norm", func(t *testing.T) {
		vec, err := h.Featurize("Software Series Engineering Backend North America")
		require.NoError(t, err)
		assert.Len(t, vec, DefaultDimensions)
		assert.InDelta(t, 1.0, magnitude(vec), 1e-6)
	})

	t.Run("non-negative entries", func(t *testing.T) {
		vec, err := h.Featurize("Kubernetes Terraform Go Postgres observability on-call")
		require.NoError(t, err)
		for i, v := range vec {
			assert.GreaterOrEqual(t, v, float32(0), "entry %d", i)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := h.Featurize("Backend Engineer platform reliability")
		require.NoError(t, err)
		b, err := h.Featurize("Backend Engineer platform reliability")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("case insensitive", func(t *testing.T) {
		a, err := h.Featurize("SOFTWARE Engineering")
		require.NoError(t, err)
		b, err := h.Featurize("software engineering")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("empty text is the zero vector", func(t *testing.T) {
		vec, err := h.Featurize("")
		require.NoError(t, err)
		assert.Len(t, vec, DefaultDimensions)
		assert.Zero(t, magnitude(vec))
	})

	t.Run("whitespace-only text is the zero vector", func(t *testing.T) {
		vec, err := h.Featurize("   \t\n ")
		require.NoError(t, err)
		assert.Zero(t, magnitude(vec))
	})

	t.Run("single character tokens are ignored", func(t *testing.T) {
		vec, err := h.Featurize("a b c - /")
		require.NoError(t, err)
		assert.Zero(t, magnitude(vec))
	})

	t.Run("identical text has cosine one", func(t *testing.T) {
		a, err := h.Featurize("Series Engineering Backend")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, Dot(a, a), 1e-6)
	})

	t.Run("disjoint text scores below overlapping text", func(t *testing.T) {
		q, err := h.Featurize("Software Engineering Backend")
		require.NoError(t, err)
		near, err := h.Featurize("Software Engineering Frontend")
		require.NoError(t, err)
		far, err := h.Featurize("Retail Merchandising Buyer")
		require.NoError(t, err)
		assert.Greater(t, Dot(q, near), Dot(q, far))
	})

	t.Run("tiny dimension space tolerates collisions", func(t *testing.T) {
		tiny, err := NewHashing(1)
		require.NoError(t, err)
		vec, err := tiny.Featurize("many different unseen tokens collide here")
		require.NoError(t, err)
		assert.Equal(t, []float32{1}, vec)
	})
}

func TestHashing_ConcurrentUse(t *testing.T) {
	h, err := NewHashing(256)
	require.NoError(t, err)

	want, err := h.Featurize("Enterprise governance Finance Controller")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]float32, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = h.Featurize("Enterprise governance Finance Controller")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "simple words", text: "Backend Engineer", want: []string{"backend", "engineer"}},
		{name: "punctuation splits", text: "IC1-IC6, M1/M4", want: []string{"ic1", "ic6", "m1", "m4"}},
		{name: "underscore is a word char", text: "snake_case", want: []string{"snake_case"}},
		{name: "drops short tokens", text: "a B2B x", want: []string{"b2b"}},
		{name: "compatibility forms fold", text: "ＳａａＳ", want: []string{"saas"}},
		{name: "empty", text: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
