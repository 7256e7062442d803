package refine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRefiner struct {
	suffix string
	err    error
	seen   []string
}

func (s *staticRefiner) Refine(_ context.Context, summary string) (string, error) {
	s.seen = append(s.seen, summary)
	return s.suffix, s.err
}

func TestPolicy(t *testing.T) {
	suffix, err := Policy{}.Refine(context.Background(), "Generated 4 levels.")
	require.NoError(t, err)
	assert.Equal(t, " AI refinement active via configured LLM policy controls.", suffix)
}

func TestFromCredentials(t *testing.T) {
	assert.Nil(t, FromCredentials(false))
	assert.Equal(t, Policy{}, FromCredentials(true))
}

func TestChain(t *testing.T) {
	ctx := context.Background()

	t.Run("concatenates suffixes in order", func(t *testing.T) {
		first := &staticRefiner{suffix: " one."}
		second := &staticRefiner{suffix: " two."}

		suffix, err := Chain{first, nil, second}.Refine(ctx, "base.")
		require.NoError(t, err)
		assert.Equal(t, " one. two.", suffix)
		assert.Equal(t, []string{"base. one."}, second.seen)
	})

	t.Run("failure keeps other suffixes", func(t *testing.T) {
		failing := &staticRefiner{err: assert.AnError}
		after := &staticRefiner{suffix: " two."}

		suffix, err := Chain{&staticRefiner{suffix: " one."}, failing, after}.Refine(ctx, "base.")
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, " one. two.", suffix)
		assert.Equal(t, []string{"base. one."}, after.seen)
	})

	t.Run("policy survives a failing refiner", func(t *testing.T) {
		suffix, err := Chain{Policy{}, &staticRefiner{err: assert.AnError}}.Refine(ctx, "base.")
		assert.Error(t, err)
		assert.Equal(t, PolicySuffix, suffix)
	})

	t.Run("empty chain", func(t *testing.T) {
		suffix, err := Chain{}.Refine(ctx, "base.")
		require.NoError(t, err)
		assert.Empty(t, suffix)
	})
}
