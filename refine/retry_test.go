package refine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff(t *testing.T) {
	t.Run("success on first try", func(t *testing.T) {
		attempts := 0
		err := RetryWithBackoff(context.Background(), func(context.Context) error {
			attempts++
			return nil
		}, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("eventual success", func(t *testing.T) {
		attempts := 0
		err := RetryWithBackoff(context.Background(), func(context.Context) error {
			attempts++
			if attempts < 3 {
				return errors.New("temporary error")
			}
			return nil
		}, 5, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("all attempts fail", func(t *testing.T) {
		attempts := 0
		err := RetryWithBackoff(context.Background(), func(context.Context) error {
			attempts++
			return assert.AnError
		}, 3, time.Millisecond)
		assert.Equal(t, assert.AnError, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("context canceled between attempts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		attempts := 0
		err := RetryWithBackoff(ctx, func(context.Context) error {
			attempts++
			if attempts == 2 {
				cancel()
			}
			return assert.AnError
		}, 10, time.Millisecond)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 2, attempts)
	})

	t.Run("invalid attempts", func(t *testing.T) {
		err := RetryWithBackoff(context.Background(), func(context.Context) error { return nil }, 0, time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})
}
