package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindow(t *testing.T) {
	t.Run("allows up to the limit", func(t *testing.T) {
		sw := NewSlidingWindow(3, time.Second)

		assert.True(t, sw.Allow())
		assert.True(t, sw.Allow())
		assert.True(t, sw.Allow())
		assert.False(t, sw.Allow())
		assert.Equal(t, 0, sw.Remaining())
	})

	t.Run("slots free up after the window passes", func(t *testing.T) {
		sw := NewSlidingWindow(1, 20*time.Millisecond)

		require.True(t, sw.Allow())
		require.False(t, sw.Allow())

		time.Sleep(30 * time.Millisecond)
		assert.True(t, sw.Allow())
	})

	t.Run("wait blocks until a slot frees", func(t *testing.T) {
		sw := NewSlidingWindow(1, 20*time.Millisecond)
		require.True(t, sw.Allow())

		start := time.Now()
		require.NoError(t, sw.Wait(context.Background()))
		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	})

	t.Run("wait honors context cancellation", func(t *testing.T) {
		sw := NewSlidingWindow(1, time.Minute)
		require.True(t, sw.Allow())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, sw.Wait(ctx), context.DeadlineExceeded)
	})
}
