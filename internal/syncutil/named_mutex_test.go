package syncutil_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/Nivl/ugit/internal/syncutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedMutex(t *testing.T) {
	t.Parallel()

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()

		a := []byte{'A'}
		b := []byte{'B'}

		mu := syncutil.NewNamedMutex(2)
		mu.Lock(a)
		mu.Lock(b)
		mu.Unlock(b)
		mu.Unlock(a)
	})

	t.Run("should still work with an invalid max", func(t *testing.T) {
		t.Parallel()

		a := []byte{'A'}

		mu := syncutil.NewNamedMutex(0)
		mu.RLock(a)
		mu.RLock(a)
		mu.RUnlock(a)
		mu.RUnlock(a)
	})

	t.Run("WithLock should return the error of the callback", func(t *testing.T) {
		t.Parallel()

		expected := errors.New("expected")
		mu := syncutil.NewNamedMutex(3)
		err := mu.WithLock([]byte("key"), func() error {
			return expected
		})
		require.ErrorIs(t, err, expected)
		require.NoError(t, mu.WithRLock([]byte("key"), func() error { return nil }))
	})

	t.Run("same key should be serialized", func(t *testing.T) {
		t.Parallel()

		mu := syncutil.NewNamedMutex(7)
		counter := 0
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = mu.WithLock([]byte("counter"), func() error {
					counter++
					return nil
				})
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, counter)
	})
}
