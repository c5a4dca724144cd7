package data

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/balance-app/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncQueue(t *testing.T) {
	t.Run("Returns the job result", func(t *testing.T) {
		queue := NewSyncQueue(coremocks.NewPermissiveMockLogger(t))
		defer queue.Shutdown()

		boom := errors.New("boom")
		err := queue.Run(context.Background(), "1", "push", func(ctx context.Context) error { return boom })

		assert.ErrorIs(t, err, boom)
	})

	t.Run("Jobs of one account run in order", func(t *testing.T) {
		queue := NewSyncQueue(coremocks.NewPermissiveMockLogger(t))
		defer queue.Shutdown()

		var mu sync.Mutex
		var order []int
		release := make(chan struct{})
		started := make(chan struct{})

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = queue.Run(context.Background(), "1", "first", func(ctx context.Context) error {
				close(started)
				<-release
				mu.Lock()
				order = append(order, 1)
				mu.Unlock()
				return nil
			})
		}()
		<-started

		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = queue.Run(context.Background(), "1", "second", func(ctx context.Context) error {
				mu.Lock()
				order = append(order, 2)
				mu.Unlock()
				return nil
			})
		}()

		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		assert.Empty(t, order)
		mu.Unlock()

		close(release)
		wg.Wait()
		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("Accounts do not block each other", func(t *testing.T) {
		queue := NewSyncQueue(coremocks.NewPermissiveMockLogger(t))
		defer queue.Shutdown()

		release := make(chan struct{})
		started := make(chan struct{})
		go func() {
			_ = queue.Run(context.Background(), "a", "push", func(ctx context.Context) error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started

		err := queue.Run(context.Background(), "b", "push", func(ctx context.Context) error { return nil })
		assert.NoError(t, err)
		close(release)
	})

	t.Run("Rejects work after shutdown", func(t *testing.T) {
		queue := NewSyncQueue(coremocks.NewPermissiveMockLogger(t))
		require.NoError(t, queue.Run(context.Background(), "1", "push", func(ctx context.Context) error { return nil }))

		queue.Shutdown()
		queue.Shutdown()

		err := queue.Run(context.Background(), "1", "push", func(ctx context.Context) error { return nil })
		assert.ErrorIs(t, err, errs.ErrSyncQueueClosed)
	})
}
