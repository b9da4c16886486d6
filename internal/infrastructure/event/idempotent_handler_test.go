package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockIdempotencyStore struct {
	mock.Mock
}

func (m *mockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotencyStore) Close() error {
	return nil
}

// mapStore is a minimal concurrent-safe store for race tests
type mapStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (s *mapStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

func (s *mapStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[key], nil
}

func (s *mapStore) Close() error { return nil }

var enabled = shared.IdempotencyConfig{Enabled: true, TTL: time.Hour}

func TestIdempotentHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("processes a new event", func(t *testing.T) {
		store := new(mockIdempotencyStore)
		inner := newRecordingHandler(reconciliation.EventTypeCutFinalized)
		h := NewIdempotentHandler(inner, store, enabled, nil)
		ev := newTestEvent(reconciliation.EventTypeCutFinalized)

		store.On("MarkProcessed", ctx, "event:"+ev.EventID().String(), time.Hour).Return(true, nil)

		require.NoError(t, h.Handle(ctx, ev))
		assert.Equal(t, 1, inner.count())
		assert.Equal(t, int64(1), h.Stats().Processed)
		store.AssertExpectations(t)
	})

	t.Run("skips a duplicate", func(t *testing.T) {
		store := new(mockIdempotencyStore)
		inner := newRecordingHandler()
		h := NewIdempotentHandler(inner, store, enabled, nil)
		ev := newTestEvent(reconciliation.EventTypeCutFinalized)

		store.On("MarkProcessed", ctx, "event:"+ev.EventID().String(), time.Hour).Return(false, nil)

		require.NoError(t, h.Handle(ctx, ev))
		assert.Equal(t, 0, inner.count())
		assert.Equal(t, int64(1), h.Stats().Duplicate)
	})

	t.Run("processes anyway when the store fails", func(t *testing.T) {
		store := new(mockIdempotencyStore)
		inner := newRecordingHandler()
		h := NewIdempotentHandler(inner, store, enabled, nil)

		store.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("redis down"))

		require.NoError(t, h.Handle(ctx, newTestEvent("X")))
		assert.Equal(t, 1, inner.count())
	})

	t.Run("counts handler failures", func(t *testing.T) {
		store := new(mockIdempotencyStore)
		inner := newRecordingHandler()
		inner.err = errors.New("upload failed")
		h := NewIdempotentHandler(inner, store, enabled, nil)

		store.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		require.Error(t, h.Handle(ctx, newTestEvent("X")))
		assert.Equal(t, int64(1), h.Stats().Failed)
	})

	t.Run("disabled config bypasses the store", func(t *testing.T) {
		store := new(mockIdempotencyStore)
		inner := newRecordingHandler()
		h := NewIdempotentHandler(inner, store, shared.IdempotencyConfig{Enabled: false}, nil)

		require.NoError(t, h.Handle(ctx, newTestEvent("X")))
		require.NoError(t, h.Handle(ctx, newTestEvent("X")))
		assert.Equal(t, 2, inner.count())
		store.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestIdempotentHandler_ConcurrentRedelivery(t *testing.T) {
	ctx := context.Background()
	inner := newRecordingHandler(reconciliation.EventTypeCutFinalized)
	h := NewIdempotentHandler(inner, &mapStore{seen: map[string]bool{}}, enabled, nil)
	ev := newTestEvent(reconciliation.EventTypeCutFinalized)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, h.Handle(ctx, ev))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, inner.count())
	assert.Equal(t, int64(19), h.Stats().Duplicate)
	assert.Equal(t, []string{reconciliation.EventTypeCutFinalized}, h.EventTypes())
}
