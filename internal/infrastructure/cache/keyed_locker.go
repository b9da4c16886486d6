package cache

import (
	"context"
	"sync"

	"github.com/cobranza/backend/internal/domain/shared"
)

// KeyedMutex is an in-process KeyedLocker. Each key maps to a one-slot
// channel; entries are dropped once nobody holds or waits for them.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{slots: make(map[string]*slot)}
}

// Lock blocks until key is free or ctx is done
func (m *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	s := m.acquireSlot(key)

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		m.releaseSlot(key, s)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			m.releaseSlot(key, s)
		})
	}, nil
}

func (m *KeyedMutex) acquireSlot(key string) *slot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		m.slots[key] = s
	}
	s.refs++
	return s
}

func (m *KeyedMutex) releaseSlot(key string, s *slot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(m.slots, key)
	}
}

// Len returns the number of keys currently held or awaited
func (m *KeyedMutex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

var _ shared.KeyedLocker = (*KeyedMutex)(nil)
