package shared

import "context"

// KeyedLocker serializes work per key (for example per collector).
// Lock blocks until the key is acquired or ctx is done; the returned
// function releases it and is safe to call once.
type KeyedLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// NoopLocker never blocks. It is used when callers already hold a stronger lock.
type NoopLocker struct{}

// Lock returns immediately
func (NoopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}
