// Package ownerlock serializes cart mutations per owner. Add-to-cart and checkout for the same
// owner take the same lock so a line added mid-checkout is neither dropped nor consumed twice.
package ownerlock

import (
	"context"
	"errors"
	"sync"
)

var ErrLockTimeout = errors.New("owner lock: timed out waiting for lock")

type Locker interface {
	// Lock blocks until the owner's lock is held or ctx is done. The returned func releases it.
	Lock(ctx context.Context, ownerID uint64) (unlock func(), err error)
}

var (
	_ Locker = (*Local)(nil)
	_ Locker = (*Redis)(nil)
)

// Local is an in-process keyed mutex. Entries are dropped once nobody holds or waits on them.
type Local struct {
	mu    sync.Mutex
	slots map[uint64]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewLocal() *Local {
	return &Local{slots: make(map[uint64]*slot)}
}

func (l *Local) Lock(ctx context.Context, ownerID uint64) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[ownerID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[ownerID] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				l.release(ownerID, s)
			})
		}, nil
	case <-ctx.Done():
		l.release(ownerID, s)
		return nil, errors.Join(ErrLockTimeout, ctx.Err())
	}
}

func (l *Local) release(ownerID uint64, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, ownerID)
	}
}

func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
