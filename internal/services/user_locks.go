package services

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// userLocks hands out one weighted semaphore per user so writes for the same user run one at a
// time while different users never wait on each other.
type userLocks struct {
	mu      sync.Mutex
	entries map[uint]*userLockEntry
}

type userLockEntry struct {
	semaphore *semaphore.Weighted
	refs      int
}

func newUserLocks() *userLocks {
	return &userLocks{entries: make(map[uint]*userLockEntry)}
}

func (locks *userLocks) acquire(ctx context.Context, userID uint) (func(), error) {
	locks.mu.Lock()
	entry, ok := locks.entries[userID]
	if !ok {
		entry = &userLockEntry{semaphore: semaphore.NewWeighted(1)}
		locks.entries[userID] = entry
	}
	entry.refs++
	locks.mu.Unlock()

	if err := entry.semaphore.Acquire(ctx, 1); err != nil {
		locks.releaseRef(userID, entry)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.semaphore.Release(1)
			locks.releaseRef(userID, entry)
		})
	}, nil
}

func (locks *userLocks) releaseRef(userID uint, entry *userLockEntry) {
	locks.mu.Lock()
	defer locks.mu.Unlock()

	entry.refs--
	if entry.refs == 0 && locks.entries[userID] == entry {
		delete(locks.entries, userID)
	}
}

func (locks *userLocks) size() int {
	locks.mu.Lock()
	defer locks.mu.Unlock()
	return len(locks.entries)
}
