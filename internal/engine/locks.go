package engine

import "sync"

// accountLocks hands out one mutex per user_id so all orders for the same
// account are totally ordered while orders for disjoint accounts proceed
// in parallel. Mutexes are created lazily and never removed; the set of
// accounts is small and stable for the lifetime of the process.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex for the given user_id, creating it on first use.
func (l *accountLocks) get(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	return m
}
