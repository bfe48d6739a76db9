package recent

import (
	"context"
	"sync"
	"time"
)

// maxKeysPerUser bounds memory per user; oldest keys are evicted first
const maxKeysPerUser = 64

// MemoryStore keeps recent suggestions in process memory. Expired entries
// are dropped whenever a user's set is written and by Prune.
type MemoryStore struct {
	mu     sync.Mutex
	window time.Duration
	users  map[string]map[string]time.Time
}

// NewMemoryStore creates a store with the given window (DefaultWindow if <= 0)
func NewMemoryStore(window time.Duration) *MemoryStore {
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryStore{
		window: window,
		users:  make(map[string]map[string]time.Time),
	}
}

func (s *MemoryStore) Since(_ context.Context, userID string, since time.Time) (map[string]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]time.Time)
	for key, at := range s.users[userID] {
		if !at.Before(since) {
			out[key] = at
		}
	}
	return out, nil
}

func (s *MemoryStore) Record(_ context.Context, userID string, at time.Time, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.users[userID]
	if !ok {
		set = make(map[string]time.Time)
		s.users[userID] = set
	}
	for _, key := range keys {
		if prev, ok := set[key]; !ok || at.After(prev) {
			set[key] = at
		}
	}

	s.pruneUser(userID, at.Add(-s.window))
	return nil
}

// Prune drops entries older than the window relative to now and forgets
// users with nothing left. It returns how many entries were removed.
func (s *MemoryStore) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	cutoff := now.Add(-s.window)
	for userID := range s.users {
		removed += s.pruneUser(userID, cutoff)
	}
	return removed
}

// pruneUser must be called with mu held
func (s *MemoryStore) pruneUser(userID string, cutoff time.Time) int {
	set := s.users[userID]
	removed := 0
	for key, at := range set {
		if at.Before(cutoff) {
			delete(set, key)
			removed++
		}
	}

	for len(set) > maxKeysPerUser {
		var oldestKey string
		var oldest time.Time
		for key, at := range set {
			if oldestKey == "" || at.Before(oldest) {
				oldestKey, oldest = key, at
			}
		}
		delete(set, oldestKey)
		removed++
	}

	if len(set) == 0 {
		delete(s.users, userID)
	}
	return removed
}

// Len returns the number of entries held for userID
func (s *MemoryStore) Len(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users[userID])
}
