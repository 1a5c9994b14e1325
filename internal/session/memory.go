package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Suitable for a single replica.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	values    Values
	expiresAt time.Time
}

// NewMemoryStore returns a store whose entries expire after ttl; zero keeps them forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, id string) (Values, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok || s.expired(entry) {
		return Values{}, nil
	}
	out := make(Values, len(entry.values))
	for k, v := range entry.values {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, values Values) error {
	if !values.complete() {
		return ErrIncomplete
	}
	entry := memoryEntry{values: Values{KeyToken: values[KeyToken], KeyUser: values[KeyUser]}}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.entries[id] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

var _ Store = (*MemoryStore)(nil)
