package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID    uint
	expiresAt time.Time
}

// MemoryBackend keeps sessions in process memory. Expired entries are
// dropped lazily on lookup and by Sweep.
type MemoryBackend struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{sessions: make(map[string]memoryEntry), now: time.Now}
}

func (b *MemoryBackend) Save(_ context.Context, id string, userID uint, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[id] = memoryEntry{userID: userID, expiresAt: b.now().Add(ttl)}
	return nil
}

func (b *MemoryBackend) Lookup(_ context.Context, id string) (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.sessions[id]
	if !ok {
		return 0, ErrRevoked
	}
	if !b.now().Before(e.expiresAt) {
		delete(b.sessions, id)
		return 0, ErrRevoked
	}
	return e.userID, nil
}

func (b *MemoryBackend) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, id)
	return nil
}

// Sweep drops expired sessions and reports how many were removed.
func (b *MemoryBackend) Sweep() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := 0
	now := b.now()
	for id, e := range b.sessions {
		if !now.Before(e.expiresAt) {
			delete(b.sessions, id)
			removed++
		}
	}
	return removed
}
