package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory and evicts them after ttl of
// inactivity.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMemoryStore(ctx context.Context, ttl time.Duration) *MemoryStore {
	storeCtx, cancel := context.WithCancel(ctx)

	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		ctx:     storeCtx,
		cancel:  cancel,
	}

	interval := time.Minute
	if ttl > 0 && ttl < interval {
		interval = ttl
	}

	s.wg.Add(1)
	go s.cleanupLoop(interval)

	return s
}

func (s *MemoryStore) Load(_ context.Context, id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return State{}, ErrNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, id)
		return State{}, ErrNotFound
	}

	entry.expiresAt = s.now().Add(s.ttl)
	s.entries[id] = entry
	return entry.state, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = memoryEntry{state: state, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// cleanupLoop periodically removes expired sessions
func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// Close stops the cleanup goroutine and waits for it to finish
func (s *MemoryStore) Close() error {
	s.cancel()
	s.wg.Wait()
	return nil
}
