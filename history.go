package permkit

import (
	"sync"

	"go.uber.org/zap"
)

// HistoryStore records which permission keys this app instance has ever
// actively requested. The flag is the only signal that distinguishes "never
// asked" from "don't ask again", so it must survive process restarts for the
// distinction to hold across launches.
//
// Implementations must be read-your-writes consistent within one process.
// They do not need to be durable for the coordinator to function, only for
// the permanently-denied inference to survive restarts.
type HistoryStore interface {
	WasRequested(key Key) (bool, error)
	MarkRequested(key Key) error
	Clear(key Key) error
	ClearAll() error
}

// MemoryStore is an in-process HistoryStore. It satisfies the consistency
// contract but loses history on restart, so a permanent denial recorded in a
// previous run degrades to a plain denial. Use SQLiteStore for durability.
type MemoryStore struct {
	mu        sync.RWMutex
	requested map[Key]bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{requested: make(map[Key]bool)}
}

// WasRequested implements HistoryStore.
func (s *MemoryStore) WasRequested(key Key) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requested[key], nil
}

// MarkRequested implements HistoryStore.
func (s *MemoryStore) MarkRequested(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requested[key] = true
	return nil
}

// Clear implements HistoryStore.
func (s *MemoryStore) Clear(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.requested, key)
	return nil
}

// ClearAll implements HistoryStore.
func (s *MemoryStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requested = make(map[Key]bool)
	return nil
}

// Keys returns the recorded keys in no particular order.
func (s *MemoryStore) Keys() ([]Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]Key, 0, len(s.requested))
	for k := range s.requested {
		keys = append(keys, k)
	}
	return keys, nil
}

// failOpenStore wraps a HistoryStore so storage failures never reach the
// caller. A failed read answers "not requested": misreporting a permanent
// denial as a plain denial re-shows at worst a no-op dialog, while the
// opposite mistake would hide a first-time ask behind a false
// permanently-denied verdict.
type failOpenStore struct {
	store HistoryStore
	log   *zap.Logger
}

func (s failOpenStore) wasRequested(key Key) bool {
	requested, err := s.store.WasRequested(key)
	if err != nil {
		s.log.Warn("history read failed, treating key as never requested",
			zap.String("key", string(key)), zap.Error(err))
		return false
	}
	return requested
}

func (s failOpenStore) markRequested(key Key) {
	if err := s.store.MarkRequested(key); err != nil {
		s.log.Warn("history write failed",
			zap.String("key", string(key)), zap.Error(err))
	}
}

func (s failOpenStore) clear(key Key) {
	if err := s.store.Clear(key); err != nil {
		s.log.Warn("history clear failed",
			zap.String("key", string(key)), zap.Error(err))
	}
}

func (s failOpenStore) clearAll() {
	if err := s.store.ClearAll(); err != nil {
		s.log.Warn("history clear-all failed", zap.Error(err))
	}
}
