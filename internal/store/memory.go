package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"geoseal/internal/domain"
)

var (
	// ErrDuplicateID is returned when a message ID is already taken. There is
	// at most one winning writer per identifier.
	ErrDuplicateID = errors.New("message id already exists")

	// ErrMissingID is returned when a message is stored without an ID.
	ErrMissingID = errors.New("message id required")
)

// MemoryStore keeps sealed messages in memory, expiring each one at its
// binding's window end. Expiry is advisory: reads check it lazily, and an
// optional sweeper reclaims memory in the background. A Get racing a Delete
// returns either the message or not-found, never partial data.
type MemoryStore struct {
	mu       sync.RWMutex
	messages map[domain.MessageID]domain.SealedMessage
	now      func() int64
}

// NewMemoryStore returns an empty store reading expiry from wall time.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(func() int64 { return time.Now().UnixMilli() })
}

// NewMemoryStoreWithClock returns an empty store reading epoch milliseconds
// from now. The clock is injectable for the same reason the verification
// pipeline's is: expiry stays a pure function of its inputs under test.
func NewMemoryStoreWithClock(now func() int64) *MemoryStore {
	return &MemoryStore{
		messages: make(map[domain.MessageID]domain.SealedMessage),
		now:      now,
	}
}

// Put stores a message. It fails with ErrDuplicateID if the ID is taken.
func (s *MemoryStore) Put(message domain.SealedMessage) error {
	if message.ID == "" {
		return ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.messages[message.ID]; exists {
		return ErrDuplicateID
	}
	s.messages[message.ID] = message
	return nil
}

// Get retrieves a message by ID. Expired messages read as not-found and are
// removed opportunistically.
func (s *MemoryStore) Get(id domain.MessageID) (domain.SealedMessage, bool, error) {
	s.mu.RLock()
	message, ok := s.messages[id]
	s.mu.RUnlock()

	if !ok {
		return domain.SealedMessage{}, false, nil
	}
	if s.expired(message) {
		_ = s.Delete(id)
		return domain.SealedMessage{}, false, nil
	}
	return message, true, nil
}

// Delete removes a message. Deleting an absent ID is not an error.
func (s *MemoryStore) Delete(id domain.MessageID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, id)
	return nil
}

// List returns all unexpired messages.
func (s *MemoryStore) List() ([]domain.SealedMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SealedMessage, 0, len(s.messages))
	for _, message := range s.messages {
		if s.expired(message) {
			continue
		}
		out = append(out, message)
	}
	return out, nil
}

// Sweep removes every expired message and reports how many were dropped.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, message := range s.messages {
		if s.expired(message) {
			delete(s.messages, id)
			dropped++
		}
	}
	return dropped
}

// RunSweeper sweeps at the given interval until ctx is cancelled.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Count returns the number of stored messages, expired or not.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.messages)
}

func (s *MemoryStore) expired(message domain.SealedMessage) bool {
	return message.Binding.WindowEnd > 0 && s.now() > message.Binding.WindowEnd
}

// Compile-time assertion that MemoryStore implements domain.MessageStore.
var _ domain.MessageStore = (*MemoryStore)(nil)
