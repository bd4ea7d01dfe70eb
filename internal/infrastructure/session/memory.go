package session

import (
	"context"
	"sync"
	"time"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
)

type memoryEntry struct {
	profileID domain.ProfileID
	expiresAt time.Time
}

// MemoryStore implements ports.SessionStore in process memory, for
// deployments without Redis. Expired entries are dropped lazily on Get.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, profileID domain.ProfileID) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memoryEntry{profileID: profileID, expiresAt: s.now().Add(s.ttl)}
	return id, nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (domain.ProfileID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return domain.ProfileID{}, false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, sessionID)
		return domain.ProfileID{}, false, nil
	}
	return entry.profileID, true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

var _ ports.SessionStore = (*MemoryStore)(nil)
