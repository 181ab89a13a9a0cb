package provenance

import (
	"context"
	"sync"
)

// Store persists audit trails keyed by note identity.
type Store interface {
	// Append chains a record onto the note's trail. The record's
	// PrevDigest must match the current chain head.
	Append(ctx context.Context, record *Record) error

	// List returns the note's trail in append order.
	List(ctx context.Context, noteID, noteVersion string) ([]*Record, error)

	// Head returns the digest of the latest record, or empty if the
	// trail is empty. New records chain onto this value.
	Head(ctx context.Context, noteID, noteVersion string) (string, error)

	// Close releases the store's resources.
	Close() error
}

// MemoryStore keeps trails in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	trails map[string][]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{trails: make(map[string][]*Record)}
}

func trailKey(noteID, noteVersion string) string {
	return noteID + "@" + noteVersion
}

// Append chains a record onto the note's in-memory trail.
func (s *MemoryStore) Append(_ context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := trailKey(record.NoteID, record.NoteVersion)
	s.trails[key] = append(s.trails[key], record)
	return nil
}

// List returns a copy of the note's trail in append order.
func (s *MemoryStore) List(_ context.Context, noteID, noteVersion string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trail := s.trails[trailKey(noteID, noteVersion)]
	out := make([]*Record, len(trail))
	copy(out, trail)
	return out, nil
}

// Head returns the digest of the latest record in the note's trail.
func (s *MemoryStore) Head(_ context.Context, noteID, noteVersion string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trail := s.trails[trailKey(noteID, noteVersion)]
	if len(trail) == 0 {
		return "", nil
	}
	return trail[len(trail)-1].Digest, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
