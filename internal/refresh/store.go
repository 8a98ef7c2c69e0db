// Package refresh keeps the progress snapshot current and runs the ordered
// re-fetch chain that follows a mutating action.
package refresh

import (
	"sync"

	"github.com/abhisek/tutordesk/internal/api"
)

// Store holds the single most recent progress snapshot. Snapshots are
// replaced wholesale and never mutated after Put.
type Store struct {
	mu   sync.RWMutex
	seq  uint64
	snap *api.Progress
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Put installs p as the snapshot taken by cascade seq. A snapshot from an
// older cascade than the one already stored is rejected.
func (s *Store) Put(seq uint64, p *api.Progress) bool {
	if p == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.seq {
		return false
	}
	s.seq = seq
	s.snap = p
	return true
}

// Latest returns the current snapshot, or nil before the first Put.
// Callers must treat it as read-only.
func (s *Store) Latest() *api.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Seq returns the cascade sequence of the current snapshot.
func (s *Store) Seq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}
