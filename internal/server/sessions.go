package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/rostergrid/pkg/rostergrid"
)

// session is one user's editing state. mu serializes requests on it.
type session struct {
	mu       sync.Mutex
	store    *rostergrid.Store
	lastSeen time.Time
}

// Sessions is a registry of editing sessions keyed by random ids.
// Idle sessions are evicted lazily on Create and Get.
type Sessions struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]*session
}

// NewSessions creates a registry that drops sessions idle longer than ttl.
func NewSessions(ttl time.Duration, now func() time.Time) *Sessions {
	if now == nil {
		now = time.Now
	}
	return &Sessions{
		ttl:   ttl,
		now:   now,
		items: make(map[string]*session),
	}
}

// Create registers store under a new id.
func (s *Sessions) Create(store *rostergrid.Store) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	id := uuid.NewString()
	s.items[id] = &session{store: store, lastSeen: now}
	return id
}

// Get returns the session for id and marks it as used.
func (s *Sessions) Get(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	sess, ok := s.items[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

// Delete ends the session for id. It reports whether the session existed.
func (s *Sessions) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// sweep drops expired sessions. s.mu must be held.
func (s *Sessions) sweep(now time.Time) {
	for id, sess := range s.items {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.items, id)
		}
	}
}
