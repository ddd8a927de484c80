package session

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/sharebox/internal/shared"
)

const sessionIDBytes = 32

// Store is the in-process session table. Expired entries are dropped when
// they are next looked up and swept on every Create.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*Session
}

func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, now: time.Now, sessions: make(map[string]*Session)}
}

// Create registers a new session and returns a copy of it.
func (s *Store) Create(email, name string, role Role) (*Session, error) {
	id, err := shared.MakeRandHexString(sessionIDBytes)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess := &Session{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sweepLocked(now)
	s.sessions[id] = sess
	s.mu.Unlock()

	return sess.clone(), nil
}

// Get returns a copy of the live session with the given id.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if !s.now().Before(sess.ExpiresAt) {
		delete(s.sessions, id)
		return nil, false
	}
	return sess.clone(), true
}

// Update runs fn on the stored session under the write lock.
func (s *Store) Update(id string, fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || !s.now().Before(sess.ExpiresAt) {
		return false
	}
	fn(sess)
	return true
}

// sweepLocked drops every session expired at now. Callers hold mu.
func (s *Store) sweepLocked(now time.Time) {
	for id, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
