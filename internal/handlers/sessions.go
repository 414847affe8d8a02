package handlers

import (
	"sync"

	"absensi-bot/internal/models"
)

// Sessions maps a user id to its conversation state. The dispatcher
// serializes events per user, so the lock only guards the map itself.
type Sessions struct {
	mu sync.RWMutex
	m  map[int64]models.Session
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[int64]models.Session)}
}

// Get returns the user's session, an idle one if none exists yet.
func (s *Sessions) Get(userID int64) models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess, ok := s.m[userID]; ok {
		return sess
	}
	return models.Session{UserID: userID, State: models.StateIdle}
}

func (s *Sessions) Put(sess models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[sess.UserID] = sess
}

// Reset puts the user back to idle and drops any pending fields.
func (s *Sessions) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, userID)
}
