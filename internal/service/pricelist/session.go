package pricelist

import (
	"sync"
	"time"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
	"github.com/mamadbah2/livestock-pricing/internal/service/reconcile"
)

// Session is an import waiting to be applied to a form.
type Session struct {
	ID         string
	Source     string
	Result     *models.ParseResult
	Resolution reconcile.Resolution
	CreatedAt  time.Time
}

// SessionStore keeps pending imports in memory until applied or expired.
type SessionStore struct {
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
}

// NewSessionStore creates a session store whose entries live for ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get retrieves a pending import. Expired sessions are reported missing.
func (ss *SessionStore) Get(id string) (Session, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	session, exists := ss.sessions[id]
	if !exists || ss.expired(session) {
		return Session{}, false
	}
	return session, true
}

// Take removes and returns a pending import, so only one caller can claim it.
func (ss *SessionStore) Take(id string) (Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	session, exists := ss.sessions[id]
	if !exists {
		return Session{}, false
	}
	delete(ss.sessions, id)
	if ss.expired(session) {
		return Session{}, false
	}
	return session, true
}

// Put stores a pending import.
func (ss *SessionStore) Put(session Session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[session.ID] = session
}

// Delete removes a pending import.
func (ss *SessionStore) Delete(id string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, id)
}

// Sweep drops expired sessions and returns how many were removed.
func (ss *SessionStore) Sweep() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	removed := 0
	for id, session := range ss.sessions {
		if ss.expired(session) {
			delete(ss.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired or not.
func (ss *SessionStore) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

func (ss *SessionStore) expired(session Session) bool {
	return ss.ttl > 0 && ss.now().Sub(session.CreatedAt) > ss.ttl
}
