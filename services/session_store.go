package services

import (
	"log"
	"storefront-gateway/models"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is everything one storefront visitor owns: their cart, their
// catalog view, and their product form. All mutable fields are guarded by
// mu, and the services only hold the lock between network calls, never
// across them.
type Session struct {
	ID string

	mu       sync.Mutex
	lastSeen time.Time

	cart             []models.CartLineItem
	checkoutInFlight bool

	catalog catalogState
	form    formState
}

type catalogState struct {
	query    string
	category string
	products []models.Product
	loading  bool
	err      string
	seq      uint64
}

type formState struct {
	status models.FormStatus
	err    string
	draft  models.ProductDraft
}

// SessionStore keeps all live sessions in memory. Nothing here survives a
// restart; a cart is as ephemeral as the visit that created it.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create mints a session under a fresh id and registers it.
func (s *SessionStore) Create() *Session {
	sess := &Session{
		ID:       uuid.NewString(),
		lastSeen: time.Now(),
	}
	sess.form.status = models.FormClosed

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get looks up a live session and marks it as just used.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	sess.mu.Lock()
	sess.lastSeen = time.Now()
	sess.mu.Unlock()
	return sess, true
}

func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// StartSweeper drops idle sessions in the background, once per interval.
func (s *SessionStore) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			s.sweep()
		}
	}()
}

func (s *SessionStore) sweep() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("Swept %d expired sessions", removed)
	}
}
