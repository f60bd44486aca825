// ABOUTME: In-memory session store with TTL-based expiration
// ABOUTME: Thread-safe store using sync.Map with automatic cleanup

package cache

import (
	"log/slog"
	"sync"
	"time"

	"github.com/beyondskool/pricing-wizard/backend/models"
)

type entry struct {
	session   *models.PricingSession
	expiresAt time.Time
}

// Store holds in-progress pricing sessions keyed by session ID. Entries
// expire after the configured TTL so abandoned sessions do not accumulate;
// every write refreshes the expiry.
type Store struct {
	sessions sync.Map
	ttl      time.Duration
}

func New(ttl time.Duration) *Store {
	s := &Store{
		ttl: ttl,
	}
	go s.startCleanup()
	return s
}

func (s *Store) Get(id string) (*models.PricingSession, bool) {
	val, ok := s.sessions.Load(id)
	if !ok {
		slog.Debug("Session store miss", "session_id", id)
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		s.sessions.Delete(id)
		slog.Debug("Session expired", "session_id", id)
		return nil, false
	}

	return e.session, true
}

func (s *Store) Put(session *models.PricingSession) {
	e := entry{
		session:   session,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.sessions.Store(session.ID, e)
	slog.Debug("Session stored", "session_id", session.ID, "state", session.State, "ttl", s.ttl)
}

func (s *Store) Delete(id string) {
	s.sessions.Delete(id)
}

// Count returns the number of live sessions, skipping entries that have
// expired but not yet been swept.
func (s *Store) Count() int {
	n := 0
	now := time.Now()
	s.sessions.Range(func(_, val interface{}) bool {
		e := val.(entry)
		if now.Before(e.expiresAt) {
			n++
		}
		return true
	})
	return n
}

func (s *Store) startCleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		s.sessions.Range(func(id, val interface{}) bool {
			e := val.(entry)
			if now.After(e.expiresAt) {
				s.sessions.Delete(id)
			}
			return true
		})
	}
}
