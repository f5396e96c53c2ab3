package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
)

// Metrics tracks how many sessions are alive.
type Metrics interface {
	SetActive(n int)
}

type NoopMetrics struct{}

func (NoopMetrics) SetActive(int) {}

// Store keeps navigation sessions in memory for a fixed lifetime counted from creation.
type Store struct {
	ttl     time.Duration
	clock   ports.Clock
	metrics Metrics

	lastID atomic.Uint64

	mu       sync.RWMutex
	sessions map[domain.SessionID]domain.Session
}

func NewStore(ttl time.Duration, clock ports.Clock, metrics Metrics) *Store {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}

	return &Store{
		ttl:      ttl,
		clock:    clock,
		metrics:  metrics,
		sessions: map[domain.SessionID]domain.Session{},
	}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create stores a new session on page 1 of items under a fresh id.
func (s *Store) Create(owner domain.UserID, kind domain.SessionKind, title string, items []domain.Item, display domain.Display) domain.Session {
	id := domain.SessionID(s.lastID.Add(1))
	created := domain.NewSession(id, owner, kind, title, items, s.clock.Now(), s.ttl)
	created.Display = display

	s.mu.Lock()
	s.sessions[id] = created
	active := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActive(active)
	return created
}

// Get returns the session. Unknown and expired sessions are ErrSessionExpired; expired ones are evicted.
func (s *Store) Get(id domain.SessionID) (domain.Session, error) {
	now := s.clock.Now()

	s.mu.RLock()
	found, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return domain.Session{}, fmt.Errorf("%w: session %d", domain.ErrSessionExpired, id)
	}
	if found.Expired(now) {
		s.Delete(id)
		return domain.Session{}, fmt.Errorf("%w: session %d", domain.ErrSessionExpired, id)
	}

	return found.Clone(), nil
}

// Save replaces a stored session. It never resurrects a session that was evicted in the meantime.
func (s *Store) Save(updated domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[updated.ID]; !ok {
		return fmt.Errorf("%w: session %d", domain.ErrSessionExpired, updated.ID)
	}

	s.sessions[updated.ID] = updated.Clone()
	return nil
}

func (s *Store) Delete(id domain.SessionID) {
	s.mu.Lock()
	delete(s.sessions, id)
	active := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActive(active)
}

// Sweep evicts expired and closed sessions.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	removed := 0
	for id, stored := range s.sessions {
		if stored.Closed || stored.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	active := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActive(active)
	return removed
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(s.clock.Now())
		}
	}
}
