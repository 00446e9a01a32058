package state

import (
	"context"
	"sync"
	"time"

	"github.com/vladimiradmaev/lunchlego/internal/domain"
	"github.com/vladimiradmaev/lunchlego/internal/utils"
)

// SessionTTL is how long an idle planner session is kept
const SessionTTL = 24 * time.Hour

// StateManager keeps per-client planner sessions and one-shot markers
type StateManager interface {
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	SaveSession(ctx context.Context, sessionID string, session domain.Session) error
	ClearSession(ctx context.Context, sessionID string) error
	// MarkOnce reports true the first time key is marked within ttl
	MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// DefaultSession is what a client sees before choosing anything
func DefaultSession(now time.Time) domain.Session {
	return domain.Session{
		CurrentDate: utils.FormatDate(now),
		PantryView:  domain.PantryViewGrid,
	}
}

type sessionEntry struct {
	session domain.Session
	expires time.Time
}

// Manager is the in-process StateManager
type Manager struct {
	sessions map[string]sessionEntry
	marks    map[string]time.Time
	now      func() time.Time
	mu       sync.RWMutex
}

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]sessionEntry),
		marks:    make(map[string]time.Time),
		now:      time.Now,
	}
}

// GetSession returns the stored session or a default one
func (m *Manager) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	entry, exists := m.sessions[sessionID]
	if !exists || now.After(entry.expires) {
		s := DefaultSession(now)
		return &s, nil
	}
	s := entry.session
	return &s, nil
}

// SaveSession stores the session and restarts its TTL
func (m *Manager) SaveSession(ctx context.Context, sessionID string, session domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = sessionEntry{session: session, expires: m.now().Add(SessionTTL)}
	return nil
}

// ClearSession forgets the session
func (m *Manager) ClearSession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *Manager) MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if expires, exists := m.marks[key]; exists && now.Before(expires) {
		return false, nil
	}
	m.marks[key] = now.Add(ttl)
	return true, nil
}
