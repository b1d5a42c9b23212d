package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/niksmo/pharmacy/internal/core/port"
)

// A Session owns one instance of every container.
//
// Containers never reach into each other; cross-container effects are
// sequential calls made by [Service].
type Session struct {
	ID       string
	Cart     *Cart
	Wishlist *Wishlist
	Auth     *Auth
	Search   *Search

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
	Directory     port.AccountDirectory
	Emitter       port.SearchQueryEmitter

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// A SessionManager keeps sessions in memory and drops the ones idle longer
// than IdleTimeout.
type SessionManager struct {
	cfg      SessionConfig
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager(cfg SessionConfig) *SessionManager {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	return &SessionManager{
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

func (m *SessionManager) Create(ctx context.Context) (*Session, error) {
	const op = "SessionManager.Create"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id := m.cfg.NewID()
	s := &Session{
		ID:       id,
		Cart:     NewCart(),
		Wishlist: NewWishlist(),
		Auth:     NewAuth(m.cfg.Directory),
		Search:   NewSearch(id, m.cfg.Emitter),
		lastSeen: m.cfg.Now(),
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	slog.Debug("session created", "op", op, "sessionID", id)
	return s, nil
}

// Get returns the session and marks it as seen.
func (m *SessionManager) Get(ctx context.Context, id string) (*Session, error) {
	const op = "SessionManager.Get"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrSessionNotFound)
	}

	now := m.cfg.Now()
	if m.expired(s, now) {
		m.remove(id)
		return nil, fmt.Errorf("%s: %w", op, domain.ErrSessionNotFound)
	}
	s.touch(now)
	return s, nil
}

func (m *SessionManager) End(ctx context.Context, id string) error {
	const op = "SessionManager.End"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !m.remove(id) {
		return fmt.Errorf("%s: %w", op, domain.ErrSessionNotFound)
	}
	return nil
}

func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Run sweeps idle sessions until ctx is done.
func (m *SessionManager) Run(ctx context.Context) {
	const op = "SessionManager.Run"
	log := slog.With("op", op)

	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	log.Info("running")
	for {
		select {
		case <-ctx.Done():
			log.Info("stopped")
			return
		case <-ticker.C:
			if n := m.Sweep(); n != 0 {
				log.Info("idle sessions removed", "nSessions", n)
			}
		}
	}
}

// Sweep removes idle sessions and reports how many were removed.
func (m *SessionManager) Sweep() int {
	now := m.cfg.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	var n int
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *SessionManager) expired(s *Session, now time.Time) bool {
	return m.cfg.IdleTimeout > 0 && s.idleSince(now) > m.cfg.IdleTimeout
}

func (m *SessionManager) remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	return ok
}
