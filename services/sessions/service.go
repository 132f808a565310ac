package sessions

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"devroutine/models"
	"devroutine/services/dashboard"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTooManySessions = errors.New("too many mounted dashboards")
)

const (
	// DefaultIdleTimeout is how long an untouched dashboard stays mounted.
	DefaultIdleTimeout = 2 * time.Hour

	// DefaultCleanupInterval is how often expired dashboards are dropped.
	DefaultCleanupInterval = 5 * time.Minute
)

// Factory mounts a fresh dashboard.
type Factory func() *dashboard.Dashboard

type entry struct {
	session   models.Session
	dashboard *dashboard.Dashboard
}

// Service keeps the mounted dashboards in memory, keyed by session token.
// Nothing is persisted: a revoked or expired session takes its events with it.
type Service struct {
	mu          sync.RWMutex
	entries     map[string]*entry
	factory     Factory
	idleTimeout time.Duration
	maxSessions int
	now         func() time.Time
}

// NewService creates a registry. maxSessions <= 0 means unlimited.
func NewService(factory Factory, idleTimeout time.Duration, maxSessions int) *Service {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Service{
		entries:     make(map[string]*entry),
		factory:     factory,
		idleTimeout: idleTimeout,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// Create mounts a new dashboard and returns its session.
func (s *Service) Create(userAgent, ipAddress string) (models.Session, *dashboard.Dashboard, error) {
	now := s.now().UTC()
	session := models.Session{
		Token:      uuid.NewString(),
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(s.idleTimeout),
		UserAgent:  userAgent,
		IPAddress:  ipAddress,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.entries) >= s.maxSessions {
		return models.Session{}, nil, ErrTooManySessions
	}

	d := s.factory()
	s.entries[session.Token] = &entry{session: session, dashboard: d}
	log.Printf("[sessions] mounted dashboard %s (%d active)", session.Token, len(s.entries))
	return session, d, nil
}

// Get returns the dashboard for token and pushes its idle expiry forward.
func (s *Service) Get(token string) (models.Session, *dashboard.Dashboard, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Session{}, nil, ErrInvalidToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[token]
	if !ok {
		return models.Session{}, nil, ErrSessionNotFound
	}

	now := s.now().UTC()
	if e.session.ExpiredAt(now) {
		delete(s.entries, token)
		return models.Session{}, nil, ErrSessionExpired
	}

	e.session.LastSeenAt = now
	e.session.ExpiresAt = now.Add(s.idleTimeout)
	return e.session, e.dashboard, nil
}

// Revoke unmounts the dashboard for token.
func (s *Service) Revoke(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[token]; !ok {
		return ErrSessionNotFound
	}
	delete(s.entries, token)
	log.Printf("[sessions] unmounted dashboard %s (%d active)", token, len(s.entries))
	return nil
}

// Cleanup drops every expired dashboard and returns how many were dropped.
func (s *Service) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	now := s.now()
	for token, e := range s.entries {
		if e.session.ExpiredAt(now) {
			delete(s.entries, token)
			count++
		}
	}
	return count
}

// Run drops expired dashboards every interval until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.Cleanup(); n > 0 {
				log.Printf("[sessions] dropped %d idle dashboards", n)
			}
		case <-ctx.Done():
			log.Println("[sessions] janitor stopped")
			return
		}
	}
}

// Count returns the number of mounted dashboards.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
