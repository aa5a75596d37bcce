package session

import (
	"context"
	"sync"

	"github.com/catalog-dash-poc-v1/client/internal/catalog"
	logx "github.com/catalog-dash-poc-v1/client/pkg/logger"
)

// Store holds the current authenticated session, if any. It trusts the
// caller to have verified credentials already; Login is a plain replacement
// of the stored session.
type Store struct {
	mu            sync.RWMutex
	current       catalog.Session
	authenticated bool
	repo          Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Load restores a persisted session on cold start, if one exists.
func (s *Store) Load(ctx context.Context) error {
	sess, ok, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sess
	s.authenticated = true
	return nil
}

// Login replaces the stored session and marks the store authenticated.
func (s *Store) Login(ctx context.Context, sess catalog.Session) {
	s.mu.Lock()
	s.current = sess
	s.authenticated = true
	s.mu.Unlock()

	if err := s.repo.Save(ctx, sess); err != nil {
		logx.Error().Err(err).Str("username", sess.User.Username).Msg("failed to persist session")
	}
}

// Logout clears both the in-memory and the persisted session.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = catalog.Session{}
	s.authenticated = false
	s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		logx.Error().Err(err).Msg("failed to clear persisted session")
	}
}

// Current returns the stored session and whether one is present.
func (s *Store) Current() (catalog.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.authenticated
}

// IsAuthenticated gates access to the dashboard.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Token returns the current bearer token, or "" when unauthenticated. This
// makes *Store a catalog.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

var _ catalog.TokenSource = (*Store)(nil)
