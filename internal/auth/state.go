package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/johnwards/foodorder/internal/store"
)

// SessionSource yields the current session. A nil session with a nil error
// means nobody is signed in.
type SessionSource interface {
	Session(ctx context.Context) (*Session, error)
}

// ProfileLoader loads a profile by id.
type ProfileLoader interface {
	Get(ctx context.Context, id string) (*store.Profile, error)
}

// TokenSource is a SessionSource backed by a single bearer token.
type TokenSource struct {
	Sessions *Sessions
	Token    string
}

// Session verifies the token. An empty token means no session.
func (ts TokenSource) Session(_ context.Context) (*Session, error) {
	if ts.Token == "" {
		return nil, nil
	}
	return ts.Sessions.Verify(ts.Token)
}

// Snapshot is a point-in-time copy of State.
type Snapshot struct {
	IsAuthenticated bool           `json:"is_authenticated"`
	User            *store.Profile `json:"user"`
	IsLoading       bool           `json:"is_loading"`
}

// State tracks who is signed in. It starts unauthenticated and loading until
// the first FetchAuthenticatedUser completes. State is safe for concurrent use.
type State struct {
	sessions SessionSource
	profiles ProfileLoader
	logger   *slog.Logger

	mu              sync.RWMutex
	isAuthenticated bool
	user            *store.Profile
	isLoading       bool
	err             error
}

// NewState creates a State. A nil logger uses slog.Default.
func NewState(sessions SessionSource, profiles ProfileLoader, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{
		sessions:  sessions,
		profiles:  profiles,
		logger:    logger,
		isLoading: true,
	}
}

// SetIsAuthenticated sets the authenticated flag.
func (s *State) SetIsAuthenticated(v bool) {
	s.mu.Lock()
	s.isAuthenticated = v
	s.mu.Unlock()
}

// SetUser sets the current user.
func (s *State) SetUser(u *store.Profile) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// SetLoading sets the loading flag.
func (s *State) SetLoading(v bool) {
	s.mu.Lock()
	s.isLoading = v
	s.mu.Unlock()
}

func (s *State) signOut(err error) {
	s.mu.Lock()
	s.isAuthenticated = false
	s.user = nil
	s.err = err
	s.mu.Unlock()
}

// FetchAuthenticatedUser refreshes the state from the session source and
// the profile store. Any failure leaves the state unauthenticated; loading
// is cleared when it returns.
func (s *State) FetchAuthenticatedUser(ctx context.Context) {
	s.SetLoading(true)
	defer s.SetLoading(false)

	sess, err := s.sessions.Session(ctx)
	if err != nil {
		s.logger.Warn("fetch authenticated user", "error", err)
		s.signOut(err)
		return
	}
	if sess == nil {
		s.signOut(nil)
		return
	}

	p, err := s.profiles.Get(ctx, sess.UserID)
	if err != nil {
		s.logger.Warn("fetch authenticated user", "user_id", sess.UserID, "error", err)
		s.signOut(err)
		return
	}

	s.mu.Lock()
	s.err = nil
	s.isAuthenticated = true
	s.user = &store.Profile{ID: p.ID, Name: p.Name, Avatar: p.Avatar, CreatedAt: p.CreatedAt}
	s.mu.Unlock()
}

// Err returns the failure of the last FetchAuthenticatedUser, or nil.
func (s *State) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{IsAuthenticated: s.isAuthenticated, IsLoading: s.isLoading}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}
