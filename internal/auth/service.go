package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/johnwards/foodorder/internal/store"
)

var (
	// ErrInvalidCredentials is returned by SignIn for an unknown email or a
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned by SignUp when the email is registered.
	ErrEmailTaken = errors.New("email already registered")
)

const minPasswordLen = 6

// ValidationError reports unacceptable sign-up input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

// Token is the result of a successful sign-in.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

// SignUpInput holds the fields of a new account.
type SignUpInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

// Service registers and authenticates users.
type Service struct {
	profiles store.ProfileStore
	sessions *Sessions
}

// NewService creates a Service.
func NewService(profiles store.ProfileStore, sessions *Sessions) *Service {
	return &Service{profiles: profiles, sessions: sessions}
}

// SignUp creates a profile with a bcrypt-hashed password.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*store.Profile, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)

	switch {
	case name == "":
		return nil, &ValidationError{Field: "name", Message: "is required"}
	case !validEmail(email):
		return nil, &ValidationError{Field: "email", Message: "is not a valid address"}
	case len(in.Password) < minPasswordLen:
		return nil, &ValidationError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p, err := s.profiles.Create(ctx, name, email, strings.TrimSpace(in.Avatar), string(hashed))
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// SignIn checks the password for email and issues a session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Token, error) {
	p, hash, err := s.profiles.Credentials(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	signed, exp, err := s.sessions.Issue(p.ID)
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: signed, TokenType: "bearer", ExpiresAt: exp.Unix()}, nil
}

// User returns the profile of the session carried by token. A missing,
// invalid or orphaned session yields ErrInvalidSession; a failing profile
// store is returned as is.
func (s *Service) User(ctx context.Context, token string) (*store.Profile, error) {
	state := NewState(TokenSource{Sessions: s.sessions, Token: token}, s.profiles, nil)
	state.FetchAuthenticatedUser(ctx)

	snap := state.Snapshot()
	if snap.IsAuthenticated {
		return snap.User, nil
	}
	if err := state.Err(); err != nil && !errors.Is(err, ErrInvalidSession) && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return nil, ErrInvalidSession
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

