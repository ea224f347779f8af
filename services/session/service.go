// Package session tracks the signed-in state gating the browsing UI. There
// is no real identity system behind it; authentication is a port so a real
// credential check can be substituted without touching the rest of the app.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"reelfeed/internal/storage"
	"reelfeed/models"
)

const (
	// rememberKey lives in the durable store and survives restarts.
	rememberKey = "remember"
	// signedInKey lives in the session-scoped store and does not.
	signedInKey = "signedIn"

	flagTrue = "true"
)

var (
	ErrStoresRequired      = errors.New("session stores not provided")
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// Authenticator validates a credential pair. Implementations return
// ErrInvalidCredentials (or a wrap of it) on rejection.
type Authenticator interface {
	Authenticate(email, password string) error
}

// DemoAuthenticator accepts any non-empty credential pair. This mirrors the
// demo login flow: the form is real, the check is not.
type DemoAuthenticator struct{}

func (DemoAuthenticator) Authenticate(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrCredentialsRequired
	}
	return nil
}

// Service owns the signed-in flag and its two storage locations.
type Service struct {
	mu      sync.RWMutex
	durable storage.Store
	scoped  storage.Store
	auth    Authenticator

	current  *models.Session
	signedIn bool
	initial  bool
}

// NewService evaluates the startup signed-in state once: a durable remember
// flag or a surviving session-scoped flag restores the session.
func NewService(durable, scoped storage.Store, auth Authenticator) (*Service, error) {
	if durable == nil || scoped == nil {
		return nil, ErrStoresRequired
	}
	if auth == nil {
		auth = DemoAuthenticator{}
	}

	svc := &Service{durable: durable, scoped: scoped, auth: auth}
	svc.initial = flagSet(durable, rememberKey) || flagSet(scoped, signedInKey)
	if svc.initial {
		svc.signedIn = true
		svc.current = &models.Session{
			Token:     uuid.NewString(),
			Remember:  flagSet(durable, rememberKey),
			CreatedAt: time.Now().UTC(),
		}
	}
	return svc, nil
}

// Login validates the credentials through the authenticator and marks the
// session signed in. With remember set, the flag is written durably so the
// session survives a restart; the session-scoped flag is always written.
func (s *Service) Login(email, password string, remember bool) (models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Session{}, ErrCredentialsRequired
	}

	if err := s.auth.Authenticate(email, password); err != nil {
		if errors.Is(err, ErrCredentialsRequired) || errors.Is(err, ErrInvalidCredentials) {
			return models.Session{}, err
		}
		return models.Session{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scoped.Set(signedInKey, []byte(flagTrue)); err != nil {
		return models.Session{}, fmt.Errorf("persist session flag: %w", err)
	}
	if remember {
		if err := s.durable.Set(rememberKey, []byte(flagTrue)); err != nil {
			return models.Session{}, fmt.Errorf("persist remember flag: %w", err)
		}
	}

	session := models.Session{
		Token:     uuid.NewString(),
		Email:     email,
		Remember:  remember,
		CreatedAt: time.Now().UTC(),
	}
	s.current = &session
	s.signedIn = true
	return session, nil
}

// Logout clears both flags and the in-memory state.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.scoped.Delete(signedInKey)
	_ = s.durable.Delete(rememberKey)
	s.current = nil
	s.signedIn = false
}

// SignedIn reports the live signed-in state.
func (s *Service) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signedIn
}

// InitiallySignedIn reports the state evaluated once at startup.
func (s *Service) InitiallySignedIn() bool {
	return s.initial
}

// Current returns the active session, if any.
func (s *Service) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return models.Session{}, false
	}
	return *s.current, true
}

func flagSet(store storage.Store, key string) bool {
	value, ok := store.Get(key)
	return ok && string(value) == flagTrue
}
