package session_test

import (
	"errors"
	"testing"

	"reelfeed/internal/storage"
	"reelfeed/services/session"
)

func newService(t *testing.T, durable, scoped storage.Store) *session.Service {
	t.Helper()
	svc, err := session.NewService(durable, scoped, nil)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc := newService(t, storage.NewMemoryStore(), storage.NewMemoryStore())

	cases := []struct{ email, password string }{
		{"", ""},
		{"   ", "secret"},
		{"user@example.com", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Login(tc.email, tc.password, false); !errors.Is(err, session.ErrCredentialsRequired) {
			t.Fatalf("Login(%q, %q) error = %v, want ErrCredentialsRequired", tc.email, tc.password, err)
		}
	}

	if svc.SignedIn() {
		t.Fatal("failed login must not sign in")
	}
}

func TestLoginSignsIn(t *testing.T) {
	svc := newService(t, storage.NewMemoryStore(), storage.NewMemoryStore())

	sess, err := svc.Login("user@example.com", "secret", false)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sess.Token == "" {
		t.Fatal("session token must be set")
	}
	if !svc.SignedIn() {
		t.Fatal("SignedIn() = false after login")
	}

	current, ok := svc.Current()
	if !ok || current.Token != sess.Token {
		t.Fatalf("Current() = %+v, %v", current, ok)
	}
}

func TestRememberSurvivesRestart(t *testing.T) {
	durable := storage.NewMemoryStore()

	svc := newService(t, durable, storage.NewMemoryStore())
	if _, err := svc.Login("user@example.com", "secret", true); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// Restart: durable storage preserved, session-scoped storage fresh.
	restarted := newService(t, durable, storage.NewMemoryStore())
	if !restarted.InitiallySignedIn() {
		t.Fatal("InitiallySignedIn() = false after remembered login")
	}
}

func TestUnrememberedLoginDoesNotSurviveRestart(t *testing.T) {
	durable := storage.NewMemoryStore()

	svc := newService(t, durable, storage.NewMemoryStore())
	if _, err := svc.Login("user@example.com", "secret", false); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	restarted := newService(t, durable, storage.NewMemoryStore())
	if restarted.InitiallySignedIn() {
		t.Fatal("InitiallySignedIn() = true without remember")
	}
}

func TestSessionFlagSurvivesWithinProcess(t *testing.T) {
	durable := storage.NewMemoryStore()
	scoped := storage.NewMemoryStore()

	svc := newService(t, durable, scoped)
	if _, err := svc.Login("user@example.com", "secret", false); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// Same scoped store means the same "browser tab": still signed in.
	reread := newService(t, durable, scoped)
	if !reread.InitiallySignedIn() {
		t.Fatal("InitiallySignedIn() = false with live session flag")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	durable := storage.NewMemoryStore()
	scoped := storage.NewMemoryStore()

	svc := newService(t, durable, scoped)
	if _, err := svc.Login("user@example.com", "secret", true); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	svc.Logout()

	if svc.SignedIn() {
		t.Fatal("SignedIn() = true after logout")
	}
	if _, ok := svc.Current(); ok {
		t.Fatal("Current() should be empty after logout")
	}

	restarted := newService(t, durable, scoped)
	if restarted.InitiallySignedIn() {
		t.Fatal("logout must clear the durable remember flag")
	}
}

func TestLocalAuthenticator(t *testing.T) {
	auth, err := session.NewLocalAuthenticator("Admin@Example.com", "hunter2")
	if err != nil {
		t.Fatalf("NewLocalAuthenticator() error = %v", err)
	}

	svc, err := session.NewService(storage.NewMemoryStore(), storage.NewMemoryStore(), auth)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	if _, err := svc.Login("admin@example.com", "wrong", false); !errors.Is(err, session.ErrInvalidCredentials) {
		t.Fatalf("Login() with bad password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("other@example.com", "hunter2", false); !errors.Is(err, session.ErrInvalidCredentials) {
		t.Fatalf("Login() with bad email error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("admin@example.com", "hunter2", false); err != nil {
		t.Fatalf("Login() with valid credentials error = %v", err)
	}
}
