package session

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// LocalAuthenticator checks credentials against a single configured account
// with a bcrypt password hash. It is the drop-in replacement for the demo
// flow when an install wants an actual gate.
type LocalAuthenticator struct {
	email string
	hash  []byte
}

// NewLocalAuthenticator hashes the password at construction so the plaintext
// never lives beyond startup.
func NewLocalAuthenticator(email, password string) (*LocalAuthenticator, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &LocalAuthenticator{email: email, hash: hash}, nil
}

func (a *LocalAuthenticator) Authenticate(email, password string) error {
	if strings.ToLower(strings.TrimSpace(email)) != a.email {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
