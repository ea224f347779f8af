package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"reelfeed/models"
	"reelfeed/services/session"
)

type sessionService interface {
	Login(email, password string, remember bool) (models.Session, error)
	Logout()
	SignedIn() bool
	Current() (models.Session, bool)
}

var _ sessionService = (*session.Service)(nil)

// AuthHandler exposes the demo login flow. Credential failures come back as
// form messages, never as a crashed view.
type AuthHandler struct {
	Service sessionService
}

func NewAuthHandler(service sessionService) *AuthHandler {
	return &AuthHandler{Service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Remember bool   `json:"remember"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := h.Service.Login(body.Email, body.Password, body.Remember)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, session.ErrCredentialsRequired):
			status = http.StatusBadRequest
		case errors.Is(err, session.ErrInvalidCredentials):
			status = http.StatusUnauthorized
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sess)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Service.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// SessionInfo tells the frontend whether to render the catalog or the login
// screen.
func (h *AuthHandler) SessionInfo(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		SignedIn bool            `json:"signedIn"`
		Session  *models.Session `json:"session,omitempty"`
	}{SignedIn: h.Service.SignedIn()}

	if sess, ok := h.Service.Current(); ok {
		resp.Session = &sess
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
