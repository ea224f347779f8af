package api

import (
	"net/http"

	"reelfeed/handlers"
	"reelfeed/services/session"

	"github.com/gorilla/mux"
)

// corsMiddleware handles CORS for API routes
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleOptions handles OPTIONS requests for CORS preflight
func handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// requireSession rejects catalog requests until a login has happened, the
// same way the frontend keeps signed-out visitors on the login screen.
func requireSession(sessions *session.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.SignedIn() {
				http.Error(w, "sign in required", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Register mounts API endpoints onto the provided router.
func Register(
	r *mux.Router,
	authHandler *handlers.AuthHandler,
	browseHandler *handlers.BrowseHandler,
	watchlistHandler *handlers.WatchlistHandler,
	sessionSvc *session.Service,
) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(corsMiddleware)

	// Auth routes (no session required)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/auth/session", authHandler.SessionInfo).Methods(http.MethodGet)
	api.HandleFunc("/auth/session", handleOptions).Methods(http.MethodOptions)

	// Catalog routes require a signed-in session
	protected := api.PathPrefix("").Subrouter()
	protected.Use(requireSession(sessionSvc))

	protected.HandleFunc("/browse", browseHandler.State).Methods(http.MethodGet)
	protected.HandleFunc("/browse", handleOptions).Methods(http.MethodOptions)
	protected.HandleFunc("/browse/{page}", browseHandler.Navigate).Methods(http.MethodGet)
	protected.HandleFunc("/browse/{page}", handleOptions).Methods(http.MethodOptions)

	protected.HandleFunc("/search", browseHandler.Search).Methods(http.MethodGet)
	protected.HandleFunc("/search", handleOptions).Methods(http.MethodOptions)

	protected.HandleFunc("/watchlist", watchlistHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/watchlist", handleOptions).Methods(http.MethodOptions)
	protected.HandleFunc("/watchlist/toggle", watchlistHandler.Toggle).Methods(http.MethodPost)
	protected.HandleFunc("/watchlist/toggle", handleOptions).Methods(http.MethodOptions)
}
