package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"reelfeed/models"
	"reelfeed/services/browse"
)

type browseService interface {
	Navigate(ctx context.Context, page string) (models.BrowseSnapshot, error)
	Search(ctx context.Context, query string) (models.BrowseSnapshot, error)
	Snapshot() models.BrowseSnapshot
}

var _ browseService = (*browse.Service)(nil)

// BrowseHandler serves page navigation, the current view snapshot, and
// search.
type BrowseHandler struct {
	Service browseService
}

func NewBrowseHandler(service browseService) *BrowseHandler {
	return &BrowseHandler{Service: service}
}

// Navigate loads a page and returns its snapshot. Provider failures show up
// as per-category error states inside the snapshot, not as an HTTP error.
func (h *BrowseHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	page := mux.Vars(r)["page"]

	snap, err := h.Service.Navigate(r.Context(), page)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, browse.ErrUnknownPage) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// State returns the current snapshot without triggering any loads.
func (h *BrowseHandler) State(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Service.Snapshot())
}

func (h *BrowseHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	snap, err := h.Service.Search(r.Context(), query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}
