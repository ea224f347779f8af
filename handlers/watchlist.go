package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"reelfeed/models"
	"reelfeed/services/watchlist"
)

type watchlistService interface {
	List() []models.WatchlistEntry
	Toggle(item models.CatalogItem) (bool, error)
	Contains(mediaType string, id int64) bool
}

var _ watchlistService = (*watchlist.Service)(nil)

// WatchlistHandler exposes the user's saved list.
type WatchlistHandler struct {
	Service watchlistService
}

func NewWatchlistHandler(service watchlistService) *WatchlistHandler {
	return &WatchlistHandler{Service: service}
}

func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.Service.List()
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// Toggle adds the posted item snapshot or removes it when already present,
// and reports the resulting membership.
func (h *WatchlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var item models.CatalogItem
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if item.ID == 0 {
		http.Error(w, "item id is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(item.MediaType) == "" {
		http.Error(w, "media type is required", http.StatusBadRequest)
		return
	}

	inList, err := h.Service.Toggle(item)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		InList bool `json:"inList"`
	}{InList: inList})
}
