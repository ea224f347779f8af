// Package watchlist manages the user's persisted "My List".
package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"reelfeed/internal/storage"
	"reelfeed/models"
)

const storageKey = "watchlist"

var ErrStoreRequired = errors.New("watchlist store not provided")

// Service holds watchlist entries in insertion order. Items are identified by
// their (mediaType, id) pair, so a movie and a series sharing a numeric
// provider ID do not collide. Every mutation serializes the full list to the
// durable store.
type Service struct {
	mu      sync.RWMutex
	store   storage.Store
	entries []models.WatchlistEntry
}

// NewService loads existing entries from the store. Missing or corrupt data
// degrades to an empty list rather than failing startup.
func NewService(store storage.Store) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	svc := &Service{store: store}
	svc.load()
	return svc, nil
}

// List returns entries oldest first, in the order they were added.
func (s *Service) List() []models.WatchlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.WatchlistEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Toggle removes the item when present and appends a snapshot of it when
// absent. It reports whether the item is on the list afterwards.
func (s *Service) Toggle(item models.CatalogItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	for i, entry := range s.entries {
		if entry.Key() == key {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return false, s.saveLocked()
		}
	}

	s.entries = append(s.entries, models.WatchlistEntry{
		Item:    item,
		AddedAt: time.Now().UTC(),
	})
	return true, s.saveLocked()
}

// Contains reports whether an item with the given identity is on the list.
func (s *Service) Contains(mediaType string, id int64) bool {
	key := models.CatalogItem{MediaType: mediaType, ID: id}.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.entries {
		if entry.Key() == key {
			return true
		}
	}
	return false
}

// Len reports the number of saved entries.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Service) load() {
	data, ok := s.store.Get(storageKey)
	if !ok || len(data) == 0 {
		s.entries = nil
		return
	}

	var entries []models.WatchlistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("[watchlist] corrupt stored list, starting empty: %v", err)
		s.entries = nil
		return
	}

	// Drop duplicate identities, keeping the earliest entry.
	seen := make(map[string]bool, len(entries))
	kept := entries[:0]
	for _, entry := range entries {
		key := entry.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, entry)
	}
	s.entries = kept
}

func (s *Service) saveLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	if err := s.store.Set(storageKey, data); err != nil {
		return fmt.Errorf("persist watchlist: %w", err)
	}
	return nil
}
