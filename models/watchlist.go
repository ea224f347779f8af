package models

import "time"

// WatchlistEntry is a snapshot of a catalog item taken at the moment it was
// added to the watchlist. Later catalog refreshes do not propagate into it.
type WatchlistEntry struct {
	Item    CatalogItem `json:"item"`
	AddedAt time.Time   `json:"addedAt"`
}

// Key returns the identity of the underlying item.
func (w WatchlistEntry) Key() string {
	return w.Item.Key()
}
