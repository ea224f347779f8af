package models

import "time"

// Session describes a signed-in browsing session. There is no identity
// backing it; the token only lets the frontend resume across requests.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Remember  bool      `json:"remember"`
	CreatedAt time.Time `json:"createdAt"`
}

// BrowseSnapshot is the complete view state published after a navigation or
// search. It is replaced wholesale; handlers never see partial loads.
type BrowseSnapshot struct {
	Page          string        `json:"page"`
	Categories    []Category    `json:"categories"`
	Featured      *CatalogItem  `json:"featured,omitempty"`
	SearchResults []CatalogItem `json:"searchResults,omitempty"`
	PreviewKey    string        `json:"previewKey,omitempty"`
}
