package models

import "strconv"

// Media types as reported by the catalog provider.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// RawItem is a single entry of a provider result list, exactly as returned
// by the upstream API. Image paths are provider-relative until normalized.
type RawItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	MediaType    string  `json:"media_type"`
}

// CatalogItem is a normalized, directly renderable catalog entry. Image URLs
// are absolute; an empty URL means the provider had no artwork for that slot.
type CatalogItem struct {
	ID          int64   `json:"id"`
	MediaType   string  `json:"mediaType"`
	Name        string  `json:"name"`
	Overview    string  `json:"overview"`
	PosterURL   string  `json:"posterUrl,omitempty"`
	BackdropURL string  `json:"backdropUrl,omitempty"`
	VoteAverage float64 `json:"voteAverage"`
	VoteCount   int     `json:"voteCount"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
}

// Key returns the identity of the item. A movie and a series may share a
// numeric provider ID, so identity is the (mediaType, id) pair.
func (c CatalogItem) Key() string {
	return c.MediaType + ":" + strconv.FormatInt(c.ID, 10)
}

// HasArtwork reports whether the item can be rendered with any image at all.
func (c CatalogItem) HasArtwork() bool {
	return c.PosterURL != "" || c.BackdropURL != ""
}

// Category is one named, ordered row of catalog items. When loading the row
// failed, Error carries the reason and Items is empty; the row is still part
// of the published snapshot so the frontend can show a dismissible error.
type Category struct {
	Key   string        `json:"key"`
	Title string        `json:"title"`
	Items []CatalogItem `json:"items"`
	Error string        `json:"error,omitempty"`
}
