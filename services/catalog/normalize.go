package catalog

import (
	"strings"

	"reelfeed/models"
)

const (
	imageBaseURL = "https://image.tmdb.org/t/p"
	// Posters render as row cards, so the w500 variant is plenty.
	// Backdrops fill the hero banner and stay at original resolution.
	posterSize   = "w500"
	backdropSize = "original"
)

// Normalize converts raw provider items into renderable catalog items with
// absolute image URLs. A missing image path stays empty rather than becoming
// a relative URL. fallbackMediaType fills in items from endpoints that imply
// their media type instead of reporting it (e.g. /movie/top_rated).
//
// Pure: the input slice is not modified.
func Normalize(raw []models.RawItem, fallbackMediaType string) []models.CatalogItem {
	items := make([]models.CatalogItem, len(raw))
	for i, r := range raw {
		mediaType := r.MediaType
		if mediaType == "" {
			mediaType = fallbackMediaType
		}
		items[i] = models.CatalogItem{
			ID:          r.ID,
			MediaType:   mediaType,
			Name:        pickName(mediaType, r.Name, r.Title),
			Overview:    r.Overview,
			PosterURL:   imageURL(r.PosterPath, posterSize),
			BackdropURL: imageURL(r.BackdropPath, backdropSize),
			VoteAverage: r.VoteAverage,
			VoteCount:   r.VoteCount,
			ReleaseDate: pickDate(mediaType, r.ReleaseDate, r.FirstAirDate),
		}
	}
	return items
}

// FilterDisplayable drops items without a poster. Search results go through
// this so the grid never shows empty tiles; category rows do not, since they
// can fall back to the backdrop.
func FilterDisplayable(items []models.CatalogItem) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.PosterURL != "" {
			out = append(out, item)
		}
	}
	return out
}

func imageURL(imagePath, size string) string {
	trimmed := strings.TrimSpace(imagePath)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return imageBaseURL + "/" + size + trimmed
}

func pickName(mediaType, seriesName, movieTitle string) string {
	if mediaType == models.MediaTypeMovie && movieTitle != "" {
		return movieTitle
	}
	if seriesName != "" {
		return seriesName
	}
	return movieTitle
}

func pickDate(mediaType, releaseDate, firstAirDate string) string {
	if mediaType == models.MediaTypeTV && firstAirDate != "" {
		return firstAirDate
	}
	if releaseDate != "" {
		return releaseDate
	}
	return firstAirDate
}
