package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"reelfeed/handlers"
	"reelfeed/models"
	"reelfeed/services/browse"
)

type stubFetcher struct {
	results map[string][]models.RawItem
	err     error
}

func (s *stubFetcher) Fetch(ctx context.Context, endpoint string) ([]models.RawItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	for prefix, items := range s.results {
		if strings.HasPrefix(endpoint, prefix) {
			return items, nil
		}
	}
	return []models.RawItem{}, nil
}

func TestBrowseNavigateReturnsSnapshot(t *testing.T) {
	fetcher := &stubFetcher{results: map[string][]models.RawItem{
		"/trending/movie/week": {
			{ID: 603, Title: "The Matrix", PosterPath: "/matrix.jpg", MediaType: "movie"},
		},
	}}
	h := handlers.NewBrowseHandler(browse.NewService(fetcher))

	req := httptest.NewRequest(http.MethodGet, "/api/browse/movies", nil)
	req = mux.SetURLVars(req, map[string]string{"page": "movies"})
	rec := httptest.NewRecorder()
	h.Navigate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var snap models.BrowseSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if snap.Page != browse.PageMovies {
		t.Fatalf("expected page %q, got %q", browse.PageMovies, snap.Page)
	}
	if len(snap.Categories) != 3 {
		t.Fatalf("expected 3 movie categories, got %d", len(snap.Categories))
	}
	if len(snap.Categories[0].Items) != 1 || snap.Categories[0].Items[0].Name != "The Matrix" {
		t.Fatalf("unexpected trending row: %+v", snap.Categories[0])
	}
}

func TestBrowseNavigateUnknownPage(t *testing.T) {
	h := handlers.NewBrowseHandler(browse.NewService(&stubFetcher{}))

	req := httptest.NewRequest(http.MethodGet, "/api/browse/settings", nil)
	req = mux.SetURLVars(req, map[string]string{"page": "settings"})
	rec := httptest.NewRecorder()
	h.Navigate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestBrowseNavigateProviderFailureStillPublishes(t *testing.T) {
	h := handlers.NewBrowseHandler(browse.NewService(&stubFetcher{err: errors.New("upstream down")}))

	req := httptest.NewRequest(http.MethodGet, "/api/browse/home", nil)
	req = mux.SetURLVars(req, map[string]string{"page": "home"})
	rec := httptest.NewRecorder()
	h.Navigate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with per-category errors, got %d", rec.Code)
	}

	var snap models.BrowseSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	for _, category := range snap.Categories {
		if category.Error == "" {
			t.Fatalf("expected an error state on category %q", category.Key)
		}
	}
}

func TestBrowseState(t *testing.T) {
	svc := browse.NewService(&stubFetcher{})
	if _, err := svc.Navigate(context.Background(), browse.PageMyList); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	h := handlers.NewBrowseHandler(svc)

	rec := httptest.NewRecorder()
	h.State(rec, httptest.NewRequest(http.MethodGet, "/api/browse", nil))

	var snap models.BrowseSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if snap.Page != browse.PageMyList {
		t.Fatalf("expected current page %q, got %q", browse.PageMyList, snap.Page)
	}
}

func TestBrowseSearch(t *testing.T) {
	fetcher := &stubFetcher{results: map[string][]models.RawItem{
		"/search/multi": {
			{ID: 1, Name: "Dark", PosterPath: "/dark.jpg", MediaType: "tv"},
			{ID: 2, Name: "No Poster", MediaType: "tv"},
		},
	}}
	h := handlers.NewBrowseHandler(browse.NewService(fetcher))

	req := httptest.NewRequest(http.MethodGet, "/api/search?query=dark", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var snap models.BrowseSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if snap.Page != browse.PageSearch {
		t.Fatalf("expected page %q, got %q", browse.PageSearch, snap.Page)
	}
	if len(snap.SearchResults) != 1 || snap.SearchResults[0].Name != "Dark" {
		t.Fatalf("expected only the poster-bearing result, got %+v", snap.SearchResults)
	}
}

func TestBrowseSearchUpstreamError(t *testing.T) {
	h := handlers.NewBrowseHandler(browse.NewService(&stubFetcher{err: errors.New("upstream down")}))

	req := httptest.NewRequest(http.MethodGet, "/api/search?query=dark", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
}
