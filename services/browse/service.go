// Package browse sequences catalog loads per page and owns the published
// view state: categories, featured item, and search results.
package browse

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"reelfeed/models"
	"reelfeed/services/catalog"
	"reelfeed/utils/debounce"
)

// Delays before a settled input fires. Search is tunable via config; the
// hover dwell before a card preview starts is fixed.
const (
	DefaultSearchDelay = 500 * time.Millisecond
	previewDwell       = 800 * time.Millisecond
)

// Pages a user can navigate to. search and mylist carry no category rows of
// their own.
const (
	PageHome       = "home"
	PageTVShows    = "tvshows"
	PageMovies     = "movies"
	PageNewPopular = "newpopular"
	PageLanguages  = "languages"
	PageSearch     = "search"
	PageMyList     = "mylist"
)

var ErrUnknownPage = errors.New("unknown page")

// categoryDef binds a row to its provider endpoint. mediaType fills in items
// from endpoints that do not report one.
type categoryDef struct {
	key       string
	title     string
	endpoint  string
	mediaType string
}

// pageCategories fixes which rows each page loads, in display order.
var pageCategories = map[string][]categoryDef{
	PageHome: {
		{"trending", "Trending Now", "/trending/all/week", ""},
		{"topRated", "Top Rated", "/movie/top_rated", models.MediaTypeMovie},
		{"originals", "Originals", "/discover/tv?with_networks=213", models.MediaTypeTV},
		{"action", "Action Thrillers", "/discover/movie?with_genres=28", models.MediaTypeMovie},
		{"comedy", "Comedies", "/discover/movie?with_genres=35", models.MediaTypeMovie},
	},
	PageTVShows: {
		{"trendingTV", "Trending TV Shows", "/trending/tv/week", models.MediaTypeTV},
		{"popularTV", "Popular TV Shows", "/tv/popular", models.MediaTypeTV},
		{"topRatedTV", "Top Rated Shows", "/tv/top_rated", models.MediaTypeTV},
	},
	PageMovies: {
		{"trendingMovies", "Trending Movies", "/trending/movie/week", models.MediaTypeMovie},
		{"popularMovies", "Popular Movies", "/movie/popular", models.MediaTypeMovie},
		{"topRatedMovies", "Top Rated Movies", "/movie/top_rated", models.MediaTypeMovie},
	},
	PageNewPopular: {
		{"trending", "Trending Today", "/trending/all/day", ""},
		{"upcoming", "Coming Soon", "/movie/upcoming", models.MediaTypeMovie},
	},
	PageLanguages: {
		{"korean", "Korean Movies & TV", "/discover/movie?with_original_language=ko", models.MediaTypeMovie},
		{"hindi", "Hindi Movies & TV", "/discover/movie?with_original_language=hi", models.MediaTypeMovie},
	},
	PageSearch: nil,
	PageMyList: nil,
}

// CatalogFetcher is the slice of the catalog client the browse service needs.
type CatalogFetcher interface {
	Fetch(ctx context.Context, endpoint string) ([]models.RawItem, error)
}

// Service loads pages and publishes view snapshots. Each navigation bumps a
// generation counter; a load that finishes after a newer navigation started
// is discarded instead of overwriting the newer state.
type Service struct {
	client CatalogFetcher

	mu         sync.Mutex
	generation uint64
	snapshot   models.BrowseSnapshot

	typing  *debounce.Debouncer
	pointer *debounce.Signal
}

func NewService(client CatalogFetcher) *Service {
	return &Service{
		client:   client,
		snapshot: models.BrowseSnapshot{Page: PageHome},
		typing:   debounce.NewDebouncer(DefaultSearchDelay),
		pointer:  debounce.NewSignal(previewDwell),
	}
}

// SetSearchDelay replaces the typing debounce window. Call before serving.
func (s *Service) SetSearchDelay(d time.Duration) {
	s.typing.Stop()
	s.typing = debounce.NewDebouncer(d)
}

// Snapshot returns the currently published view state.
func (s *Service) Snapshot() models.BrowseSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Navigate loads the target page's categories and publishes them as one
// snapshot. Pages without category rows (search, mylist) publish immediately
// with empty rows; the previous page's rows never bleed into the new page.
// All rows of one page are fetched concurrently but appear together.
func (s *Service) Navigate(ctx context.Context, page string) (models.BrowseSnapshot, error) {
	defs, ok := pageCategories[page]
	if !ok {
		return models.BrowseSnapshot{}, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}

	gen := s.beginNavigation()

	if len(defs) == 0 {
		return s.publish(gen, models.BrowseSnapshot{Page: page}), nil
	}

	categories := s.loadCategories(ctx, defs)
	next := models.BrowseSnapshot{
		Page:       page,
		Categories: categories,
		Featured:   pickFeatured(categories),
	}
	return s.publish(gen, next), nil
}

// Search issues one multi-search request and publishes the poster-bearing
// results, switching the page to search. Blank queries are a no-op.
func (s *Service) Search(ctx context.Context, query string) (models.BrowseSnapshot, error) {
	if strings.TrimSpace(query) == "" {
		return s.Snapshot(), nil
	}

	gen := s.beginNavigation()

	raw, err := s.client.Fetch(ctx, "/search/multi?query="+url.QueryEscape(query))
	if err != nil {
		log.Printf("[browse] search %q failed: %v", query, err)
		return s.Snapshot(), err
	}

	results := catalog.FilterDisplayable(catalog.Normalize(raw, ""))
	next := models.BrowseSnapshot{
		Page:          PageSearch,
		SearchResults: results,
	}
	return s.publish(gen, next), nil
}

// SearchInput feeds one change of the search box. The request fires only
// once typing has settled for the debounce window; earlier pending queries
// are dropped, never issued.
func (s *Service) SearchInput(query string) {
	s.typing.Call(func() {
		// Search logs its own failures; stale results are discarded by
		// the generation check like any other load.
		_, _ = s.Search(context.Background(), query)
	})
}

// PointerEnter registers hover intent on an item. After the dwell delay the
// item key is published as the snapshot's preview, so at most one card can
// be previewing at a time.
func (s *Service) PointerEnter(itemKey string) {
	s.pointer.Point(itemKey, func(key string) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.snapshot.PreviewKey = key
	})
}

// PointerLeave cancels a pending intent on itemKey and stops its preview if
// it already started. Intent on a different item is left alone.
func (s *Service) PointerLeave(itemKey string) {
	s.pointer.Leave(itemKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.PreviewKey == itemKey {
		s.snapshot.PreviewKey = ""
	}
}

func (s *Service) beginNavigation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// publish installs next only when gen is still the latest navigation. A
// stale load is dropped and the caller gets whatever is current instead.
func (s *Service) publish(gen uint64, next models.BrowseSnapshot) models.BrowseSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		log.Printf("[browse] discarding stale load for page %q", next.Page)
		return s.snapshot
	}
	s.snapshot = next
	return next
}

func (s *Service) loadCategories(ctx context.Context, defs []categoryDef) []models.Category {
	categories := make([]models.Category, len(defs))

	p := pool.New().WithMaxGoroutines(len(defs))
	for i, def := range defs {
		p.Go(func() {
			category := models.Category{Key: def.key, Title: def.title}
			raw, err := s.client.Fetch(ctx, def.endpoint)
			if err != nil {
				log.Printf("[browse] category %s failed: %v", def.key, err)
				category.Error = err.Error()
			} else {
				category.Items = catalog.Normalize(raw, def.mediaType)
			}
			categories[i] = category
		})
	}
	p.Wait()

	return categories
}

// pickFeatured selects one item uniformly from the union of all loaded
// categories, restricted to items that have artwork to fill the hero banner.
func pickFeatured(categories []models.Category) *models.CatalogItem {
	var union []models.CatalogItem
	for _, category := range categories {
		for _, item := range category.Items {
			if item.HasArtwork() {
				union = append(union, item)
			}
		}
	}
	if len(union) == 0 {
		return nil
	}
	pick := union[rand.IntN(len(union))]
	return &pick
}
