package query

import (
	"context"
	"sync"

	"github.com/catalog-dash-poc-v1/client/internal/catalog"
	logx "github.com/catalog-dash-poc-v1/client/pkg/logger"
)

// Fetcher is the slice of the catalog client the query layer needs.
type Fetcher interface {
	FetchPage(ctx context.Context, q catalog.PageQuery) (catalog.ProductPage, error)
	FetchCategories(ctx context.Context) ([]catalog.Category, error)
}

// Result is what the dashboard renders for a product listing. Stale is true
// when the fetch for Key did not complete and the page shown is the
// last-known-good one; Err then carries the query error so the caller can
// offer a retry without dropping the displayed page.
type Result struct {
	Key   catalog.PageQuery
	Page  catalog.ProductPage
	Stale bool
	Err   error
}

// Service issues paginated reads and keeps the previously displayed page
// visible while a new key is loading or failing, so filter changes never
// flash an empty listing.
type Service struct {
	fetcher Fetcher
	cache   *PageCache

	mu         sync.Mutex
	lastKey    catalog.PageQuery
	hasLast    bool
	categories []catalog.Category
}

func NewService(fetcher Fetcher, cache *PageCache) *Service {
	return &Service{fetcher: fetcher, cache: cache}
}

// Products fetches the page for the key and caches it. On failure it falls
// back, in order, to the cached page for this key and then to the most
// recently displayed page, both marked stale.
func (s *Service) Products(ctx context.Context, key catalog.PageQuery) Result {
	page, err := s.fetcher.FetchPage(ctx, key)
	if err != nil {
		logx.Warn().Err(err).Str("search", key.Search).Str("category", key.Category).Int("skip", key.Skip).Msg("product page fetch failed")

		if cached, ok := s.cache.Get(key); ok {
			return Result{Key: key, Page: cached, Stale: true, Err: err}
		}
		if lastKey, lastPage, ok := s.lastGood(); ok {
			return Result{Key: lastKey, Page: lastPage, Stale: true, Err: err}
		}
		return Result{Key: key, Err: err}
	}

	s.cache.Put(key, page)
	s.setLast(key)
	return Result{Key: key, Page: page}
}

// Cached returns the current cached page for the key without fetching. It
// reflects any mutation patches applied since the fetch.
func (s *Service) Cached(key catalog.PageQuery) (catalog.ProductPage, bool) {
	return s.cache.Get(key)
}

// Categories returns the filter reference list, fetched once and memoized for
// the lifetime of the service.
func (s *Service) Categories(ctx context.Context) ([]catalog.Category, error) {
	s.mu.Lock()
	if s.categories != nil {
		cached := s.categories
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	categories, err := s.fetcher.FetchCategories(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return categories, nil
}

func (s *Service) lastGood() (catalog.PageQuery, catalog.ProductPage, bool) {
	s.mu.Lock()
	key, ok := s.lastKey, s.hasLast
	s.mu.Unlock()
	if !ok {
		return catalog.PageQuery{}, catalog.ProductPage{}, false
	}

	page, ok := s.cache.Get(key)
	return key, page, ok
}

func (s *Service) setLast(key catalog.PageQuery) {
	s.mu.Lock()
	s.lastKey = key
	s.hasLast = true
	s.mu.Unlock()
}
