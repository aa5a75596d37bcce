package query

import (
	"context"
	"errors"
	"testing"

	"github.com/catalog-dash-poc-v1/client/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages         map[catalog.PageQuery]catalog.ProductPage
	err           error
	pageCalls     int
	categoryCalls int
}

func (f *fakeFetcher) FetchPage(_ context.Context, q catalog.PageQuery) (catalog.ProductPage, error) {
	f.pageCalls++
	if f.err != nil {
		return catalog.ProductPage{}, f.err
	}
	return f.pages[q], nil
}

func (f *fakeFetcher) FetchCategories(_ context.Context) ([]catalog.Category, error) {
	f.categoryCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []catalog.Category{{Slug: "beauty", Name: "Beauty"}}, nil
}

var _ Fetcher = (*fakeFetcher)(nil)

func TestProductsCachesFreshPages(t *testing.T) {
	ctx := context.Background()
	key := catalog.PageQuery{Limit: 10}
	fetcher := &fakeFetcher{pages: map[catalog.PageQuery]catalog.ProductPage{key: page(30, 1, 2)}}
	svc := NewService(fetcher, NewPageCache())

	res := svc.Products(ctx, key)

	require.NoError(t, res.Err)
	assert.False(t, res.Stale)
	assert.Equal(t, key, res.Key)
	assert.Equal(t, 30, res.Page.Total)

	cached, ok := svc.Cached(key)
	require.True(t, ok)
	assert.Equal(t, res.Page, cached)
}

func TestProductsKeepsPreviousPageWhenNewKeyFails(t *testing.T) {
	ctx := context.Background()
	first := catalog.PageQuery{Limit: 10}
	second := catalog.PageQuery{Search: "phone", Limit: 10}

	fetcher := &fakeFetcher{pages: map[catalog.PageQuery]catalog.ProductPage{first: page(30, 1, 2)}}
	svc := NewService(fetcher, NewPageCache())

	res := svc.Products(ctx, first)
	require.NoError(t, res.Err)

	fetcher.err = errors.New("boom")
	res = svc.Products(ctx, second)

	require.Error(t, res.Err)
	assert.True(t, res.Stale)
	assert.Equal(t, first, res.Key, "the previously displayed page stays visible")
	assert.Equal(t, 30, res.Page.Total)
}

func TestProductsPrefersCachedPageForSameKeyOnFailure(t *testing.T) {
	ctx := context.Background()
	key := catalog.PageQuery{Category: "laptops", Limit: 10}

	fetcher := &fakeFetcher{pages: map[catalog.PageQuery]catalog.ProductPage{key: page(8, 4)}}
	svc := NewService(fetcher, NewPageCache())

	require.NoError(t, svc.Products(ctx, key).Err)

	fetcher.err = errors.New("boom")
	res := svc.Products(ctx, key)

	require.Error(t, res.Err)
	assert.True(t, res.Stale)
	assert.Equal(t, key, res.Key)
	assert.Equal(t, 8, res.Page.Total, "last-known-good page for the key is retained")
}

func TestProductsErrorWithEmptyCache(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{err: errors.New("boom")}
	svc := NewService(fetcher, NewPageCache())

	res := svc.Products(ctx, catalog.PageQuery{Limit: 10})

	require.Error(t, res.Err)
	assert.Empty(t, res.Page.Products)
}

func TestCategoriesMemoized(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{}
	svc := NewService(fetcher, NewPageCache())

	first, err := svc.Categories(ctx)
	require.NoError(t, err)
	second, err := svc.Categories(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fetcher.categoryCalls, "the reference list is fetched once")
}

func TestCategoriesErrorIsNotMemoized(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{err: errors.New("boom")}
	svc := NewService(fetcher, NewPageCache())

	_, err := svc.Categories(ctx)
	require.Error(t, err)

	fetcher.err = nil
	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
	assert.Equal(t, 2, fetcher.categoryCalls)
}
