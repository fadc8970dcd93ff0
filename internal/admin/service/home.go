package service

import (
	"context"
	"time"

	"github.com/Shunadesu/simple-decor-sub001/pkg/decorapi"
	"github.com/Shunadesu/simple-decor-sub001/pkg/ttlcache"
)

// latestPostCount is how many recent posts the home aggregate carries,
// matching what the storefront home page renders.
const latestPostCount = 3

// HomeContent is everything the storefront home page renders, assembled from
// three backend listings in one shot.
type HomeContent struct {
	FeaturedProducts []decorapi.Product
	Categories       []decorapi.Category
	LatestPosts      []decorapi.BlogPost
}

// HomeService aggregates home-page content per storefront language. The
// aggregate is cached as a unit: all three listings were fetched together, so
// they expire together.
type HomeService struct {
	errState

	api   *decorapi.Client
	cache *ttlcache.Cache[string, *HomeContent]
}

// NewHomeService creates a home service with the given TTL.
// A non-positive ttl selects DefaultCacheTTL.
func NewHomeService(api *decorapi.Client, ttl time.Duration) *HomeService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &HomeService{
		api:   api,
		cache: ttlcache.New[string, *HomeContent](ttl),
	}
}

// Get returns the home-page aggregate for language, served from cache when
// fresh. A failure in any of the three listings fails the whole aggregate and
// caches nothing.
func (s *HomeService) Get(ctx context.Context, language string) (*HomeContent, error) {
	content, err := s.cache.Fetch(ctx, language, func(ctx context.Context) (*HomeContent, error) {
		return s.load(ctx, language)
	})
	return content, s.record(err)
}

func (s *HomeService) load(ctx context.Context, language string) (*HomeContent, error) {
	products, err := s.api.ListProducts(ctx, decorapi.ProductListParams{Featured: true})
	if err != nil {
		return nil, err
	}

	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.api.ListPosts(ctx, decorapi.BlogListParams{
		Language: language,
		Status:   "published",
		Limit:    latestPostCount,
	})
	if err != nil {
		return nil, err
	}

	return &HomeContent{
		FeaturedProducts: products,
		Categories:       categories,
		LatestPosts:      posts,
	}, nil
}

// Invalidate drops the cached aggregate for language.
func (s *HomeService) Invalidate(language string) {
	s.cache.Invalidate(language)
}
