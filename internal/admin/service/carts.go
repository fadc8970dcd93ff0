package service

import (
	"context"

	"github.com/Shunadesu/simple-decor-sub001/pkg/decorapi"
	"github.com/Shunadesu/simple-decor-sub001/pkg/ttlcache"
)

// CartService reads customer carts. Carts are keyed by identity rather than
// by query, so entries never expire; a cart fetched once is served from cache
// until Refresh evicts it.
type CartService struct {
	errState

	api   *decorapi.Client
	cache *ttlcache.Cache[string, *decorapi.Cart]
}

// NewCartService creates a cart service.
func NewCartService(api *decorapi.Client) *CartService {
	return &CartService{
		api:   api,
		cache: ttlcache.New[string, *decorapi.Cart](0),
	}
}

// Get returns the cart for userID, fetching it at most once per user until
// Refresh is called for that user.
func (s *CartService) Get(ctx context.Context, userID string) (*decorapi.Cart, error) {
	cart, err := s.cache.Fetch(ctx, userID, func(ctx context.Context) (*decorapi.Cart, error) {
		return s.api.GetUserCart(ctx, userID)
	})
	return cart, s.record(err)
}

// Refresh evicts the cached cart for userID and fetches it again.
func (s *CartService) Refresh(ctx context.Context, userID string) (*decorapi.Cart, error) {
	s.cache.Invalidate(userID)
	return s.Get(ctx, userID)
}
