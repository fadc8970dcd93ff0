package service

import (
	"context"
	"time"

	"github.com/Shunadesu/simple-decor-sub001/pkg/decorapi"
	"github.com/Shunadesu/simple-decor-sub001/pkg/ttlcache"
)

// UserService manages storefront customer accounts. Listings are cached by
// their filter parameters; single-record reads and every mutation go straight
// to the backend.
//
// Mutations leave the listing cache untouched, so a listing fetched before a
// write keeps serving the pre-write data until its TTL lapses. Callers that
// need an immediately fresh listing call InvalidateListings after writing.
type UserService struct {
	errState

	api   *decorapi.Client
	cache *ttlcache.Cache[string, []decorapi.User]
}

// NewUserService creates a user service with the given listing TTL.
// A non-positive ttl selects DefaultCacheTTL.
func NewUserService(api *decorapi.Client, ttl time.Duration) *UserService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &UserService{
		api:   api,
		cache: ttlcache.New[string, []decorapi.User](ttl),
	}
}

// List returns users matching params, served from cache when fresh.
func (s *UserService) List(ctx context.Context, params decorapi.UserListParams) ([]decorapi.User, error) {
	users, err := s.cache.Fetch(ctx, params.CacheKey(), func(ctx context.Context) ([]decorapi.User, error) {
		return s.api.ListUsers(ctx, params)
	})
	return users, s.record(err)
}

// Get fetches a single user by ID, always from the backend.
func (s *UserService) Get(ctx context.Context, id string) (*decorapi.User, error) {
	user, err := s.api.GetUser(ctx, id)
	return user, s.record(err)
}

// Create creates a user account.
func (s *UserService) Create(ctx context.Context, req decorapi.UserCreate) (*decorapi.User, error) {
	user, err := s.api.CreateUser(ctx, req)
	return user, s.record(err)
}

// Update modifies a user account.
func (s *UserService) Update(ctx context.Context, id string, req decorapi.UserUpdate) (*decorapi.User, error) {
	user, err := s.api.UpdateUser(ctx, id, req)
	return user, s.record(err)
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.record(s.api.DeleteUser(ctx, id))
}

// SetStatus activates or deactivates a user account.
func (s *UserService) SetStatus(ctx context.Context, id, status string) (*decorapi.User, error) {
	user, err := s.api.SetUserStatus(ctx, id, status)
	return user, s.record(err)
}

// InvalidateListings drops every cached listing.
func (s *UserService) InvalidateListings() {
	s.cache.Clear()
}
