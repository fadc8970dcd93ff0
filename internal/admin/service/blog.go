package service

import (
	"context"
	"time"

	"github.com/Shunadesu/simple-decor-sub001/pkg/decorapi"
	"github.com/Shunadesu/simple-decor-sub001/pkg/ttlcache"
)

// BlogService manages blog posts. Listings are cached by their full parameter
// combination, which includes the storefront language, so English and
// Vietnamese listings are independent entries.
//
// Like UserService, writes leave the listing cache untouched until the TTL
// lapses or InvalidateListings is called.
type BlogService struct {
	errState

	api   *decorapi.Client
	cache *ttlcache.Cache[string, []decorapi.BlogPost]
}

// NewBlogService creates a blog service with the given listing TTL.
// A non-positive ttl selects DefaultCacheTTL.
func NewBlogService(api *decorapi.Client, ttl time.Duration) *BlogService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &BlogService{
		api:   api,
		cache: ttlcache.New[string, []decorapi.BlogPost](ttl),
	}
}

// List returns posts matching params, served from cache when fresh.
func (s *BlogService) List(ctx context.Context, params decorapi.BlogListParams) ([]decorapi.BlogPost, error) {
	posts, err := s.cache.Fetch(ctx, params.CacheKey(), func(ctx context.Context) ([]decorapi.BlogPost, error) {
		return s.api.ListPosts(ctx, params)
	})
	return posts, s.record(err)
}

// Get fetches a single post by ID, always from the backend.
func (s *BlogService) Get(ctx context.Context, id string) (*decorapi.BlogPost, error) {
	post, err := s.api.GetPost(ctx, id)
	return post, s.record(err)
}

// Create publishes a new post.
func (s *BlogService) Create(ctx context.Context, post decorapi.BlogPost) (*decorapi.BlogPost, error) {
	created, err := s.api.CreatePost(ctx, post)
	return created, s.record(err)
}

// Update modifies an existing post.
func (s *BlogService) Update(ctx context.Context, id string, post decorapi.BlogPost) (*decorapi.BlogPost, error) {
	updated, err := s.api.UpdatePost(ctx, id, post)
	return updated, s.record(err)
}

// Delete removes a post.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	return s.record(s.api.DeletePost(ctx, id))
}

// SetStatus publishes or unpublishes a post.
func (s *BlogService) SetStatus(ctx context.Context, id, status string) (*decorapi.BlogPost, error) {
	post, err := s.api.SetPostStatus(ctx, id, status)
	return post, s.record(err)
}

// InvalidateListings drops every cached listing.
func (s *BlogService) InvalidateListings() {
	s.cache.Clear()
}
