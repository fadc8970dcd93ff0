package decorapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// BlogListParams filters and paginates GET /api/blog-posts.
type BlogListParams struct {
	// Language narrows the listing to posts published for one storefront
	// language ("en" or "vi"). Empty means both.
	Language string
	Category string
	Search   string
	Status   string
	Page     int
	Limit    int
}

func (p BlogListParams) values() url.Values {
	v := url.Values{}
	if p.Language != "" {
		v.Set("lang", p.Language)
	}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

// CacheKey returns a stable key identifying this parameter combination.
func (p BlogListParams) CacheKey() string {
	return "posts?" + p.values().Encode()
}

// ListPosts returns blog posts matching the given parameters.
func (c *Client) ListPosts(ctx context.Context, p BlogListParams) ([]BlogPost, error) {
	path := "/api/blog-posts"
	if query := p.values().Encode(); query != "" {
		path += "?" + query
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[BlogPost](resp, "posts")
}

// GetPost fetches a single blog post by ID.
func (c *Client) GetPost(ctx context.Context, id string) (*BlogPost, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/blog-posts/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var post BlogPost
	if err := decodeJSON(resp, &post, http.StatusOK); err != nil {
		return nil, err
	}

	return &post, nil
}

// CreatePost creates a blog post.
func (c *Client) CreatePost(ctx context.Context, post BlogPost) (*BlogPost, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/blog-posts", post)
	if err != nil {
		return nil, err
	}

	var created BlogPost
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdatePost updates a blog post.
func (c *Client) UpdatePost(ctx context.Context, id string, post BlogPost) (*BlogPost, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/api/blog-posts/"+url.PathEscape(id), post)
	if err != nil {
		return nil, err
	}

	var updated BlogPost
	if err := decodeJSON(resp, &updated, http.StatusOK); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeletePost removes a blog post.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/blog-posts/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusOK)
}

// SetPostStatus publishes or unpublishes a post via
// PATCH /api/blog-posts/{id}/status.
func (c *Client) SetPostStatus(ctx context.Context, id, status string) (*BlogPost, error) {
	payload := map[string]string{"status": status}

	resp, err := c.doJSON(ctx, http.MethodPatch, "/api/blog-posts/"+url.PathEscape(id)+"/status", payload)
	if err != nil {
		return nil, err
	}

	var post BlogPost
	if err := decodeJSON(resp, &post, http.StatusOK); err != nil {
		return nil, err
	}

	return &post, nil
}
