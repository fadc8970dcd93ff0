package decorapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ============================================================================
// Products
// ============================================================================

// ProductListParams filters and paginates GET /api/products.
type ProductListParams struct {
	Category string
	Search   string
	Status   string
	Featured bool
	Page     int
	Limit    int
}

func (p ProductListParams) values() url.Values {
	v := url.Values{}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Featured {
		v.Set("featured", "true")
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
func (p ProductListParams) CacheKey() string {
	return "products?" + p.values().Encode()
}

// ListProducts returns products matching the given parameters.
func (c *Client) ListProducts(ctx context.Context, p ProductListParams) ([]Product, error) {
	path := "/api/products"
	if query := p.values().Encode(); query != "" {
		path += "?" + query
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[Product](resp, "products")
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var product Product
	if err := decodeJSON(resp, &product, http.StatusOK); err != nil {
		return nil, err
	}

	return &product, nil
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(ctx context.Context, product Product) (*Product, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/products", product)
	if err != nil {
		return nil, err
	}

	var created Product
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateProduct updates a product.
func (c *Client) UpdateProduct(ctx context.Context, id string, product Product) (*Product, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), product)
	if err != nil {
		return nil, err
	}

	var updated Product
	if err := decodeJSON(resp, &updated, http.StatusOK); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusOK)
}

// SetProductStatus toggles a product's visibility via
// PATCH /api/products/{id}/status.
func (c *Client) SetProductStatus(ctx context.Context, id, status string) (*Product, error) {
	payload := map[string]string{"status": status}

	resp, err := c.doJSON(ctx, http.MethodPatch, "/api/products/"+url.PathEscape(id)+"/status", payload)
	if err != nil {
		return nil, err
	}

	var product Product
	if err := decodeJSON(resp, &product, http.StatusOK); err != nil {
		return nil, err
	}

	return &product, nil
}

// ============================================================================
// Categories
// ============================================================================

// ListCategories returns all product categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[Category](resp, "categories")
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, category Category) (*Category, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/categories", category)
	if err != nil {
		return nil, err
	}

	var created Category
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateCategory updates a category.
func (c *Client) UpdateCategory(ctx context.Context, id string, category Category) (*Category, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), category)
	if err != nil {
		return nil, err
	}

	var updated Category
	if err := decodeJSON(resp, &updated, http.StatusOK); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusOK)
}

// ============================================================================
// Services
// ============================================================================

// ListServices returns all site service entries.
func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/services", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[Service](resp, "services")
}

// CreateService creates a service entry.
func (c *Client) CreateService(ctx context.Context, svc Service) (*Service, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/services", svc)
	if err != nil {
		return nil, err
	}

	var created Service
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateService updates a service entry.
func (c *Client) UpdateService(ctx context.Context, id string, svc Service) (*Service, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/api/services/"+url.PathEscape(id), svc)
	if err != nil {
		return nil, err
	}

	var updated Service
	if err := decodeJSON(resp, &updated, http.StatusOK); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteService removes a service entry.
func (c *Client) DeleteService(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/services/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusOK)
}
