package decorapi

import "time"

// ============================================================================
// Shared Types
// ============================================================================

// Localized holds a piece of content in every language the storefront renders.
// The backend stores both translations on every localized field.
type Localized struct {
	En string `json:"en"`
	Vi string `json:"vi"`
}

// ============================================================================
// Auth Types
// ============================================================================

// Profile is the authenticated admin account as returned by the profile and
// login endpoints.
type Profile struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginRequest is the payload for POST /api/admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// OTPCode completes login for accounts with TOTP enabled. Omitted
	// otherwise.
	OTPCode string `json:"otpCode,omitempty"`
}

// LoginResponse is returned by a successful login. The token is an opaque
// bearer credential; in practice the backend issues a JWT, which the session
// layer exploits to schedule refreshes, but nothing here depends on that.
type LoginResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// RefreshResponse is returned by POST /api/admin/refresh-token.
type RefreshResponse struct {
	Token string `json:"token"`
}

// ============================================================================
// User Types
// ============================================================================

// User is a storefront customer account managed from the admin dashboard.
type User struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserCreate is the payload for creating a user.
type UserCreate struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

// UserUpdate is the payload for updating a user. Empty fields are left
// untouched by the backend.
type UserUpdate struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

// ============================================================================
// Cart Types
// ============================================================================

// CartItem is a single line in a customer's cart.
type CartItem struct {
	ProductID string    `json:"productId"`
	Name      Localized `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
}

// Cart is a customer's shopping cart.
type Cart struct {
	ID        string     `json:"_id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ============================================================================
// Catalog Types
// ============================================================================

// Product is a catalog product.
type Product struct {
	ID          string    `json:"_id,omitempty"`
	Name        Localized `json:"name"`
	Slug        string    `json:"slug,omitempty"`
	Description Localized `json:"description"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency,omitempty"`
	CategoryID  string    `json:"categoryId,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Featured    bool      `json:"featured,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// Category groups products; categories may nest one level via ParentID.
type Category struct {
	ID       string    `json:"_id,omitempty"`
	Name     Localized `json:"name"`
	Slug     string    `json:"slug,omitempty"`
	ParentID string    `json:"parentId,omitempty"`
	Status   string    `json:"status,omitempty"`
}

// Service is a site service entry (delivery, consulting, installation).
type Service struct {
	ID          string    `json:"_id,omitempty"`
	Name        Localized `json:"name"`
	Description Localized `json:"description"`
	Icon        string    `json:"icon,omitempty"`
	Status      string    `json:"status,omitempty"`
}

// ============================================================================
// Blog Types
// ============================================================================

// BlogPost is a blog article in both languages.
type BlogPost struct {
	ID          string     `json:"_id,omitempty"`
	Title       Localized  `json:"title"`
	Slug        string     `json:"slug,omitempty"`
	Excerpt     Localized  `json:"excerpt"`
	Content     Localized  `json:"content"`
	CategoryID  string     `json:"categoryId,omitempty"`
	Author      string     `json:"author,omitempty"`
	Status      string     `json:"status,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt,omitempty"`
}

// ============================================================================
// Inbox Types
// ============================================================================

// ContactMessage is a message submitted through the storefront contact form.
type ContactMessage struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// QuoteRequest is a price-quote request for a product.
type QuoteRequest struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ============================================================================
// Settings Types
// ============================================================================

// Settings is the site-wide configuration record. There is exactly one.
type Settings struct {
	SiteName     Localized         `json:"siteName"`
	ContactEmail string            `json:"contactEmail"`
	Phone        string            `json:"phone"`
	Address      Localized         `json:"address"`
	SocialLinks  map[string]string `json:"socialLinks,omitempty"`
	Currency     string            `json:"currency"`
	Languages    []string          `json:"languages"`
}
