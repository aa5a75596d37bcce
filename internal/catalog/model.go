package catalog

import "github.com/shopspring/decimal"

func init() {
	// The catalog service speaks bare JSON numbers for prices and ratings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog record. The ID is server-assigned and stable; clients
// only ever change a product through the update mutation.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Thumbnail   string          `json:"thumbnail"`
	Rating      decimal.Decimal `json:"rating"`
}

// ProductPage is one page of a listing plus the collection total, the shape
// every listing endpoint returns.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// PageQuery addresses one page of the catalog. Search takes precedence over
// Category when both are set; with both empty the unfiltered listing is used.
// The zero value is a valid "first page, no filters" query, and the struct is
// comparable so it doubles as the page-cache key.
type PageQuery struct {
	Search   string
	Category string
	Limit    int
	Skip     int
}

// Category is one entry of the filter reference list.
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// User is the authenticated user's profile as returned by the login endpoint.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	Image     string `json:"image"`
}

// Session is a user profile plus bearer token. RefreshToken is stored but no
// refresh flow is implemented.
type Session struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProductInput is the authoring form payload for create and update mutations.
// Validation tags carry the form contracts: title >= 3 chars, description
// >= 10 chars, price > 0, category required.
type ProductInput struct {
	Title       string          `json:"title" validate:"required,min=3"`
	Description string          `json:"description" validate:"required,min=10"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	Category    string          `json:"category" validate:"required"`
}
