package cart

import (
	"context"

	"github.com/catalog-dash-poc-v1/client/internal/catalog"
)

// Line is one product plus a quantity. A cart holds at most one Line per
// product id; quantity is always >= 1.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Repository persists cart lines across restarts. Only lines are persisted;
// cart visibility is session-local by contract.
type Repository interface {
	// Save replaces the persisted lines with the given snapshot.
	Save(ctx context.Context, lines []Line) error

	// Load retrieves the persisted lines. A missing cart is an empty slice,
	// not an error.
	Load(ctx context.Context) ([]Line, error)

	// Clear removes the persisted cart entirely.
	Clear(ctx context.Context) error
}
