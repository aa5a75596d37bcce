package session

import (
	"context"

	"github.com/catalog-dash-poc-v1/client/internal/catalog"
)

// Repository persists the current session across restarts. Logout must clear
// the persisted state, not just memory.
type Repository interface {
	// Save replaces the persisted session.
	Save(ctx context.Context, sess catalog.Session) error

	// Load retrieves the persisted session. ok is false when none is stored.
	Load(ctx context.Context) (sess catalog.Session, ok bool, err error)

	// Clear removes the persisted session.
	Clear(ctx context.Context) error
}
