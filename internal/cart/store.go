package cart

import (
	"context"
	"sync"

	"github.com/catalog-dash-poc-v1/client/internal/catalog"
	logx "github.com/catalog-dash-poc-v1/client/pkg/logger"
	"github.com/shopspring/decimal"
)

// Store owns the shopping cart state. All mutations are atomic, keep lines in
// insertion order, and write the resulting snapshot through the repository.
// Mutations never fail from the caller's point of view: a persistence error
// is logged and the in-memory state stays authoritative for the session.
type Store struct {
	mu    sync.Mutex
	lines []Line
	open  bool
	repo  Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Load restores persisted lines on cold start. Visibility always starts
// closed regardless of how the previous session ended.
func (s *Store) Load(ctx context.Context) error {
	lines, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = lines
	s.open = false
	return nil
}

// AddItem merges the product into the cart: an existing line's quantity grows
// by one, otherwise a new line with quantity 1 is appended. Adding always
// opens the cart.
func (s *Store) AddItem(ctx context.Context, product catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.lines {
		if s.lines[i].Product.ID == product.ID {
			s.lines[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, Line{Product: product, Quantity: 1})
	}
	s.open = true

	s.persist(ctx)
}

// RemoveItem deletes the line for the given product id. Absent ids are a
// silent no-op.
func (s *Store) RemoveItem(ctx context.Context, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// UpdateQuantity applies a delta to the line's quantity. A result of zero or
// below leaves the quantity unchanged: decrementing past 1 is rejected, not
// floored and not treated as removal. Absent ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID != productID {
			continue
		}
		if next := s.lines[i].Quantity + delta; next > 0 {
			s.lines[i].Quantity = next
			s.persist(ctx)
		}
		return
	}
}

// ToggleCart flips the drawer visibility. Visibility is never persisted.
func (s *Store) ToggleCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	if err := s.repo.Clear(ctx); err != nil {
		logx.Error().Err(err).Msg("failed to clear persisted cart")
	}
}

// TotalItems returns the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the exact sum of price times quantity over all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// IsOpen reports the drawer visibility.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// persist writes the current snapshot through the repository. Callers must
// hold the lock.
func (s *Store) persist(ctx context.Context) {
	snapshot := make([]Line, len(s.lines))
	copy(snapshot, s.lines)
	if err := s.repo.Save(ctx, snapshot); err != nil {
		logx.Error().Err(err).Int("lines", len(snapshot)).Msg("failed to persist cart")
	}
}
