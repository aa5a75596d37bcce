package mutation

import (
	"context"
	"sync"

	"github.com/catalog-dash-poc-v1/client/internal/catalog"
	errx "github.com/catalog-dash-poc-v1/client/internal/core/error"
	logx "github.com/catalog-dash-poc-v1/client/pkg/logger"
)

// State tracks a submission through idle -> pending -> succeeded | failed.
// Pending disables the submitting form's controls; failed keeps the dialog
// open with the entered values intact.
type State int

const (
	StateIdle State = iota
	StatePending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Writer is the slice of the catalog client the mutation layer needs.
type Writer interface {
	CreateProduct(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	UpdateProduct(ctx context.Context, id int, in catalog.ProductInput) (catalog.Product, error)
}

// Service issues create/update writes and, on success, publishes a
// cache-update event so cached listings reflect the write without a refetch.
// Failures publish nothing: the cache is never partially mutated.
type Service struct {
	writer  Writer
	patcher Patcher

	mu        sync.Mutex
	state     State
	lastInput catalog.ProductInput
	hasInput  bool
}

func NewService(writer Writer, patcher Patcher) *Service {
	return &Service{writer: writer, patcher: patcher}
}

// Create validates and submits a new product. On success the created record
// (with its server-assigned id) is published as an EventCreated patch.
func (s *Service) Create(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	if fields := ValidateInput(in); fields != nil {
		s.fail(in)
		return catalog.Product{}, errx.WrapValidation(fields)
	}

	s.begin(in)
	created, err := s.writer.CreateProduct(ctx, in)
	if err != nil {
		logx.Warn().Err(err).Str("title", in.Title).Msg("create product failed")
		s.fail(in)
		return catalog.Product{}, err
	}

	s.patcher.Apply(Event{Kind: EventCreated, Product: created})
	s.succeed()
	logx.Info().Int("id", created.ID).Str("title", created.Title).Msg("product created")
	return created, nil
}

// Update validates and submits changed fields for an existing product. On
// success the returned record is published as an EventUpdated patch.
func (s *Service) Update(ctx context.Context, id int, in catalog.ProductInput) (catalog.Product, error) {
	if fields := ValidateInput(in); fields != nil {
		s.fail(in)
		return catalog.Product{}, errx.WrapValidation(fields)
	}

	s.begin(in)
	updated, err := s.writer.UpdateProduct(ctx, id, in)
	if err != nil {
		logx.Warn().Err(err).Int("id", id).Msg("update product failed")
		s.fail(in)
		return catalog.Product{}, err
	}

	s.patcher.Apply(Event{Kind: EventUpdated, Product: updated})
	s.succeed()
	logx.Info().Int("id", updated.ID).Str("title", updated.Title).Msg("product updated")
	return updated, nil
}

// State reports the current submission state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastInput returns the most recently rejected submission, so a failed form
// can be re-rendered with the user's values.
func (s *Service) LastInput() (catalog.ProductInput, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastInput, s.hasInput
}

func (s *Service) begin(in catalog.ProductInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StatePending
	s.lastInput = in
	s.hasInput = true
}

func (s *Service) succeed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateSucceeded
	s.lastInput = catalog.ProductInput{}
	s.hasInput = false
}

func (s *Service) fail(in catalog.ProductInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateFailed
	s.lastInput = in
	s.hasInput = true
}
