package dashboard

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/catalog-dash-poc-v1/client/internal/cart"
	"github.com/catalog-dash-poc-v1/client/internal/catalog"
	errx "github.com/catalog-dash-poc-v1/client/internal/core/error"
	"github.com/catalog-dash-poc-v1/client/internal/mutation"
	"github.com/catalog-dash-poc-v1/client/internal/query"
	"github.com/catalog-dash-poc-v1/client/internal/session"
	logx "github.com/catalog-dash-poc-v1/client/pkg/logger"
)

type Config struct {
	PageSize         int `split_words:"true" default:"10"`
	SearchDebounceMS int `envconfig:"SEARCH_DEBOUNCE_MS" default:"500"`
	MaxNotifications int `split_words:"true" default:"20"`
}

// Authenticator is the slice of the catalog client the login flow needs.
type Authenticator interface {
	Login(ctx context.Context, creds catalog.Credentials) (catalog.Session, error)
}

// Dashboard wires the stores and layers together and enforces the access
// rule the router enforced in the original: every catalog-facing operation
// requires an authenticated session.
type Dashboard struct {
	cfg      Config
	auth     Authenticator
	sessions *session.Store
	cart     *cart.Store
	queries  *query.Service
	writes   *mutation.Service
	debounce *query.Debouncer
	notes    *feed

	mu        sync.Mutex
	search    string
	category  string
	skip      int
	lastTotal int
}

func New(cfg Config, auth Authenticator, sessions *session.Store, cartStore *cart.Store, queries *query.Service, writes *mutation.Service) *Dashboard {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	if cfg.SearchDebounceMS <= 0 {
		cfg.SearchDebounceMS = 500
	}

	return &Dashboard{
		cfg:      cfg,
		auth:     auth,
		sessions: sessions,
		cart:     cartStore,
		queries:  queries,
		writes:   writes,
		debounce: query.NewDebouncer(time.Duration(cfg.SearchDebounceMS) * time.Millisecond),
		notes:    newFeed(cfg.MaxNotifications),
	}
}

// Bootstrap restores persisted session and cart state on cold start. The
// cart always comes back closed. Restore failures are reported but leave the
// dashboard usable in the unauthenticated, empty-cart state.
func (d *Dashboard) Bootstrap(ctx context.Context) error {
	if err := d.sessions.Load(ctx); err != nil {
		logx.Warn().Err(err).Msg("could not restore session")
		return err
	}
	if err := d.cart.Load(ctx); err != nil {
		logx.Warn().Err(err).Msg("could not restore cart")
		return err
	}
	return nil
}

// Login exchanges credentials for a session and stores it. A rejected login
// surfaces as a single form-level notification; session state is unchanged.
func (d *Dashboard) Login(ctx context.Context, creds catalog.Credentials) error {
	sess, err := d.auth.Login(ctx, creds)
	if err != nil {
		d.notes.push(LevelError, "login failed: check your username and password")
		return err
	}

	d.sessions.Login(ctx, sess)
	logx.Info().Str("username", sess.User.Username).Msg("logged in")
	return nil
}

// Logout clears the session, in memory and persisted.
func (d *Dashboard) Logout(ctx context.Context) {
	d.debounce.Stop()
	d.sessions.Logout(ctx)
	logx.Info().Msg("logged out")
}

// IsAuthenticated reports whether the dashboard is accessible.
func (d *Dashboard) IsAuthenticated() bool {
	return d.sessions.IsAuthenticated()
}

// Products fetches the listing for the current search/category/page state.
func (d *Dashboard) Products(ctx context.Context) (query.Result, error) {
	if err := d.requireSession(); err != nil {
		return query.Result{}, err
	}

	res := d.queries.Products(ctx, d.currentKey())
	if res.Err == nil {
		d.mu.Lock()
		d.lastTotal = res.Page.Total
		d.mu.Unlock()
	}
	return res, nil
}

// Categories returns the filter reference list.
func (d *Dashboard) Categories(ctx context.Context) ([]catalog.Category, error) {
	if err := d.requireSession(); err != nil {
		return nil, err
	}
	return d.queries.Categories(ctx)
}

// SetSearch records the term, resets paging, and schedules a debounced fetch
// for when the input goes quiet. The eventual result is delivered to
// onResult; keystrokes inside the window supersede earlier ones.
func (d *Dashboard) SetSearch(ctx context.Context, term string, onResult func(query.Result)) {
	d.mu.Lock()
	d.search = term
	d.skip = 0
	d.mu.Unlock()

	d.debounce.Schedule(func() {
		res, err := d.Products(ctx)
		if err != nil {
			return
		}
		if onResult != nil {
			onResult(res)
		}
	})
}

// SetCategory switches the category filter and resets paging. Search keeps
// precedence over the category until it is cleared.
func (d *Dashboard) SetCategory(slug string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.category = slug
	d.skip = 0
}

// NextPage advances one page unless the end of the collection is reached.
func (d *Dashboard) NextPage() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.skip+d.cfg.PageSize < d.lastTotal {
		d.skip += d.cfg.PageSize
	}
}

// PrevPage moves one page back, flooring at the first page.
func (d *Dashboard) PrevPage() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.skip -= d.cfg.PageSize
	if d.skip < 0 {
		d.skip = 0
	}
}

// AddToCart merges the product into the cart and opens the drawer.
func (d *Dashboard) AddToCart(ctx context.Context, product catalog.Product) error {
	if err := d.requireSession(); err != nil {
		return err
	}
	d.cart.AddItem(ctx, product)
	return nil
}

// Cart exposes the cart store for drawer rendering and quantity controls.
func (d *Dashboard) Cart() *cart.Store {
	return d.cart
}

// SubmitCreate runs the create mutation and reports the outcome on the
// notification feed.
func (d *Dashboard) SubmitCreate(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	if err := d.requireSession(); err != nil {
		return catalog.Product{}, err
	}

	created, err := d.writes.Create(ctx, in)
	if err != nil {
		d.notes.push(LevelError, "could not create product")
		return catalog.Product{}, err
	}
	d.notes.push(LevelSuccess, "product created")
	return created, nil
}

// SubmitEdit runs the update mutation and reports the outcome on the
// notification feed.
func (d *Dashboard) SubmitEdit(ctx context.Context, id int, in catalog.ProductInput) (catalog.Product, error) {
	if err := d.requireSession(); err != nil {
		return catalog.Product{}, err
	}

	updated, err := d.writes.Update(ctx, id, in)
	if err != nil {
		d.notes.push(LevelError, "could not update product")
		return catalog.Product{}, err
	}
	d.notes.push(LevelSuccess, "product updated")
	return updated, nil
}

// MutationState reports the current submission state, for disabling form
// controls while a write is pending.
func (d *Dashboard) MutationState() mutation.State {
	return d.writes.State()
}

// Notifications returns the transient feed, oldest first.
func (d *Dashboard) Notifications() []Notification {
	return d.notes.list()
}

// currentKey builds the cache key for the current filter and paging state.
func (d *Dashboard) currentKey() catalog.PageQuery {
	d.mu.Lock()
	defer d.mu.Unlock()
	return catalog.PageQuery{
		Search:   d.search,
		Category: d.category,
		Limit:    d.cfg.PageSize,
		Skip:     d.skip,
	}
}

// requireSession is the route guard: unauthenticated callers are bounced the
// way the original redirected to /login.
func (d *Dashboard) requireSession() error {
	if d.sessions.IsAuthenticated() {
		return nil
	}
	return errx.New(nil, http.StatusUnauthorized, errx.AuthErrorMessage)
}
