package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	errx "github.com/catalog-dash-poc-v1/client/internal/core/error"
	logx "github.com/catalog-dash-poc-v1/client/pkg/logger"
	"github.com/go-resty/resty/v2"
)

type Config struct {
	BaseURL        string `split_words:"true" default:"https://dummyjson.com"`
	TimeoutSeconds int    `split_words:"true" default:"10"`
}

// TokenSource supplies the current bearer token, if any. The session store
// satisfies this so every request picks up the live session without the
// client knowing about authentication state.
type TokenSource interface {
	Token() string
}

// Client talks to the remote catalog service. All methods translate transport
// failures and non-2xx responses into errx errors; callers never see raw
// resty responses.
type Client struct {
	http *resty.Client
}

func NewClient(cfg Config, tokens TokenSource) *Client {
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if tokens == nil {
			return nil
		}
		if token := tokens.Token(); token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	})

	return &Client{http: rc}
}

// loginResponse is the wire shape of POST /auth/login: user fields flattened
// alongside the tokens.
type loginResponse struct {
	User
	Token        string `json:"token"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login exchanges credentials for a session. A non-2xx response is an
// auth-class error carrying the upstream status.
func (c *Client) Login(ctx context.Context, creds Credentials) (Session, error) {
	var out loginResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(creds).
		SetResult(&out).
		Post("/auth/login")
	if err != nil {
		return Session{}, errx.WrapHTTP(err, 0, "")
	}
	if resp.IsError() {
		logx.Warn().Int("status", resp.StatusCode()).Str("username", creds.Username).Msg("login rejected")
		return Session{}, errx.New(fmt.Errorf("login failed: %s", resp.Status()), resp.StatusCode(), errx.AuthErrorMessage)
	}

	token := out.Token
	if token == "" {
		token = out.AccessToken
	}
	return Session{User: out.User, Token: token, RefreshToken: out.RefreshToken}, nil
}

// FetchPage retrieves one listing page. Endpoint selection: a non-empty
// search term wins and uses the full-text search endpoint; otherwise a
// non-empty category scopes the listing; otherwise the plain listing is used.
func (c *Client) FetchPage(ctx context.Context, q PageQuery) (ProductPage, error) {
	var page ProductPage

	req := c.http.R().
		SetContext(ctx).
		SetResult(&page).
		SetQueryParam("limit", strconv.Itoa(q.Limit)).
		SetQueryParam("skip", strconv.Itoa(q.Skip))

	endpoint := "/products"
	switch {
	case q.Search != "":
		endpoint = "/products/search"
		req.SetQueryParam("q", q.Search)
	case q.Category != "":
		endpoint = "/products/category/" + url.PathEscape(q.Category)
	}

	resp, err := req.Get(endpoint)
	if err != nil {
		return ProductPage{}, errx.WrapHTTP(err, 0, "")
	}
	if resp.IsError() {
		return ProductPage{}, errx.Upstream(resp.StatusCode(), string(resp.Body()))
	}

	return page, nil
}

// FetchCategories returns the category reference list used to populate the
// filter controls.
func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	var categories []Category

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&categories).
		Get("/products/categories")
	if err != nil {
		return nil, errx.WrapHTTP(err, 0, "")
	}
	if resp.IsError() {
		return nil, errx.Upstream(resp.StatusCode(), string(resp.Body()))
	}

	return categories, nil
}

// CreateProduct submits a new record and returns it with the server-assigned
// id. The service does not durably persist the record for later reads; the
// mutation layer compensates by patching cached pages.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	var created Product

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&created).
		Post("/products/add")
	if err != nil {
		return Product{}, errx.WrapHTTP(err, 0, "")
	}
	if resp.IsError() {
		return Product{}, errx.Upstream(resp.StatusCode(), string(resp.Body()))
	}

	return created, nil
}

// UpdateProduct submits changed fields for an existing record and returns the
// updated record.
func (c *Client) UpdateProduct(ctx context.Context, id int, in ProductInput) (Product, error) {
	var updated Product

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&updated).
		Put(fmt.Sprintf("/products/%d", id))
	if err != nil {
		return Product{}, errx.WrapHTTP(err, 0, "")
	}
	if resp.IsError() {
		return Product{}, errx.Upstream(resp.StatusCode(), string(resp.Body()))
	}

	return updated, nil
}
