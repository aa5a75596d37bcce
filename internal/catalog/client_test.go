package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	errx "github.com/catalog-dash-poc-v1/client/internal/core/error"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, TimeoutSeconds: 5}, tokens), srv
}

func TestFetchPageEndpointSelection(t *testing.T) {
	tests := []struct {
		name      string
		query     PageQuery
		wantPath  string
		wantQuery map[string]string
	}{
		{
			name:      "unfiltered listing",
			query:     PageQuery{Limit: 10, Skip: 20},
			wantPath:  "/products",
			wantQuery: map[string]string{"limit": "10", "skip": "20"},
		},
		{
			name:      "search takes precedence over category",
			query:     PageQuery{Search: "phone", Category: "laptops", Limit: 10},
			wantPath:  "/products/search",
			wantQuery: map[string]string{"q": "phone", "limit": "10", "skip": "0"},
		},
		{
			name:      "category scoped",
			query:     PageQuery{Category: "laptops", Limit: 5, Skip: 5},
			wantPath:  "/products/category/laptops",
			wantQuery: map[string]string{"limit": "5", "skip": "5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			var gotQuery map[string]string

			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = map[string]string{}
				for k := range r.URL.Query() {
					gotQuery[k] = r.URL.Query().Get(k)
				}
				writeJSON(w, ProductPage{Total: 1})
			}), nil)

			_, err := client.FetchPage(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, tt.wantQuery, gotQuery)
		})
	}
}

func TestBearerTokenAttachment(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, ProductPage{})
	})

	client, _ := newTestClient(t, handler, staticToken("abc123"))
	_, err := client.FetchPage(context.Background(), PageQuery{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)

	client, _ = newTestClient(t, handler, staticToken(""))
	_, err = client.FetchPage(context.Background(), PageQuery{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "no header when no token is present")
}

func TestLogin(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Username != "emilys" || creds.Password != "emilyspass" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{
			"id": 1, "username": "emilys", "email": "emily@x.com",
			"firstName": "Emily", "lastName": "Johnson",
			"token": "tok", "refreshToken": "refresh",
		})
	}), nil)

	sess, err := client.Login(context.Background(), Credentials{Username: "emilys", Password: "emilyspass"})
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, "refresh", sess.RefreshToken)
	assert.Equal(t, "Emily", sess.User.FirstName)

	_, err = client.Login(context.Background(), Credentials{Username: "emilys", Password: "wrong"})
	require.Error(t, err)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.Equal(t, errx.AuthErrorMessage, e.Message)
}

func TestLoginAcceptsAccessTokenField(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"id": 1, "username": "emilys", "accessToken": "newer"})
	}), nil)

	sess, err := client.Login(context.Background(), Credentials{Username: "emilys", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "newer", sess.Token)
}

func TestCreateProduct(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/products/add", r.URL.Path)

		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Widget", in["title"])
		assert.InDelta(t, 19.99, in["price"], 0.0001, "price travels as a bare JSON number")

		writeJSON(w, map[string]any{"id": 101, "title": in["title"], "price": in["price"]})
	}), staticToken("tok"))

	created, err := client.CreateProduct(context.Background(), ProductInput{
		Title:       "Widget",
		Description: "A very useful widget.",
		Price:       decimal.NewFromFloat(19.99),
		Category:    "tools",
	})
	require.NoError(t, err)
	assert.Equal(t, 101, created.ID, "server-assigned id comes back on the created record")
}

func TestUpdateProduct(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/products/5", r.URL.Path)
		writeJSON(w, map[string]any{"id": 5, "title": "Renamed"})
	}), staticToken("tok"))

	updated, err := client.UpdateProduct(context.Background(), 5, ProductInput{
		Title:       "Renamed",
		Description: "Renamed for clarity.",
		Price:       decimal.NewFromInt(10),
		Category:    "tools",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.ID)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestFetchCategories(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/categories", r.URL.Path)
		writeJSON(w, []Category{{Slug: "beauty", Name: "Beauty"}, {Slug: "laptops", Name: "Laptops"}})
	}), nil)

	categories, err := client.FetchCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "beauty", categories[0].Slug)
}

func TestServerErrorsSurfaceStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}), nil)

	_, err := client.FetchPage(context.Background(), PageQuery{Limit: 10})
	require.Error(t, err)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
}
