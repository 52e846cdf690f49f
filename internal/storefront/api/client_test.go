package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	errx "github.com/qkart/storefront/internal/core/error"
	"github.com/qkart/storefront/internal/storefront/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(model.APIConfig{Endpoint: srv.URL + "/", Timeout: 2 * time.Second})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListProductsDecodesWireShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		_, _ = w.Write([]byte(`[{"name":"iPhone XR","category":"Phones","cost":100,"rating":4,"image":"https://i.imgur.com/lulqWzW.jpg","_id":"v4sLtEcMpzabRyfx"}]`))
	})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, model.Product{
		ID:       "v4sLtEcMpzabRyfx",
		Name:     "iPhone XR",
		Category: "Phones",
		Cost:     100,
		Rating:   4,
		Image:    "https://i.imgur.com/lulqWzW.jpg",
	}, products[0])
}

func TestFailureKinds(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    errx.Kind
		message string
	}{
		{"server error keeps message", 500, `{"success":false,"message":"Something went wrong"}`, errx.KindServer, "Something went wrong"},
		{"not found", 404, `{"success":false,"message":"No products"}`, errx.KindNotFound, "No products"},
		{"unauthorized", 401, `{"success":false,"message":"Protected route, Oauth2 Bearer token not found"}`, errx.KindUnauthorized, "Protected route, Oauth2 Bearer token not found"},
		{"non json failure body", 502, `<html>bad gateway</html>`, errx.KindServer, "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.ListProducts(context.Background())
			require.Error(t, err)

			var e *errx.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.status, e.Status)
			assert.Equal(t, tt.message, e.Message)
		})
	}
}

func TestInvalidJSONIsConnectivity(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	_, err := c.ListProducts(context.Background())
	assert.True(t, errx.IsKind(err, errx.KindConnectivity))
}

func TestUnreachableIsConnectivity(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	c := New(model.APIConfig{Endpoint: endpoint, Timeout: time.Second})
	_, err := c.GetCart(context.Background(), "t")
	assert.True(t, errx.IsKind(err, errx.KindConnectivity))
}

func TestSearchEncodesQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/search", r.URL.Path)
		assert.Equal(t, "smart phone&co", r.URL.Query().Get("value"))
		writeJSON(w, http.StatusOK, []model.Product{{ID: "a"}})
	})
	got, err := c.SearchProducts(context.Background(), "smart phone&co")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUpsertCartItemSendsBearerAndBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"productId": "p1", "qty": float64(0)}, body)
		_, _ = w.Write([]byte(`[]`))
	})

	entries, err := c.UpsertCartItem(context.Background(), "tok", "p1", 0)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestGetCartNullIsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})
	entries, err := c.GetCart(context.Background(), "tok")
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestLoginSuccessFlagFalse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "nope"})
	})
	_, err := c.Login(context.Background(), model.Credentials{Username: "u", Password: "p"})
	require.Error(t, err)
	assert.Equal(t, errx.KindRejected, errx.KindOf(err))
	assert.Equal(t, "nope", errx.MessageOf(err, ""))
}

func TestLoginRejectedStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Password is incorrect"})
	})
	_, err := c.Login(context.Background(), model.Credentials{Username: "u", Password: "p"})
	assert.Equal(t, errx.KindRejected, errx.KindOf(err))
	assert.Equal(t, "Password is incorrect", errx.MessageOf(err, ""))
}

func TestRegister(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var creds model.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		writeJSON(w, http.StatusCreated, map[string]any{"success": creds.Username != "taken"})
	})

	ok, err := c.Register(context.Background(), model.Credentials{Username: "fresh1", Password: "secret"})
	require.NoError(t, err)
	assert.True(t, ok.Success)

	taken, err := c.Register(context.Background(), model.Credentials{Username: "taken", Password: "secret"})
	require.NoError(t, err)
	assert.False(t, taken.Success)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestWithHTTPClient(t *testing.T) {
	var seen string
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = r.URL.String()
		rec := httptest.NewRecorder()
		writeJSON(rec, http.StatusOK, []model.Product{})
		return rec.Result(), nil
	})}

	c := New(model.APIConfig{Endpoint: "http://qkart.test/api/v1/"}, WithHTTPClient(hc))
	assert.Equal(t, "http://qkart.test/api/v1", c.BaseURL())

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, "http://qkart.test/api/v1/products", seen)
}
