package clients_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"marketplace-client/clients"
	apperrors "marketplace-client/errors"
	"marketplace-client/logger"
	"marketplace-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method      string
	RequestURI  string
	ContentType string
	Auth        string
	RequestID   string
	Body        string
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  http.HandlerFunc
}

func newFakeAPI(t *testing.T, h http.HandlerFunc) (*fakeAPI, *clients.MarketplaceClient) {
	t.Helper()
	f := &fakeAPI{handler: h}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method:      r.Method,
			RequestURI:  r.RequestURI,
			ContentType: r.Header.Get("Content-Type"),
			Auth:        r.Header.Get("Authorization"),
			RequestID:   r.Header.Get("X-Request-ID"),
			Body:        string(body),
		})
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		f.handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, clients.NewMarketplaceClient(srv.URL+"/", 5*time.Second)
}

func (f *fakeAPI) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestSignIn(t *testing.T) {
	t.Run("success sends form body", func(t *testing.T) {
		api, c := newFakeAPI(t, reply(http.StatusOK, `{"access_token":"tok-1","token_type":"bearer"}`))

		out, err := c.SignIn(context.Background(), models.Credentials{Username: "an", Password: "p&ss"})
		require.NoError(t, err)
		assert.Equal(t, "tok-1", out.AccessToken)

		req := api.last(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/signin", req.RequestURI)
		assert.Equal(t, "application/x-www-form-urlencoded", req.ContentType)
		assert.Equal(t, "password=p%26ss&username=an", req.Body)
		assert.Empty(t, req.Auth)
	})

	t.Run("failure carries detail", func(t *testing.T) {
		_, c := newFakeAPI(t, reply(http.StatusBadRequest, `{"detail":"Invalid username or password"}`))

		_, err := c.SignIn(context.Background(), models.Credentials{Username: "an", Password: "bad"})
		var apiErr *apperrors.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.Code)
		assert.Equal(t, "Invalid username or password", apiErr.Message)
		assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
	})
}

func TestSignUp_SendsJSON(t *testing.T) {
	api, c := newFakeAPI(t, reply(http.StatusOK, `{"msg":"Signup successful"}`))

	out, err := c.SignUp(context.Background(), models.Credentials{Username: "an", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Signup successful", out.Text())

	req := api.last(t)
	assert.Equal(t, "/signup", req.RequestURI)
	assert.Equal(t, "application/json", req.ContentType)
	assert.JSONEq(t, `{"username":"an","password":"pw"}`, req.Body)
}

func TestCreateProduct_AttachesBearer(t *testing.T) {
	api, c := newFakeAPI(t, reply(http.StatusOK, `{"msg":"Product created","id":"p-1"}`))

	out, err := c.CreateProduct(context.Background(), "tok", models.ProductInput{Name: "Chair", Description: "Oak", Price: 120.5, Location: "Hanoi"})
	require.NoError(t, err)
	assert.Equal(t, "p-1", out.ID)

	req := api.last(t)
	assert.Equal(t, "Bearer tok", req.Auth)
	assert.JSONEq(t, `{"name":"Chair","description":"Oak","price":120.5,"location":"Hanoi"}`, req.Body)
}

func TestSearchProducts(t *testing.T) {
	t.Run("query string keeps q then location", func(t *testing.T) {
		api, c := newFakeAPI(t, reply(http.StatusOK, `[{"id":"p1","name":"chair","price":10,"location":"Hanoi"}]`))

		products, err := c.SearchProducts(context.Background(), "chair", "Hanoi")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "p1", products[0].ID)

		req := api.last(t)
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/products/search?q=chair&location=Hanoi", req.RequestURI)
		assert.Empty(t, req.Auth)
	})

	t.Run("values are escaped", func(t *testing.T) {
		api, c := newFakeAPI(t, reply(http.StatusOK, `[]`))

		products, err := c.SearchProducts(context.Background(), "bàn & ghế", "")
		require.NoError(t, err)
		assert.Empty(t, products)
		assert.Equal(t, "/products/search?q=b%C3%A0n+%26+gh%E1%BA%BF&location=", api.last(t).RequestURI)
	})
}

func TestSearchProducts_MixedRecordTypes(t *testing.T) {
	_, c := newFakeAPI(t, reply(http.StatusOK, `[{"id":"a","name":"Chair","price":"free"},{"id":7,"name":"Lamp","price":5}]`))

	products, err := c.SearchProducts(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "free", products[0].DisplayPrice())
	assert.Equal(t, "7", products[1].ID)
}

func TestAddToCart(t *testing.T) {
	api, c := newFakeAPI(t, reply(http.StatusOK, `{"msg":"Product added to cart"}`))

	require.NoError(t, c.AddToCart(context.Background(), "tok", "p-9"))
	req := api.last(t)
	assert.Equal(t, "/cart/add", req.RequestURI)
	assert.Equal(t, "Bearer tok", req.Auth)
	assert.JSONEq(t, `{"product_id":"p-9"}`, req.Body)
}

func TestViewCartAndCheckout(t *testing.T) {
	api, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cart":
			_, _ = io.WriteString(w, `[{"id":"p1","name":"Lamp","price":"20"}]`)
		case "/cart/checkout":
			_, _ = io.WriteString(w, `{"msg":"Checkout successful"}`)
		}
	})

	items, err := c.ViewCart(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "20", items[0].DisplayPrice())
	assert.Equal(t, "Bearer tok", api.last(t).Auth)

	msg, err := c.Checkout(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Checkout successful", msg.Text())
	assert.Equal(t, http.MethodPost, api.last(t).Method)
}

func TestDecodeErrors(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		_, c := newFakeAPI(t, reply(http.StatusUnauthorized, `{"detail":"Not authenticated"}`))
		_, err := c.ViewCart(context.Background(), "")
		assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("non json error body falls back to status text", func(t *testing.T) {
		_, c := newFakeAPI(t, reply(http.StatusBadGateway, `<html>bad gateway</html>`))
		_, err := c.SearchProducts(context.Background(), "", "")
		var apiErr *apperrors.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Bad Gateway", apiErr.Message)
	})

	t.Run("garbage success body", func(t *testing.T) {
		_, c := newFakeAPI(t, reply(http.StatusOK, `not json`))
		_, err := c.SearchProducts(context.Background(), "", "")
		assert.Error(t, err)
	})

	t.Run("transport failure", func(t *testing.T) {
		c := clients.NewMarketplaceClient("http://127.0.0.1:1", time.Second)
		_, err := c.SearchProducts(context.Background(), "", "")
		require.Error(t, err)
		var apiErr *apperrors.Error
		assert.False(t, errors.As(err, &apiErr))
	})
}

func TestRequestIDIsForwarded(t *testing.T) {
	api, c := newFakeAPI(t, reply(http.StatusOK, `[]`))

	ctx := logger.WithContext(context.Background(), "rid-7")
	_, err := c.SearchProducts(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, "rid-7", api.last(t).RequestID)
}

type observed struct {
	endpoint string
	status   int
	err      error
}

type fakeObserver struct {
	mu    sync.Mutex
	calls []observed
}

func (o *fakeObserver) ObserveCall(endpoint string, status int, d time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, observed{endpoint, status, err})
}

func TestObserverSeesEveryCall(t *testing.T) {
	_, c := newFakeAPI(t, reply(http.StatusNotFound, `{"detail":"nope"}`))
	obs := &fakeObserver{}
	c.WithObserver(obs)

	_, _ = c.SearchProducts(context.Background(), "x", "y")

	require.Len(t, obs.calls, 1)
	assert.Equal(t, "/products/search", obs.calls[0].endpoint)
	assert.Equal(t, http.StatusNotFound, obs.calls[0].status)
	assert.NoError(t, obs.calls[0].err)
}

func TestDecodeJSON_NilOutDiscardsBody(t *testing.T) {
	rec := httptest.NewRecorder()
	_ = json.NewEncoder(rec).Encode(map[string]string{"msg": "ok"})
	assert.NoError(t, clients.DecodeJSON(rec.Result(), nil))
}
