package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "marketplace-client/errors"
	"marketplace-client/logger"
	"marketplace-client/models"

	"go.uber.org/zap"
)

const maxBodySize = 10 << 20

// CallObserver is notified after every API call. status is 0 when the
// request never got a response.
type CallObserver interface {
	ObserveCall(endpoint string, status int, duration time.Duration, err error)
}

// MarketplaceClient calls the marketplace REST API. Methods that need a
// signed-in user take the bearer token explicitly.
type MarketplaceClient struct {
	baseURL  string
	client   *http.Client
	observer CallObserver
}

func NewMarketplaceClient(baseURL string, timeout time.Duration) *MarketplaceClient {
	return &MarketplaceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// WithObserver attaches a CallObserver, typically a metrics sink
func (m *MarketplaceClient) WithObserver(o CallObserver) *MarketplaceClient {
	m.observer = o
	return m
}

// BaseURL returns the API root requests are sent to
func (m *MarketplaceClient) BaseURL() string {
	return m.baseURL
}

func (m *MarketplaceClient) Do(ctx context.Context, method, path string, query url.Values, headers http.Header, body io.Reader) (*http.Response, error) {
	u := m.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}
	req.Header.Set("Accept", "application/json")
	if rid := logger.RequestID(ctx); rid != "unknown" {
		req.Header.Set("X-Request-ID", rid)
	}

	endpoint := path
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}

	start := time.Now()
	resp, err := m.client.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if m.observer != nil {
		m.observer.ObserveCall(endpoint, status, time.Since(start), err)
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}

	logger.Debug(ctx, "api call",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
	)
	return resp, nil
}

// SignIn exchanges form-encoded credentials for an access token
func (m *MarketplaceClient) SignIn(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	headers := http.Header{}
	headers.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.Do(ctx, http.MethodPost, "/signin", nil, headers, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	var out models.TokenResponse
	if err := DecodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignUp registers a new user. It does not sign in.
func (m *MarketplaceClient) SignUp(ctx context.Context, creds models.Credentials) (*models.Message, error) {
	var out models.Message
	if err := m.sendJSON(ctx, http.MethodPost, "/signup", "", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct posts a new product listing
func (m *MarketplaceClient) CreateProduct(ctx context.Context, token string, input models.ProductInput) (*models.Message, error) {
	var out models.Message
	if err := m.sendJSON(ctx, http.MethodPost, "/products", token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchProducts looks up products whose name contains query, optionally in
// one location. Both parameters are always sent.
func (m *MarketplaceClient) SearchProducts(ctx context.Context, query, location string) ([]models.Product, error) {
	// built by hand: url.Values.Encode sorts keys and q must come first
	path := "/products/search?q=" + url.QueryEscape(query) + "&location=" + url.QueryEscape(location)

	resp, err := m.Do(ctx, http.MethodGet, path, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := DecodeJSON(resp, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// AddToCart puts a product in the signed-in user's cart. The response body
// carries nothing the client uses and is discarded.
func (m *MarketplaceClient) AddToCart(ctx context.Context, token, productID string) error {
	return m.sendJSON(ctx, http.MethodPost, "/cart/add", token, models.CartAction{ProductID: productID}, nil)
}

// ViewCart returns the products in the signed-in user's cart
func (m *MarketplaceClient) ViewCart(ctx context.Context, token string) ([]models.Product, error) {
	resp, err := m.Do(ctx, http.MethodGet, "/cart", nil, bearer(token), nil)
	if err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := DecodeJSON(resp, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Checkout empties the signed-in user's cart into an order
func (m *MarketplaceClient) Checkout(ctx context.Context, token string) (*models.Message, error) {
	resp, err := m.Do(ctx, http.MethodPost, "/cart/checkout", nil, bearer(token), nil)
	if err != nil {
		return nil, err
	}

	var out models.Message
	if err := DecodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MarketplaceClient) sendJSON(ctx context.Context, method, path, token string, in, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	headers := bearer(token)
	headers.Set("Content-Type", "application/json")

	resp, err := m.Do(ctx, method, path, nil, headers, bytes.NewReader(b))
	if err != nil {
		return err
	}
	return DecodeJSON(resp, out)
}

func bearer(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// DecodeJSON closes the body and decodes it into out. Non-success statuses
// become *apperrors.Error carrying the server's detail text. A nil out
// discards the body.
func DecodeJSON(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var msg models.Message
		detail := ""
		if json.Unmarshal(body, &msg) == nil {
			detail = msg.DetailText()
		}
		return apperrors.FromStatus(resp.StatusCode, detail)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
