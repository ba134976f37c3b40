// Package apiclient talks to a remote Frutería REST API: products plus stock
// entries and exits, addressed by integer ID.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"fruteria/internal/models"
)

// Config holds the remote API location.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a resty-backed client for the nine inventory endpoints.
type Client struct {
	httpClient *resty.Client
}

// New builds a Client using the provided configuration values.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{httpClient: restyClient}
}

// apiError mirrors the error body returned by the inventory API.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do executes a request and maps transport failures and HTTP status codes
// onto the models error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	apiErr := new(apiError)
	req := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, models.ErrStoreUnavailable, err)
	}
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	detail := apiErr.Message
	if apiErr.Error != "" {
		detail = strings.TrimSpace(detail + " " + apiErr.Error)
	}
	if detail == "" {
		detail = resp.Status()
	}

	var kind error
	switch resp.StatusCode() {
	case http.StatusNotFound:
		kind = models.ErrNotFound
	case http.StatusConflict:
		kind = models.ErrInsufficientStock
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		kind = models.ErrValidation
	default:
		kind = models.ErrStoreUnavailable
	}
	return fmt.Errorf("%s %s returned %d (%s): %w", method, path, resp.StatusCode(), detail, kind)
}

// withoutID re-encodes v as a JSON object minus its "id" key so the remote
// store assigns one.
func withoutID(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	var out map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber() // keep decimal quantities and prices digit for digit
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	delete(out, "id")
	return out, nil
}

// ListProducts calls GET /products.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct calls GET /products/:id.
func (c *Client) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	out := new(models.Product)
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct calls POST /products.
func (c *Client) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	body, err := withoutID(p)
	if err != nil {
		return nil, err
	}
	out := new(models.Product)
	if err := c.do(ctx, http.MethodPost, "/products", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// PatchProduct calls PATCH /products/:id with a partial body.
func (c *Client) PatchProduct(ctx context.Context, id uint, patch interface{}) (*models.Product, error) {
	body, err := withoutID(patch)
	if err != nil {
		return nil, err
	}
	out := new(models.Product)
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/products/%d", id), body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteProduct calls DELETE /products/:id.
func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}
