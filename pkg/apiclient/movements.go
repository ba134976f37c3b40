package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"fruteria/internal/models"
)

const (
	entryPath = "/stock/entry"
	exitPath  = "/stock/exit"
)

// ListEntries calls GET /stock/entry.
func (c *Client) ListEntries(ctx context.Context) ([]models.StockEntry, error) {
	var out []models.StockEntry
	if err := c.do(ctx, http.MethodGet, entryPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEntry calls GET /stock/entry/:id.
func (c *Client) GetEntry(ctx context.Context, id uint) (*models.StockEntry, error) {
	out := new(models.StockEntry)
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", entryPath, id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateEntry calls POST /stock/entry.
func (c *Client) CreateEntry(ctx context.Context, e models.StockEntry) (*models.StockEntry, error) {
	body, err := withoutID(e)
	if err != nil {
		return nil, err
	}
	out := new(models.StockEntry)
	if err := c.do(ctx, http.MethodPost, entryPath, body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteEntry calls DELETE /stock/entry/:id.
func (c *Client) DeleteEntry(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", entryPath, id), nil, nil)
}

// ListExits calls GET /stock/exit.
func (c *Client) ListExits(ctx context.Context) ([]models.StockExit, error) {
	var out []models.StockExit
	if err := c.do(ctx, http.MethodGet, exitPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetExit calls GET /stock/exit/:id.
func (c *Client) GetExit(ctx context.Context, id uint) (*models.StockExit, error) {
	out := new(models.StockExit)
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", exitPath, id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateExit calls POST /stock/exit.
func (c *Client) CreateExit(ctx context.Context, e models.StockExit) (*models.StockExit, error) {
	body, err := withoutID(e)
	if err != nil {
		return nil, err
	}
	out := new(models.StockExit)
	if err := c.do(ctx, http.MethodPost, exitPath, body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteExit calls DELETE /stock/exit/:id.
func (c *Client) DeleteExit(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", exitPath, id), nil, nil)
}
