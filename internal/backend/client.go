// Package backend talks to the menu/order HTTP API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.CatalogSource = (*Client)(nil)
	_ domain.OrderPlacer   = (*Client)(nil)
)

// orderRequest is the body of POST /order.
type orderRequest struct {
	ItemID string `json:"item_id"`
}

// orderResponse is the body of a POST /order reply. ETAMinutes is a
// pointer so an omitted field can be told apart from zero.
type orderResponse struct {
	OrderID    string `json:"order_id"`
	ItemID     string `json:"item_id"`
	ETAMinutes *int   `json:"eta_minutes"`
	Status     string `json:"status"`
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// Client calls the ordering backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a backend client rooted at baseURL
// (e.g. "http://127.0.0.1:8000").
func NewClient(baseURL string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FetchMenu retrieves the catalog document from GET /menu.
func (c *Client) FetchMenu(ctx context.Context) (*domain.Menu, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/menu", nil)
	if err != nil {
		return nil, fmt.Errorf("backend: create request: %w", err)
	}

	var menu domain.Menu
	if err := c.do(req, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// PlaceOrder submits a single unit of itemID to POST /order.
func (c *Client) PlaceOrder(ctx context.Context, itemID string) (*domain.OrderRecord, error) {
	body, err := json.Marshal(orderRequest{ItemID: itemID})
	if err != nil {
		return nil, fmt.Errorf("backend: marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("backend: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp orderResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	rec := domain.OrderRecord{
		OrderID:    resp.OrderID,
		ItemID:     resp.ItemID,
		ETAMinutes: domain.ETAUnknown,
		Status:     resp.Status,
	}
	if resp.ETAMinutes != nil {
		rec.ETAMinutes = *resp.ETAMinutes
	}
	if rec.ItemID == "" {
		rec.ItemID = itemID
	}
	return &rec, nil
}

func (c *Client) do(req *http.Request, out any) error {
	c.log.Debug("%s %s", req.Method, req.URL)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w: %v", req.Method, req.URL.Path, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend: %s %s: %w: %s %s", req.Method, req.URL.Path, domain.ErrUpstream, resp.Status, truncate(string(respBody), 200))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("backend: unmarshal response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
