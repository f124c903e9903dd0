package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"shopfront/internal/domain"
)

// RemoteError is any non-2xx answer (or transport failure) from the
// storefront API. Callers treat it as fatal for the attempt; retry
// policy lives with the backend, not here.
type RemoteError struct {
	Op     string
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: request failed", e.Op)
	}
	return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
}

// Client talks JSON to the external storefront API: catalog reads,
// order creation, payment capture, order-status changes.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: http.DefaultClient}
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &RemoteError{Op: op}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &RemoteError{Op: op, Status: resp.StatusCode, Body: string(b)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// Product fetches one catalog item.
func (c *Client) Product(ctx context.Context, id int64) (domain.CatalogItem, error) {
	var out domain.CatalogItem
	err := c.do(ctx, "catalog.product", http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &out)
	return out, err
}

// CreateOrder submits the cart and returns the backend order, including
// the payment provider's order id.
func (c *Client) CreateOrder(ctx context.Context, cart domain.Cart) (domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, "order.create", http.MethodPost, "/orders", cart, &out)
	return out, err
}

// CapturePayment asks the payment provider (via the backend) to capture
// an approved payment order.
func (c *Client) CapturePayment(ctx context.Context, paymentOrderID string) (domain.CaptureResult, error) {
	var out domain.CaptureResult
	err := c.do(ctx, "payment.capture", http.MethodPost,
		"/payments/"+paymentOrderID+"/capture", nil, &out)
	return out, err
}

// Order fetches one order.
func (c *Client) Order(ctx context.Context, id string) (domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, "order.get", http.MethodGet, "/orders/"+id, nil, &out)
	return out, err
}

// UpdateOrderStatus requests a status change. The backend is the final
// authority on transitions; a rejection comes back as a RemoteError.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, "order.status", http.MethodPost,
		"/orders/"+orderID+"/status", map[string]string{"status": string(status)}, &out)
	return out, err
}
