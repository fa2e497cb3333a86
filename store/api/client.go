// Package api is the storefront's HTTP client for the backend. Every call
// has a hard timeout and decodes the success envelope into a typed result, so
// callers branch on errors instead of poking at loose maps.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/models"
	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/store/cart"
)

// DefaultTimeout bounds every request; neither the allocator nor order
// creation may hang checkout indefinitely.
const DefaultTimeout = 5 * time.Second

// APIError is a failure reported by the backend (as opposed to a transport
// error, which surfaces as the underlying net error).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (HTTP %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: HTTP %d", e.Status)
}

// envelope is the {success, message, ...} shape the PHP-era API established
// and the Go backend kept.
type envelope struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	OrderNumber string          `json:"order_number"`
	Data        json.RawMessage `json:"data"`
}

// Settings is the public business configuration the storefront needs.
type Settings struct {
	BusinessWhatsAppNumber string `json:"BusinessWhatsAppNumber"`
}

// OrderSubmission is the order-creation payload. Field names match what the
// server binds.
type OrderSubmission struct {
	OrderNumber          string          `json:"order_number,omitempty"`
	OrderDetails         string          `json:"order_details"`
	Status               string          `json:"status"`
	Remarks              string          `json:"remarks"`
	CustomerMobileNumber string          `json:"customer_mobile_number"`
	OrderSource          string          `json:"order_source"`
	CreatedBy            string          `json:"created_by"`
	CartItems            []cart.LineItem `json:"cart_items"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// SetToken attaches a bearer token to subsequent requests (admin tooling).
func (c *Client) SetToken(token string) {
	c.token = token
}

// GetProducts lists the catalog, optionally filtered.
func (c *Client) GetProducts(ctx context.Context, search string, categoryID uint) ([]models.Product, error) {
	endpoint := c.baseURL + "/products"
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	if categoryID != 0 {
		query.Set("category_id", fmt.Sprintf("%d", categoryID))
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var products []models.Product
	if err := c.getJSON(ctx, endpoint, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetCategories lists all categories.
func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getJSON(ctx, c.baseURL+"/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetSettings fetches the public business settings.
func (c *Client) GetSettings(ctx context.Context) (Settings, error) {
	env, err := c.getEnvelope(ctx, c.baseURL+"/settings")
	if err != nil {
		return Settings{}, err
	}
	var settings Settings
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &settings); err != nil {
			return Settings{}, fmt.Errorf("decode settings: %w", err)
		}
	}
	return settings, nil
}

// GenerateOrderNumber asks the backend sequence for the next order number.
// Single attempt; the caller owns fallback policy.
func (c *Client) GenerateOrderNumber(ctx context.Context) (string, error) {
	env, err := c.getEnvelope(ctx, c.baseURL+"/orders/number")
	if err != nil {
		return "", err
	}
	if env.OrderNumber == "" {
		return "", &APIError{Status: http.StatusOK, Message: "empty order number"}
	}
	return env.OrderNumber, nil
}

// CreateOrder submits an order and returns the order number the server
// recorded.
func (c *Client) CreateOrder(ctx context.Context, sub OrderSubmission) (string, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	env, err := c.do(req)
	if err != nil {
		return "", err
	}
	if env.OrderNumber != "" {
		return env.OrderNumber, nil
	}
	return sub.OrderNumber, nil
}

func (c *Client) getEnvelope(ctx context.Context, url string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*envelope, error) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: "malformed response"}
	}
	if resp.StatusCode >= 400 || !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var env envelope
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &env)
		message := env.Message
		if message == "" {
			message = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
