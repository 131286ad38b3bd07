// internal/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tulqinjon2001/zakaz-web-app/internal/config"
)

// ErrUserNotFound is returned when the upstream has no user for the id
var ErrUserNotFound = errors.New("backend: user not found")

// APIError carries an upstream error response
type APIError struct {
	StatusCode int
	Message    string
}

// Error returns the upstream-provided message when present, falling back to
// a generic description of the status
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend request failed with status %d", e.StatusCode)
}

// Client talks to the upstream commerce API under the /client base path.
// Read calls use a short fixed timeout; order creation gets a longer one.
// There is no automatic retry: a failed call is surfaced to the caller.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	orderClient *http.Client
	log         *logrus.Logger
}

// NewClient creates a new upstream API client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.Backend.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: cfg.Backend.RequestTimeout},
		orderClient: &http.Client{Timeout: cfg.Backend.OrderTimeout},
		log:         log,
	}
}

// GetStores retrieves the store list
func (c *Client) GetStores(ctx context.Context) ([]Store, error) {
	var stores []Store
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/client/stores", nil, nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// GetCategories retrieves the flat category list
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/client/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetProductsByStore retrieves all products available in a store
func (c *Client) GetProductsByStore(ctx context.Context, storeID string) ([]Product, error) {
	path := fmt.Sprintf("/client/stores/%s/products", url.PathEscape(storeID))

	var products []Product
	if err := c.do(ctx, c.httpClient, http.MethodGet, path, nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SearchProducts searches products by name within a store
func (c *Client) SearchProducts(ctx context.Context, name, storeID string) ([]Product, error) {
	query := url.Values{}
	query.Set("name", name)
	query.Set("storeId", storeID)

	var products []Product
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/client/products/search", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateOrGetUser creates a user record, or returns the existing one for the
// same telegramId
func (c *Client) CreateOrGetUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/client/users", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByTelegramID retrieves a user by telegram id. Returns
// ErrUserNotFound when the upstream has no such user.
func (c *Client) GetUserByTelegramID(ctx context.Context, telegramID string) (*User, error) {
	path := fmt.Sprintf("/client/users/telegram/%s", url.PathEscape(telegramID))

	var user User
	err := c.do(ctx, c.httpClient, http.MethodGet, path, nil, nil, &user)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserOrders retrieves a user's order history
func (c *Client) GetUserOrders(ctx context.Context, userID string) ([]Order, error) {
	path := fmt.Sprintf("/client/users/%s/orders", url.PathEscape(userID))

	var orders []Order
	if err := c.do(ctx, c.httpClient, http.MethodGet, path, nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder submits a new order
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var order Order
	if err := c.do(ctx, c.orderClient, http.MethodPost, "/client/orders", nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderByID retrieves a single order
func (c *Client) GetOrderByID(ctx context.Context, orderID string) (*Order, error) {
	path := fmt.Sprintf("/client/orders/%s", url.PathEscape(orderID))

	var order Order
	if err := c.do(ctx, c.httpClient, http.MethodGet, path, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// errorBody is the error shape the upstream returns on failures
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, client *http.Client, method, path string, query url.Values, body, dest interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
	}).Debug("Backend request")

	resp, err := client.Do(req)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).Error("Backend request failed")
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		// Prefer the server-provided message when one is present
		var errBody errorBody
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			if json.Unmarshal(data, &errBody) == nil {
				if errBody.Error != "" {
					apiErr.Message = errBody.Error
				} else if errBody.Message != "" {
					apiErr.Message = errBody.Message
				}
			}
		}

		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
			"error":  apiErr.Message,
		}).Error("Backend response error")

		return apiErr
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return nil
}
