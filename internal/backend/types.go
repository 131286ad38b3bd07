// internal/backend/types.go
package backend

// Store represents a store served by the upstream commerce API
type Store struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Category represents a catalog taxonomy node
type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

// Inventory represents per-store availability and pricing for a product
type Inventory struct {
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	StockCount int     `json:"stockCount"`
}

// Product represents an upstream product
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Code        string      `json:"code,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	CategoryID  string      `json:"categoryId"`
	Inventories []Inventory `json:"inventories"`
}

// Inventory returns the product's first inventory entry, or nil when the
// product has none. Additional entries are ignored.
func (p *Product) Inventory() *Inventory {
	if len(p.Inventories) == 0 {
		return nil
	}
	return &p.Inventories[0]
}

// User represents an upstream user record
type User struct {
	ID         string `json:"id"`
	TelegramID string `json:"telegramId"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
}

// OrderItem represents one line of an order
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order represents an upstream order
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	StoreID    string      `json:"storeId"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"totalPrice"`
	Address    *string     `json:"address,omitempty"`
	Location   *string     `json:"location,omitempty"`
	Status     string      `json:"status,omitempty"`
	CreatedAt  string      `json:"createdAt,omitempty"`
}

// CreateUserRequest is the create-or-get user payload. The endpoint is
// idempotent per telegramId.
type CreateUserRequest struct {
	TelegramID string `json:"telegramId"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

// CreateOrderRequest is the order creation payload. Address and location are
// sent as explicit nulls when absent, matching what the upstream expects.
type CreateOrderRequest struct {
	UserID     string      `json:"userId"`
	StoreID    string      `json:"storeId"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"totalPrice"`
	Address    *string     `json:"address"`
	Location   *string     `json:"location"`
}
