// internal/domain/cart/entity.go
package cart

// Line is one cart line item. The JSON shape matches the snapshot the web
// client persisted under zakaz_cart, so existing snapshots round-trip.
type Line struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage,omitempty"`
	StoreID      string  `json:"storeId"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Quantity     int     `json:"quantity"`
}

// Totals represents calculated cart totals
type Totals struct {
	TotalItems int     `json:"totalItems"` // Sum of all quantities
	TotalPrice float64 `json:"totalPrice"`
	Currency   string  `json:"currency,omitempty"` // Currency of the first line
}
