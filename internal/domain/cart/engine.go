// internal/domain/cart/engine.go
package cart

import (
	"context"

	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
	"github.com/tulqinjon2001/zakaz-web-app/internal/domain/session"
	"github.com/tulqinjon2001/zakaz-web-app/internal/storage"
)

// Engine owns one session's cart. It is loaded from the persisted snapshot
// and mirrors every mutation back as a whole-snapshot write, so memory and
// storage never diverge as long as writes succeed.
//
// There is at most one line per (productId, storeId) pair and quantity is
// always >= 1: setting a quantity of zero or less removes the line.
type Engine struct {
	kv        *storage.Store
	sessionID string
	storeID   string
	lines     []Line
}

// Load creates the cart engine for a session, reading the persisted cart
// snapshot and the current store selection
func Load(ctx context.Context, kv *storage.Store, sessionID string) *Engine {
	e := &Engine{
		kv:        kv,
		sessionID: sessionID,
		lines:     []Line{},
	}

	kv.Get(ctx, storage.SessionKey(sessionID, storage.KeyCart), &e.lines)

	var info session.StoreInfo
	if kv.Get(ctx, storage.SessionKey(sessionID, storage.KeyStoreInfo), &info) {
		e.storeID = info.ID
	}

	return e
}

// Lines returns the current cart lines
func (e *Engine) Lines() []Line {
	return e.lines
}

// StoreID returns the store the cart belongs to, empty when no store is
// selected
func (e *Engine) StoreID() string {
	return e.storeID
}

// Add puts quantity units of a product into the cart. It is a no-op when no
// store is selected or the product has no inventory entry. When a line for
// the same product and store already exists its quantity is incremented.
// Reports whether the cart changed.
func (e *Engine) Add(ctx context.Context, product *backend.Product, quantity int) bool {
	if e.storeID == "" {
		return false
	}

	inventory := product.Inventory()
	if inventory == nil {
		return false
	}

	if quantity < 1 {
		quantity = 1
	}

	found := false
	for i := range e.lines {
		if e.lines[i].ProductID == product.ID && e.lines[i].StoreID == e.storeID {
			e.lines[i].Quantity += quantity
			found = true
			break
		}
	}

	if !found {
		e.lines = append(e.lines, Line{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.ImageURL,
			StoreID:      e.storeID,
			Price:        inventory.Price,
			Currency:     inventory.Currency,
			Quantity:     quantity,
		})
	}

	e.persist(ctx)
	return true
}

// Remove deletes the line(s) matching productId. Matching is by product id
// only, not scoped to the current store; see Quantity for the rationale.
func (e *Engine) Remove(ctx context.Context, productID string) {
	kept := e.lines[:0]
	for _, line := range e.lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	e.lines = kept

	e.persist(ctx)
}

// UpdateQuantity overwrites the quantity of the line matching productId. A
// quantity of zero or less removes the line instead.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		e.Remove(ctx, productID)
		return
	}

	for i := range e.lines {
		if e.lines[i].ProductID == productID {
			e.lines[i].Quantity = quantity
		}
	}

	e.persist(ctx)
}

// Clear empties the cart
func (e *Engine) Clear(ctx context.Context) {
	e.lines = []Line{}
	e.persist(ctx)
}

// TotalPrice sums price*quantity over all lines. Heterogeneous currencies
// are summed together; multi-currency carts are a known limitation carried
// over from the web client.
func (e *Engine) TotalPrice() float64 {
	var total float64
	for _, line := range e.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// TotalItems sums the quantities of all lines
func (e *Engine) TotalItems() int {
	total := 0
	for _, line := range e.lines {
		total += line.Quantity
	}
	return total
}

// Quantity returns the quantity of the line matching productId, zero when
// the product is not in the cart. Like Remove and UpdateQuantity, matching
// is by product id only: the web client never scoped these operations to
// the selected store, and that behavior is preserved for parity.
func (e *Engine) Quantity(productID string) int {
	for _, line := range e.lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

// Totals calculates the cart summary. Currency is taken from the first
// line, the way the web client labeled the order button.
func (e *Engine) Totals() Totals {
	totals := Totals{
		TotalItems: e.TotalItems(),
		TotalPrice: e.TotalPrice(),
	}
	if len(e.lines) > 0 {
		totals.Currency = e.lines[0].Currency
	}
	return totals
}

func (e *Engine) persist(ctx context.Context) {
	e.kv.Set(ctx, storage.SessionKey(e.sessionID, storage.KeyCart), e.lines)
}
