// internal/domain/catalog/sort.go
package catalog

import (
	"sort"
	"strings"

	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
)

// Sort specifiers accepted by SortProducts
const (
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortStockAsc  = "stock-asc"
	SortStockDesc = "stock-desc"
)

// SortProducts returns products ordered by the given specifier. An empty or
// unknown specifier preserves the input order. The sort is stable, with
// name compared case-insensitively and price/stock read from the first
// inventory entry, defaulting to zero when absent.
func SortProducts(products []backend.Product, sortBy string) []backend.Product {
	if sortBy == "" {
		return products
	}

	field, order, ok := strings.Cut(sortBy, "-")
	if !ok {
		return products
	}

	sorted := make([]backend.Product, len(products))
	copy(sorted, products)

	switch field {
	case "name":
		sort.SliceStable(sorted, func(i, j int) bool {
			a := strings.ToLower(sorted[i].Name)
			b := strings.ToLower(sorted[j].Name)
			if order == "asc" {
				return a < b
			}
			return a > b
		})
	case "price":
		sort.SliceStable(sorted, func(i, j int) bool {
			a := inventoryPrice(&sorted[i])
			b := inventoryPrice(&sorted[j])
			if order == "asc" {
				return a < b
			}
			return a > b
		})
	case "stock":
		sort.SliceStable(sorted, func(i, j int) bool {
			a := inventoryStock(&sorted[i])
			b := inventoryStock(&sorted[j])
			if order == "asc" {
				return a < b
			}
			return a > b
		})
	default:
		return products
	}

	return sorted
}

func inventoryPrice(p *backend.Product) float64 {
	if inv := p.Inventory(); inv != nil {
		return inv.Price
	}
	return 0
}

func inventoryStock(p *backend.Product) int {
	if inv := p.Inventory(); inv != nil {
		return inv.StockCount
	}
	return 0
}
