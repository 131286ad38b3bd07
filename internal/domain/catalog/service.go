// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
)

// BackendAPI is the slice of the upstream API the catalog needs
type BackendAPI interface {
	GetCategories(ctx context.Context) ([]backend.Category, error)
	GetProductsByStore(ctx context.Context, storeID string) ([]backend.Product, error)
	SearchProducts(ctx context.Context, name, storeID string) ([]backend.Product, error)
}

// Service filters and sorts the catalog of the selected store. Category
// filtering and text search are mutually exclusive: a non-empty query
// bypasses category filtering entirely and delegates to the upstream search
// endpoint through a per-session debounced searcher. Sorting is always the
// last step.
type Service struct {
	api         BackendAPI
	log         *logrus.Logger
	searchDelay time.Duration

	mu        sync.Mutex
	searchers map[string]*Searcher
}

// NewService creates a new catalog service
func NewService(api BackendAPI, log *logrus.Logger) *Service {
	return &Service{
		api:         api,
		log:         log,
		searchDelay: DefaultSearchDelay,
		searchers:   make(map[string]*Searcher),
	}
}

// Categories fetches the flat category list and builds the tree
func (s *Service) Categories(ctx context.Context) ([]*Node, error) {
	categories, err := s.api.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return BuildTree(categories), nil
}

// Products returns the store's products filtered by the optional category
// and ordered by the optional sort specifier. Category selection covers the
// category itself plus two levels of descendants.
func (s *Service) Products(ctx context.Context, storeID, categoryID, sortBy string) ([]backend.Product, error) {
	products, err := s.api.GetProductsByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	if categoryID != "" {
		categories, err := s.api.GetCategories(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve categories: %w", err)
		}

		wanted := map[string]bool{categoryID: true}
		if node := FindNode(BuildTree(categories), categoryID); node != nil {
			for _, id := range AllCategoryIDs(node) {
				wanted[id] = true
			}
		}

		filtered := make([]backend.Product, 0, len(products))
		for _, product := range products {
			if wanted[product.CategoryID] {
				filtered = append(filtered, product)
			}
		}
		products = filtered
	}

	return SortProducts(products, sortBy), nil
}

// Search runs a debounced product search for a session and sorts the
// results. Superseded calls return ErrSuperseded and their results are
// never surfaced.
func (s *Service) Search(ctx context.Context, sessionID, query, storeID, sortBy string) ([]backend.Product, error) {
	products, err := s.searcherFor(sessionID).Search(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	return SortProducts(products, sortBy), nil
}

func (s *Service) searcherFor(sessionID string) *Searcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	searcher, ok := s.searchers[sessionID]
	if !ok {
		searcher = NewSearcher(s.api, s.searchDelay)
		s.searchers[sessionID] = searcher
	}
	return searcher
}
