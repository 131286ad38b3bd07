// internal/domain/catalog/search.go
package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
)

// ErrSuperseded is returned when a newer query arrived while this search
// was waiting or in flight. Callers drop the result.
var ErrSuperseded = errors.New("catalog: search superseded by a newer query")

// DefaultSearchDelay is how long a query must settle before the upstream
// search is issued
const DefaultSearchDelay = 300 * time.Millisecond

// SearchClient is the slice of the upstream API a searcher needs
type SearchClient interface {
	SearchProducts(ctx context.Context, name, storeID string) ([]backend.Product, error)
}

// Searcher debounces text search against the upstream search endpoint. Each
// call supersedes any earlier pending call, and a monotonic generation
// check drops results of superseded calls even after the upstream responds,
// so a slow old response can never overwrite a newer query's results.
type Searcher struct {
	client SearchClient
	delay  time.Duration

	mu  sync.Mutex
	gen uint64
}

// NewSearcher creates a searcher with the given settle delay
func NewSearcher(client SearchClient, delay time.Duration) *Searcher {
	return &Searcher{
		client: client,
		delay:  delay,
	}
}

// Search runs a debounced product search. It waits for the settle delay,
// and returns ErrSuperseded if a newer Search call arrived in the meantime
// or while the upstream request was in flight.
func (s *Searcher) Search(ctx context.Context, query, storeID string) ([]backend.Product, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if s.superseded(gen) {
		return nil, ErrSuperseded
	}

	products, err := s.client.SearchProducts(ctx, query, storeID)
	if err != nil {
		return nil, err
	}

	if s.superseded(gen) {
		return nil, ErrSuperseded
	}

	return products, nil
}

func (s *Searcher) superseded(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen != gen
}
