// Package storefront holds the client-side state of a shopping session:
// the product catalog fetched once at startup and the cart built from it.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

var (
	ErrAlreadyLoaded  = errors.New("catalog already loaded")
	ErrUnknownProduct = errors.New("product not in catalog")
)

// ProductFetcher retrieves the catalog from the product data provider
type ProductFetcher interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

// LoadState tracks the single catalog fetch
type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// LoadResult is the outcome of the catalog fetch: products on success, the reason otherwise
type LoadResult struct {
	Products []models.Product
	Err      error
}

// OK reports whether the fetch succeeded
func (r LoadResult) OK() bool {
	return r.Err == nil
}

// Session is one shopper's view of the store. It is not safe for concurrent use.
type Session struct {
	id       uuid.UUID
	state    LoadState
	result   LoadResult
	products []models.Product
	cart     Cart
	policy   QuantityPolicy
	logger   *slog.Logger
}

// NewSession creates an idle session with an empty cart
func NewSession(policy QuantityPolicy, logger *slog.Logger) *Session {
	id := uuid.New()
	return &Session{
		id:     id,
		policy: policy,
		logger: logger.With("session_id", id.String()),
	}
}

func (s *Session) ID() uuid.UUID { return s.id }
func (s *Session) State() LoadState { return s.state }
func (s *Session) Policy() QuantityPolicy { return s.policy }
func (s *Session) LoadResult() LoadResult { return s.result }
func (s *Session) Cart() Cart { return s.cart }

// Load fetches the catalog. It may run only once per session; a failed fetch
// is logged and leaves the product list empty.
func (s *Session) Load(ctx context.Context, fetcher ProductFetcher) (LoadResult, error) {
	if s.state != StateIdle {
		return s.result, ErrAlreadyLoaded
	}
	s.state = StateLoading

	products, err := fetcher.FetchProducts(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "error fetching products", "error", err)
		s.state = StateFailed
		s.result = LoadResult{Err: err}
		return s.result, nil
	}

	s.products = products
	s.state = StateLoaded
	s.result = LoadResult{Products: products}
	s.logger.DebugContext(ctx, "products loaded", "count", len(products))
	return s.result, nil
}

// Products returns the catalog in the order it was served
func (s *Session) Products() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Product finds a catalog entry by id
func (s *Session) Product(id string) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Add puts one unit of p in the cart
func (s *Session) Add(p models.Product) {
	s.cart = s.cart.Add(p)
}

// AddByID adds the catalog product with the given id
func (s *Session) AddByID(id string) error {
	p, ok := s.Product(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProduct, id)
	}
	s.Add(p)
	return nil
}

// AdjustQuantity changes an item's quantity by delta under the session policy
func (s *Session) AdjustQuantity(productID string, delta int) {
	s.cart = s.cart.AdjustQuantity(productID, delta, s.policy)
}

// Remove takes the product out of the cart
func (s *Session) Remove(productID string) {
	s.cart = s.cart.Remove(productID)
}

// Subtotal is recomputed from the cart on every call
func (s *Session) Subtotal() decimal.Decimal {
	return s.cart.Subtotal()
}
