package list

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	domproduct "example.com/finproducts-admin/internal/domain/product"
)

// DefaultQuantity matches the page-size selector's initial value.
const DefaultQuantity = 5

// Service owns the authoritative product collection and the projection
// shown to the user. The projection is always recomputed from the
// authoritative slice under one lock, so readers never observe a
// half-applied derivation.
type Service struct {
	mu       sync.RWMutex
	gateway  domproduct.Gateway
	logger   *slog.Logger
	all      []domproduct.FinancialProduct
	visible  []domproduct.FinancialProduct
	quantity int
}

func NewService(gw domproduct.Gateway, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gateway:  gw,
		logger:   logger,
		quantity: DefaultQuantity,
	}
}

// Load replaces the authoritative collection with the remote listing and
// re-applies the quantity cap.
func (s *Service) Load(ctx context.Context) error {
	products, err := s.gateway.List(ctx)
	if err != nil {
		s.logger.Error("failed to load products", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = products
	s.applyCapLocked()
	s.logger.Info("products loaded", "count", len(products))
	return nil
}

// Search projects the products whose name or description contains the
// trimmed, lower-cased term. An empty term restores the full collection.
// Searching discards any previously applied quantity cap; the two
// derivations are independent views, each recomputed from the
// authoritative collection.
func (s *Service) Search(term string) {
	term = strings.ToLower(strings.TrimSpace(term))

	s.mu.Lock()
	defer s.mu.Unlock()

	if term == "" {
		s.visible = append([]domproduct.FinancialProduct(nil), s.all...)
		return
	}

	filtered := make([]domproduct.FinancialProduct, 0, len(s.all))
	for _, p := range s.all {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			filtered = append(filtered, p)
		}
	}
	s.visible = filtered
}

// SetQuantity caps the projection to the first n products in original
// order, discarding any active search.
func (s *Service) SetQuantity(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	s.quantity = n
	s.applyCapLocked()
}

// Remove reconciles a successful remote delete: the product leaves the
// authoritative collection and the cap is re-applied.
func (s *Service) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.all[:0]
	for _, p := range s.all {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.all = kept
	s.applyCapLocked()
}

// All returns a copy of the authoritative collection.
func (s *Service) All() []domproduct.FinancialProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domproduct.FinancialProduct(nil), s.all...)
}

// Visible returns a copy of the current projection.
func (s *Service) Visible() []domproduct.FinancialProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domproduct.FinancialProduct(nil), s.visible...)
}

func (s *Service) applyCapLocked() {
	n := s.quantity
	if n > len(s.all) {
		n = len(s.all)
	}
	s.visible = append([]domproduct.FinancialProduct(nil), s.all[:n]...)
}
