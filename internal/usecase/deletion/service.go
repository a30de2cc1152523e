package deletion

import (
	"context"
	"log/slog"
	"sync"

	domproduct "example.com/finproducts-admin/internal/domain/product"
	listuc "example.com/finproducts-admin/internal/usecase/list"
)

// Notifier receives user-facing success messages.
type Notifier interface {
	Notify(message string)
}

// Confirmation is the state of the delete modal.
type Confirmation struct {
	ProductID   string
	ProductName string
	Open        bool
}

// Service gates the destructive delete behind an explicit confirmation
// step. The gateway is only ever called from Confirm while a target is
// selected; the list is never mutated before the remote delete succeeds.
type Service struct {
	mu       sync.Mutex
	gateway  domproduct.Gateway
	list     *listuc.Service
	notifier Notifier
	logger   *slog.Logger
	sel      Confirmation
}

func NewService(gw domproduct.Gateway, list *listuc.Service, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gateway:  gw,
		list:     list,
		notifier: notifier,
		logger:   logger,
	}
}

// Request opens the confirmation for the named product.
func (s *Service) Request(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = Confirmation{ProductID: id, ProductName: name, Open: true}
}

// Cancel discards the selection with no side effect.
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = Confirmation{}
}

// Confirm issues the remote delete for the selected product. With nothing
// selected it is a no-op. On success the list is reconciled and the user
// notified; on failure the product stays in the list and only a log entry
// is produced. Either way the confirmation closes.
func (s *Service) Confirm(ctx context.Context) error {
	s.mu.Lock()
	sel := s.sel
	s.sel = Confirmation{}
	s.mu.Unlock()

	if !sel.Open || sel.ProductID == "" {
		return nil
	}

	if err := s.gateway.Delete(ctx, sel.ProductID); err != nil {
		s.logger.Error("failed to delete product", "id", sel.ProductID, "error", err)
		return err
	}

	s.list.Remove(sel.ProductID)
	s.logger.Info("product deleted", "id", sel.ProductID)
	if s.notifier != nil {
		s.notifier.Notify("Product " + sel.ProductName + " deleted")
	}
	return nil
}

// Confirmation returns a snapshot of the modal state.
func (s *Service) Confirmation() Confirmation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}
