package product

import "context"

// Gateway is the remote products API. ExistsByID propagates transport
// errors; deciding to fail open on them is the caller's concern.
type Gateway interface {
	List(ctx context.Context) ([]FinancialProduct, error)
	GetByID(ctx context.Context, id string) (*FinancialProduct, error)
	Create(ctx context.Context, p FinancialProduct) (*MutationResult, error)
	Update(ctx context.Context, p FinancialProduct, id string) (*MutationResult, error)
	Delete(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) (bool, error)
}
