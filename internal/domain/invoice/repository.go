package invoice

import (
	"context"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create creates a new invoice
	Create(ctx context.Context, inv *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update updates an existing invoice
	Update(ctx context.Context, inv *Invoice) error

	// Delete removes an invoice
	Delete(ctx context.Context, id string) error

	// List retrieves all invoices
	List(ctx context.Context) ([]*Invoice, error)

	// ListByContract retrieves all invoices generated from a contract
	ListByContract(ctx context.Context, contractID string) ([]*Invoice, error)

	// GetByShareToken retrieves an invoice by its public share token
	GetByShareToken(ctx context.Context, token string) (*Invoice, error)

	// NextSequence returns the next invoice number sequence
	NextSequence(ctx context.Context) (int64, error)
}
