package contract

import (
	"context"
)

// Repository defines the interface for contract persistence operations
type Repository interface {
	// Create creates a new contract
	Create(ctx context.Context, c *Contract) error

	// Get retrieves a contract by ID
	Get(ctx context.Context, id string) (*Contract, error)

	// Update updates an existing contract
	Update(ctx context.Context, c *Contract) error

	// Delete removes a contract
	Delete(ctx context.Context, id string) error

	// List retrieves all contracts
	List(ctx context.Context) ([]*Contract, error)

	// ListByClient retrieves all contracts for a client
	ListByClient(ctx context.Context, clientID string) ([]*Contract, error)

	// GetByShareToken retrieves a contract by its public share token
	GetByShareToken(ctx context.Context, token string) (*Contract, error)

	// NextSequence returns the next contract number sequence for a year
	NextSequence(ctx context.Context, year int) (int64, error)
}
