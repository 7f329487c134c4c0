package template

import (
	"context"
)

// Repository defines the interface for contract template persistence
type Repository interface {
	// Create creates a new template
	Create(ctx context.Context, t *ContractTemplate) error

	// Get retrieves a template by ID
	Get(ctx context.Context, id string) (*ContractTemplate, error)

	// Update updates an existing template
	Update(ctx context.Context, t *ContractTemplate) error

	// Delete removes a template
	Delete(ctx context.Context, id string) error

	// List retrieves all templates
	List(ctx context.Context) ([]*ContractTemplate, error)

	// GetDefault retrieves the active default template
	GetDefault(ctx context.Context) (*ContractTemplate, error)

	// SetDefault marks a template as the active default and clears the
	// flag on every other template
	SetDefault(ctx context.Context, id string) error
}
