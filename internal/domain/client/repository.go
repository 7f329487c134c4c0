package client

import (
	"context"
)

// Repository defines the interface for client persistence operations
type Repository interface {
	// Create creates a new client
	Create(ctx context.Context, c *Client) error

	// Get retrieves a client by ID
	Get(ctx context.Context, id string) (*Client, error)

	// Update updates an existing client
	Update(ctx context.Context, c *Client) error

	// List retrieves all clients
	List(ctx context.Context) ([]*Client, error)

	// Delete removes a client
	Delete(ctx context.Context, id string) error
}
