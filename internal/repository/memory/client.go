package memory

import (
	"context"

	"github.com/billfold/billfold/internal/domain/client"
)

// ClientRepository implements client.Repository
type ClientRepository struct {
	store   *InMemoryStore[*client.Client]
	onWrite func()
}

// NewClientRepository creates a new in-memory client repository
func NewClientRepository() *ClientRepository {
	return &ClientRepository{
		store: NewInMemoryStore[*client.Client](),
	}
}

// OnWrite registers a hook invoked after every successful mutation,
// used by the registry to mirror state to the snapshot file.
func (r *ClientRepository) OnWrite(fn func()) {
	r.onWrite = fn
}

func (r *ClientRepository) notify() {
	if r.onWrite != nil {
		r.onWrite()
	}
}

// copyClient returns a deep copy so callers can never mutate stored
// state through a returned pointer.
func copyClient(c *client.Client) *client.Client {
	if c == nil {
		return nil
	}
	cp := *c
	if c.PaymentPlanID != nil {
		planID := *c.PaymentPlanID
		cp.PaymentPlanID = &planID
	}
	if c.Payments != nil {
		cp.Payments = make([]*client.Payment, len(c.Payments))
		for i, p := range c.Payments {
			pc := *p
			if p.PaidDate != nil {
				paid := *p.PaidDate
				pc.PaidDate = &paid
			}
			cp.Payments[i] = &pc
		}
	}
	return &cp
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	if err := r.store.Create(ctx, c.ID, copyClient(c)); err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *ClientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	c, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyClient(c), nil
}

func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	if err := r.store.Update(ctx, c.ID, copyClient(c)); err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *ClientRepository) List(ctx context.Context) ([]*client.Client, error) {
	items, err := r.store.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	result := make([]*client.Client, len(items))
	for i, c := range items {
		result[i] = copyClient(c)
	}
	return result, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	r.notify()
	return nil
}

// Clear removes all clients. Used by tests.
func (r *ClientRepository) Clear() {
	r.store.Clear()
}
