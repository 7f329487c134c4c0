package memory

import (
	"context"
	"sync"

	"github.com/billfold/billfold/internal/domain/contract"
)

// ContractRepository implements contract.Repository
type ContractRepository struct {
	store   *InMemoryStore[*contract.Contract]
	onWrite func()

	seqMu     sync.Mutex
	sequences map[int]int64
}

// NewContractRepository creates a new in-memory contract repository
func NewContractRepository() *ContractRepository {
	return &ContractRepository{
		store:     NewInMemoryStore[*contract.Contract](),
		sequences: make(map[int]int64),
	}
}

// OnWrite registers a hook invoked after every successful mutation.
func (r *ContractRepository) OnWrite(fn func()) {
	r.onWrite = fn
}

func (r *ContractRepository) notify() {
	if r.onWrite != nil {
		r.onWrite()
	}
}

func copyContract(c *contract.Contract) *contract.Contract {
	if c == nil {
		return nil
	}
	cp := *c
	cp.PaymentPlan = c.PaymentPlan.Clone()
	if c.InvoiceIDs != nil {
		cp.InvoiceIDs = append([]string(nil), c.InvoiceIDs...)
	}
	if c.CompanyRepresentatives != nil {
		cp.CompanyRepresentatives = append([]string(nil), c.CompanyRepresentatives...)
	}
	return &cp
}

func (r *ContractRepository) Create(ctx context.Context, c *contract.Contract) error {
	if err := r.store.Create(ctx, c.ID, copyContract(c)); err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *ContractRepository) Get(ctx context.Context, id string) (*contract.Contract, error) {
	c, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyContract(c), nil
}

func (r *ContractRepository) Update(ctx context.Context, c *contract.Contract) error {
	if err := r.store.Update(ctx, c.ID, copyContract(c)); err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *ContractRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *ContractRepository) List(ctx context.Context) ([]*contract.Contract, error) {
	items, err := r.store.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	result := make([]*contract.Contract, len(items))
	for i, c := range items {
		result[i] = copyContract(c)
	}
	return result, nil
}

func (r *ContractRepository) ListByClient(ctx context.Context, clientID string) ([]*contract.Contract, error) {
	items, err := r.store.List(ctx, func(ctx context.Context, c *contract.Contract) bool {
		return c.ClientID == clientID
	})
	if err != nil {
		return nil, err
	}
	result := make([]*contract.Contract, len(items))
	for i, c := range items {
		result[i] = copyContract(c)
	}
	return result, nil
}

// GetByShareToken does an exact-match scan over all contracts.
func (r *ContractRepository) GetByShareToken(ctx context.Context, token string) (*contract.Contract, error) {
	items, err := r.store.List(ctx, func(ctx context.Context, c *contract.Contract) bool {
		return c.ShareToken == token && token != ""
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, contract.ErrContractNotFound
	}
	return copyContract(items[0]), nil
}

func (r *ContractRepository) NextSequence(ctx context.Context, year int) (int64, error) {
	r.seqMu.Lock()
	r.sequences[year]++
	seq := r.sequences[year]
	r.seqMu.Unlock()

	// notify re-reads the counters via Sequences, so seqMu must be
	// released first.
	r.notify()
	return seq, nil
}

// Sequences returns a copy of the per-year sequence counters.
func (r *ContractRepository) Sequences() map[int]int64 {
	r.seqMu.Lock()
	defer r.seqMu.Unlock()
	out := make(map[int]int64, len(r.sequences))
	for k, v := range r.sequences {
		out[k] = v
	}
	return out
}

// RestoreSequences replaces the sequence counters, used on snapshot load.
func (r *ContractRepository) RestoreSequences(seqs map[int]int64) {
	r.seqMu.Lock()
	defer r.seqMu.Unlock()
	r.sequences = make(map[int]int64, len(seqs))
	for k, v := range seqs {
		r.sequences[k] = v
	}
}

// Clear removes all contracts. Used by tests.
func (r *ContractRepository) Clear() {
	r.store.Clear()
	r.seqMu.Lock()
	r.sequences = make(map[int]int64)
	r.seqMu.Unlock()
}
