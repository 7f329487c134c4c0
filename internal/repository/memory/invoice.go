package memory

import (
	"context"
	"sync"

	"github.com/billfold/billfold/internal/domain/invoice"
)

// InvoiceRepository implements invoice.Repository
type InvoiceRepository struct {
	store   *InMemoryStore[*invoice.Invoice]
	onWrite func()

	seqMu    sync.Mutex
	sequence int64
}

// NewInvoiceRepository creates a new in-memory invoice repository
func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{
		store: NewInMemoryStore[*invoice.Invoice](),
	}
}

// OnWrite registers a hook invoked after every successful mutation.
func (r *InvoiceRepository) OnWrite(fn func()) {
	r.onWrite = fn
}

func (r *InvoiceRepository) notify() {
	if r.onWrite != nil {
		r.onWrite()
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	cp := *inv
	if inv.Items != nil {
		cp.Items = append([]invoice.LineItem(nil), inv.Items...)
	}
	if inv.PaidDate != nil {
		paid := *inv.PaidDate
		cp.PaidDate = &paid
	}
	if inv.ContractID != nil {
		id := *inv.ContractID
		cp.ContractID = &id
	}
	if inv.PaymentPlanItemID != nil {
		id := *inv.PaymentPlanItemID
		cp.PaymentPlanItemID = &id
	}
	return &cp
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	if err := r.store.Create(ctx, inv.ID, copyInvoice(inv)); err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *InvoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyInvoice(inv), nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	if err := r.store.Update(ctx, inv.ID, copyInvoice(inv)); err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *InvoiceRepository) List(ctx context.Context) ([]*invoice.Invoice, error) {
	items, err := r.store.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	result := make([]*invoice.Invoice, len(items))
	for i, inv := range items {
		result[i] = copyInvoice(inv)
	}
	return result, nil
}

func (r *InvoiceRepository) ListByContract(ctx context.Context, contractID string) ([]*invoice.Invoice, error) {
	items, err := r.store.List(ctx, func(ctx context.Context, inv *invoice.Invoice) bool {
		return inv.ContractID != nil && *inv.ContractID == contractID
	})
	if err != nil {
		return nil, err
	}
	result := make([]*invoice.Invoice, len(items))
	for i, inv := range items {
		result[i] = copyInvoice(inv)
	}
	return result, nil
}

// GetByShareToken does an exact-match scan over all invoices.
func (r *InvoiceRepository) GetByShareToken(ctx context.Context, token string) (*invoice.Invoice, error) {
	items, err := r.store.List(ctx, func(ctx context.Context, inv *invoice.Invoice) bool {
		return inv.ShareToken == token && token != ""
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, invoice.ErrInvoiceNotFound
	}
	return copyInvoice(items[0]), nil
}

func (r *InvoiceRepository) NextSequence(ctx context.Context) (int64, error) {
	r.seqMu.Lock()
	r.sequence++
	seq := r.sequence
	r.seqMu.Unlock()

	// notify re-reads the counter via Sequence, so seqMu must be
	// released first.
	r.notify()
	return seq, nil
}

// Sequence returns the current invoice number counter.
func (r *InvoiceRepository) Sequence() int64 {
	r.seqMu.Lock()
	defer r.seqMu.Unlock()
	return r.sequence
}

// RestoreSequence replaces the counter, used on snapshot load.
func (r *InvoiceRepository) RestoreSequence(seq int64) {
	r.seqMu.Lock()
	defer r.seqMu.Unlock()
	r.sequence = seq
}

// Clear removes all invoices. Used by tests.
func (r *InvoiceRepository) Clear() {
	r.store.Clear()
	r.seqMu.Lock()
	r.sequence = 0
	r.seqMu.Unlock()
}
