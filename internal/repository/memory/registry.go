package memory

import (
	"context"

	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/storage"
)

// Registry owns the in-memory repositories and mirrors every mutation
// to the snapshot store. It is the single writer of the snapshot file;
// a nil snapshot store disables mirroring (tests, ephemeral runs).
type Registry struct {
	Clients   *ClientRepository
	Contracts *ContractRepository
	Invoices  *InvoiceRepository
	Templates *TemplateRepository

	mirror storage.SnapshotStore
	log    *logger.Logger
}

// NewRegistry creates the repositories, restores state from the
// snapshot store if one is configured, and wires the write-through
// mirror.
func NewRegistry(cfg *config.Configuration, log *logger.Logger) (*Registry, error) {
	var mirror storage.SnapshotStore
	if cfg.Storage.SnapshotPath != "" {
		mirror = storage.NewFileStore(cfg.Storage.SnapshotPath)
	}
	return newRegistry(mirror, log)
}

// NewEphemeralRegistry creates a registry with no persistence mirror.
func NewEphemeralRegistry(log *logger.Logger) *Registry {
	r, _ := newRegistry(nil, log)
	return r
}

func newRegistry(mirror storage.SnapshotStore, log *logger.Logger) (*Registry, error) {
	r := &Registry{
		Clients:   NewClientRepository(),
		Contracts: NewContractRepository(),
		Invoices:  NewInvoiceRepository(),
		Templates: NewTemplateRepository(),
		mirror:    mirror,
		log:       log,
	}

	if mirror != nil {
		snapshot, err := mirror.Load(context.Background())
		if err != nil {
			return nil, err
		}
		if err := r.Restore(snapshot); err != nil {
			return nil, err
		}
	}

	r.Clients.OnWrite(r.persist)
	r.Contracts.OnWrite(r.persist)
	r.Invoices.OnWrite(r.persist)
	r.Templates.OnWrite(r.persist)

	return r, nil
}

// persist mirrors the full state synchronously. A failed write is
// logged and otherwise non-fatal: the in-memory state stays canonical.
func (r *Registry) persist() {
	if r.mirror == nil {
		return
	}
	ctx := context.Background()
	snapshot, err := r.Export(ctx)
	if err != nil {
		r.log.Errorw("failed to export snapshot", "error", err)
		return
	}
	if err := r.mirror.Save(ctx, snapshot); err != nil {
		r.log.Errorw("failed to persist snapshot", "error", err)
	}
}

// Export collects the full domain state.
func (r *Registry) Export(ctx context.Context) (*storage.Snapshot, error) {
	clients, err := r.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	contracts, err := r.Contracts.List(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := r.Invoices.List(ctx)
	if err != nil {
		return nil, err
	}
	templates, err := r.Templates.List(ctx)
	if err != nil {
		return nil, err
	}

	return &storage.Snapshot{
		Clients:           clients,
		Contracts:         contracts,
		Invoices:          invoices,
		Templates:         templates,
		ContractSequences: r.Contracts.Sequences(),
		InvoiceSequence:   r.Invoices.Sequence(),
	}, nil
}

// Restore replaces the in-memory state with a loaded snapshot.
// The snapshot is expected to be normalized already.
func (r *Registry) Restore(snapshot *storage.Snapshot) error {
	ctx := context.Background()
	for _, c := range snapshot.Clients {
		if err := r.Clients.Create(ctx, c); err != nil {
			return err
		}
	}
	for _, c := range snapshot.Contracts {
		if err := r.Contracts.Create(ctx, c); err != nil {
			return err
		}
	}
	for _, inv := range snapshot.Invoices {
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
	}
	for _, t := range snapshot.Templates {
		if err := r.Templates.Create(ctx, t); err != nil {
			return err
		}
	}
	if snapshot.ContractSequences != nil {
		r.Contracts.RestoreSequences(snapshot.ContractSequences)
	}
	r.Invoices.RestoreSequence(snapshot.InvoiceSequence)
	return nil
}
