package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/billfold/billfold/internal/domain/client"
	"github.com/billfold/billfold/internal/domain/contract"
	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/domain/template"
	ierr "github.com/billfold/billfold/internal/errors"
)

// Snapshot is the full serialized state of the domain store. Times are
// serialized as RFC3339 via encoding/json, so date arithmetic survives
// a round-trip: fields come back as real time.Time values, not strings.
type Snapshot struct {
	Clients           []*client.Client             `json:"clients"`
	Contracts         []*contract.Contract         `json:"contracts"`
	Invoices          []*invoice.Invoice           `json:"invoices"`
	Templates         []*template.ContractTemplate `json:"templates"`
	ContractSequences map[int]int64                `json:"contract_sequences,omitempty"`
	InvoiceSequence   int64                        `json:"invoice_sequence,omitempty"`
}

// Normalize applies legacy migrations to a loaded snapshot. The only
// one in effect: contract status "draft" becomes "created".
func (s *Snapshot) Normalize() {
	for _, c := range s.Contracts {
		c.ContractStatus = c.ContractStatus.Normalize()
	}
}

// SnapshotStore persists and restores the domain snapshot.
type SnapshotStore interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot *Snapshot) error
}

// FileStore is a SnapshotStore backed by a single JSON file, written
// atomically via a temp file and rename.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and normalizes the snapshot. A missing file yields an
// empty snapshot, not an error.
func (f *FileStore) Load(ctx context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Snapshot{}, nil
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to read snapshot file").
			Mark(ierr.ErrDatabase)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Snapshot file is corrupt").
			Mark(ierr.ErrDatabase)
	}

	snapshot.Normalize()
	return &snapshot, nil
}

// Save writes the snapshot atomically.
func (f *FileStore) Save(ctx context.Context, snapshot *Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to serialize snapshot").
			Mark(ierr.ErrDatabase)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".snapshot-*")
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create snapshot temp file").
			Mark(ierr.ErrDatabase)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return ierr.WithError(err).
			WithHint("Failed to write snapshot").
			Mark(ierr.ErrDatabase)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return ierr.WithError(err).
			WithHint("Failed to close snapshot temp file").
			Mark(ierr.ErrDatabase)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return ierr.WithError(err).
			WithHint("Failed to replace snapshot file").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
