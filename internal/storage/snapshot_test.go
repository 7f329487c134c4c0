package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/billfold/billfold/internal/domain/client"
	"github.com/billfold/billfold/internal/domain/contract"
	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := NewFileStore(path)
	ctx := context.Background()

	due := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	snapshot := &Snapshot{
		Clients: []*client.Client{
			{
				ID:          "client_1",
				Name:        "Acme Corp",
				AgreedPrice: decimal.RequireFromString("999.99"),
				Payments: []*client.Payment{
					{
						ID:       "client_1_pay_1",
						ClientID: "client_1",
						Amount:   decimal.NewFromInt(100),
						DueDate:  due,
						Type:     types.PaymentTypeRetainer,
					},
				},
				BaseModel: types.GetDefaultBaseModel(),
			},
		},
		Invoices: []*invoice.Invoice{
			{
				ID:            "inv_1",
				ClientID:      "client_1",
				InvoiceNumber: "INV-0001",
				IssueDate:     due,
				DueDate:       due,
				InvoiceStatus: types.InvoiceStatusDraft,
				Total:         decimal.NewFromInt(100),
				BaseModel:     types.GetDefaultBaseModel(),
			},
		},
		ContractSequences: map[int]int64{2024: 7},
		InvoiceSequence:   1,
	}

	require.NoError(t, store.Save(ctx, snapshot))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	require.Len(t, loaded.Clients, 1)
	got := loaded.Clients[0]
	assert.Equal(t, "Acme Corp", got.Name)
	assert.True(t, got.AgreedPrice.Equal(decimal.RequireFromString("999.99")))

	// times survive as real time values at the same instant
	require.Len(t, got.Payments, 1)
	assert.True(t, got.Payments[0].DueDate.Equal(due))

	assert.Equal(t, int64(7), loaded.ContractSequences[2024])
	assert.Equal(t, int64(1), loaded.InvoiceSequence)
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Clients)
	assert.Empty(t, snapshot.Contracts)
}

func TestLoadNormalizesLegacyDraftStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := NewFileStore(path)
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	snapshot := &Snapshot{
		Contracts: []*contract.Contract{
			{
				ID:             "cont_1",
				ClientID:       "client_1",
				ContractNumber: "CNT-2024-001",
				StartDate:      start,
				EndDate:        start.AddDate(1, 0, 0),
				ContractStatus: types.ContractStatusDraft,
				Settings: contract.Settings{
					Currency:         "usd",
					PaymentStructure: types.PaymentStructureSimple,
				},
				BaseModel: types.GetDefaultBaseModel(),
			},
		},
	}

	require.NoError(t, store.Save(ctx, snapshot))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Contracts, 1)
	assert.Equal(t, types.ContractStatusCreated, loaded.Contracts[0].ContractStatus)
}
