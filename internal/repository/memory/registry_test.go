package memory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/domain/client"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)
	return log
}

func testClient(id string) *client.Client {
	return &client.Client{
		ID:          id,
		Name:        "Acme Corp",
		AgreedPrice: decimal.NewFromInt(1000),
		Payments: []*client.Payment{
			{
				ID:       id + "_pay_1",
				ClientID: id,
				Amount:   decimal.NewFromInt(100),
				DueDate:  time.Now().UTC(),
				Type:     types.PaymentTypeRetainer,
			},
		},
		BaseModel: types.GetDefaultBaseModel(),
	}
}

func TestRegistryPersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	log := newTestLogger(t)

	cfg := config.GetDefaultConfig()
	cfg.Storage.SnapshotPath = filepath.Join(t.TempDir(), "billfold.json")

	first, err := NewRegistry(cfg, log)
	require.NoError(t, err)

	require.NoError(t, first.Clients.Create(ctx, testClient("client_1")))
	_, err = first.Contracts.NextSequence(ctx, 2024)
	require.NoError(t, err)
	_, err = first.Invoices.NextSequence(ctx)
	require.NoError(t, err)

	// a second registry on the same path sees the state
	second, err := NewRegistry(cfg, log)
	require.NoError(t, err)

	got, err := second.Clients.Get(ctx, "client_1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Name)

	// sequence counters survive too: no number reuse after restart
	seq, err := second.Contracts.NextSequence(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)

	invSeq, err := second.Invoices.NextSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), invSeq)
}

func TestRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	registry := NewEphemeralRegistry(newTestLogger(t))

	require.NoError(t, registry.Clients.Create(ctx, testClient("client_1")))

	got, err := registry.Clients.Get(ctx, "client_1")
	require.NoError(t, err)
	got.Name = "mutated"
	now := time.Now().UTC()
	got.Payments[0].PaidDate = &now

	fresh, err := registry.Clients.Get(ctx, "client_1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", fresh.Name)
	assert.Nil(t, fresh.Payments[0].PaidDate)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	registry := NewEphemeralRegistry(newTestLogger(t))

	for _, id := range []string{"client_c", "client_a", "client_b"} {
		require.NoError(t, registry.Clients.Create(ctx, testClient(id)))
	}

	items, err := registry.Clients.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "client_c", items[0].ID)
	assert.Equal(t, "client_a", items[1].ID)
	assert.Equal(t, "client_b", items[2].ID)
}

func TestDuplicateCreateFails(t *testing.T) {
	ctx := context.Background()
	registry := NewEphemeralRegistry(newTestLogger(t))

	require.NoError(t, registry.Clients.Create(ctx, testClient("client_1")))
	assert.Error(t, registry.Clients.Create(ctx, testClient("client_1")))
}
