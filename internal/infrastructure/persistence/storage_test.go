package persistence

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/config"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: config.DriverMemory}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, cleanup, err := Open(cfg, log)
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	err = s.Tx.Transaction(ctx, func(ctx context.Context) error {
		return s.Items.Create(ctx, &item.Item{Name: "Blé", Category: "Semences", Unit: "kg"})
	})
	require.NoError(t, err)

	items, err := s.Items.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// 每次Open都是独立的目录
	other, _, err := Open(cfg, log)
	require.NoError(t, err)
	items, err = other.Items.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "sqlite"}}
	_, _, err := Open(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
