package gormdb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
)

// openTestDB 通过INVENTORY_TEST_MYSQL_DSN或INVENTORY_TEST_POSTGRES_DSN连接测试库,都未设置时跳过
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	var dialector gorm.Dialector
	if dsn := os.Getenv("INVENTORY_TEST_MYSQL_DSN"); dsn != "" {
		dialector = mysql.Open(dsn)
	} else if dsn := os.Getenv("INVENTORY_TEST_POSTGRES_DSN"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		t.Skip("database not available: set INVENTORY_TEST_MYSQL_DSN or INVENTORY_TEST_POSTGRES_DSN")
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Skipf("database not available: %v", err)
	}
	require.NoError(t, db.Migrator().DropTable(&ItemModel{}, &TransactionModel{}, &SequenceModel{}))
	require.NoError(t, AutoMigrate(db))
	return db
}

func newTestItem(name string) *item.Item {
	return &item.Item{
		Name: name, Category: "Semences", Unit: "kg", Quantity: 10, MinQuantity: 5, Price: 2.5,
		LastUpdated: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestItemRepository_CRUD(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewItemRepository(db)

	a, b := newTestItem("A"), newTestItem("B")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	require.NoError(t, repo.Delete(ctx, b.ID))
	c := newTestItem("C")
	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, int64(3), c.ID, "删除后ID不复用")

	a.Quantity = 0
	a.Notes = "inventaire"
	require.NoError(t, repo.Update(ctx, a))
	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Quantity, "零值也要写入")
	assert.Equal(t, "inventaire", got.Notes)

	_, err = repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, item.ErrItemNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), item.ErrItemNotFound)
}

func TestItemRepository_Upsert(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewItemRepository(db)

	require.NoError(t, repo.Create(ctx, newTestItem("A")))

	imported := newTestItem("Imported")
	imported.ID = 50
	created, err := repo.Upsert(ctx, imported)
	require.NoError(t, err)
	assert.True(t, created)

	replaced := newTestItem("A bis")
	replaced.ID = 1
	created, err = repo.Upsert(ctx, replaced)
	require.NoError(t, err)
	assert.False(t, created)

	next := newTestItem("Next")
	require.NoError(t, repo.Create(ctx, next))
	assert.Equal(t, int64(51), next.ID)
}

func TestTxManager_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	items := NewItemRepository(db)
	txs := NewLedgerRepository(db)
	tm := NewTxManager(db)

	it := newTestItem("A")
	require.NoError(t, items.Create(ctx, it))

	err := tm.Transaction(ctx, func(ctx context.Context) error {
		require.NoError(t, txs.Append(ctx, &ledger.Transaction{ItemID: it.ID, Type: ledger.MovementIn, Quantity: 5, Date: time.Now()}))
		return item.ErrItemNotFound
	})
	assert.ErrorIs(t, err, item.ErrItemNotFound)

	history, err := txs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}
