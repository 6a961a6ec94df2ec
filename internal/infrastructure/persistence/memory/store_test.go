package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
)

func newItem(name string) *item.Item {
	return &item.Item{Name: name, Category: "Semences", Unit: "kg", Quantity: 10, LastUpdated: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
}

// TestItemRepository_IDNeverReused 删除最大ID后新建不复用
func TestItemRepository_IDNeverReused(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Items()

	a, b := newItem("A"), newItem("B")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	require.NoError(t, repo.Delete(ctx, b.ID))

	c := newItem("C")
	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, int64(3), c.ID, "已删除的ID不应被复用")
}

// TestItemRepository_ReturnsCopies 返回值是副本
func TestItemRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Items()

	it := newItem("A")
	require.NoError(t, repo.Create(ctx, it))

	it.Name = "changed after create"
	got, err := repo.FindByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	got.Quantity = 999
	again, err := repo.FindByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, again.Quantity)
}

// TestItemRepository_ListInsertionOrder 列表保持插入顺序
func TestItemRepository_ListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Items()

	for _, name := range []string{"C", "A", "B"} {
		require.NoError(t, repo.Create(ctx, newItem(name)))
	}
	require.NoError(t, repo.Delete(ctx, 2))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "C", items[0].Name)
	assert.Equal(t, "B", items[1].Name)
}

// TestItemRepository_NotFound 不存在的ID
func TestItemRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Items()

	_, err := repo.FindByID(ctx, 42)
	assert.ErrorIs(t, err, item.ErrItemNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &item.Item{ID: 42}), item.ErrItemNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 42), item.ErrItemNotFound)
}

// TestItemRepository_UpsertAdvancesCounter 导入的ID推进计数器
func TestItemRepository_UpsertAdvancesCounter(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Items()

	require.NoError(t, repo.Create(ctx, newItem("A")))

	imported := newItem("Imported")
	imported.ID = 10
	created, err := repo.Upsert(ctx, imported)
	require.NoError(t, err)
	assert.True(t, created)

	replacement := newItem("A2")
	replacement.ID = 1
	created, err = repo.Upsert(ctx, replacement)
	require.NoError(t, err)
	assert.False(t, created)

	next := newItem("Next")
	require.NoError(t, repo.Create(ctx, next))
	assert.Equal(t, int64(11), next.ID)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "A2", items[0].Name, "替换保持原位置")
}

// TestStore_TransactionRollback fn返回错误时物品和流水都回滚
func TestStore_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	items, txs := store.Items(), store.Ledger()

	it := newItem("A")
	require.NoError(t, items.Create(ctx, it))

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(ctx context.Context) error {
		require.NoError(t, txs.Append(ctx, &ledger.Transaction{ItemID: it.ID, Type: ledger.MovementIn, Quantity: 5}))
		locked, err := items.LockByID(ctx, it.ID)
		require.NoError(t, err)
		locked.Quantity = 15
		require.NoError(t, items.Update(ctx, locked))
		require.NoError(t, items.Create(ctx, newItem("B")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := items.FindByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Quantity)

	all, err := items.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	history, err := txs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	// 回滚后计数器也恢复
	tx := &ledger.Transaction{ItemID: it.ID, Type: ledger.MovementIn, Quantity: 1}
	require.NoError(t, txs.Append(ctx, tx))
	assert.Equal(t, int64(1), tx.ID)
}

// TestStore_TransactionPanic panic时回滚并继续抛出
func TestStore_TransactionPanic(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	items := store.Items()

	assert.Panics(t, func() {
		_ = store.Transaction(ctx, func(ctx context.Context) error {
			_ = items.Create(ctx, newItem("A"))
			panic("boom")
		})
	})

	all, err := items.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// TestStore_NestedTransaction 嵌套事务加入外层,不会死锁
func TestStore_NestedTransaction(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	items := store.Items()

	err := store.Transaction(ctx, func(ctx context.Context) error {
		return store.Transaction(ctx, func(ctx context.Context) error {
			return items.Create(ctx, newItem("A"))
		})
	})
	require.NoError(t, err)

	all, err := items.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// TestLedgerRepository_ListByItem 按物品过滤且保持顺序
func TestLedgerRepository_ListByItem(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Ledger()

	for _, itemID := range []int64{1, 2, 1} {
		require.NoError(t, repo.Append(ctx, &ledger.Transaction{ItemID: itemID, Type: ledger.MovementIn, Quantity: 1}))
	}

	got, err := repo.ListByItem(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}
