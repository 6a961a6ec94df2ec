package item_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
)

var fixedNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func newService() (item.Service, item.Repository) {
	store := memory.NewStore()
	clock := func() time.Time { return fixedNow }
	return item.NewService(store.Items(), store.TxManager(), clock), store.Items()
}

func draft(name string) item.Draft {
	return item.Draft{Name: name, Category: "Engrais", Unit: "kg", Quantity: 100, MinQuantity: 20, Price: 1.5}
}

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

// TestService_Create 新建物品
func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	t.Run("分配ID并设置日期", func(t *testing.T) {
		it, err := svc.Create(ctx, draft("Engrais NPK"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), it.ID)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), it.LastUpdated)
	})

	t.Run("数值字段缺省为0", func(t *testing.T) {
		it, err := svc.Create(ctx, item.Draft{Name: "Ficelle", Category: "Divers", Unit: "rouleau"})
		require.NoError(t, err)
		assert.Zero(t, it.Quantity)
		assert.Zero(t, it.MinQuantity)
		assert.Zero(t, it.Price)
	})

	t.Run("必填字段为空", func(t *testing.T) {
		cases := map[string]item.Draft{
			"name":     {Category: "c", Unit: "u"},
			"category": {Name: "n", Category: "  ", Unit: "u"},
			"unit":     {Name: "n", Category: "c"},
		}
		for field, d := range cases {
			_, err := svc.Create(ctx, d)
			require.Error(t, err, field)
			assert.True(t, apperrors.IsValidation(err), field)
		}
	})

	t.Run("负数和非有限数值", func(t *testing.T) {
		d := draft("X")
		d.Quantity = -1
		_, err := svc.Create(ctx, d)
		assert.ErrorIs(t, err, item.ErrNegativeQuantity)

		d = draft("X")
		d.Price = math.NaN()
		_, err = svc.Create(ctx, d)
		assert.ErrorIs(t, err, item.ErrInvalidNumber)
	})

	t.Run("ID唯一", func(t *testing.T) {
		list, err := svc.List(ctx)
		require.NoError(t, err)
		seen := map[int64]bool{}
		for _, it := range list {
			assert.False(t, seen[it.ID])
			seen[it.ID] = true
		}
	})
}

// TestService_DeleteMaxIDNotReused 删除最大ID物品后新ID不冲突
func TestService_DeleteMaxIDNotReused(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Create(ctx, draft("A"))
	require.NoError(t, err)
	b, err := svc.Create(ctx, draft("B"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, b.ID))
	c, err := svc.Create(ctx, draft("C"))
	require.NoError(t, err)
	assert.NotEqual(t, b.ID, c.ID)

	_, err = svc.Get(ctx, b.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

// TestService_Update 部分更新
func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	created, err := svc.Create(ctx, draft("Engrais NPK"))
	require.NoError(t, err)

	t.Run("只合并非空字段", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, item.Patch{Quantity: floatPtr(42), Location: strPtr("Hangar B")})
		require.NoError(t, err)
		assert.Equal(t, 42.0, updated.Quantity)
		assert.Equal(t, "Hangar B", updated.Location)
		assert.Equal(t, "Engrais NPK", updated.Name)
	})

	t.Run("不存在的ID", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, item.Patch{Name: strPtr("x")})
		assert.ErrorIs(t, err, item.ErrItemNotFound)
	})

	t.Run("空补丁", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, item.Patch{})
		assert.ErrorIs(t, err, item.ErrEmptyPatch)
	})

	t.Run("非法更新不生效", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, item.Patch{Name: strPtr(""), Quantity: floatPtr(1)})
		assert.ErrorIs(t, err, item.ErrNameRequired)

		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Engrais NPK", got.Name)
		assert.Equal(t, 42.0, got.Quantity)
	})
}

// TestService_Import 导入合并
func TestService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("一条更新一条新增", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Create(ctx, draft("A"))
		require.NoError(t, err)
		_, err = svc.Create(ctx, draft("B"))
		require.NoError(t, err)

		replacement := item.NewItem(draft("A bis"), fixedNow)
		replacement.ID = 1
		replacement.Quantity = 7
		added := item.NewItem(draft("Z"), fixedNow)
		added.ID = 99

		res, err := svc.Import(ctx, []*item.Item{replacement, added})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Updated)
		assert.Equal(t, 1, res.Added)
		assert.Equal(t, []int64{1}, res.UpdatedIDs)
		assert.Equal(t, []int64{99}, res.AddedIDs)

		list, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "A bis", list[0].Name)
		assert.Equal(t, 7.0, list[0].Quantity)
		assert.Equal(t, "B", list[1].Name)
		assert.Equal(t, int64(99), list[2].ID)

		next, err := svc.Create(ctx, draft("after import"))
		require.NoError(t, err)
		assert.Equal(t, int64(100), next.ID)
	})

	t.Run("同批重复ID后者覆盖且只计一次", func(t *testing.T) {
		svc, _ := newService()
		first := item.NewItem(draft("first"), fixedNow)
		first.ID = 5
		second := item.NewItem(draft("second"), fixedNow)
		second.ID = 5

		res, err := svc.Import(ctx, []*item.Item{first, second})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Added)
		assert.Equal(t, 0, res.Updated)

		got, err := svc.Get(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "second", got.Name)
	})

	t.Run("非法行使整批失败", func(t *testing.T) {
		svc, _ := newService()
		good := item.NewItem(draft("good"), fixedNow)
		good.ID = 1
		bad := item.NewItem(draft(""), fixedNow)
		bad.ID = 2

		_, err := svc.Import(ctx, []*item.Item{good, bad})
		assert.ErrorIs(t, err, item.ErrNameRequired)

		list, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("ID必须为正", func(t *testing.T) {
		svc, _ := newService()
		it := item.NewItem(draft("x"), fixedNow)
		_, err := svc.Import(ctx, []*item.Item{it})
		assert.True(t, apperrors.IsValidation(err))
	})
}
