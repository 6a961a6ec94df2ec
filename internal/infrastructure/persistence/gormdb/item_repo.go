package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
)

// itemRepository 物品仓储实现(GORM)
// 负责domain实体与GORM模型之间的转换,数据库错误统一包装为ErrCodeDatabaseError
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建物品仓储
func NewItemRepository(db *gorm.DB) item.Repository {
	return &itemRepository{db: db}
}

// Create 分配ID并插入
func (r *itemRepository) Create(ctx context.Context, it *item.Item) error {
	return atomic(ctx, r.db, func(tx *gorm.DB) error {
		id, err := nextID(tx, itemSequence)
		if err != nil {
			return dbError(err, "分配物品ID失败")
		}
		model := toItemModel(it)
		model.ID = id
		if err := tx.Create(model).Error; err != nil {
			return dbError(err, "创建物品失败")
		}
		it.ID = id
		return nil
	})
}

// FindByID 根据ID查找物品
func (r *itemRepository) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	return r.first(getDB(ctx, r.db), id)
}

// LockByID SELECT ... FOR UPDATE,调用方必须在事务中
func (r *itemRepository) LockByID(ctx context.Context, id int64) (*item.Item, error) {
	return r.first(getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// Update 覆盖全部字段(含零值)
func (r *itemRepository) Update(ctx context.Context, it *item.Item) error {
	db := getDB(ctx, r.db)
	result := db.Model(&ItemModel{ID: it.ID}).
		Select("*").Omit("id", "created_at").
		Updates(toItemModel(it))
	if result.Error != nil {
		return dbError(result.Error, "更新物品失败")
	}
	// MySQL在值未变化时RowsAffected为0,需要再确认一次
	if result.RowsAffected == 0 {
		exists, err := r.exists(db, it.ID)
		if err != nil {
			return err
		}
		if !exists {
			return item.ErrItemNotFound
		}
	}
	return nil
}

// Delete 物理删除,流水中的item_id保留
func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	result := getDB(ctx, r.db).Delete(&ItemModel{}, id)
	if result.Error != nil {
		return dbError(result.Error, "删除物品失败")
	}
	if result.RowsAffected == 0 {
		return item.ErrItemNotFound
	}
	return nil
}

// List 按插入顺序返回
func (r *itemRepository) List(ctx context.Context) ([]*item.Item, error) {
	var models []ItemModel
	if err := getDB(ctx, r.db).Order("created_at, id").Find(&models).Error; err != nil {
		return nil, dbError(err, "查询物品列表失败")
	}
	items := make([]*item.Item, 0, len(models))
	for i := range models {
		items = append(items, toItemEntity(&models[i]))
	}
	return items, nil
}

// Upsert 存在则覆盖(保留插入位置),不存在则按给定ID插入
func (r *itemRepository) Upsert(ctx context.Context, it *item.Item) (bool, error) {
	var created bool
	err := atomic(ctx, r.db, func(tx *gorm.DB) error {
		exists, err := r.exists(tx.Clauses(clause.Locking{Strength: "UPDATE"}), it.ID)
		if err != nil {
			return err
		}
		model := toItemModel(it)
		if exists {
			err = tx.Model(&ItemModel{ID: it.ID}).Select("*").Omit("id", "created_at").Updates(model).Error
		} else {
			err = tx.Create(model).Error
		}
		if err != nil {
			return dbError(err, "导入物品失败")
		}
		if err := advanceTo(tx, itemSequence, it.ID); err != nil {
			return dbError(err, "更新物品ID计数器失败")
		}
		created = !exists
		return nil
	})
	return created, err
}

func (r *itemRepository) first(db *gorm.DB, id int64) (*item.Item, error) {
	var model ItemModel
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, item.ErrItemNotFound
		}
		return nil, dbError(err, "查询物品失败")
	}
	return toItemEntity(&model), nil
}

func (r *itemRepository) exists(db *gorm.DB, id int64) (bool, error) {
	var ids []int64
	if err := db.Model(&ItemModel{}).Where("id = ?", id).Limit(1).Pluck("id", &ids).Error; err != nil {
		return false, dbError(err, "查询物品失败")
	}
	return len(ids) > 0, nil
}

func dbError(err error, message string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return &apperrors.AppError{Code: apperrors.ErrCodeDatabaseError, Message: message, Err: err}
}
