package item

import (
	"context"
)

// Repository 物品仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现(memory、gormdb)
type Repository interface {
	// Create 创建物品,分配新ID并回填到it.ID
	Create(ctx context.Context, it *Item) error

	// FindByID 根据ID查找物品,不存在返回ErrItemNotFound
	FindByID(ctx context.Context, id int64) (*Item, error)

	// LockByID 在事务中锁定物品(读-改-写),用于库存变动
	LockByID(ctx context.Context, id int64) (*Item, error)

	// Update 整体覆盖已存在的物品
	Update(ctx context.Context, it *Item) error

	// Delete 删除物品
	Delete(ctx context.Context, id int64) error

	// List 按插入顺序返回全部物品
	List(ctx context.Context) ([]*Item, error)

	// Upsert 按ID存在则整体替换、不存在则追加(导入合并)
	// 返回created=true表示新追加;ID计数器会推进到导入的ID之后
	Upsert(ctx context.Context, it *Item) (created bool, err error)
}

// TxManager 事务管理器
// fn内的所有仓储操作在同一事务中执行,返回error时全部回滚
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
