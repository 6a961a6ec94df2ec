package ledger

import "context"

// Repository 库存流水仓储接口
// 只提供追加和查询,没有更新/删除
type Repository interface {
	// Append 追加流水,分配新ID并回填到tx.ID
	Append(ctx context.Context, tx *Transaction) error

	// List 按创建顺序返回全部流水
	List(ctx context.Context) ([]*Transaction, error)

	// ListByItem 按创建顺序返回指定物品的流水
	ListByItem(ctx context.Context, itemID int64) ([]*Transaction, error)
}
