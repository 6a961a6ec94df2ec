package inventory

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/pkg/tracing"
)

// DeleteItemUseCase 删除物品用例
// 流水保留,之后在流水列表中显示为未知物品
type DeleteItemUseCase struct {
	items    item.Service
	notifier *Notifier
}

// NewDeleteItemUseCase 创建删除物品用例
func NewDeleteItemUseCase(items item.Service, notifier *Notifier) *DeleteItemUseCase {
	return &DeleteItemUseCase{items: items, notifier: notifier}
}

// Execute 执行删除物品用例
func (uc *DeleteItemUseCase) Execute(ctx context.Context, id int64) (err error) {
	ctx, span := tracing.StartSpan(ctx, "inventory.DeleteItem", attribute.Int64("item.id", id))
	defer func() { tracing.End(span, err) }()

	if err := uc.items.Delete(ctx, id); err != nil {
		return err
	}
	uc.notifier.AfterMutation(ctx, EventItemDeleted, ItemEvent{ItemID: id, OccurredAt: uc.notifier.clock()})
	return nil
}
