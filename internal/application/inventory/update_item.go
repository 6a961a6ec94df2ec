package inventory

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/pkg/tracing"
)

// UpdateItemUseCase 编辑物品用例
// 直接改quantity视为人工校正,不写库存流水
type UpdateItemUseCase struct {
	items    item.Service
	notifier *Notifier
}

// NewUpdateItemUseCase 创建编辑物品用例
func NewUpdateItemUseCase(items item.Service, notifier *Notifier) *UpdateItemUseCase {
	return &UpdateItemUseCase{items: items, notifier: notifier}
}

// UpdateItemRequest 编辑物品请求DTO,nil字段保持不变
type UpdateItemRequest struct {
	ID    int64
	Patch item.Patch
}

// Execute 执行编辑物品用例
func (uc *UpdateItemUseCase) Execute(ctx context.Context, req UpdateItemRequest) (dto *ItemDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, "inventory.UpdateItem", attribute.Int64("item.id", req.ID))
	defer func() { tracing.End(span, err) }()

	it, err := uc.items.Update(ctx, req.ID, req.Patch)
	if err != nil {
		return nil, err
	}

	out := ToItemDTO(it)
	uc.notifier.AfterMutation(ctx, EventItemUpdated, ItemEvent{ItemID: it.ID, Item: &out, OccurredAt: it.LastUpdated})
	return &out, nil
}
