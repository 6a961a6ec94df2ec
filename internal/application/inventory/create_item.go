package inventory

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/pkg/tracing"
)

// CreateItemUseCase 新建物品用例
type CreateItemUseCase struct {
	items    item.Service
	notifier *Notifier
}

// NewCreateItemUseCase 创建新建物品用例
func NewCreateItemUseCase(items item.Service, notifier *Notifier) *CreateItemUseCase {
	return &CreateItemUseCase{items: items, notifier: notifier}
}

// CreateItemRequest 新建物品请求DTO
// 数值字段缺省为0
type CreateItemRequest struct {
	Name        string
	Category    string
	Quantity    float64
	Unit        string
	MinQuantity float64
	Price       float64
	Location    string
	Supplier    string
	SKU         string
	ExpiryDate  string
	Notes       string
}

// Execute 执行新建物品用例
func (uc *CreateItemUseCase) Execute(ctx context.Context, req CreateItemRequest) (dto *ItemDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, "inventory.CreateItem", attribute.String("item.category", req.Category))
	defer func() { tracing.End(span, err) }()

	it, err := uc.items.Create(ctx, item.Draft{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		MinQuantity: req.MinQuantity,
		Price:       req.Price,
		Location:    req.Location,
		Supplier:    req.Supplier,
		SKU:         req.SKU,
		ExpiryDate:  req.ExpiryDate,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("item.id", it.ID))

	out := ToItemDTO(it)
	uc.notifier.AfterMutation(ctx, EventItemCreated, ItemEvent{ItemID: it.ID, Item: &out, OccurredAt: it.LastUpdated})
	return &out, nil
}
