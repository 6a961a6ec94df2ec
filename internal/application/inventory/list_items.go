package inventory

import (
	"context"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/stock"
)

// ListItemsUseCase 库存列表用例(搜索、分类过滤、排序)
type ListItemsUseCase struct {
	items item.Service
}

// NewListItemsUseCase 创建库存列表用例
func NewListItemsUseCase(items item.Service) *ListItemsUseCase {
	return &ListItemsUseCase{items: items}
}

// ListItemsRequest 列表查询参数
// Category为空或all表示不过滤;Sort为空时按name升序
type ListItemsRequest struct {
	Search   string
	Category string
	Sort     string
	Order    string
}

// ListItemsResponse 列表结果
// Alerts和Categories基于全量目录计算,不受过滤影响
type ListItemsResponse struct {
	Items      []ItemDTO     `json:"items"`
	Total      int           `json:"total"`
	Alerts     []stock.Alert `json:"alerts"`
	Categories []string      `json:"categories"`
}

// Execute 执行列表查询
func (uc *ListItemsUseCase) Execute(ctx context.Context, req ListItemsRequest) (*ListItemsResponse, error) {
	all, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}

	visible, err := stock.Query(all, stock.Params{
		SearchTerm: req.Search,
		Category:   req.Category,
		SortField:  req.Sort,
		SortOrder:  stock.SortOrder(req.Order),
	})
	if err != nil {
		return nil, err
	}

	return &ListItemsResponse{
		Items:      ToItemDTOs(visible),
		Total:      len(visible),
		Alerts:     stock.ComputeAlerts(all),
		Categories: stock.Categories(all),
	}, nil
}
