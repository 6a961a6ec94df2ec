package inventory

import (
	"context"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/stock"
)

// OverviewUseCase 总览、告警、分类等只读派生视图
// 每次都基于当前目录重新计算
type OverviewUseCase struct {
	items item.Service
}

// NewOverviewUseCase 创建总览用例
func NewOverviewUseCase(items item.Service) *OverviewUseCase {
	return &OverviewUseCase{items: items}
}

// Overview 库存总览
func (uc *OverviewUseCase) Overview(ctx context.Context) (*stock.Overview, error) {
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}
	return stock.Summarize(items), nil
}

// Alerts 当前告警,按目录顺序
func (uc *OverviewUseCase) Alerts(ctx context.Context) ([]stock.Alert, error) {
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}
	alerts := stock.ComputeAlerts(items)
	RecordStockLevels(items, alerts)
	return alerts, nil
}

// Categories 分类列表,第一个固定为all
func (uc *OverviewUseCase) Categories(ctx context.Context) ([]string, error) {
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}
	return stock.Categories(items), nil
}
