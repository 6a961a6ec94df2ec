package stock

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
)

// CategoryStat 按类别汇总
type CategoryStat struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Items    int     `json:"items"`
}

// Overview 库存总览(派生数据)
type Overview struct {
	TotalItems    int             `json:"totalItems"`
	LowStockCount int             `json:"lowStockCount"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	Categories    []CategoryStat  `json:"categories"`
	Alerts        []Alert         `json:"alerts"`
}

// Summarize 计算总览
// 金额用decimal累加,避免大量float相加的误差,结果保留两位小数
func Summarize(items []*item.Item) *Overview {
	ov := &Overview{
		TotalItems: len(items),
		TotalValue: decimal.Zero,
		Categories: make([]CategoryStat, 0),
	}

	index := make(map[string]int)
	for _, it := range items {
		value := decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.Price))
		ov.TotalValue = ov.TotalValue.Add(value)

		pos, ok := index[it.Category]
		if !ok {
			pos = len(ov.Categories)
			index[it.Category] = pos
			ov.Categories = append(ov.Categories, CategoryStat{Name: it.Category})
		}
		ov.Categories[pos].Quantity += it.Quantity
		ov.Categories[pos].Items++
	}
	ov.TotalValue = ov.TotalValue.Round(2)

	ov.Alerts = ComputeAlerts(items)
	ov.LowStockCount = len(ov.Alerts)
	return ov
}
