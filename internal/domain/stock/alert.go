package stock

import (
	"math"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
)

// CriticalRatio 低于最低库存的该比例视为严重
const CriticalRatio = 0.5

// StockStatus 库存状态
type StockStatus string

const (
	StatusEmpty    StockStatus = "empty"    // 缺货
	StatusCritical StockStatus = "critical" // 严重不足
	StatusLow      StockStatus = "low"      // 偏低
	StatusNormal   StockStatus = "normal"   // 正常
)

// Severity 告警级别
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert 低库存告警(派生数据,不存储)
type Alert struct {
	ItemID  int64    `json:"itemId"`
	Name    string   `json:"name"`
	Current float64  `json:"current"`
	Min     float64  `json:"min"`
	Status  Severity `json:"status"`
}

// Classify 库存状态分类,所有展示层统一调用这一个函数
func Classify(it *item.Item) StockStatus {
	switch {
	case it.Quantity <= 0:
		return StatusEmpty
	case it.Quantity < it.MinQuantity*CriticalRatio:
		return StatusCritical
	case it.Quantity <= it.MinQuantity:
		return StatusLow
	default:
		return StatusNormal
	}
}

// SeverityOf 库存状态对应的告警级别;正常返回false
// MinQuantity为0的物品从不告警
func SeverityOf(it *item.Item) (Severity, bool) {
	if it.MinQuantity <= 0 {
		return "", false
	}
	switch Classify(it) {
	case StatusEmpty, StatusCritical:
		return SeverityCritical, true
	case StatusLow:
		return SeverityWarning, true
	default:
		return "", false
	}
}

// ComputeAlerts 根据当前目录计算告警,保持输入顺序
// 纯函数,每次调用重新计算,调用方不要跨变更缓存结果
func ComputeAlerts(items []*item.Item) []Alert {
	alerts := make([]Alert, 0)
	for _, it := range items {
		sev, ok := SeverityOf(it)
		if !ok {
			continue
		}
		alerts = append(alerts, Alert{
			ItemID:  it.ID,
			Name:    it.Name,
			Current: it.Quantity,
			Min:     it.MinQuantity,
			Status:  sev,
		})
	}
	return alerts
}

// StockPercentage 库存充足度(0-100),以2倍最低库存为满格
func StockPercentage(it *item.Item) float64 {
	if it.MinQuantity <= 0 {
		return 100
	}
	return math.Min(100, it.Quantity/(it.MinQuantity*2)*100)
}
