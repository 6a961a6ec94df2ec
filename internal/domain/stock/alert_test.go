package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
)

// TestComputeAlerts 告警阈值
func TestComputeAlerts(t *testing.T) {
	items := []*item.Item{
		{ID: 1, Name: "critical", Quantity: 8, MinQuantity: 20},
		{ID: 2, Name: "warning", Quantity: 15, MinQuantity: 20},
		{ID: 3, Name: "fine", Quantity: 45, MinQuantity: 20},
		{ID: 4, Name: "no threshold", Quantity: 0, MinQuantity: 0},
		{ID: 5, Name: "empty", Quantity: 0, MinQuantity: 5},
		{ID: 6, Name: "at min", Quantity: 20, MinQuantity: 20},
		{ID: 7, Name: "at half", Quantity: 10, MinQuantity: 20},
	}

	alerts := ComputeAlerts(items)
	got := map[int64]Severity{}
	var order []int64
	for _, a := range alerts {
		got[a.ItemID] = a.Status
		order = append(order, a.ItemID)
	}

	assert.Equal(t, []int64{1, 2, 5, 6, 7}, order, "保持输入顺序")
	assert.Equal(t, SeverityCritical, got[1])
	assert.Equal(t, SeverityWarning, got[2])
	assert.Equal(t, SeverityCritical, got[5])
	assert.Equal(t, SeverityWarning, got[6])
	assert.Equal(t, SeverityWarning, got[7])

	assert.Equal(t, 8.0, alerts[0].Current)
	assert.Equal(t, 20.0, alerts[0].Min)
	assert.Equal(t, "critical", alerts[0].Name)
}

func TestComputeAlerts_Empty(t *testing.T) {
	alerts := ComputeAlerts(nil)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, StatusEmpty, Classify(&item.Item{Quantity: 0, MinQuantity: 0}))
	assert.Equal(t, StatusCritical, Classify(&item.Item{Quantity: 8, MinQuantity: 20}))
	assert.Equal(t, StatusLow, Classify(&item.Item{Quantity: 20, MinQuantity: 20}))
	assert.Equal(t, StatusNormal, Classify(&item.Item{Quantity: 21, MinQuantity: 20}))
}

func TestStockPercentage(t *testing.T) {
	assert.Equal(t, 100.0, StockPercentage(&item.Item{Quantity: 3, MinQuantity: 0}))
	assert.Equal(t, 25.0, StockPercentage(&item.Item{Quantity: 10, MinQuantity: 20}))
	assert.Equal(t, 100.0, StockPercentage(&item.Item{Quantity: 100, MinQuantity: 20}))
}
