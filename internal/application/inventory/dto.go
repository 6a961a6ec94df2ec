package inventory

import (
	"time"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
	"github.com/xiebiao/inventory-ledger/internal/domain/stock"
)

// UnknownItemName 流水引用的物品已被删除时展示的名称
const UnknownItemName = "Article inconnu"

// ItemDTO 物品响应DTO
// 字段名与CSV列保持一致,日期格式YYYY-MM-DD
type ItemDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	MinQuantity float64 `json:"minQuantity"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	Supplier    string  `json:"supplier"`
	SKU         string  `json:"sku"`
	ExpiryDate  string  `json:"expiryDate,omitempty"`
	Notes       string  `json:"notes"`
	LastUpdated string  `json:"lastUpdated"`
}

// TransactionDTO 库存流水响应DTO
type TransactionDTO struct {
	ID       int64   `json:"id"`
	ItemID   int64   `json:"itemId"`
	ItemName string  `json:"itemName,omitempty"`
	Type     string  `json:"type"`
	Quantity float64 `json:"quantity"`
	Date     string  `json:"date"`
	User     string  `json:"user"`
	Notes    string  `json:"notes"`
}

// ItemDetail 物品详情:状态、充足度和最近流水
type ItemDetail struct {
	ItemDTO
	Status             stock.StockStatus `json:"status"`
	StockPercentage    float64           `json:"stockPercentage"`
	Value              float64           `json:"value"`
	RecentTransactions []TransactionDTO  `json:"recentTransactions"`
}

// ToItemDTO 实体转DTO
func ToItemDTO(it *item.Item) ItemDTO {
	dto := ItemDTO{
		ID:          it.ID,
		Name:        it.Name,
		Category:    it.Category,
		Quantity:    it.Quantity,
		Unit:        it.Unit,
		MinQuantity: it.MinQuantity,
		Price:       it.Price,
		Location:    it.Location,
		Supplier:    it.Supplier,
		SKU:         it.SKU,
		ExpiryDate:  it.ExpiryDate,
		Notes:       it.Notes,
	}
	if !it.LastUpdated.IsZero() {
		dto.LastUpdated = it.LastUpdated.Format(item.DateLayout)
	}
	return dto
}

// ToItemDTOs 批量转换,空列表返回[]而不是nil
func ToItemDTOs(items []*item.Item) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, ToItemDTO(it))
	}
	return dtos
}

// ToTransactionDTO 流水转DTO,itemName为空时不输出
func ToTransactionDTO(t *ledger.Transaction, itemName string) TransactionDTO {
	return TransactionDTO{
		ID:       t.ID,
		ItemID:   t.ItemID,
		ItemName: itemName,
		Type:     string(t.Type),
		Quantity: t.Quantity,
		Date:     t.Date.Format(time.RFC3339),
		User:     t.User,
		Notes:    t.Notes,
	}
}
