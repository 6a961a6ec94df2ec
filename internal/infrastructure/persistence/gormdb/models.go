package gormdb

import (
	"time"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
)

// ItemModel GORM物品模型
// 设计说明:
// 1. ID由仓储显式写入(导入时沿用文件中的ID),不依赖自增
// 2. 不使用软删除:删除后ID依然被id_sequences记录,不会复用
// 3. CreatedAt只用于保持插入顺序,导入覆盖时不更新
type ItemModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false"`
	Name        string    `gorm:"index:idx_search;size:200;not null;comment:名称"`
	Category    string    `gorm:"index;size:100;not null;comment:分类"`
	Quantity    float64   `gorm:"not null;default:0;comment:当前数量"`
	Unit        string    `gorm:"size:20;not null;comment:单位"`
	MinQuantity float64   `gorm:"not null;default:0;comment:最低库存"`
	Price       float64   `gorm:"not null;default:0;comment:单价"`
	Location    string    `gorm:"size:200;comment:存放位置"`
	Supplier    string    `gorm:"size:200;comment:供应商"`
	SKU         string    `gorm:"column:sku;index:idx_search;size:100;comment:SKU"`
	ExpiryDate  string    `gorm:"size:10;comment:过期日期(YYYY-MM-DD)"`
	Notes       string    `gorm:"type:text;comment:备注"`
	LastUpdated time.Time `gorm:"type:date;comment:最后更新日期"`
	CreatedAt   time.Time `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (ItemModel) TableName() string {
	return "items"
}

// TransactionModel GORM库存流水模型(只追加)
type TransactionModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	ItemID   int64     `gorm:"index;not null;comment:物品ID(物品删除后保留)"`
	Type     string    `gorm:"size:8;not null;comment:in/out"`
	Quantity float64   `gorm:"not null;comment:变动数量(正数)"`
	Date     time.Time `gorm:"index;not null;comment:变动时间"`
	User     string    `gorm:"column:user_name;size:100;comment:操作人"`
	Notes    string    `gorm:"type:text;comment:备注"`
}

// TableName 指定表名
func (TransactionModel) TableName() string {
	return "stock_transactions"
}

// SequenceModel ID计数器
// 物品ID单调递增且不复用,不能用MAX(id)+1
type SequenceModel struct {
	Name   string `gorm:"primaryKey;size:50"`
	LastID int64  `gorm:"not null;default:0"`
}

// TableName 指定表名
func (SequenceModel) TableName() string {
	return "id_sequences"
}

func toItemModel(it *item.Item) *ItemModel {
	return &ItemModel{
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
		LastUpdated: it.LastUpdated,
	}
}

func toItemEntity(m *ItemModel) *item.Item {
	return &item.Item{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Quantity:    m.Quantity,
		Unit:        m.Unit,
		MinQuantity: m.MinQuantity,
		Price:       m.Price,
		Location:    m.Location,
		Supplier:    m.Supplier,
		SKU:         m.SKU,
		ExpiryDate:  m.ExpiryDate,
		Notes:       m.Notes,
		LastUpdated: m.LastUpdated,
	}
}

func toTransactionModel(tx *ledger.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:       tx.ID,
		ItemID:   tx.ItemID,
		Type:     string(tx.Type),
		Quantity: tx.Quantity,
		Date:     tx.Date,
		User:     tx.User,
		Notes:    tx.Notes,
	}
}

func toTransactionEntity(m *TransactionModel) *ledger.Transaction {
	return &ledger.Transaction{
		ID:       m.ID,
		ItemID:   m.ItemID,
		Type:     ledger.MovementType(m.Type),
		Quantity: m.Quantity,
		Date:     m.Date,
		User:     m.User,
		Notes:    m.Notes,
	}
}
