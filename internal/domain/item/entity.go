package item

import (
	"math"
	"strings"
	"time"
)

// DateLayout 库存日期格式（lastUpdated、expiryDate、导出文件名）
const DateLayout = "2006-01-02"

// Item 库存物品实体(聚合根)
// 设计说明:
// 1. ID由仓储在创建时分配(单调递增,删除后不复用)
// 2. Quantity/MinQuantity/Price使用float64(单位由Unit自由描述,如kg、L)
// 3. Quantity始终>=0,出库超量时截断为0
// 4. LastUpdated只保留日期部分
type Item struct {
	ID          int64
	Name        string
	Category    string
	Quantity    float64
	Unit        string
	MinQuantity float64 // 补货阈值
	Price       float64 // 单价
	Location    string
	Supplier    string
	SKU         string
	ExpiryDate  string // 可选,YYYY-MM-DD
	Notes       string
	LastUpdated time.Time
}

// Draft 新建物品的输入
type Draft struct {
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

// Patch 部分更新,nil字段保持不变
type Patch struct {
	Name        *string
	Category    *string
	Quantity    *float64
	Unit        *string
	MinQuantity *float64
	Price       *float64
	Location    *string
	Supplier    *string
	SKU         *string
	ExpiryDate  *string
	Notes       *string
}

// IsEmpty 是否没有任何字段需要更新
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Quantity == nil && p.Unit == nil &&
		p.MinQuantity == nil && p.Price == nil && p.Location == nil && p.Supplier == nil &&
		p.SKU == nil && p.ExpiryDate == nil && p.Notes == nil
}

// NewItem 创建新物品(工厂方法)
// ID为0,由仓储分配
func NewItem(d Draft, now time.Time) *Item {
	return &Item{
		Name:        strings.TrimSpace(d.Name),
		Category:    strings.TrimSpace(d.Category),
		Quantity:    d.Quantity,
		Unit:        strings.TrimSpace(d.Unit),
		MinQuantity: d.MinQuantity,
		Price:       d.Price,
		Location:    d.Location,
		Supplier:    d.Supplier,
		SKU:         d.SKU,
		ExpiryDate:  d.ExpiryDate,
		Notes:       d.Notes,
		LastUpdated: Today(now),
	}
}

// Validate 校验必填字段、数值范围和过期日期格式
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(i.Category) == "" {
		return ErrCategoryRequired
	}
	if strings.TrimSpace(i.Unit) == "" {
		return ErrUnitRequired
	}
	if !isFinite(i.Quantity) || !isFinite(i.MinQuantity) || !isFinite(i.Price) {
		return ErrInvalidNumber
	}
	if i.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if i.MinQuantity < 0 {
		return ErrNegativeMinQuantity
	}
	if i.Price < 0 {
		return ErrNegativePrice
	}
	if i.ExpiryDate != "" {
		if _, err := time.Parse(DateLayout, i.ExpiryDate); err != nil {
			return ErrInvalidExpiryDate.WithDetail(i.ExpiryDate)
		}
	}
	return nil
}

// ApplyPatch 合并字段(直接编辑,不产生库存流水)
func (i *Item) ApplyPatch(p Patch, now time.Time) {
	if p.Name != nil {
		i.Name = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		i.Category = strings.TrimSpace(*p.Category)
	}
	if p.Quantity != nil {
		i.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		i.Unit = strings.TrimSpace(*p.Unit)
	}
	if p.MinQuantity != nil {
		i.MinQuantity = *p.MinQuantity
	}
	if p.Price != nil {
		i.Price = *p.Price
	}
	if p.Location != nil {
		i.Location = *p.Location
	}
	if p.Supplier != nil {
		i.Supplier = *p.Supplier
	}
	if p.SKU != nil {
		i.SKU = *p.SKU
	}
	if p.ExpiryDate != nil {
		i.ExpiryDate = *p.ExpiryDate
	}
	if p.Notes != nil {
		i.Notes = *p.Notes
	}
	i.LastUpdated = Today(now)
}

// Receive 入库
func (i *Item) Receive(amount float64, at time.Time) {
	i.Quantity += amount
	i.LastUpdated = Today(at)
}

// Issue 出库,库存不足时截断为0
func (i *Item) Issue(amount float64, at time.Time) {
	i.Quantity = math.Max(0, i.Quantity-amount)
	i.LastUpdated = Today(at)
}

// Value 库存金额 = 数量 * 单价
func (i *Item) Value() float64 {
	return i.Quantity * i.Price
}

// Clone 复制实体,仓储对外只返回副本
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Today 截断到当天零点(保留时区)
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
