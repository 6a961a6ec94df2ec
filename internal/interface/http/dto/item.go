package dto

import (
	"github.com/xiebiao/inventory-ledger/internal/domain/item"
)

// CreateItemRequest HTTP新建物品请求
// 数值字段缺省为0;业务校验(非空、非负)由领域层负责
type CreateItemRequest struct {
	Name        string  `json:"name" binding:"max=200" example:"Semences de blé"`
	Category    string  `json:"category" binding:"max=100" example:"Semences"`
	Quantity    float64 `json:"quantity" example:"500"`
	Unit        string  `json:"unit" binding:"max=20" example:"kg"`
	MinQuantity float64 `json:"minQuantity" example:"100"`
	Price       float64 `json:"price" example:"1250"`
	Location    string  `json:"location" example:"Hangar principal"`
	Supplier    string  `json:"supplier" example:"Agro-Semences SARL"`
	SKU         string  `json:"sku" example:"SEM-BLE-001"`
	ExpiryDate  string  `json:"expiryDate" binding:"omitempty,datetime=2006-01-02" example:"2024-12-31"`
	Notes       string  `json:"notes" example:"Semences certifiées pour la saison 2024"`
}

// UpdateItemRequest HTTP编辑物品请求
// 只更新请求中出现的字段
type UpdateItemRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=200"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	Quantity    *float64 `json:"quantity"`
	Unit        *string  `json:"unit" binding:"omitempty,max=20"`
	MinQuantity *float64 `json:"minQuantity"`
	Price       *float64 `json:"price"`
	Location    *string  `json:"location"`
	Supplier    *string  `json:"supplier"`
	SKU         *string  `json:"sku"`
	ExpiryDate  *string  `json:"expiryDate" binding:"omitempty,datetime=2006-01-02"`
	Notes       *string  `json:"notes"`
}

// ToPatch 转换为领域层的部分更新
func (r UpdateItemRequest) ToPatch() item.Patch {
	return item.Patch{
		Name:        r.Name,
		Category:    r.Category,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		MinQuantity: r.MinQuantity,
		Price:       r.Price,
		Location:    r.Location,
		Supplier:    r.Supplier,
		SKU:         r.SKU,
		ExpiryDate:  r.ExpiryDate,
		Notes:       r.Notes,
	}
}

// ListItemsQuery 库存列表查询参数
type ListItemsQuery struct {
	Search   string `form:"search" binding:"max=100" example:"semences"`
	Category string `form:"category" example:"all"`
	Sort     string `form:"sort" example:"name"`
	Order    string `form:"order" example:"asc"`
}
