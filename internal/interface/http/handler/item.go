package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/inventory-ledger/internal/application/inventory"
	"github.com/xiebiao/inventory-ledger/internal/interface/http/dto"
	"github.com/xiebiao/inventory-ledger/pkg/response"
)

// ItemHandler 物品目录HTTP处理器
type ItemHandler struct {
	createItem *inventory.CreateItemUseCase
	updateItem *inventory.UpdateItemUseCase
	deleteItem *inventory.DeleteItemUseCase
	getItem    *inventory.GetItemUseCase
	listItems  *inventory.ListItemsUseCase
}

// NewItemHandler 创建物品处理器
func NewItemHandler(
	createItem *inventory.CreateItemUseCase,
	updateItem *inventory.UpdateItemUseCase,
	deleteItem *inventory.DeleteItemUseCase,
	getItem *inventory.GetItemUseCase,
	listItems *inventory.ListItemsUseCase,
) *ItemHandler {
	return &ItemHandler{
		createItem: createItem,
		updateItem: updateItem,
		deleteItem: deleteItem,
		getItem:    getItem,
		listItems:  listItems,
	}
}

// ListItems 库存列表
// @Summary      库存列表
// @Description  按名称/分类/SKU搜索,按分类过滤,按任意字段排序;同时返回告警和分类列表
// @Tags         物品
// @Produce      json
// @Param        search   query string false "搜索词(不区分大小写)"
// @Param        category query string false "分类,all表示全部"
// @Param        sort     query string false "排序字段" default(name)
// @Param        order    query string false "asc|desc" default(asc)
// @Success      200 {object} response.Response{data=inventory.ListItemsResponse}
// @Router       /api/v1/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	var q dto.ListItemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.listItems.Execute(c.Request.Context(), inventory.ListItemsRequest{
		Search:   q.Search,
		Category: q.Category,
		Sort:     q.Sort,
		Order:    q.Order,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateItem 新建物品
// @Summary      新建物品
// @Tags         物品
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateItemRequest true "物品信息"
// @Success      200 {object} response.Response{data=inventory.ItemDTO}
// @Router       /api/v1/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.createItem.Execute(c.Request.Context(), inventory.CreateItemRequest{
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
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetItem 物品详情
// @Summary      物品详情
// @Description  包含库存状态、充足度和最近10条流水
// @Tags         物品
// @Produce      json
// @Param        id path int true "物品ID"
// @Success      200 {object} response.Response{data=inventory.ItemDetail}
// @Router       /api/v1/items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.getItem.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateItem 编辑物品
// @Summary      编辑物品
// @Description  只更新请求中出现的字段;直接修改数量不产生库存流水
// @Tags         物品
// @Accept       json
// @Produce      json
// @Param        id      path int                   true "物品ID"
// @Param        request body dto.UpdateItemRequest true "要更新的字段"
// @Success      200 {object} response.Response{data=inventory.ItemDTO}
// @Router       /api/v1/items/{id} [patch]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.updateItem.Execute(c.Request.Context(), inventory.UpdateItemRequest{
		ID:    id,
		Patch: req.ToPatch(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteItem 删除物品
// @Summary      删除物品
// @Description  历史流水保留
// @Tags         物品
// @Produce      json
// @Param        id path int true "物品ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.deleteItem.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}
