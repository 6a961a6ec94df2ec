package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/inventory-ledger/internal/application/inventory"
	"github.com/xiebiao/inventory-ledger/internal/interface/http/dto"
	"github.com/xiebiao/inventory-ledger/pkg/response"
)

// IdempotencyKeyHeader 库存变动请求的幂等键
const IdempotencyKeyHeader = "Idempotency-Key"

// StockHandler 库存变动与派生视图HTTP处理器
type StockHandler struct {
	applyMovement    *inventory.ApplyMovementUseCase
	listTransactions *inventory.ListTransactionsUseCase
	overview         *inventory.OverviewUseCase
}

// NewStockHandler 创建库存处理器
func NewStockHandler(
	applyMovement *inventory.ApplyMovementUseCase,
	listTransactions *inventory.ListTransactionsUseCase,
	overview *inventory.OverviewUseCase,
) *StockHandler {
	return &StockHandler{
		applyMovement:    applyMovement,
		listTransactions: listTransactions,
		overview:         overview,
	}
}

// ApplyMovement 入库/出库
// @Summary      入库/出库
// @Description  追加一条流水并更新数量;出库超过库存时数量截断为0
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        id              path   int                 true  "物品ID"
// @Param        Idempotency-Key header string              false "幂等键"
// @Param        request         body   dto.MovementRequest true  "变动信息"
// @Success      200 {object} response.Response{data=inventory.ApplyMovementResponse}
// @Router       /api/v1/items/{id}/movements [post]
func (h *StockHandler) ApplyMovement(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.applyMovement.Execute(c.Request.Context(), inventory.ApplyMovementRequest{
		ItemID:         id,
		Type:           req.Type,
		Quantity:       req.Quantity,
		User:           req.User,
		Notes:          req.Notes,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ItemTransactions 指定物品的流水
// @Summary      物品流水
// @Tags         库存
// @Produce      json
// @Param        id path int true "物品ID"
// @Success      200 {object} response.Response{data=response.ListData{list=[]inventory.TransactionDTO}}
// @Router       /api/v1/items/{id}/transactions [get]
func (h *StockHandler) ItemTransactions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respondTransactions(c, &id)
}

// ListTransactions 全部流水,可按item_id过滤
// @Summary      流水列表
// @Tags         库存
// @Produce      json
// @Param        item_id query int false "物品ID"
// @Success      200 {object} response.Response{data=response.ListData{list=[]inventory.TransactionDTO}}
// @Router       /api/v1/transactions [get]
func (h *StockHandler) ListTransactions(c *gin.Context) {
	var q dto.TransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	h.respondTransactions(c, q.ItemID)
}

func (h *StockHandler) respondTransactions(c *gin.Context, itemID *int64) {
	result, err := h.listTransactions.Execute(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithList(c, result, len(result))
}

// Alerts 低库存告警
// @Summary      低库存告警
// @Tags         库存
// @Produce      json
// @Success      200 {object} response.Response{data=[]stock.Alert}
// @Router       /api/v1/alerts [get]
func (h *StockHandler) Alerts(c *gin.Context) {
	result, err := h.overview.Alerts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Overview 库存总览
// @Summary      库存总览
// @Description  物品数、告警数、库存总金额、按分类汇总
// @Tags         库存
// @Produce      json
// @Success      200 {object} response.Response{data=stock.Overview}
// @Router       /api/v1/overview [get]
func (h *StockHandler) Overview(c *gin.Context) {
	result, err := h.overview.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Categories 分类列表
// @Summary      分类列表
// @Tags         库存
// @Produce      json
// @Success      200 {object} response.Response{data=[]string}
// @Router       /api/v1/categories [get]
func (h *StockHandler) Categories(c *gin.Context) {
	result, err := h.overview.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
