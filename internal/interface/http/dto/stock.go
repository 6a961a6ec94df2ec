package dto

// MovementRequest HTTP入库/出库请求
// 幂等键通过Idempotency-Key头传递
type MovementRequest struct {
	Type     string  `json:"type" example:"out"` // in | out
	Quantity float64 `json:"quantity" example:"50"`
	User     string  `json:"user" binding:"max=100" example:"Jean Dupont"`
	Notes    string  `json:"notes" binding:"max=500" example:"Semis parcelle nord"`
}

// TransactionsQuery 流水列表查询参数
type TransactionsQuery struct {
	ItemID *int64 `form:"item_id" binding:"omitempty,min=1" example:"1"`
}

// ExportQuery 导出参数
type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx" example:"csv"`
}
