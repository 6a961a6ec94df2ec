package stock

import (
	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
)

// 查询参数错误
var (
	ErrInvalidSortField = apperrors.New(apperrors.ErrCodeInvalidParams, "不支持的排序字段")
	ErrInvalidSortOrder = apperrors.New(apperrors.ErrCodeInvalidParams, "排序方向只能是asc或desc")
)
