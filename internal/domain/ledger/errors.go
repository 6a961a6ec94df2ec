package ledger

import (
	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
)

// 库存流水领域错误
var (
	// ErrInvalidQuantity 变动数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "变动数量必须大于0")

	// ErrInvalidMovementType 变动类型只能是in或out
	ErrInvalidMovementType = apperrors.New(apperrors.ErrCodeInvalidParams, "变动类型只能是in或out")

	// ErrInvalidLimit 查询条数必须大于0
	ErrInvalidLimit = apperrors.New(apperrors.ErrCodeInvalidParams, "查询条数必须大于0")
)
