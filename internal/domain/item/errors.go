package item

import (
	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
)

// 物品领域错误定义
var (
	// ErrItemNotFound 物品不存在(含已删除)
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeItemNotFound, "物品不存在")

	// 必填字段
	ErrNameRequired     = apperrors.New(apperrors.ErrCodeInvalidParams, "名称不能为空")
	ErrCategoryRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "分类不能为空")
	ErrUnitRequired     = apperrors.New(apperrors.ErrCodeInvalidParams, "单位不能为空")

	// 数值范围
	ErrNegativeQuantity    = apperrors.New(apperrors.ErrCodeInvalidParams, "数量不能为负数")
	ErrNegativeMinQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "最低库存不能为负数")
	ErrNegativePrice       = apperrors.New(apperrors.ErrCodeInvalidParams, "单价不能为负数")
	ErrInvalidNumber       = apperrors.New(apperrors.ErrCodeInvalidParams, "数值必须为有限数")

	// ErrInvalidExpiryDate 过期日期必须为YYYY-MM-DD
	ErrInvalidExpiryDate = apperrors.New(apperrors.ErrCodeInvalidParams, "过期日期格式错误")

	// ErrInvalidID 导入时ID必须为正整数
	ErrInvalidID = apperrors.New(apperrors.ErrCodeInvalidParams, "物品ID必须为正整数")

	// ErrEmptyPatch 更新请求不包含任何字段
	ErrEmptyPatch = apperrors.New(apperrors.ErrCodeInvalidParams, "没有需要更新的字段")
)
