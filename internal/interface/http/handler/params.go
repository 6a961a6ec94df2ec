package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
	"github.com/xiebiao/inventory-ledger/pkg/response"
)

// ErrInvalidID 路径中的物品ID不是正整数
var ErrInvalidID = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的物品ID")

// pathID 解析路径参数:id,失败时已写入错误响应
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, ErrInvalidID.WithDetail(c.Param("id")))
		return 0, false
	}
	return id, true
}

// bindError 参数绑定失败
func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error())
}
