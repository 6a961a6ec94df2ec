package response

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
)

// Response 统一响应结构
// Code是业务错误码（非HTTP状态码），0表示成功
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误只写日志，不返回给客户端
	if appErr.Err != nil && appErr.Code >= apperrors.ErrCodeInternal {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"code", appErr.Code,
			"err", appErr.Err,
		)
	}
	_ = c.Error(err)

	c.JSON(http.StatusOK, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// Attachment 文件下载响应（CSV/XLSX导出）
func Attachment(c *gin.Context, fileName, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, contentType, body)
}

// ListData 列表数据封装（库存列表不分页，附带总数）
type ListData struct {
	List  interface{} `json:"list"`
	Total int         `json:"total"`
}

// SuccessWithList 列表成功响应
func SuccessWithList(c *gin.Context, list interface{}, total int) {
	Success(c, &ListData{List: list, Total: total})
}
