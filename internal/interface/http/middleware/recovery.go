package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
	"github.com/xiebiao/inventory-ledger/pkg/response"
)

// Recovery panic恢复,返回统一的内部错误响应
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.ErrorContext(c.Request.Context(), "panic recovered",
					"request_id", GetRequestID(c),
					"path", c.Request.URL.Path,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()),
				)
				response.Error(c, apperrors.ErrInternal)
				c.Abort()
			}
		}()
		c.Next()
	}
}
