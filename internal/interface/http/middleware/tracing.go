package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/inventory-ledger/pkg/tracing"
)

// Tracing 为每个请求创建根Span,下游用例的Span挂在它下面
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartSpan(c.Request.Context(), "HTTP "+c.Request.Method,
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.target", c.Request.URL.Path),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		span.SetName("HTTP " + c.Request.Method + " " + c.FullPath())
		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	}
}
