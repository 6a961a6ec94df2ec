package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xiebiao/inventory-ledger/pkg/tracing"
)

// RequestIDHeader 请求ID头,上游已带则沿用
const RequestIDHeader = "X-Request-ID"

// requestIDKey gin.Context中保存请求ID的键
const requestIDKey = "request_id"

// slowRequestThreshold 超过该耗时记一条警告
const slowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
// 1. 生成请求ID并写回响应头
// 2. 记录方法、路径、状态码、耗时、客户端IP
// 3. 带上TraceID,方便和链路对应
func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		attrs := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			attrs = append(attrs, "trace_id", traceID)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		ctx := c.Request.Context()
		switch {
		case c.Writer.Status() >= 500:
			log.ErrorContext(ctx, "http request", attrs...)
		case latency > slowRequestThreshold:
			log.WarnContext(ctx, "slow http request", attrs...)
		default:
			log.InfoContext(ctx, "http request", attrs...)
		}
	}
}

// GetRequestID 从Context获取请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
