package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/inventory-ledger/docs" // swagger文档
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/config"
	"github.com/xiebiao/inventory-ledger/internal/interface/http/handler"
	"github.com/xiebiao/inventory-ledger/internal/interface/http/middleware"
	"github.com/xiebiao/inventory-ledger/pkg/response"
)

// Handlers 路由用到的全部处理器
type Handlers struct {
	Item  *handler.ItemHandler
	Stock *handler.StockHandler
	File  *handler.FileHandler
}

// NewRouter 创建Gin引擎并注册路由
// 中间件顺序:Recovery → Tracing → Logger → Metrics → CORS
func NewRouter(cfg *config.Config, log *slog.Logger, h Handlers) *gin.Engine {
	if log == nil {
		log = slog.Default()
	}
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.Server.MaxUploadBytes
	r.Use(
		middleware.Recovery(log),
		middleware.Tracing(),
		middleware.Logger(log),
		middleware.Metrics(),
		middleware.CORS(cfg.Server.CORS),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		items := v1.Group("/items")
		{
			items.GET("", h.Item.ListItems)
			items.POST("", h.Item.CreateItem)
			items.GET("/:id", h.Item.GetItem)
			items.PATCH("/:id", h.Item.UpdateItem)
			items.DELETE("/:id", h.Item.DeleteItem)
			items.POST("/:id/movements", h.Stock.ApplyMovement)
			items.GET("/:id/transactions", h.Stock.ItemTransactions)
		}

		v1.GET("/transactions", h.Stock.ListTransactions)
		v1.GET("/alerts", h.Stock.Alerts)
		v1.GET("/overview", h.Stock.Overview)
		v1.GET("/categories", h.Stock.Categories)

		v1.POST("/import", h.File.Import)
		v1.GET("/import/template", h.File.Template)
		v1.GET("/export", h.File.Export)
	}

	return r
}
