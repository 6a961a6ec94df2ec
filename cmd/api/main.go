package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiebiao/inventory-ledger/internal/infrastructure/config"
	"github.com/xiebiao/inventory-ledger/pkg/logger"
	"github.com/xiebiao/inventory-ledger/pkg/metrics"
	"github.com/xiebiao/inventory-ledger/pkg/tracing"
)

// @title        Inventory Ledger API
// @version      1.0
// @description  库存目录与出入库流水服务
// @host         localhost:8080
// @BasePath     /
func main() {
	if err := run(); err != nil {
		slog.Error("服务退出", "err", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(log)
	log.Info("配置加载成功",
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"driver", cfg.Database.Driver,
		"redis", cfg.Redis.Enabled,
		"mq", cfg.MQ.Enabled,
	)

	// 2. 指标与链路追踪
	metrics.InitMetrics()
	shutdownTracer, err := tracing.InitTracer(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("初始化链路追踪失败: %w", err)
	}

	// 3. 依赖注入
	app, cleanup, err := buildApp(cfg, log)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. 示例数据
	if cfg.Inventory.Seed {
		if _, err := app.Seed.Execute(ctx); err != nil {
			return fmt.Errorf("写入示例数据失败: %w", err)
		}
	}

	// 5. 启动服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("启动服务失败: %w", err)
		}
	case <-ctx.Done():
	}

	// 6. 优雅关闭
	log.Info("正在关闭服务")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("关闭HTTP服务失败", "err", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("关闭链路追踪失败", "err", err)
	}
	return nil
}
