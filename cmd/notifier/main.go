// notifier 订阅库存事件并写入日志
// 与api进程通过RabbitMQ解耦,api不依赖它运行
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiebiao/inventory-ledger/internal/application/inventory"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/config"
	"github.com/xiebiao/inventory-ledger/pkg/logger"
	"github.com/xiebiao/inventory-ledger/pkg/metrics"
	"github.com/xiebiao/inventory-ledger/pkg/mq"
)

func main() {
	if err := run(); err != nil {
		slog.Error("notifier退出", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(log)
	metrics.InitMetrics()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, cfg.MQ.Queue, cfg.MQ.RoutingKeys, log)
	if err != nil {
		return err
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := inventory.NewEventLogger(consumer.Queue(), log)
	log.Info("notifier启动", "queue", consumer.Queue(), "routing_keys", cfg.MQ.RoutingKeys)
	return consumer.Consume(ctx, handler.Handle)
}
