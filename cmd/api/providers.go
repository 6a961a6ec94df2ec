package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/inventory-ledger/internal/application/inventory"
	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/config"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/persistence"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/inventory-ledger/internal/interface/http/handler"
	"github.com/xiebiao/inventory-ledger/internal/interface/http/router"
	"github.com/xiebiao/inventory-ledger/pkg/circuitbreaker"
	"github.com/xiebiao/inventory-ledger/pkg/mq"
)

// App 组装好的应用
type App struct {
	Engine *gin.Engine
	Seed   *inventory.SeedUseCase
}

// Clock 业务时钟,按配置的时区取当前时间
type Clock func() time.Time

func provideLocation(cfg *config.Config) (*time.Location, error) {
	return cfg.Inventory.Location()
}

func provideClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

func provideItemRepository(s *persistence.Storage) item.Repository { return s.Items }
func provideLedgerRepository(s *persistence.Storage) ledger.Repository { return s.Ledger }
func provideTxManager(s *persistence.Storage) item.TxManager { return s.Tx }

func provideItemService(repo item.Repository, tx item.TxManager, clock Clock) item.Service {
	return item.NewService(repo, tx, clock)
}

func provideLedgerService(items item.Repository, txs ledger.Repository, tx item.TxManager, clock Clock) ledger.Service {
	return ledger.NewService(items, txs, tx, clock)
}

// provideEventPublisher MQ未启用或连接失败时退化为NoopPublisher,库存服务照常工作
func provideEventPublisher(cfg *config.Config, log *slog.Logger) (inventory.EventPublisher, func()) {
	if !cfg.MQ.Enabled {
		return inventory.NoopPublisher{}, func() {}
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		log.Warn("RabbitMQ不可用,事件不会发布", "err", err)
		return inventory.NoopPublisher{}, func() {}
	}

	maxFailures := cfg.MQ.MaxFailures
	cb := circuitbreaker.NewCircuitBreaker("mq-publisher", circuitbreaker.Config{
		Timeout:       cfg.MQ.OpenTimeout,
		ReadyToTrip:   func(c circuitbreaker.Counts) bool { return c.ConsecutiveFailures >= maxFailures },
		OnStateChange: inventory.BreakerStateRecorder(log),
	})
	return inventory.NewGuardedPublisher(publisher, cb), func() { _ = publisher.Close() }
}

// provideIdempotencyGuard Redis未启用时返回nil,不做幂等检查
func provideIdempotencyGuard(cfg *config.Config, log *slog.Logger) (inventory.IdempotencyGuard, func(), error) {
	if !cfg.Redis.Enabled {
		return nil, func() {}, nil
	}

	client, err := redis.NewClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Redis连接成功", "addr", cfg.Redis.Addr())
	return redis.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL), func() { _ = client.Close() }, nil
}

func provideNotifier(items item.Service, publisher inventory.EventPublisher, log *slog.Logger, clock Clock) *inventory.Notifier {
	return inventory.NewNotifier(items, publisher, log, clock)
}

func provideGetItemUseCase(cfg *config.Config, items item.Service, ledgerService ledger.Service) *inventory.GetItemUseCase {
	return inventory.NewGetItemUseCase(items, ledgerService, cfg.Inventory.RecentLimit)
}

func provideApplyMovementUseCase(
	cfg *config.Config,
	ledgerService ledger.Service,
	guard inventory.IdempotencyGuard,
	notifier *inventory.Notifier,
	log *slog.Logger,
) *inventory.ApplyMovementUseCase {
	return inventory.NewApplyMovementUseCase(ledgerService, guard, notifier, cfg.Inventory.DefaultUser, log)
}

func provideExportItemsUseCase(items item.Service, clock Clock) *inventory.ExportItemsUseCase {
	return inventory.NewExportItemsUseCase(items, clock)
}

func provideFileHandler(cfg *config.Config, importItems *inventory.ImportItemsUseCase, exportItems *inventory.ExportItemsUseCase) *handler.FileHandler {
	return handler.NewFileHandler(importItems, exportItems, cfg.Server.MaxUploadBytes)
}

func provideApp(cfg *config.Config, log *slog.Logger, handlers router.Handlers, seed *inventory.SeedUseCase) *App {
	return &App{Engine: router.NewRouter(cfg, log, handlers), Seed: seed}
}

// buildApp 手动依赖注入
// 依赖链:Storage ← 领域服务 ← UseCase ← Handler ← Router
func buildApp(cfg *config.Config, log *slog.Logger) (*App, func(), error) {
	loc, err := provideLocation(cfg)
	if err != nil {
		return nil, nil, err
	}
	clock := provideClock(loc)

	// 基础设施层
	storage, closeStorage, err := persistence.Open(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	publisher, closePublisher := provideEventPublisher(cfg, log)
	guard, closeGuard, err := provideIdempotencyGuard(cfg, log)
	if err != nil {
		closePublisher()
		closeStorage()
		return nil, nil, err
	}
	cleanup := func() {
		closeGuard()
		closePublisher()
		closeStorage()
	}

	// 领域层
	items := provideItemService(storage.Items, storage.Tx, clock)
	ledgerService := provideLedgerService(storage.Items, storage.Ledger, storage.Tx, clock)

	// 应用层
	notifier := provideNotifier(items, publisher, log, clock)
	handlers := router.Handlers{
		Item: handler.NewItemHandler(
			inventory.NewCreateItemUseCase(items, notifier),
			inventory.NewUpdateItemUseCase(items, notifier),
			inventory.NewDeleteItemUseCase(items, notifier),
			provideGetItemUseCase(cfg, items, ledgerService),
			inventory.NewListItemsUseCase(items),
		),
		Stock: handler.NewStockHandler(
			provideApplyMovementUseCase(cfg, ledgerService, guard, notifier, log),
			inventory.NewListTransactionsUseCase(items, ledgerService),
			inventory.NewOverviewUseCase(items),
		),
		File: provideFileHandler(cfg,
			inventory.NewImportItemsUseCase(items, notifier, loc, log),
			provideExportItemsUseCase(items, clock),
		),
	}
	seed := inventory.NewSeedUseCase(storage.Items, storage.Ledger, storage.Tx, loc, log)

	return provideApp(cfg, log, handlers, seed), cleanup, nil
}
