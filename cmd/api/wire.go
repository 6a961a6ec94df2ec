//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成wire_gen.go,与providers.go中的buildApp等价

package main

import (
	"log/slog"

	"github.com/google/wire"

	"github.com/xiebiao/inventory-ledger/internal/application/inventory"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/config"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/persistence"
	"github.com/xiebiao/inventory-ledger/internal/interface/http/handler"
	"github.com/xiebiao/inventory-ledger/internal/interface/http/router"
)

// infrastructureSet 基础设施层:存储、MQ、Redis
var infrastructureSet = wire.NewSet(
	provideLocation,
	provideClock,
	persistence.Open,
	provideItemRepository,
	provideLedgerRepository,
	provideTxManager,
	provideEventPublisher,
	provideIdempotencyGuard,
)

// domainSet 领域层服务
var domainSet = wire.NewSet(
	provideItemService,
	provideLedgerService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	provideNotifier,
	inventory.NewCreateItemUseCase,
	inventory.NewUpdateItemUseCase,
	inventory.NewDeleteItemUseCase,
	provideGetItemUseCase,
	inventory.NewListItemsUseCase,
	provideApplyMovementUseCase,
	inventory.NewListTransactionsUseCase,
	inventory.NewOverviewUseCase,
	inventory.NewImportItemsUseCase,
	provideExportItemsUseCase,
	inventory.NewSeedUseCase,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewItemHandler,
	handler.NewStockHandler,
	provideFileHandler,
	wire.Struct(new(router.Handlers), "*"),
)

// InitializeApp 初始化整个应用
func InitializeApp(cfg *config.Config, log *slog.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		handlerSet,
		provideApp,
	)
	return nil, nil, nil
}
