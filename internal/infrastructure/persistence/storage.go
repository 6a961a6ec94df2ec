package persistence

import (
	"log/slog"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/config"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/persistence/memory"
)

// Storage 按database.driver选出的一组仓储
// 同一个Storage内的仓储共享TxManager
type Storage struct {
	Items  item.Repository
	Ledger ledger.Repository
	Tx     item.TxManager
}

// Open 打开存储,返回的cleanup用于关闭连接
// memory驱动每次调用都是一个独立的新目录
func Open(cfg *config.Config, log *slog.Logger) (*Storage, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		store := memory.NewStore()
		log.Info("使用内存存储")
		return &Storage{Items: store.Items(), Ledger: store.Ledger(), Tx: store.TxManager()}, func() {}, nil
	}

	db, err := gormdb.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return &Storage{
		Items:  gormdb.NewItemRepository(db),
		Ledger: gormdb.NewLedgerRepository(db),
		Tx:     gormdb.NewTxManager(db),
	}, cleanup, nil
}
