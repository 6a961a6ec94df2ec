package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
)

// ledgerRepository 库存流水仓储实现(GORM),只有INSERT和SELECT
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository 创建库存流水仓储
func NewLedgerRepository(db *gorm.DB) ledger.Repository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(ctx context.Context, tx *ledger.Transaction) error {
	model := toTransactionModel(tx)
	model.ID = 0
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return dbError(err, "写入库存流水失败")
	}
	tx.ID = model.ID
	return nil
}

func (r *ledgerRepository) List(ctx context.Context) ([]*ledger.Transaction, error) {
	return r.find(getDB(ctx, r.db))
}

func (r *ledgerRepository) ListByItem(ctx context.Context, itemID int64) ([]*ledger.Transaction, error) {
	return r.find(getDB(ctx, r.db).Where("item_id = ?", itemID))
}

func (r *ledgerRepository) find(db *gorm.DB) ([]*ledger.Transaction, error) {
	var models []TransactionModel
	if err := db.Order("id").Find(&models).Error; err != nil {
		return nil, dbError(err, "查询库存流水失败")
	}
	txs := make([]*ledger.Transaction, 0, len(models))
	for i := range models {
		txs = append(txs, toTransactionEntity(&models[i]))
	}
	return txs, nil
}
