package inventory

import (
	"context"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
	"github.com/xiebiao/inventory-ledger/internal/domain/stock"
)

// GetItemUseCase 物品详情用例
type GetItemUseCase struct {
	items       item.Service
	ledger      ledger.Service
	recentLimit int
}

// NewGetItemUseCase 创建物品详情用例
// recentLimit<=0时使用ledger.DefaultRecentLimit
func NewGetItemUseCase(items item.Service, ledgerService ledger.Service, recentLimit int) *GetItemUseCase {
	if recentLimit <= 0 {
		recentLimit = ledger.DefaultRecentLimit
	}
	return &GetItemUseCase{items: items, ledger: ledgerService, recentLimit: recentLimit}
}

// Execute 查询物品及其状态、最近流水
func (uc *GetItemUseCase) Execute(ctx context.Context, id int64) (*ItemDetail, error) {
	it, err := uc.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	recent, err := uc.ledger.RecentTransactions(ctx, id, uc.recentLimit)
	if err != nil {
		return nil, err
	}
	txs := make([]TransactionDTO, 0, len(recent))
	for _, t := range recent {
		txs = append(txs, ToTransactionDTO(t, ""))
	}

	return &ItemDetail{
		ItemDTO:            ToItemDTO(it),
		Status:             stock.Classify(it),
		StockPercentage:    stock.StockPercentage(it),
		Value:              it.Value(),
		RecentTransactions: txs,
	}, nil
}
