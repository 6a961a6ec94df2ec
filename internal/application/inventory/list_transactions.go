package inventory

import (
	"context"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
)

// ListTransactionsUseCase 流水列表用例
// 附带物品名称;物品已删除时显示UnknownItemName
type ListTransactionsUseCase struct {
	items  item.Service
	ledger ledger.Service
}

// NewListTransactionsUseCase 创建流水列表用例
func NewListTransactionsUseCase(items item.Service, ledgerService ledger.Service) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{items: items, ledger: ledgerService}
}

// Execute 按创建顺序返回流水;itemID为nil时返回全部
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, itemID *int64) ([]TransactionDTO, error) {
	txs, err := uc.ledger.ListTransactions(ctx, itemID)
	if err != nil {
		return nil, err
	}
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}

	dtos := make([]TransactionDTO, 0, len(txs))
	for _, t := range txs {
		name, ok := names[t.ItemID]
		if !ok {
			name = UnknownItemName
		}
		dtos = append(dtos, ToTransactionDTO(t, name))
	}
	return dtos, nil
}
