package memory

import (
	"context"

	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
)

type ledgerRepository struct {
	store *Store
}

func (r *ledgerRepository) Append(ctx context.Context, tx *ledger.Transaction) error {
	s := r.store
	defer s.lock(ctx)()

	s.lastTxID++
	tx.ID = s.lastTxID
	s.txs = append(s.txs, tx.Clone())
	return nil
}

func (r *ledgerRepository) List(ctx context.Context) ([]*ledger.Transaction, error) {
	s := r.store
	defer s.lock(ctx)()

	out := make([]*ledger.Transaction, 0, len(s.txs))
	for _, tx := range s.txs {
		out = append(out, tx.Clone())
	}
	return out, nil
}

func (r *ledgerRepository) ListByItem(ctx context.Context, itemID int64) ([]*ledger.Transaction, error) {
	s := r.store
	defer s.lock(ctx)()

	out := make([]*ledger.Transaction, 0)
	for _, tx := range s.txs {
		if tx.ItemID == itemID {
			out = append(out, tx.Clone())
		}
	}
	return out, nil
}
