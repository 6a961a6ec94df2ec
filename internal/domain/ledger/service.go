package ledger

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
)

// DefaultRecentLimit 物品详情中展示的最近流水条数
const DefaultRecentLimit = 10

// Service 库存变动领域服务
// 物品创建之后,数量变化的正规路径只有ApplyMovement
type Service interface {
	// ApplyMovement 记录一次入库/出库并更新物品数量
	// 业务规则:
	// - quantity必须>0,否则ErrInvalidQuantity
	// - 物品必须存在,否则item.ErrItemNotFound
	// - 出库超过现有库存时数量截断为0
	// - 流水追加与数量更新在同一事务中,要么都成功要么都不生效
	ApplyMovement(ctx context.Context, itemID int64, typ MovementType, quantity float64, user, notes string) (*Result, error)

	// ListTransactions 按创建顺序列出流水;itemID为nil时返回全部
	ListTransactions(ctx context.Context, itemID *int64) ([]*Transaction, error)

	// RecentTransactions 指定物品最近的流水(日期倒序),最多limit条
	RecentTransactions(ctx context.Context, itemID int64, limit int) ([]*Transaction, error)
}

// Result 一次库存变动的结果
type Result struct {
	Transaction *Transaction
	Item        *item.Item // 变动后的物品
	Before      float64    // 变动前数量
}

type service struct {
	items  item.Repository
	ledger Repository
	tx     item.TxManager
	clock  func() time.Time
}

// NewService 创建库存变动服务
func NewService(items item.Repository, ledger Repository, tx item.TxManager, clock func() time.Time) Service {
	if clock == nil {
		clock = time.Now
	}
	return &service{items: items, ledger: ledger, tx: tx, clock: clock}
}

func (s *service) ApplyMovement(ctx context.Context, itemID int64, typ MovementType, quantity float64, user, notes string) (*Result, error) {
	// 1. 参数校验(无副作用)
	if !typ.Valid() {
		return nil, ErrInvalidMovementType
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	now := s.clock()
	var result Result

	// 2. 锁定物品 → 追加流水 → 更新数量,同一事务
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		it, err := s.items.LockByID(ctx, itemID)
		if err != nil {
			return err
		}

		txn := &Transaction{
			ItemID:   itemID,
			Type:     typ,
			Quantity: quantity,
			Date:     now,
			User:     user,
			Notes:    notes,
		}
		if err := s.ledger.Append(ctx, txn); err != nil {
			return err
		}

		result.Before = it.Quantity
		switch typ {
		case MovementIn:
			it.Receive(quantity, now)
		case MovementOut:
			it.Issue(quantity, now)
		}
		if err := s.items.Update(ctx, it); err != nil {
			return err
		}

		result.Transaction = txn.Clone()
		result.Item = it.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) ListTransactions(ctx context.Context, itemID *int64) ([]*Transaction, error) {
	if itemID == nil {
		return s.ledger.List(ctx)
	}
	return s.ledger.ListByItem(ctx, *itemID)
}

func (s *service) RecentTransactions(ctx context.Context, itemID int64, limit int) ([]*Transaction, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	txs, err := s.ledger.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	recent := make([]*Transaction, len(txs))
	copy(recent, txs)
	sort.SliceStable(recent, func(i, j int) bool {
		if !recent[i].Date.Equal(recent[j].Date) {
			return recent[i].Date.After(recent[j].Date)
		}
		return recent[i].ID > recent[j].ID
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}
