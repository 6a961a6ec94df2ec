package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
)

// Store 进程内存储,物品目录与库存流水共用一把锁
//
// 1. 仓储对外只返回副本,调用方修改返回值不影响存储
// 2. ID计数器单调递增,删除后不复用
// 3. Transaction期间持有锁,fn返回error或panic时恢复快照
type Store struct {
	mu sync.Mutex

	items      map[int64]*item.Item
	order      []int64
	lastItemID int64

	txs      []*ledger.Transaction
	lastTxID int64
}

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{items: make(map[int64]*item.Item)}
}

// Items 物品仓储
func (s *Store) Items() item.Repository {
	return &itemRepository{store: s}
}

// Ledger 库存流水仓储
func (s *Store) Ledger() ledger.Repository {
	return &ledgerRepository{store: s}
}

// TxManager 事务管理器
func (s *Store) TxManager() item.TxManager {
	return s
}

type txKey struct{}

// Transaction 在锁内执行fn;嵌套调用加入外层事务
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if r := recover(); r != nil {
			s.restore(snap)
			panic(r)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

// lock 非事务调用时加锁;事务内已持有锁,返回空操作
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

type snapshot struct {
	items      map[int64]*item.Item
	order      []int64
	lastItemID int64
	txCount    int
	lastTxID   int64
}

// 流水只追加,回滚时截断即可
func (s *Store) snapshot() snapshot {
	items := make(map[int64]*item.Item, len(s.items))
	for id, it := range s.items {
		items[id] = it.Clone()
	}
	order := make([]int64, len(s.order))
	copy(order, s.order)
	return snapshot{
		items:      items,
		order:      order,
		lastItemID: s.lastItemID,
		txCount:    len(s.txs),
		lastTxID:   s.lastTxID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.items = snap.items
	s.order = snap.order
	s.lastItemID = snap.lastItemID
	s.txs = s.txs[:snap.txCount]
	s.lastTxID = snap.lastTxID
}
