package item

import (
	"context"
	"fmt"
	"time"
)

// Service 物品目录领域服务
// 所有对目录的增删改都经过这里;库存数量的日常变动走ledger.Service
type Service interface {
	// Create 新建物品
	// 业务规则:name/category/unit必填,数值字段缺省为0且不能为负
	Create(ctx context.Context, d Draft) (*Item, error)

	// Update 合并更新字段,刷新LastUpdated
	// 直接修改quantity属于人工校正,不写库存流水
	Update(ctx context.Context, id int64, p Patch) (*Item, error)

	// Delete 删除物品,历史流水保留悬空的itemId
	Delete(ctx context.Context, id int64) error

	// Get 获取物品
	Get(ctx context.Context, id int64) (*Item, error)

	// List 按插入顺序列出全部物品
	List(ctx context.Context) ([]*Item, error)

	// Import 导入合并:ID已存在整体替换,不存在追加,整批原子执行
	Import(ctx context.Context, items []*Item) (*MergeResult, error)
}

// MergeResult 导入合并结果
type MergeResult struct {
	Updated    int
	Added      int
	UpdatedIDs []int64
	AddedIDs   []int64
}

type service struct {
	repo  Repository
	tx    TxManager
	clock func() time.Time
}

// NewService 创建物品领域服务
// clock为nil时使用time.Now
func NewService(repo Repository, tx TxManager, clock func() time.Time) Service {
	if clock == nil {
		clock = time.Now
	}
	return &service{repo: repo, tx: tx, clock: clock}
}

func (s *service) Create(ctx context.Context, d Draft) (*Item, error) {
	it := NewItem(d, s.clock())
	if err := it.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it.Clone(), nil
}

func (s *service) Update(ctx context.Context, id int64, p Patch) (*Item, error) {
	if p.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	var updated *Item
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		it, err := s.repo.LockByID(ctx, id)
		if err != nil {
			return err
		}
		it.ApplyPatch(p, s.clock())
		if err := it.Validate(); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, it); err != nil {
			return err
		}
		updated = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Get(ctx context.Context, id int64) (*Item, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.List(ctx)
}

func (s *service) Import(ctx context.Context, items []*Item) (*MergeResult, error) {
	// 1. 校验并按ID去重(同一批次中后出现的行覆盖先出现的)
	batch := make(map[int64]*Item, len(items))
	order := make([]int64, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if it.ID <= 0 {
			return nil, ErrInvalidID.WithDetail(fmt.Sprintf("id=%d", it.ID))
		}
		if err := it.Validate(); err != nil {
			return nil, err
		}
		if _, seen := batch[it.ID]; !seen {
			order = append(order, it.ID)
		}
		batch[it.ID] = it
	}

	// 2. 整批在一个事务中upsert
	today := Today(s.clock())
	result := &MergeResult{}
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		for _, id := range order {
			it := batch[id].Clone()
			if it.LastUpdated.IsZero() {
				it.LastUpdated = today
			}
			created, err := s.repo.Upsert(ctx, it)
			if err != nil {
				return err
			}
			if created {
				result.Added++
				result.AddedIDs = append(result.AddedIDs, id)
			} else {
				result.Updated++
				result.UpdatedIDs = append(result.UpdatedIDs, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
