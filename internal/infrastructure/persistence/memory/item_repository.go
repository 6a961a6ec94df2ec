package memory

import (
	"context"

	"github.com/xiebiao/inventory-ledger/internal/domain/item"
)

type itemRepository struct {
	store *Store
}

func (r *itemRepository) Create(ctx context.Context, it *item.Item) error {
	s := r.store
	defer s.lock(ctx)()

	s.lastItemID++
	it.ID = s.lastItemID
	s.items[it.ID] = it.Clone()
	s.order = append(s.order, it.ID)
	return nil
}

func (r *itemRepository) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	s := r.store
	defer s.lock(ctx)()

	it, ok := s.items[id]
	if !ok {
		return nil, item.ErrItemNotFound
	}
	return it.Clone(), nil
}

// LockByID 事务内已持有存储锁,等同于FindByID
func (r *itemRepository) LockByID(ctx context.Context, id int64) (*item.Item, error) {
	return r.FindByID(ctx, id)
}

func (r *itemRepository) Update(ctx context.Context, it *item.Item) error {
	s := r.store
	defer s.lock(ctx)()

	if _, ok := s.items[it.ID]; !ok {
		return item.ErrItemNotFound
	}
	s.items[it.ID] = it.Clone()
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	defer s.lock(ctx)()

	if _, ok := s.items[id]; !ok {
		return item.ErrItemNotFound
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *itemRepository) List(ctx context.Context) ([]*item.Item, error) {
	s := r.store
	defer s.lock(ctx)()

	items := make([]*item.Item, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.items[id].Clone())
	}
	return items, nil
}

func (r *itemRepository) Upsert(ctx context.Context, it *item.Item) (bool, error) {
	s := r.store
	defer s.lock(ctx)()

	_, exists := s.items[it.ID]
	s.items[it.ID] = it.Clone()
	if !exists {
		s.order = append(s.order, it.ID)
	}
	if it.ID > s.lastItemID {
		s.lastItemID = it.ID
	}
	return !exists, nil
}
