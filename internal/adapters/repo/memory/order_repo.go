// Package memory holds the in-process repositories. Orders only live for the
// lifetime of the process; durable persistence is out of scope.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/techhubpro/storefront/internal/domain"
)

type OrderRepo struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]domain.Order
	placed []uuid.UUID
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{byID: make(map[uuid.UUID]domain.Order)}
}

func (r *OrderRepo) Save(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[o.ID]; !ok {
		r.placed = append(r.placed, o.ID)
	}
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	r.byID[o.ID] = cp
	return nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp, nil
}

// List returns orders in placement order.
func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Order, 0, len(r.placed))
	for _, id := range r.placed {
		o := r.byID[id]
		o.Items = append([]domain.OrderItem(nil), o.Items...)
		out = append(out, o)
	}
	return out, nil
}
