package models

import (
	"context"
	"errors"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/lankamart/storefront/store"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrdersRepository keeps orders most recent first.
type OrdersRepository struct {
	doc *document[[]Order]
}

func NewOrdersRepository(ctx context.Context, st *store.Store) *OrdersRepository {
	return &OrdersRepository{
		doc: loadDocument(ctx, st, store.KeyOrders, []Order{}),
	}
}

func (r *OrdersRepository) GetAllOrders() []Order {
	return slices.Clone(r.doc.get())
}

func (r *OrdersRepository) GetByID(id string) (*Order, error) {
	for _, o := range r.doc.get() {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}

// Prepend stores a new order in front of the existing ones.
func (r *OrdersRepository) Prepend(ctx context.Context, order Order) error {
	return r.doc.update(ctx, func(orders []Order) ([]Order, error) {
		return append([]Order{order}, orders...), nil
	})
}

// UpdateStatus sets the status of one order after check approves the move.
func (r *OrdersRepository) UpdateStatus(ctx context.Context, id string, status OrderStatus, check func(from, to OrderStatus) error) (Order, error) {
	var updated Order
	err := r.doc.update(ctx, func(orders []Order) ([]Order, error) {
		i := slices.IndexFunc(orders, func(o Order) bool { return o.ID == id })
		if i < 0 {
			return nil, ErrOrderNotFound
		}
		if check != nil {
			if err := check(orders[i].Status, status); err != nil {
				return nil, err
			}
		}
		next := slices.Clone(orders)
		next[i].Status = status
		updated = next[i]
		return next, nil
	})
	return updated, err
}

// DeliveredRevenue sums the totals of delivered orders.
func (r *OrdersRepository) DeliveredRevenue() decimal.Decimal {
	revenue := decimal.Zero
	for _, o := range r.doc.get() {
		if o.Status == StatusDelivered {
			revenue = revenue.Add(o.Total)
		}
	}
	return revenue
}

func (r *OrdersRepository) Count() int {
	return len(r.doc.get())
}
