package services

import (
	"context"
	"time"

	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
	"github.com/poohbae/CakeHistory/internal/repository"
	"gorm.io/gorm"
)

// ConsistencyGuard writes an order aggregate and drains the cart in a single transaction.
type ConsistencyGuard struct {
	tx      repository.Transactor
	orders  repository.OrderRepository
	carts   repository.CartRepository
	timeout time.Duration
	log     *logger.Logger
}

func NewConsistencyGuard(tx repository.Transactor, orders repository.OrderRepository, carts repository.CartRepository, timeout time.Duration, baseLog *logger.Logger) *ConsistencyGuard {
	return &ConsistencyGuard{
		tx:      tx,
		orders:  orders,
		carts:   carts,
		timeout: timeout,
		log:     baseLog.With("component", "consistency_guard"),
	}
}

// writeContext detaches from the caller's cancellation: once started, the transaction either
// commits or rolls back on its own deadline, never half way because a client went away.
func (g *ConsistencyGuard) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
}

// RunAtomically inserts header, items and addons and deletes the consumed cart lines. If fewer
// cart rows are deleted than expected, another request removed or changed them after the snapshot
// and everything rolls back.
func (g *ConsistencyGuard) RunAtomically(ctx context.Context, order *domain.Order, consumed []domain.CartLine) (*domain.Order, error) {
	wctx, cancel := g.writeContext(ctx)
	defer cancel()

	var concurrent bool
	err := g.tx.WithinTransaction(wctx, func(tx *gorm.DB) error {
		if err := g.orders.CreateHeader(wctx, tx, order); err != nil {
			return err
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		for i := range order.Addons {
			order.Addons[i].OrderID = order.ID
		}
		if err := g.orders.CreateItems(wctx, tx, order.Items); err != nil {
			return err
		}
		if err := g.orders.CreateAddons(wctx, tx, order.Addons); err != nil {
			return err
		}
		deleted, err := g.carts.DeleteLines(wctx, tx, order.OwnerID, consumed)
		if err != nil {
			return err
		}
		if deleted != int64(len(consumed)) {
			concurrent = true
			return domain.ErrConcurrentCheckout
		}
		return nil
	})
	if err != nil {
		resetIDs(order)
		if concurrent {
			g.log.Warn("cart changed concurrently, rolled back", "owner_id", order.OwnerID)
			return nil, domain.ErrConcurrentCheckout
		}
		g.log.Error("checkout transaction rolled back", "owner_id", order.OwnerID, "error", err)
		return nil, storageError("commit order", err)
	}
	return order, nil
}

// Purge deletes an order and its children together.
func (g *ConsistencyGuard) Purge(ctx context.Context, orderID uint64) error {
	wctx, cancel := g.writeContext(ctx)
	defer cancel()

	err := g.tx.WithinTransaction(wctx, func(tx *gorm.DB) error {
		return g.orders.DeleteAggregate(wctx, tx, orderID)
	})
	if err != nil {
		g.log.Error("purge order failed", "order_id", orderID, "error", err)
		return storageError("purge order", err)
	}
	return nil
}

// resetIDs clears identifiers assigned inside a transaction that did not commit.
func resetIDs(order *domain.Order) {
	order.ID = 0
	for i := range order.Items {
		order.Items[i].ID = 0
		order.Items[i].OrderID = 0
	}
	for i := range order.Addons {
		order.Addons[i].ID = 0
		order.Addons[i].OrderID = 0
	}
}
