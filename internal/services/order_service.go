package services

import (
	"context"
	"time"

	"github.com/poohbae/CakeHistory/internal/domain"
	rabbit "github.com/poohbae/CakeHistory/internal/infra/rabbitmq"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
	"github.com/poohbae/CakeHistory/internal/repository"
)

type OrderService struct {
	repo      repository.OrderRepository
	guard     *ConsistencyGuard
	publisher rabbit.PublisherInterface
	log       *logger.Logger
}

func NewOrderService(r repository.OrderRepository, guard *ConsistencyGuard, pub rabbit.PublisherInterface, baseLog *logger.Logger) *OrderService {
	if pub == nil {
		pub = rabbit.NoopPublisher{}
	}
	return &OrderService{
		repo:      r,
		guard:     guard,
		publisher: pub,
		log:       baseLog.With("component", "orders"),
	}
}

// ListForOwner returns the owner's orders, most recent first.
func (u *OrderService) ListForOwner(ctx context.Context, ownerID uint64) ([]domain.Order, error) {
	o, err := u.repo.FindByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, storageError("list orders", err)
	}
	if o == nil {
		o = []domain.Order{}
	}
	return o, nil
}

// Get hides orders of other owners behind the same not-found error.
func (u *OrderService) Get(ctx context.Context, ownerID, id uint64) (*domain.Order, error) {
	o, err := u.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, storageError("find order", err)
	}
	if o == nil || o.OwnerID != ownerID {
		return nil, domain.NewNotFoundError("order", id)
	}
	return o, nil
}

func (u *OrderService) Complete(ctx context.Context, ownerID, id uint64) (*domain.Order, error) {
	return u.transition(ctx, ownerID, id, domain.StatusCompleted)
}

func (u *OrderService) Cancel(ctx context.Context, ownerID, id uint64) (*domain.Order, error) {
	return u.transition(ctx, ownerID, id, domain.StatusCanceled)
}

func (u *OrderService) transition(ctx context.Context, ownerID, id uint64, to domain.OrderStatus) (*domain.Order, error) {
	o, err := u.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	from := o.Status
	if !from.CanTransitionTo(to) {
		return nil, domain.NewValidationError("invalid status transition")
	}

	n, err := u.repo.UpdateStatus(ctx, nil, id, from, to)
	if err != nil {
		return nil, storageError("update order status", err)
	}
	if n == 0 {
		return nil, domain.NewConcurrencyError("order status changed concurrently")
	}
	o.Status = to

	evt := domain.OrderStatusChangedEvent{OrderID: o.ID, OwnerID: o.OwnerID, From: from, To: to, ChangedAt: time.Now().UTC()}
	if err := u.publisher.Publish(ctx, domain.EventOrderStatusChanged, evt); err != nil {
		u.log.Warn("publish order.status_changed failed", "order_id", id, "error", err)
	}
	return o, nil
}

// Purge removes a canceled order together with its items and addons.
func (u *OrderService) Purge(ctx context.Context, ownerID, id uint64) error {
	o, err := u.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if o.Status != domain.StatusCanceled {
		return domain.NewValidationError("only canceled orders can be deleted")
	}
	return u.guard.Purge(ctx, id)
}
