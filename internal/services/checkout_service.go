package services

import (
	"context"
	"time"

	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/poohbae/CakeHistory/internal/infra/ownerlock"
	rabbit "github.com/poohbae/CakeHistory/internal/infra/rabbitmq"
	"github.com/poohbae/CakeHistory/internal/metrics"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
	"github.com/poohbae/CakeHistory/internal/repository"
)

type CheckoutResult struct {
	Order   *domain.Order
	Dropped []DroppedLine
}

// CheckoutService runs validate -> lock -> assemble -> atomic commit for one owner.
type CheckoutService struct {
	validator *CheckoutValidator
	assembler *OrderAssembler
	guard     *ConsistencyGuard
	carts     repository.CartRepository
	payments  repository.PaymentMethodRepository
	locker    ownerlock.Locker
	publisher rabbit.PublisherInterface
	metrics   *metrics.CheckoutMetrics
	timeout   time.Duration
	log       *logger.Logger
}

type CheckoutDeps struct {
	Validator *CheckoutValidator
	Assembler *OrderAssembler
	Guard     *ConsistencyGuard
	Carts     repository.CartRepository
	Payments  repository.PaymentMethodRepository
	Locker    ownerlock.Locker
	Publisher rabbit.PublisherInterface
	Metrics   *metrics.CheckoutMetrics
	Timeout   time.Duration
	Log       *logger.Logger
}

func NewCheckoutService(d CheckoutDeps) *CheckoutService {
	pub := d.Publisher
	if pub == nil {
		pub = rabbit.NoopPublisher{}
	}
	return &CheckoutService{
		validator: d.Validator,
		assembler: d.Assembler,
		guard:     d.Guard,
		carts:     d.Carts,
		payments:  d.Payments,
		locker:    d.Locker,
		publisher: pub,
		metrics:   d.Metrics,
		timeout:   d.Timeout,
		log:       d.Log.With("component", "checkout"),
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, ownerID uint64, req FulfillmentRequest) (res *CheckoutResult, err error) {
	started := time.Now()
	defer func() {
		dropped := 0
		if res != nil {
			dropped = len(res.Dropped)
		}
		s.metrics.Observe(outcomeOf(err), float64(time.Since(started).Milliseconds()), dropped)
	}()

	vf, err := s.validator.Validate(req)
	if err != nil {
		return nil, err
	}

	if err := s.checkPaymentMethod(ctx, vf.PaymentMethodID); err != nil {
		return nil, err
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	unlock, err := s.locker.Lock(lockCtx, ownerID)
	if err != nil {
		return nil, storageError("lock cart", err)
	}
	defer unlock()

	asm, err := s.snapshot(ctx, ownerID, vf)
	if err != nil {
		return nil, err
	}

	order, err := s.guard.RunAtomically(ctx, asm.Order, asm.Consumed)
	if err != nil {
		return nil, err
	}

	s.log.Info("order placed",
		"owner_id", ownerID,
		"order_id", order.ID,
		"lines", len(asm.Consumed),
		"dropped", len(asm.Dropped),
		"total", order.TotalAmount.StringFixed(2),
	)
	s.publishPlaced(ctx, order)

	return &CheckoutResult{Order: order, Dropped: asm.Dropped}, nil
}

// snapshot reads the cart and price-locks it under the storage timeout.
func (s *CheckoutService) snapshot(ctx context.Context, ownerID uint64, vf *ValidatedFulfillment) (*Assembly, error) {
	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	lines, err := s.carts.ListByOwner(rctx, nil, ownerID)
	if err != nil {
		return nil, storageError("list cart", err)
	}
	return s.assembler.Assemble(rctx, ownerID, lines, vf)
}

func (s *CheckoutService) checkPaymentMethod(ctx context.Context, id uint64) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	pm, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return storageError("find payment method", err)
	}
	if pm == nil || !pm.Active {
		return domain.NewNotFoundError("payment method", id)
	}
	return nil
}

// publishPlaced runs after commit, so a broker failure is logged and never fails the checkout.
func (s *CheckoutService) publishPlaced(ctx context.Context, order *domain.Order) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := s.publisher.Publish(pctx, domain.EventOrderPlaced, domain.NewOrderPlacedEvent(order)); err != nil {
		s.log.Warn("publish order.placed failed", "order_id", order.ID, "error", err)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case domain.IsValidation(err):
		return "validation"
	case domain.IsNotFound(err):
		return "not_found"
	case domain.IsConcurrency(err):
		return "conflict"
	default:
		return "storage"
	}
}
