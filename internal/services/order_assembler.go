package services

import (
	"context"
	"time"

	"github.com/poohbae/CakeHistory/internal/domain"
	"golang.org/x/sync/errgroup"
)

const defaultResolveConcurrency = 4

type catalogSource interface {
	ResolveFresh(ctx context.Context, cat domain.Category, id uint64) (domain.CatalogItem, error)
}

// DroppedLine is a cart line whose catalog item no longer exists. It is left out of the order
// and reported back to the customer.
type DroppedLine struct {
	LineID   uint64          `json:"lineId"`
	Category domain.Category `json:"itemType"`
	ItemID   uint64          `json:"productId"`
}

type Assembly struct {
	Order *domain.Order
	// Consumed is the cart snapshot the checkout drains, dropped lines included.
	Consumed []domain.CartLine
	Dropped         []DroppedLine
}

type OrderAssembler struct {
	catalog     catalogSource
	concurrency int
	now         func() time.Time
}

func NewOrderAssembler(catalog catalogSource, now func() time.Time) *OrderAssembler {
	if now == nil {
		now = time.Now
	}
	return &OrderAssembler{catalog: catalog, concurrency: defaultResolveConcurrency, now: now}
}

type resolved struct {
	item    domain.CatalogItem
	missing bool
}

// Assemble price-locks every line against the catalog and builds a Pending order. Lines are
// resolved concurrently but combined in cart order so the total is reproducible.
func (a *OrderAssembler) Assemble(ctx context.Context, ownerID uint64, lines []domain.CartLine, vf *ValidatedFulfillment) (*Assembly, error) {
	if len(lines) == 0 {
		return nil, domain.NewValidationError("empty cart")
	}

	results := make([]resolved, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			item, err := a.catalog.ResolveFresh(gctx, line.Category, line.ItemID)
			if err != nil {
				if domain.IsNotFound(err) {
					results[i] = resolved{missing: true}
					return nil
				}
				return err
			}
			results[i] = resolved{item: item}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	order := &domain.Order{
		OwnerID:         ownerID,
		PaymentMethodID: vf.PaymentMethodID,
		DeliveryFee:     vf.DeliveryFee,
		OrderDate:       a.now().UTC(),
		Status:          domain.StatusPending,
		DeliveryMethod:  vf.Method,
		DeliveryAddress: vf.Address,
		ScheduledAt:     vf.ScheduledAt,
	}
	out := &Assembly{Order: order, Consumed: make([]domain.CartLine, 0, len(lines))}

	for i, line := range lines {
		out.Consumed = append(out.Consumed, line)
		r := results[i]
		if r.missing {
			out.Dropped = append(out.Dropped, DroppedLine{LineID: line.ID, Category: line.Category, ItemID: line.ItemID})
			continue
		}
		if line.Category.IsAddon() {
			order.Addons = append(order.Addons, domain.OrderAddon{
				AddonType: line.Category,
				AddonID:   line.ItemID,
				Name:      r.item.DisplayName(),
				Option:    optional(line.Option),
				Quantity:  line.Quantity,
				PriceEach: r.item.UnitPrice(),
			})
			continue
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: line.ItemID,
			Name:      r.item.DisplayName(),
			Quantity:  line.Quantity,
			PriceEach: r.item.UnitPrice(),
			Note:      optional(line.Note),
		})
	}

	if len(order.Items)+len(order.Addons) == 0 {
		return nil, domain.NewValidationError("no available items in cart")
	}

	order.TotalAmount = order.ComputeTotal()
	return out, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
