package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/poohbae/CakeHistory/internal/infra/ownerlock"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
	"github.com/poohbae/CakeHistory/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AddToCartInput struct {
	Category string
	ItemID   uint64
	Quantity int
	Option   string
	Note     string
}

type CartService struct {
	carts    repository.CartRepository
	payments repository.PaymentMethodRepository
	catalog  *CatalogResolver
	tx       repository.Transactor
	locker   ownerlock.Locker
	timeout  time.Duration
	log      *logger.Logger
}

func NewCartService(carts repository.CartRepository, payments repository.PaymentMethodRepository, catalog *CatalogResolver,
	tx repository.Transactor, locker ownerlock.Locker, timeout time.Duration, baseLog *logger.Logger) *CartService {
	return &CartService{
		carts:    carts,
		payments: payments,
		catalog:  catalog,
		tx:       tx,
		locker:   locker,
		timeout:  timeout,
		log:      baseLog.With("component", "cart"),
	}
}

// AddOrIncrement adds a line or bumps the quantity of the identical (item, option, note) line.
// The item must exist in the catalog store, not just the cache; nothing is written otherwise.
func (s *CartService) AddOrIncrement(ctx context.Context, ownerID uint64, in AddToCartInput) (*domain.CartLine, error) {
	cat, err := domain.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return nil, domain.NewValidationError("quantity must be at least 1")
	}

	item, err := s.catalog.ResolveFresh(ctx, cat, in.ItemID)
	if err != nil {
		return nil, err
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	unlock, err := s.locker.Lock(lockCtx, ownerID)
	if err != nil {
		return nil, storageError("lock cart", err)
	}
	defer unlock()

	key := repository.CartLineKey{
		OwnerID:  ownerID,
		Category: cat,
		ItemID:   in.ItemID,
		Option:   strings.TrimSpace(in.Option),
		Note:     strings.TrimSpace(in.Note),
	}

	var line *domain.CartLine
	err = s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		line, err = s.upsert(ctx, tx, key, qty)
		return err
	})
	if err != nil {
		if domain.IsConcurrency(err) {
			return nil, err
		}
		return nil, storageError("add to cart", err)
	}

	line.DisplayName = item.DisplayName()
	s.log.Debug("cart line saved", "owner_id", ownerID, "line_id", line.ID, "quantity", line.Quantity)
	return line, nil
}

func (s *CartService) upsert(ctx context.Context, tx *gorm.DB, key repository.CartLineKey, qty int) (*domain.CartLine, error) {
	existing, err := s.carts.FindLine(ctx, tx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.carts.IncrementQuantity(ctx, tx, existing.ID, qty); err != nil {
			return nil, err
		}
		existing.Quantity += qty
		return existing, nil
	}

	line := &domain.CartLine{
		OwnerID:  key.OwnerID,
		Category: key.Category,
		ItemID:   key.ItemID,
		Quantity: qty,
		Option:   key.Option,
		Note:     key.Note,
	}
	if err := s.carts.Create(ctx, tx, line); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another instance inserted the same tuple without holding our local lock.
			return nil, domain.NewConcurrencyError("cart line was added concurrently, please retry")
		}
		return nil, err
	}
	return line, nil
}

// Lines returns the owner's pending cart lines.
func (s *CartService) Lines(ctx context.Context, ownerID uint64) ([]domain.CartLine, error) {
	lines, err := s.carts.ListByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, storageError("list cart", err)
	}
	return lines, nil
}

func (s *CartService) RemoveLine(ctx context.Context, ownerID, lineID uint64) error {
	lockCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	unlock, err := s.locker.Lock(lockCtx, ownerID)
	if err != nil {
		return storageError("lock cart", err)
	}
	defer unlock()

	n, err := s.carts.DeleteLine(ctx, nil, ownerID, lineID)
	if err != nil {
		return storageError("remove cart line", err)
	}
	if n == 0 {
		return domain.NewNotFoundError("cart line", lineID)
	}
	return nil
}

type CartViewLine struct {
	LineID         uint64          `json:"lineId"`
	ItemType       domain.Category `json:"itemType"`
	ProductID      uint64          `json:"productId"`
	Name           string          `json:"name"`
	Image          string          `json:"image"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	Total          decimal.Decimal `json:"total"`
	OptionSelected string          `json:"optionSelected,omitempty"`
	SpecialRequest string          `json:"specialRequest,omitempty"`
}

// CartView is the priced presentation of a cart. Prices here are indicative; checkout re-resolves them.
type CartView struct {
	Cakes          []CartViewLine         `json:"cakeItems"`
	Addons         []CartViewLine         `json:"addonItems"`
	Unavailable    []DroppedLine          `json:"unavailable,omitempty"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	PaymentMethods []domain.PaymentMethod `json:"paymentMethods"`
}

func (s *CartService) View(ctx context.Context, ownerID uint64) (*CartView, error) {
	lines, err := s.Lines(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Cakes: []CartViewLine{}, Addons: []CartViewLine{}, Subtotal: decimal.Zero}
	for _, line := range lines {
		item, err := s.catalog.Resolve(ctx, line.Category, line.ItemID)
		if err != nil {
			if domain.IsNotFound(err) || domain.IsValidation(err) {
				view.Unavailable = append(view.Unavailable, DroppedLine{LineID: line.ID, Category: line.Category, ItemID: line.ItemID})
				continue
			}
			return nil, err
		}
		total := item.UnitPrice().Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Subtotal = view.Subtotal.Add(total)
		vl := CartViewLine{
			LineID:         line.ID,
			ItemType:       line.Category,
			ProductID:      line.ItemID,
			Name:           item.DisplayName(),
			Image:          item.ImageURL(),
			Price:          item.UnitPrice(),
			Quantity:       line.Quantity,
			Total:          total,
			OptionSelected: line.Option,
			SpecialRequest: line.Note,
		}
		if line.Category.IsAddon() {
			view.Addons = append(view.Addons, vl)
		} else {
			view.Cakes = append(view.Cakes, vl)
		}
	}

	pms, err := s.payments.ListActive(ctx)
	if err != nil {
		return nil, storageError("list payment methods", err)
	}
	view.PaymentMethods = pms
	return view, nil
}
