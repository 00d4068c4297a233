package repository

import (
	"context"

	"github.com/poohbae/CakeHistory/internal/domain"
)

// Finders return nil, nil when the record does not exist.
type CatalogRepository interface {
	FindCake(ctx context.Context, id uint64) (*domain.Cake, error)
	FindCandle(ctx context.Context, id uint64) (*domain.Candle, error)
	FindCard(ctx context.Context, id uint64) (*domain.Card, error)
	FindBox(ctx context.Context, id uint64) (*domain.Box, error)

	ListCakes(ctx context.Context) ([]domain.Cake, error)
	ListCandles(ctx context.Context) ([]domain.Candle, error)
	ListCards(ctx context.Context) ([]domain.Card, error)
	ListBoxes(ctx context.Context) ([]domain.Box, error)
}

type PaymentMethodRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.PaymentMethod, error)
	ListActive(ctx context.Context) ([]domain.PaymentMethod, error)
}
