package repository

import (
	"context"

	"github.com/poohbae/CakeHistory/internal/domain"
	"gorm.io/gorm"
)

// Repositories take an optional tx; nil means the repository's own connection.

type OrderRepository interface {
	CreateHeader(ctx context.Context, tx *gorm.DB, order *domain.Order) error
	CreateItems(ctx context.Context, tx *gorm.DB, items []domain.OrderItem) error
	CreateAddons(ctx context.Context, tx *gorm.DB, addons []domain.OrderAddon) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint64) (*domain.Order, error)
	FindByOwner(ctx context.Context, tx *gorm.DB, ownerID uint64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint64, from, to domain.OrderStatus) (int64, error)
	DeleteAggregate(ctx context.Context, tx *gorm.DB, id uint64) error
}
