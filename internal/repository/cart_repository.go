package repository

import (
	"context"

	"github.com/poohbae/CakeHistory/internal/domain"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindLine(ctx context.Context, tx *gorm.DB, key CartLineKey) (*domain.CartLine, error)
	Create(ctx context.Context, tx *gorm.DB, line *domain.CartLine) error
	IncrementQuantity(ctx context.Context, tx *gorm.DB, lineID uint64, by int) error
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uint64) ([]domain.CartLine, error)
	DeleteLine(ctx context.Context, tx *gorm.DB, ownerID, lineID uint64) (int64, error)
	// DeleteLines removes each snapshot line only while its quantity is unchanged and returns the rows deleted.
	DeleteLines(ctx context.Context, tx *gorm.DB, ownerID uint64, snapshot []domain.CartLine) (int64, error)
}

// CartLineKey is the uniqueness tuple of a cart line.
type CartLineKey struct {
	OwnerID  uint64
	Category domain.Category
	ItemID   uint64
	Option   string
	Note     string
}
