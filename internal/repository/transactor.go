package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs fn in one transaction: commit when fn returns nil, roll back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
