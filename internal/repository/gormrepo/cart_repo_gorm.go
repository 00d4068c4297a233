package gormrepo

import (
	"context"
	"errors"

	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
	"github.com/poohbae/CakeHistory/internal/repository"
	"gorm.io/gorm"
)

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepository(db *gorm.DB, baseLog *logger.Logger) repository.CartRepository {
	return &cartRepo{db: db, log: baseLog.With("repo", "CartRepository")}
}

func (r *cartRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx == nil {
		return r.db
	}
	return tx
}

func (r *cartRepo) FindLine(ctx context.Context, tx *gorm.DB, key repository.CartLineKey) (*domain.CartLine, error) {
	var line domain.CartLine
	err := r.conn(tx).WithContext(ctx).
		Where("owner_id = ? AND category = ? AND item_id = ? AND option_selected = ? AND special_request = ?",
			key.OwnerID, key.Category, key.ItemID, key.Option, key.Note).
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *cartRepo) Create(ctx context.Context, tx *gorm.DB, line *domain.CartLine) error {
	return r.conn(tx).WithContext(ctx).Create(line).Error
}

func (r *cartRepo) IncrementQuantity(ctx context.Context, tx *gorm.DB, lineID uint64, by int) error {
	return r.conn(tx).WithContext(ctx).
		Model(&domain.CartLine{}).
		Where("id = ?", lineID).
		Update("quantity", gorm.Expr("quantity + ?", by)).Error
}

// ListByOwner returns lines in insertion order so checkout totals are reproducible.
func (r *cartRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uint64) ([]domain.CartLine, error) {
	var out []domain.CartLine
	if err := r.conn(tx).WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&out).Error; err != nil {
		r.log.Error("list cart failed", "owner_id", ownerID, "error", err)
		return nil, err
	}
	return out, nil
}

func (r *cartRepo) DeleteLine(ctx context.Context, tx *gorm.DB, ownerID, lineID uint64) (int64, error) {
	result := r.conn(tx).WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, lineID).Delete(&domain.CartLine{})
	return result.RowsAffected, result.Error
}

// DeleteLines matches on quantity too, so a line incremented after the snapshot is left in place.
func (r *cartRepo) DeleteLines(ctx context.Context, tx *gorm.DB, ownerID uint64, snapshot []domain.CartLine) (int64, error) {
	var deleted int64
	for _, line := range snapshot {
		result := r.conn(tx).WithContext(ctx).
			Where("owner_id = ? AND id = ? AND quantity = ?", ownerID, line.ID, line.Quantity).
			Delete(&domain.CartLine{})
		if result.Error != nil {
			r.log.Error("drain cart failed", "owner_id", ownerID, "line_id", line.ID, "error", result.Error)
			return deleted, result.Error
		}
		deleted += result.RowsAffected
	}
	return deleted, nil
}
