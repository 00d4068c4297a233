package gormrepo

import (
	"context"
	"errors"

	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
	"github.com/poohbae/CakeHistory/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepository(db *gorm.DB, baseLog *logger.Logger) repository.OrderRepository {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepository")}
}

func (r *orderRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx == nil {
		return r.db
	}
	return tx
}

// CreateHeader inserts only the order row; children are written by CreateItems and CreateAddons.
func (r *orderRepo) CreateHeader(ctx context.Context, tx *gorm.DB, order *domain.Order) error {
	result := r.conn(tx).WithContext(ctx).Omit(clause.Associations).Create(order)
	if result.Error != nil {
		r.log.Error("insert order header failed", "owner_id", order.OwnerID, "error", result.Error)
		return result.Error
	}
	if order.ID == 0 {
		return errors.New("failed to assign order ID")
	}
	return nil
}

func (r *orderRepo) CreateItems(ctx context.Context, tx *gorm.DB, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&items).Error; err != nil {
		r.log.Error("insert order items failed", "count", len(items), "error", err)
		return err
	}
	return nil
}

func (r *orderRepo) CreateAddons(ctx context.Context, tx *gorm.DB, addons []domain.OrderAddon) error {
	if len(addons) == 0 {
		return nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&addons).Error; err != nil {
		r.log.Error("insert order addons failed", "count", len(addons), "error", err)
		return err
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.conn(tx).WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Addons", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("find order failed", "order_id", id, "error", err)
		return nil, err
	}
	return &o, nil
}

// FindByOwner lists most recent first.
func (r *orderRepo) FindByOwner(ctx context.Context, tx *gorm.DB, ownerID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.conn(tx).WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Addons", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("owner_id = ?", ownerID).
		Order("order_date DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		r.log.Error("list orders failed", "owner_id", ownerID, "error", err)
		return nil, err
	}
	return out, nil
}

// UpdateStatus is a compare-and-set on the current status; zero rows means the order moved on.
func (r *orderRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint64, from, to domain.OrderStatus) (int64, error) {
	result := r.conn(tx).WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		r.log.Error("update order status failed", "order_id", id, "error", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteAggregate removes addons, items and header. Callers run it inside a transaction so
// the cascade holds on stores without foreign key support.
func (r *orderRepo) DeleteAggregate(ctx context.Context, tx *gorm.DB, id uint64) error {
	db := r.conn(tx).WithContext(ctx)
	if err := db.Where("order_id = ?", id).Delete(&domain.OrderAddon{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
		return err
	}
	return db.Delete(&domain.Order{}, id).Error
}
