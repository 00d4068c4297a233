package gormrepo

import (
	"context"
	"errors"

	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/poohbae/CakeHistory/internal/repository"
	"gorm.io/gorm"
)

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepo{db: db}
}

func findOne[T any](ctx context.Context, db *gorm.DB, id uint64) (*T, error) {
	var v T
	if err := db.WithContext(ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func listAll[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	var out []T
	if err := db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepo) FindCake(ctx context.Context, id uint64) (*domain.Cake, error) {
	return findOne[domain.Cake](ctx, r.db, id)
}

func (r *catalogRepo) FindCandle(ctx context.Context, id uint64) (*domain.Candle, error) {
	return findOne[domain.Candle](ctx, r.db, id)
}

func (r *catalogRepo) FindCard(ctx context.Context, id uint64) (*domain.Card, error) {
	return findOne[domain.Card](ctx, r.db, id)
}

func (r *catalogRepo) FindBox(ctx context.Context, id uint64) (*domain.Box, error) {
	return findOne[domain.Box](ctx, r.db, id)
}

func (r *catalogRepo) ListCakes(ctx context.Context) ([]domain.Cake, error) {
	return listAll[domain.Cake](ctx, r.db)
}

func (r *catalogRepo) ListCandles(ctx context.Context) ([]domain.Candle, error) {
	return listAll[domain.Candle](ctx, r.db)
}

func (r *catalogRepo) ListCards(ctx context.Context) ([]domain.Card, error) {
	return listAll[domain.Card](ctx, r.db)
}

func (r *catalogRepo) ListBoxes(ctx context.Context) ([]domain.Box, error) {
	return listAll[domain.Box](ctx, r.db)
}

type paymentMethodRepo struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) repository.PaymentMethodRepository {
	return &paymentMethodRepo{db: db}
}

func (r *paymentMethodRepo) FindByID(ctx context.Context, id uint64) (*domain.PaymentMethod, error) {
	return findOne[domain.PaymentMethod](ctx, r.db, id)
}

func (r *paymentMethodRepo) ListActive(ctx context.Context) ([]domain.PaymentMethod, error) {
	var out []domain.PaymentMethod
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
