package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/poohbae/CakeHistory/internal/infra/cache"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
	"github.com/poohbae/CakeHistory/internal/repository"
)

type lookupFunc func(ctx context.Context, id uint64) (domain.CatalogItem, error)

type registration struct {
	lookup lookupFunc
	decode func([]byte) (domain.CatalogItem, error)
}

// typed adapts a repository finder returning *T into a registration for the resolver.
func typed[T any, P interface {
	*T
	domain.CatalogItem
}](find func(context.Context, uint64) (*T, error)) registration {
	return registration{
		lookup: func(ctx context.Context, id uint64) (domain.CatalogItem, error) {
			v, err := find(ctx, id)
			if err != nil || v == nil {
				return nil, err
			}
			return P(v), nil
		},
		decode: func(b []byte) (domain.CatalogItem, error) {
			var v T
			if err := json.Unmarshal(b, &v); err != nil {
				return nil, err
			}
			return P(&v), nil
		},
	}
}

// CatalogResolver maps a category to its typed lookup. Catalog rows are immutable reference
// data, so resolution has no side effects.
type CatalogResolver struct {
	repo     repository.CatalogRepository
	registry map[domain.Category]registration
	cache    cache.CatalogCache
	log      *logger.Logger
}

func NewCatalogResolver(repo repository.CatalogRepository, baseLog *logger.Logger) *CatalogResolver {
	return &CatalogResolver{
		repo: repo,
		registry: map[domain.Category]registration{
			domain.CategoryProduct: typed(repo.FindCake),
			domain.CategoryCandle:  typed(repo.FindCandle),
			domain.CategoryCard:    typed(repo.FindCard),
			domain.CategoryBox:     typed(repo.FindBox),
		},
		log: baseLog.With("component", "catalog_resolver"),
	}
}

// SetCache enables the presentation cache used by Resolve. ResolveFresh never reads it.
func (r *CatalogResolver) SetCache(c cache.CatalogCache) {
	r.cache = c
}

// Resolve is for display: it may serve a cached copy.
func (r *CatalogResolver) Resolve(ctx context.Context, cat domain.Category, id uint64) (domain.CatalogItem, error) {
	reg, ok := r.registry[cat]
	if !ok {
		return nil, domain.NewValidationError("invalid item type")
	}

	key := cacheKey(cat, id)
	if r.cache != nil {
		if b, hit := r.cache.Get(ctx, key); hit {
			if item, err := reg.decode(b); err == nil {
				return item, nil
			}
		}
	}

	item, err := r.lookup(ctx, reg, cat, id)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if b, err := json.Marshal(item); err == nil {
			r.cache.Set(ctx, key, b)
		}
	}
	return item, nil
}

// ResolveFresh reads the catalog store directly; checkout price-locks from it.
func (r *CatalogResolver) ResolveFresh(ctx context.Context, cat domain.Category, id uint64) (domain.CatalogItem, error) {
	reg, ok := r.registry[cat]
	if !ok {
		return nil, domain.NewValidationError("invalid item type")
	}
	return r.lookup(ctx, reg, cat, id)
}

func (r *CatalogResolver) lookup(ctx context.Context, reg registration, cat domain.Category, id uint64) (domain.CatalogItem, error) {
	item, err := reg.lookup(ctx, id)
	if err != nil {
		r.log.Error("catalog lookup failed", "category", cat, "item_id", id, "error", err)
		return nil, storageError("resolve "+string(cat), err)
	}
	if item == nil {
		return nil, domain.NewNotFoundError(string(cat), id)
	}
	return item, nil
}

type Menu struct {
	Cakes   []domain.Cake   `json:"cakes"`
	Candles []domain.Candle `json:"candles"`
	Cards   []domain.Card   `json:"cards"`
	Boxes   []domain.Box    `json:"boxes"`
}

func (r *CatalogResolver) Menu(ctx context.Context) (*Menu, error) {
	var (
		m   Menu
		err error
	)
	if m.Cakes, err = r.repo.ListCakes(ctx); err != nil {
		return nil, storageError("list cakes", err)
	}
	if m.Candles, err = r.repo.ListCandles(ctx); err != nil {
		return nil, storageError("list candles", err)
	}
	if m.Cards, err = r.repo.ListCards(ctx); err != nil {
		return nil, storageError("list cards", err)
	}
	if m.Boxes, err = r.repo.ListBoxes(ctx); err != nil {
		return nil, storageError("list boxes", err)
	}
	return &m, nil
}

func cacheKey(cat domain.Category, id uint64) string {
	return fmt.Sprintf("%s:%d", cat, id)
}
