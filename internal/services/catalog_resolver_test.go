package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/poohbae/CakeHistory/internal/mocks"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	return b, ok
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func TestCatalogResolver_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		category   domain.Category
		id         uint64
		setupMocks func(*mocks.MockCatalogRepository)
		check      func(*testing.T, domain.CatalogItem, error)
	}{
		{
			name:     "cake",
			category: domain.CategoryProduct,
			id:       1,
			setupMocks: func(repo *mocks.MockCatalogRepository) {
				repo.On("FindCake", mock.Anything, uint64(1)).Return(&domain.Cake{ID: 1, Name: "A", Price: money("30.00")}, nil)
			},
			check: func(t *testing.T, item domain.CatalogItem, err error) {
				require.NoError(t, err)
				assert.Equal(t, "A", item.DisplayName())
				assert.Equal(t, domain.CategoryProduct, item.ItemCategory())
			},
		},
		{
			name:     "card",
			category: domain.CategoryCard,
			id:       4,
			setupMocks: func(repo *mocks.MockCatalogRepository) {
				repo.On("FindCard", mock.Anything, uint64(4)).Return(&domain.Card{ID: 4, Name: "Greeting", Price: money("3.50")}, nil)
			},
			check: func(t *testing.T, item domain.CatalogItem, err error) {
				require.NoError(t, err)
				assert.True(t, money("3.50").Equal(item.UnitPrice()))
			},
		},
		{
			name:     "missing box",
			category: domain.CategoryBox,
			id:       9,
			setupMocks: func(repo *mocks.MockCatalogRepository) {
				repo.On("FindBox", mock.Anything, uint64(9)).Return(nil, nil)
			},
			check: func(t *testing.T, item domain.CatalogItem, err error) {
				var nf *domain.NotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, "box", nf.Kind)
				assert.Nil(t, item)
			},
		},
		{
			name:     "store failure",
			category: domain.CategoryCandle,
			id:       2,
			setupMocks: func(repo *mocks.MockCatalogRepository) {
				repo.On("FindCandle", mock.Anything, uint64(2)).Return(nil, errors.New("i/o timeout"))
			},
			check: func(t *testing.T, item domain.CatalogItem, err error) {
				assert.True(t, domain.IsStorage(err))
				assert.Nil(t, item)
			},
		},
		{
			name:       "unknown category",
			category:   domain.Category("balloon"),
			id:         1,
			setupMocks: func(*mocks.MockCatalogRepository) {},
			check: func(t *testing.T, item domain.CatalogItem, err error) {
				assert.True(t, domain.IsValidation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockCatalogRepository)
			tt.setupMocks(repo)
			r := NewCatalogResolver(repo, logger.Nop())

			item, err := r.Resolve(context.Background(), tt.category, tt.id)

			tt.check(t, item, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestCatalogResolver_Cache(t *testing.T) {
	repo := new(mocks.MockCatalogRepository)
	repo.On("FindCake", mock.Anything, uint64(1)).Return(&domain.Cake{ID: 1, Name: "A", Price: money("30.00")}, nil)
	r := NewCatalogResolver(repo, logger.Nop())
	r.SetCache(&memoryCache{data: map[string][]byte{}})
	ctx := context.Background()

	first, err := r.Resolve(ctx, domain.CategoryProduct, 1)
	require.NoError(t, err)
	second, err := r.Resolve(ctx, domain.CategoryProduct, 1)
	require.NoError(t, err)

	assert.Equal(t, first.DisplayName(), second.DisplayName())
	assert.True(t, first.UnitPrice().Equal(second.UnitPrice()))
	repo.AssertNumberOfCalls(t, "FindCake", 1)

	_, err = r.ResolveFresh(ctx, domain.CategoryProduct, 1)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "FindCake", 2)
}

func TestCatalogResolver_Menu(t *testing.T) {
	repo := new(mocks.MockCatalogRepository)
	repo.On("ListCakes", mock.Anything).Return([]domain.Cake{{ID: 1, Name: "A"}}, nil)
	repo.On("ListCandles", mock.Anything).Return([]domain.Candle{{ID: 1, Name: "B"}}, nil)
	repo.On("ListCards", mock.Anything).Return([]domain.Card{}, nil)
	repo.On("ListBoxes", mock.Anything).Return(nil, errors.New("table missing"))
	r := NewCatalogResolver(repo, logger.Nop())

	m, err := r.Menu(context.Background())

	assert.Nil(t, m)
	assert.True(t, domain.IsStorage(err))
	repo.AssertExpectations(t)
}
