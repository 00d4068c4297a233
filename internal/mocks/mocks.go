package mocks

import (
	"context"
	"sync"

	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/poohbae/CakeHistory/internal/infra/ownerlock"
	"github.com/poohbae/CakeHistory/internal/repository"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockOrderRepository struct {
	mock.Mock
}

type MockCartRepository struct {
	mock.Mock
}

type MockCatalogRepository struct {
	mock.Mock
}

type MockPaymentMethodRepository struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

// MockTransactor runs fn with a nil tx; repositories fall back to their own connection.
type MockTransactor struct {
	mock.Mock
}

type MockLocker struct {
	mock.Mock
	mu       sync.Mutex
	Unlocked int
}

var (
	_ repository.OrderRepository         = (*MockOrderRepository)(nil)
	_ repository.CartRepository          = (*MockCartRepository)(nil)
	_ repository.CatalogRepository       = (*MockCatalogRepository)(nil)
	_ repository.PaymentMethodRepository = (*MockPaymentMethodRepository)(nil)
	_ repository.Transactor              = (*MockTransactor)(nil)
	_ ownerlock.Locker                   = (*MockLocker)(nil)
)

func (m *MockPublisher) Publish(ctx context.Context, topic string, message interface{}) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(nil)
}

func (m *MockLocker) Lock(ctx context.Context, ownerID uint64) (func(), error) {
	args := m.Called(ctx, ownerID)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() {
		m.mu.Lock()
		m.Unlocked++
		m.mu.Unlock()
	}, nil
}

func (m *MockOrderRepository) CreateHeader(ctx context.Context, tx *gorm.DB, order *domain.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateItems(ctx context.Context, tx *gorm.DB, items []domain.OrderItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateAddons(ctx context.Context, tx *gorm.DB, addons []domain.OrderAddon) error {
	args := m.Called(ctx, tx, addons)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOwner(ctx context.Context, tx *gorm.DB, ownerID uint64) ([]domain.Order, error) {
	args := m.Called(ctx, tx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint64, from, to domain.OrderStatus) (int64, error) {
	args := m.Called(ctx, tx, id, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) DeleteAggregate(ctx context.Context, tx *gorm.DB, id uint64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockCartRepository) FindLine(ctx context.Context, tx *gorm.DB, key repository.CartLineKey) (*domain.CartLine, error) {
	args := m.Called(ctx, tx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartLine), args.Error(1)
}

func (m *MockCartRepository) Create(ctx context.Context, tx *gorm.DB, line *domain.CartLine) error {
	args := m.Called(ctx, tx, line)
	return args.Error(0)
}

func (m *MockCartRepository) IncrementQuantity(ctx context.Context, tx *gorm.DB, lineID uint64, by int) error {
	args := m.Called(ctx, tx, lineID, by)
	return args.Error(0)
}

func (m *MockCartRepository) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uint64) ([]domain.CartLine, error) {
	args := m.Called(ctx, tx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *MockCartRepository) DeleteLine(ctx context.Context, tx *gorm.DB, ownerID, lineID uint64) (int64, error) {
	args := m.Called(ctx, tx, ownerID, lineID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepository) DeleteLines(ctx context.Context, tx *gorm.DB, ownerID uint64, snapshot []domain.CartLine) (int64, error) {
	args := m.Called(ctx, tx, ownerID, snapshot)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) FindCake(ctx context.Context, id uint64) (*domain.Cake, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cake), args.Error(1)
}

func (m *MockCatalogRepository) FindCandle(ctx context.Context, id uint64) (*domain.Candle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candle), args.Error(1)
}

func (m *MockCatalogRepository) FindCard(ctx context.Context, id uint64) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCatalogRepository) FindBox(ctx context.Context, id uint64) (*domain.Box, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Box), args.Error(1)
}

func (m *MockCatalogRepository) ListCakes(ctx context.Context) ([]domain.Cake, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cake), args.Error(1)
}

func (m *MockCatalogRepository) ListCandles(ctx context.Context) ([]domain.Candle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candle), args.Error(1)
}

func (m *MockCatalogRepository) ListCards(ctx context.Context) ([]domain.Card, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

func (m *MockCatalogRepository) ListBoxes(ctx context.Context) ([]domain.Box, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Box), args.Error(1)
}

func (m *MockPaymentMethodRepository) FindByID(ctx context.Context, id uint64) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) ListActive(ctx context.Context) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}
