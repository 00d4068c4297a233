package services

import (
	"context"
	"testing"
	"time"

	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/poohbae/CakeHistory/internal/infra/database"
	"github.com/poohbae/CakeHistory/internal/infra/ownerlock"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
	"github.com/poohbae/CakeHistory/internal/repository"
	"github.com/poohbae/CakeHistory/internal/repository/gormrepo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	TestOwnerID         = uint64(7)
	TestCakeID          = uint64(1)
	TestCandleID        = uint64(1)
	TestPaymentMethodID = uint64(1)
)

const defaultTestTimeout = 5 * time.Second

var testNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func CreateMockOrder(id, ownerID uint64, total string, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:              id,
		OwnerID:         ownerID,
		PaymentMethodID: TestPaymentMethodID,
		TotalAmount:     money(total),
		DeliveryFee:     decimal.Zero,
		OrderDate:       testNow,
		Status:          status,
		DeliveryMethod:  domain.DeliveryPickup,
		ScheduledAt:     testNow.Add(48 * time.Hour),
	}
}

// newTestStore returns an in-memory database holding cake A (30.00), candle B (5.00) and one payment method.
func newTestStore(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLiteMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, db.Create(&domain.Cake{Name: "A", Price: money("30.00"), PricePerUnit: money("6.00")}).Error)
	require.NoError(t, db.Create(&domain.Candle{Name: "B", Price: money("5.00"), Type: "number"}).Error)
	require.NoError(t, db.Create(&domain.PaymentMethod{Name: "Cash on delivery", Active: true}).Error)
	return db
}

type testServices struct {
	db        *gorm.DB
	orders    repository.OrderRepository
	carts     repository.CartRepository
	resolver  *CatalogResolver
	guard     *ConsistencyGuard
	cart      *CartService
	checkout  *CheckoutService
	orderSvc  *OrderService
	validator *CheckoutValidator
}

// newTestServices wires the real stack over db. orders may be nil to use the gorm repository.
func newTestServices(t *testing.T, db *gorm.DB, orders repository.OrderRepository) *testServices {
	t.Helper()
	log := logger.Nop()
	if orders == nil {
		orders = gormrepo.NewOrderRepository(db, log)
	}
	carts := gormrepo.NewCartRepository(db, log)
	payments := gormrepo.NewPaymentMethodRepository(db)
	tx := gormrepo.NewTransactor(db)
	locker := ownerlock.NewLocal()

	resolver := NewCatalogResolver(gormrepo.NewCatalogRepository(db), log)
	guard := NewConsistencyGuard(tx, orders, carts, defaultTestTimeout, log)
	validator := NewCheckoutValidator(fixedNow)

	return &testServices{
		db:        db,
		orders:    orders,
		carts:     carts,
		resolver:  resolver,
		guard:     guard,
		validator: validator,
		cart:      NewCartService(carts, payments, resolver, tx, locker, defaultTestTimeout, log),
		checkout: NewCheckoutService(CheckoutDeps{
			Validator: validator,
			Assembler: NewOrderAssembler(resolver, fixedNow),
			Guard:     guard,
			Carts:     carts,
			Payments:  payments,
			Locker:    locker,
			Timeout:   defaultTestTimeout,
			Log:       log,
		}),
		orderSvc: NewOrderService(orders, guard, nil, log),
	}
}

func (ts *testServices) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, ts.db.Model(model).Count(&n).Error)
	return n
}

func validRequest() FulfillmentRequest {
	return FulfillmentRequest{
		ScheduledAt:     testNow.Add(24 * time.Hour).Format(time.RFC3339),
		Method:          "delivery",
		Address:         "Downtown|Unit 4",
		PaymentMethodID: TestPaymentMethodID,
		DeliveryFee:     money("5.00"),
	}
}

func addLine(t *testing.T, ts *testServices, in AddToCartInput) *domain.CartLine {
	t.Helper()
	line, err := ts.cart.AddOrIncrement(context.Background(), TestOwnerID, in)
	require.NoError(t, err)
	return line
}
