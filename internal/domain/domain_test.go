package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		raw      string
		expected Category
		wantErr  bool
	}{
		{raw: "", expected: CategoryProduct},
		{raw: "  ", expected: CategoryProduct},
		{raw: "product", expected: CategoryProduct},
		{raw: " Candle ", expected: CategoryCandle},
		{raw: "CARD", expected: CategoryCard},
		{raw: "box", expected: CategoryBox},
		{raw: "balloon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.raw), func(t *testing.T) {
			c, err := ParseCategory(tt.raw)
			if tt.wantErr {
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestCategory_IsAddon(t *testing.T) {
	assert.False(t, CategoryProduct.IsAddon())
	assert.True(t, CategoryCandle.IsAddon())
	assert.True(t, CategoryCard.IsAddon())
	assert.True(t, CategoryBox.IsAddon())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusPending.CanTransitionTo(StatusCanceled))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCanceled))
	assert.False(t, StatusCanceled.CanTransitionTo(StatusCompleted))
}

func TestParseDeliveryMethod(t *testing.T) {
	m, err := ParseDeliveryMethod(" Delivery")
	require.NoError(t, err)
	assert.Equal(t, DeliveryHome, m)

	m, err = ParseDeliveryMethod("pickup")
	require.NoError(t, err)
	assert.Equal(t, DeliveryPickup, m)

	_, err = ParseDeliveryMethod("")
	assert.True(t, IsValidation(err))
}

func TestOrder_ComputeTotal(t *testing.T) {
	o := &Order{
		DeliveryFee: decimal.RequireFromString("5.00"),
		Items: []OrderItem{
			{Quantity: 2, PriceEach: decimal.RequireFromString("30.00")},
		},
		Addons: []OrderAddon{
			{Quantity: 1, PriceEach: decimal.RequireFromString("5.00")},
		},
	}
	assert.Equal(t, "70.00", o.ComputeTotal().StringFixed(2))

	o.Items = append(o.Items, OrderItem{Quantity: 3, PriceEach: decimal.RequireFromString("0.10")})
	assert.True(t, decimal.RequireFromString("70.30").Equal(o.ComputeTotal()))

	empty := &Order{}
	assert.True(t, empty.ComputeTotal().IsZero())
}

func TestCatalogItems(t *testing.T) {
	items := []CatalogItem{
		Cake{ID: 1, Name: "A", Price: decimal.NewFromInt(30), Images: []string{"a.jpg", "b.jpg"}},
		Candle{ID: 2, Name: "B", Price: decimal.NewFromInt(5), Img: "candle.png"},
		Card{ID: 3, Name: "C", Price: decimal.NewFromInt(3)},
		Box{ID: 4, Name: "D", Price: decimal.NewFromInt(8)},
	}
	for i, it := range items {
		assert.Equal(t, uint64(i+1), it.ItemID())
		assert.Equal(t, Categories[i], it.ItemCategory())
	}
	assert.Equal(t, "a.jpg", items[0].ImageURL())
	assert.Equal(t, "", Cake{}.ImageURL())
}

func TestErrors(t *testing.T) {
	base := errors.New("connection refused")
	wrapped := fmt.Errorf("checkout: %w", NewStorageError("commit order", base))

	assert.True(t, IsStorage(wrapped))
	assert.ErrorIs(t, wrapped, base)
	assert.False(t, IsValidation(wrapped))

	assert.Equal(t, "payment method 3 not found", NewNotFoundError("payment method", 3).Error())
	assert.Equal(t, "order not found", NewNotFoundError("order", 0).Error())

	assert.True(t, IsConcurrency(ErrConcurrentCheckout))
	assert.ErrorIs(t, fmt.Errorf("x: %w", ErrConcurrentCheckout), ErrConcurrentCheckout)
}
