package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/poohbae/CakeHistory/internal/infra/database"
	"github.com/poohbae/CakeHistory/internal/infra/ownerlock"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
	"github.com/poohbae/CakeHistory/internal/repository/gormrepo"
	"github.com/poohbae/CakeHistory/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenSQLiteMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, database.Seed(db))

	log := logger.Nop()
	orders := gormrepo.NewOrderRepository(db, log)
	carts := gormrepo.NewCartRepository(db, log)
	payments := gormrepo.NewPaymentMethodRepository(db)
	tx := gormrepo.NewTransactor(db)
	locker := ownerlock.NewLocal()
	resolver := services.NewCatalogResolver(gormrepo.NewCatalogRepository(db), log)
	guard := services.NewConsistencyGuard(tx, orders, carts, 5*time.Second, log)

	h := NewHandler(
		resolver,
		services.NewCartService(carts, payments, resolver, tx, locker, 5*time.Second, log),
		services.NewCheckoutService(services.CheckoutDeps{
			Validator: services.NewCheckoutValidator(nil),
			Assembler: services.NewOrderAssembler(resolver, nil),
			Guard:     guard,
			Carts:     carts,
			Payments:  payments,
			Locker:    locker,
			Timeout:   5 * time.Second,
			Log:       log,
		}),
		services.NewOrderService(orders, guard, nil, log),
		log,
	)
	return NewRouter(h, RouterOptions{JWTSecret: testSecret, Log: log})
}

func bearer(t *testing.T, owner uint64) string {
	t.Helper()
	tok, err := GenerateToken(testSecret, owner, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, r *gin.Engine, method, path, auth string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func checkoutBody(when time.Time) map[string]interface{} {
	return map[string]interface{}{
		"method":          "delivery",
		"address":         "Downtown|Unit 4",
		"datetime":        when.Format(time.RFC3339),
		"paymentMethodId": 1,
		"deliveryFee":     "5.00",
	}
}

func TestHandler_Auth(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		auth string
	}{
		{name: "missing header"},
		{name: "wrong scheme", auth: "Basic abc"},
		{name: "bad signature", auth: "Bearer not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, r, http.MethodGet, "/cart", tt.auth, nil)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.False(t, env.Success)
		})
	}

	other, err := GenerateToken("other-secret", 7, time.Hour)
	require.NoError(t, err)
	code, _ := do(t, r, http.MethodGet, "/cart", "Bearer "+other, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, r, http.MethodGet, "/menu", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestHandler_CheckoutFlow(t *testing.T) {
	r := newTestRouter(t)
	auth := bearer(t, 7)

	code, env := do(t, r, http.MethodPost, "/cart", auth, map[string]interface{}{
		"itemType": "product", "productId": 1, "quantity": 2, "specialRequest": "Happy Birthday",
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	code, env = do(t, r, http.MethodPost, "/cart", auth, map[string]interface{}{
		"itemType": "candle", "productId": 1, "optionSelected": "red",
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = do(t, r, http.MethodPost, "/checkout", auth, checkoutBody(time.Now().Add(-time.Hour)))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "must be future", env.Message)

	code, env = do(t, r, http.MethodPost, "/checkout", auth, checkoutBody(time.Now().Add(24*time.Hour)))
	require.Equal(t, http.StatusCreated, code, env.Message)
	var placed CheckoutResponse
	require.NoError(t, json.Unmarshal(env.Data, &placed))
	assert.True(t, decimal.RequireFromString("70.00").Equal(placed.Order.TotalAmount))
	assert.Equal(t, domain.StatusPending, placed.Order.Status)

	code, env = do(t, r, http.MethodPost, "/checkout", auth, checkoutBody(time.Now().Add(24*time.Hour)))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "empty cart", env.Message)

	code, env = do(t, r, http.MethodGet, "/orders", auth, nil)
	require.Equal(t, http.StatusOK, code)
	var orders []domain.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)

	path := fmt.Sprintf("/orders/%d", placed.Order.ID)
	code, _ = do(t, r, http.MethodGet, path, bearer(t, 8), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, r, http.MethodDelete, path, auth, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, r, http.MethodPost, path+"/cancel", auth, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	code, _ = do(t, r, http.MethodPost, path+"/complete", auth, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodDelete, path, auth, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodGet, path, auth, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHandler_CartErrors(t *testing.T) {
	r := newTestRouter(t)
	auth := bearer(t, 7)

	code, env := do(t, r, http.MethodPost, "/cart", auth, map[string]interface{}{"itemType": "product", "productId": 999})
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)

	code, env = do(t, r, http.MethodPost, "/cart", auth, map[string]interface{}{"itemType": "balloon", "productId": 1})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid item type", env.Message)

	code, _ = do(t, r, http.MethodPost, "/cart", auth, map[string]interface{}{"itemType": "product"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodDelete, "/cart/abc", auth, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodDelete, "/cart/42", auth, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{domain.NewValidationError("empty cart"), http.StatusBadRequest, "empty cart"},
		{domain.NewNotFoundError("order", 3), http.StatusNotFound, "order 3 not found"},
		{domain.ErrConcurrentCheckout, http.StatusConflict, domain.ErrConcurrentCheckout.Reason},
		{domain.NewStorageError("commit order", fmt.Errorf("dsn=secret")), http.StatusInternalServerError, storageFailureMessage},
	}
	for _, tt := range tests {
		status, msg := statusFor(tt.err)
		assert.Equal(t, tt.status, status)
		assert.Equal(t, tt.message, msg)
	}
}

func TestCheckoutMessage(t *testing.T) {
	assert.Equal(t, "Order placed successfully", checkoutMessage(nil))
	msg := checkoutMessage([]services.DroppedLine{{LineID: 3, Category: domain.CategoryCandle, ItemID: 2}})
	assert.Contains(t, msg, "candle 2")
}
