package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
	"github.com/poohbae/CakeHistory/internal/services"
)

const storageFailureMessage = "Database error. Please try again later."

type Handler struct {
	catalog  *services.CatalogResolver
	cart     *services.CartService
	checkout *services.CheckoutService
	orders   *services.OrderService
	log      *logger.Logger
}

func NewHandler(catalog *services.CatalogResolver, cart *services.CartService, checkout *services.CheckoutService,
	orders *services.OrderService, baseLog *logger.Logger) *Handler {
	return &Handler{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		orders:   orders,
		log:      baseLog.With("component", "http"),
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	r.GET("/healthz", h.Health)
	r.GET("/menu", h.Menu)

	api := r.Group("/", auth)
	api.POST("/cart", h.AddToCart)
	api.GET("/cart", h.ViewCart)
	api.DELETE("/cart/:lineId", h.RemoveCartLine)
	api.POST("/checkout", h.Checkout)
	api.GET("/orders", h.ListOrders)
	api.GET("/orders/:id", h.GetOrder)
	api.POST("/orders/:id/complete", h.CompleteOrder)
	api.POST("/orders/:id/cancel", h.CancelOrder)
	api.DELETE("/orders/:id", h.DeleteOrder)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true, Message: "ok"})
}

func (h *Handler) Menu(c *gin.Context) {
	menu, err := h.catalog.Menu(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "menu", Data: menu})
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Message: "invalid request body"})
		return
	}

	line, err := h.cart.AddOrIncrement(c.Request.Context(), currentOwner(c), services.AddToCartInput{
		Category: req.ItemType,
		ItemID:   req.ProductID,
		Quantity: req.Quantity,
		Option:   req.OptionSelected,
		Note:     req.SpecialRequest,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: line.DisplayName + " added to cart", Data: line})
}

func (h *Handler) ViewCart(c *gin.Context) {
	view, err := h.cart.View(c.Request.Context(), currentOwner(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "cart", Data: view})
}

func (h *Handler) RemoveCartLine(c *gin.Context) {
	lineID, ok := h.pathID(c, "lineId")
	if !ok {
		return
	}
	if err := h.cart.RemoveLine(c.Request.Context(), currentOwner(c), lineID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "item removed"})
}

func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Message: "invalid request body"})
		return
	}

	res, err := h.checkout.Checkout(c.Request.Context(), currentOwner(c), services.FulfillmentRequest{
		ScheduledAt:     req.Datetime,
		Method:          req.Method,
		Address:         req.Address,
		PaymentMethodID: req.PaymentMethodID,
		DeliveryFee:     req.DeliveryFee,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: checkoutMessage(res.Dropped),
		Data:    CheckoutResponse{Order: res.Order, Dropped: res.Dropped},
	})
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListForOwner(c.Request.Context(), currentOwner(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "orders", Data: orders})
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	o, err := h.orders.Get(c.Request.Context(), currentOwner(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "order", Data: o})
}

func (h *Handler) CompleteOrder(c *gin.Context) {
	h.changeStatus(c, h.orders.Complete)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	h.changeStatus(c, h.orders.Cancel)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.orders.Purge(c.Request.Context(), currentOwner(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "order deleted"})
}

func (h *Handler) changeStatus(c *gin.Context, apply func(ctx context.Context, ownerID, id uint64) (*domain.Order, error)) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	o, err := apply(c.Request.Context(), currentOwner(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "order " + string(o.Status), Data: o})
}

func (h *Handler) pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, Response{Message: "invalid " + name})
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.FullPath(), "owner_id", currentOwner(c), "error", err)
	}
	c.JSON(status, Response{Message: msg})
}

func statusFor(err error) (int, string) {
	var (
		ve *domain.ValidationError
		nf *domain.NotFoundError
		ce *domain.ConcurrencyError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Reason
	case errors.As(err, &nf):
		return http.StatusNotFound, nf.Error()
	case errors.As(err, &ce):
		return http.StatusConflict, ce.Reason
	default:
		return http.StatusInternalServerError, storageFailureMessage
	}
}

func checkoutMessage(dropped []services.DroppedLine) string {
	if len(dropped) == 0 {
		return "Order placed successfully"
	}
	names := make([]string, 0, len(dropped))
	for _, d := range dropped {
		names = append(names, fmt.Sprintf("%s %d", d.Category, d.ItemID))
	}
	return "Order placed. No longer available and removed from your cart: " + strings.Join(names, ", ")
}
