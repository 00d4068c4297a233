package http

import (
	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/poohbae/CakeHistory/internal/services"
	"github.com/shopspring/decimal"
)

// Response is the envelope for every JSON reply.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type AddToCartRequest struct {
	ItemType       string `json:"itemType"`
	ProductID      uint64 `json:"productId" binding:"required"`
	Quantity       int    `json:"quantity"`
	OptionSelected string `json:"optionSelected"`
	SpecialRequest string `json:"specialRequest"`
}

type CheckoutRequest struct {
	Method          string          `json:"method"`
	Address         string          `json:"address"`
	Datetime        string          `json:"datetime"`
	PaymentMethodID uint64          `json:"paymentMethodId"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee"`
}

type CheckoutResponse struct {
	Order   *domain.Order          `json:"order"`
	Dropped []services.DroppedLine `json:"dropped,omitempty"`
}
