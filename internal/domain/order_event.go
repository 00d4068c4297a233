package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderPlacedEvent struct {
	OrderID        uint64          `json:"orderId"`
	OwnerID        uint64          `json:"ownerId"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DeliveryMethod DeliveryMethod  `json:"deliveryMethod"`
	ScheduledAt    time.Time       `json:"scheduledDatetime"`
	Items          int             `json:"items"`
	Addons         int             `json:"addons"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type OrderStatusChangedEvent struct {
	OrderID   uint64      `json:"orderId"`
	OwnerID   uint64      `json:"ownerId"`
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
	ChangedAt time.Time   `json:"changedAt"`
}

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

func NewOrderPlacedEvent(o *Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:        o.ID,
		OwnerID:        o.OwnerID,
		TotalAmount:    o.TotalAmount,
		DeliveryMethod: o.DeliveryMethod,
		ScheduledAt:    o.ScheduledAt,
		Items:          len(o.Items),
		Addons:         len(o.Addons),
		CreatedAt:      o.OrderDate,
	}
}
