package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCanceled  OrderStatus = "canceled"
)

// CanTransitionTo allows Pending -> Completed and Pending -> Canceled only.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == StatusPending && (next == StatusCompleted || next == StatusCanceled)
}

type DeliveryMethod string

const (
	DeliveryPickup DeliveryMethod = "pickup"
	DeliveryHome   DeliveryMethod = "delivery"
)

func ParseDeliveryMethod(raw string) (DeliveryMethod, error) {
	switch m := DeliveryMethod(strings.ToLower(strings.TrimSpace(raw))); m {
	case DeliveryPickup, DeliveryHome:
		return m, nil
	default:
		return "", NewValidationError("invalid delivery method")
	}
}

// Order is the aggregate root. Items and Addons are written and deleted only together with it.
type Order struct {
	ID              uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerID         uint64          `json:"ownerId" gorm:"not null;index:idx_orders_owner_date,priority:1"`
	PaymentMethodID uint64          `json:"paymentMethodId" gorm:"not null"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee" gorm:"type:decimal(10,2);not null"`
	OrderDate       time.Time       `json:"orderDate" gorm:"not null;index:idx_orders_owner_date,priority:2"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	DeliveryMethod  DeliveryMethod  `json:"deliveryMethod" gorm:"type:varchar(16);not null"`
	DeliveryAddress *string         `json:"deliveryAddress,omitempty" gorm:"size:255"`
	ScheduledAt     time.Time       `json:"scheduledDatetime" gorm:"not null"`

	Items  []OrderItem  `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Addons []OrderAddon `json:"addons" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	ID        uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64          `json:"orderId" gorm:"not null;index"`
	ProductID uint64          `json:"productId" gorm:"not null"`
	Name      string          `json:"name" gorm:"size:120"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	PriceEach decimal.Decimal `json:"priceEach" gorm:"type:decimal(10,2);not null"`
	Note      *string         `json:"specialRequest,omitempty" gorm:"column:special_request;size:500"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PriceEach.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type OrderAddon struct {
	ID        uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64          `json:"orderId" gorm:"not null;index"`
	AddonType Category        `json:"addonType" gorm:"type:varchar(16);not null"`
	AddonID   uint64          `json:"addonId" gorm:"not null"`
	Name      string          `json:"name" gorm:"size:120"`
	Option    *string         `json:"optionSelected,omitempty" gorm:"column:option_selected;size:120"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	PriceEach decimal.Decimal `json:"priceEach" gorm:"type:decimal(10,2);not null"`
}

func (a OrderAddon) Subtotal() decimal.Decimal {
	return a.PriceEach.Mul(decimal.NewFromInt(int64(a.Quantity)))
}

// ComputeTotal sums line subtotals and the delivery fee, rounded to cents.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := o.DeliveryFee
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	for _, ad := range o.Addons {
		total = total.Add(ad.Subtotal())
	}
	return total.Round(2)
}
