package services

import (
	"strings"
	"time"

	"github.com/poohbae/CakeHistory/internal/domain"
	"github.com/shopspring/decimal"
)

// addressDelimiter separates the delivery area from free-form details, e.g. "Downtown|Unit 4".
const addressDelimiter = "|"

type FulfillmentRequest struct {
	ScheduledAt     string
	Method          string
	Address         string
	PaymentMethodID uint64
	DeliveryFee     decimal.Decimal
}

type ValidatedFulfillment struct {
	ScheduledAt     time.Time
	Method          domain.DeliveryMethod
	Address         *string
	PaymentMethodID uint64
	DeliveryFee     decimal.Decimal
}

// CheckoutValidator checks a fulfillment request without touching storage.
type CheckoutValidator struct {
	now func() time.Time
}

func NewCheckoutValidator(now func() time.Time) *CheckoutValidator {
	if now == nil {
		now = time.Now
	}
	return &CheckoutValidator{now: now}
}

func (v *CheckoutValidator) Validate(req FulfillmentRequest) (*ValidatedFulfillment, error) {
	scheduled, err := parseScheduled(req.ScheduledAt)
	if err != nil {
		return nil, err
	}
	if !scheduled.After(v.now().UTC()) {
		return nil, domain.NewValidationError("must be future")
	}

	method, err := domain.ParseDeliveryMethod(req.Method)
	if err != nil {
		return nil, err
	}

	var address *string
	if method == domain.DeliveryHome {
		if strings.TrimSpace(req.Address) == "" {
			return nil, domain.NewValidationError("address required")
		}
		a := parseAddress(req.Address)
		if strings.TrimSpace(a) == "" {
			return nil, domain.NewValidationError("address required")
		}
		address = &a
	}

	if req.PaymentMethodID == 0 {
		return nil, domain.NewValidationError("payment method required")
	}

	if req.DeliveryFee.IsNegative() {
		return nil, domain.NewValidationError("invalid delivery fee")
	}

	return &ValidatedFulfillment{
		ScheduledAt:     scheduled.UTC(),
		Method:          method,
		Address:         address,
		PaymentMethodID: req.PaymentMethodID,
		DeliveryFee:     req.DeliveryFee.Round(2),
	}, nil
}

// scheduledLayouts all require an offset, so a naive timestamp is rejected.
var scheduledLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
}

func parseScheduled(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range scheduledLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError("invalid datetime")
}

// parseAddress keeps only the area when the input is exactly "area|details"; anything else is stored verbatim.
func parseAddress(raw string) string {
	parts := strings.Split(raw, addressDelimiter)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0])
	}
	return raw
}
