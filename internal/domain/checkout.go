package domain

import "github.com/shopspring/decimal"

type ShippingMethod struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
	FreeFrom    Money  `json:"free_from"`
	IsActive    bool   `json:"is_active"`
}

// PriceFor — стоимость доставки для суммы заказа: 0, если сумма достигла порога бесплатной доставки.
func (s ShippingMethod) PriceFor(subtotal Money) Money {
	if s.FreeFrom.IsPositive() && subtotal.GreaterThanOrEqual(s.FreeFrom) {
		return decimal.Zero
	}
	return s.Price
}

type PaymentMethod struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Fee         Money  `json:"fee"`
	IsActive    bool   `json:"is_active"`
}

// CheckoutStep — шаг мастера оформления заказа.
type CheckoutStep int

const (
	StepAddress CheckoutStep = iota + 1
	StepShipping
	StepPayment
	StepSummary
)

func (s CheckoutStep) Valid() bool {
	return s >= StepAddress && s <= StepSummary
}

func (s CheckoutStep) Label() string {
	switch s {
	case StepAddress:
		return "Adresa"
	case StepShipping:
		return "Doprava"
	case StepPayment:
		return "Platba"
	case StepSummary:
		return "Súhrn"
	}
	return ""
}

// CheckoutDraft — незавершённое оформление заказа, хранится в сессии.
type CheckoutDraft struct {
	Step       CheckoutStep `json:"step"`
	Address    Address      `json:"address"`
	ShippingID string       `json:"shipping_id"`
	PaymentID  string       `json:"payment_id"`
	Note       string       `json:"note"`
}

// CheckoutQuote — расчёт суммы заказа для шага «Súhrn».
type CheckoutQuote struct {
	Subtotal   Money           `json:"subtotal"`
	Shipping   Money           `json:"shipping"`
	PaymentFee Money           `json:"payment_fee"`
	Total      Money           `json:"total"`
	ItemCount  int             `json:"item_count"`
	Currency   string          `json:"currency"`
	ShippingBy *ShippingMethod `json:"shipping_method,omitempty"`
	PaidBy     *PaymentMethod  `json:"payment_method,omitempty"`
}
