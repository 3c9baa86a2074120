package domain

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPaid       OrderStatus = "paid"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

// Valid сообщает, известен ли статус заказа.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type Order struct {
	ID              string        `json:"id"`
	OrderNumber     string        `json:"order_number"`
	UserID          string        `json:"user_id,omitempty"`
	Status          OrderStatus   `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	PaymentMethod   string        `json:"payment_method"`
	ShippingMethod  string        `json:"shipping_method"`
	ShippingPrice   Money         `json:"shipping_price"`
	Subtotal        Money         `json:"subtotal"`
	Tax             Money         `json:"tax"`
	Total           Money         `json:"total"`
	Currency        string        `json:"currency"`
	BillingAddress  Address       `json:"billing_address"`
	ShippingAddress Address       `json:"shipping_address"`
	Note            string        `json:"note"`
	Items           []OrderItem   `json:"items"`
	TrackingNumber  string        `json:"tracking_number"`
	InvoiceNumber   string        `json:"invoice_number"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	PaidAt          *time.Time    `json:"paid_at,omitempty"`
	ShippedAt       *time.Time    `json:"shipped_at,omitempty"`
}

// Reference — номер заказа для страницы успеха: order_number, иначе id.
func (o *Order) Reference() string {
	if o.OrderNumber != "" {
		return o.OrderNumber
	}
	return o.ID
}

type OrderItem struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	Quantity  int    `json:"quantity"`
	Total     Money  `json:"total"`
}

type Address struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Company     string `json:"company,omitempty"`
	Street      string `json:"street"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ICO         string `json:"ico,omitempty"`
	DIC         string `json:"dic,omitempty"`
	ICDPH       string `json:"ic_dph,omitempty"`
}

// CreateOrderItem — строка заказа в запросе на оформление.
type CreateOrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     Money  `json:"price"`
}

// CreateOrderReq — тело POST /api/orders.
type CreateOrderReq struct {
	Items           []CreateOrderItem `json:"items"`
	BillingAddress  Address           `json:"billing_address"`
	ShippingAddress Address           `json:"shipping_address"`
	ShippingMethod  string            `json:"shipping_method"`
	PaymentMethod   string            `json:"payment_method"`
	Note            string            `json:"note"`
}

// UpdateOrderStatusReq — тело PUT /api/admin/orders/{id}/status.
type UpdateOrderStatusReq struct {
	Status         OrderStatus `json:"status"`
	TrackingNumber string      `json:"tracking_number,omitempty"`
}
