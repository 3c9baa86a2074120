package converter

import (
	"time"

	"github.com/profibuy/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// SessionRedisModel — сессия в Redis. Из товара в корзине хранится только снимок для отрисовки.
type SessionRedisModel struct {
	Version   int             `json:"v"`
	ID        string          `json:"id"`
	Items     []CartItemModel `json:"items"`
	Token     string          `json:"token,omitempty"`
	User      *UserModel      `json:"user,omitempty"`
	Checkout  *CheckoutModel  `json:"checkout,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type CartItemModel struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Quantity  int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name,omitempty"`
	Slug      string          `json:"slug,omitempty"`
	SKU       string          `json:"sku,omitempty"`
	Image     string          `json:"image,omitempty"`
	Stock     int             `json:"stock,omitempty"`
}

type UserModel struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
}

type CheckoutModel struct {
	Step       int            `json:"step"`
	Address    domain.Address `json:"address"`
	ShippingID string         `json:"shipping_id,omitempty"`
	PaymentID  string         `json:"payment_id,omitempty"`
	Note       string         `json:"note,omitempty"`
}
