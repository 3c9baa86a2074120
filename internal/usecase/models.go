package usecase

import (
	"github.com/profibuy/storefront/internal/domain"
)

// CartView — корзина в том виде, в каком её видит браузер.
type CartView struct {
	Items     []domain.CartItem `json:"items"`
	Total     domain.Money      `json:"total"`
	ItemCount int               `json:"item_count"`
	Currency  string            `json:"currency"`
}

func NewCartView(cart *domain.Cart) *CartView {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}

	return &CartView{
		Items:     items,
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
		Currency:  domain.DefaultCurrency,
	}
}

type AddCartItemReq struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

// HomeView — данные главной страницы.
type HomeView struct {
	Featured   domain.Page[domain.Product] `json:"featured"`
	Sale       domain.Page[domain.Product] `json:"sale"`
	Categories []domain.Category           `json:"categories"`
}

type ProductView struct {
	Product *domain.Product `json:"product"`
	Offers  []domain.Offer  `json:"offers"`
}

type CategoryView struct {
	Category *domain.Category            `json:"category"`
	Products domain.Page[domain.Product] `json:"products"`
	Filters  *domain.FilterOptions       `json:"filters"`
}

type SearchView struct {
	Query    string                      `json:"query"`
	Products domain.Page[domain.Product] `json:"products"`
}

// CheckoutPatch — частичное обновление черновика заказа. nil-поля не меняются.
type CheckoutPatch struct {
	Step       *domain.CheckoutStep `json:"step,omitempty"`
	Address    *domain.Address      `json:"address,omitempty"`
	ShippingID *string              `json:"shipping_id,omitempty"`
	PaymentID  *string              `json:"payment_id,omitempty"`
	Note       *string              `json:"note,omitempty"`
}

// CheckoutView — состояние мастера оформления: черновик, расчёт и доступные способы.
type CheckoutView struct {
	Draft           domain.CheckoutDraft    `json:"draft"`
	Quote           domain.CheckoutQuote    `json:"quote"`
	Cart            *CartView               `json:"cart"`
	ShippingMethods []domain.ShippingMethod `json:"shipping_methods"`
	PaymentMethods  []domain.PaymentMethod  `json:"payment_methods"`
}

// PlacedOrder — результат оформления для страницы успеха.
type PlacedOrder struct {
	Reference string        `json:"order_number"`
	Order     *domain.Order `json:"order"`
}

// UploadedFile — файл из multipart-формы админки.
type UploadedFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

type UploadMediaReq struct {
	Folder string
	Files  []UploadedFile
}

type UploadMediaRes struct {
	Keys []string `json:"keys"`
	URLs []string `json:"urls"`
}
