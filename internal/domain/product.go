package domain

import "time"

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductDraft    ProductStatus = "draft"
	ProductArchived ProductStatus = "archived"
)

// Product описывает товар каталога в том виде, в каком его отдаёт бэкенд.
type Product struct {
	ID              string             `json:"id"`
	SKU             string             `json:"sku"`
	Slug            string             `json:"slug"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Price           Money              `json:"price"`
	SalePrice       *Money             `json:"sale_price,omitempty"`
	Currency        string             `json:"currency"`
	Stock           int                `json:"stock"`
	CategoryID      string             `json:"category_id,omitempty"`
	BrandID         string             `json:"brand_id,omitempty"`
	Images          []ProductImage     `json:"images"`
	Attributes      []ProductAttribute `json:"attributes"`
	Variants        []ProductVariant   `json:"variants,omitempty"`
	MetaTitle       string             `json:"meta_title"`
	MetaDescription string             `json:"meta_description"`
	Status          ProductStatus      `json:"status"`
	Weight          float64            `json:"weight"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type ProductImage struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	Position  int    `json:"position"`
	IsPrimary bool   `json:"is_primary"`
}

type ProductAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

type ProductVariant struct {
	ID      string          `json:"id"`
	SKU     string          `json:"sku"`
	Name    string          `json:"name"`
	Price   Money           `json:"price"`
	Stock   int             `json:"stock"`
	Options []VariantOption `json:"options"`
}

type VariantOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// EffectivePrice — цена, по которой товар кладётся в корзину:
// акционная, если она положительна, иначе обычная.
func (p *Product) EffectivePrice() Money {
	if p.SalePrice != nil && p.SalePrice.IsPositive() {
		return *p.SalePrice
	}
	return p.Price
}

// PrimaryImage возвращает URL главного изображения, первого изображения или заглушки.
func (p *Product) PrimaryImage() string {
	const placeholder = "/placeholder.svg"

	if p == nil || len(p.Images) == 0 {
		return placeholder
	}
	for _, img := range p.Images {
		if img.IsPrimary && img.URL != "" {
			return img.URL
		}
	}
	if p.Images[0].URL != "" {
		return p.Images[0].URL
	}
	return placeholder
}

type Brand struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

// Offer — предложение продавца/поставщика по товару.
type Offer struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	ShopID        string  `json:"shop_id,omitempty"`
	ShopName      string  `json:"shop_name"`
	ShopLogo      string  `json:"shop_logo,omitempty"`
	ShopURL       string  `json:"shop_url,omitempty"`
	Price         Money   `json:"price"`
	OriginalPrice *Money  `json:"original_price,omitempty"`
	StockStatus   string  `json:"stock_status"`
	Delivery      string  `json:"delivery"`
	Shipping      Money   `json:"shipping"`
	Rating        float64 `json:"rating,omitempty"`
	ReviewCount   int     `json:"review_count,omitempty"`
	AffiliateURL  string  `json:"affiliate_url,omitempty"`
	DisplayMode   string  `json:"display_mode,omitempty"`
	IsMaster      bool    `json:"is_master,omitempty"`
	Initials      string  `json:"initials,omitempty"`
}
