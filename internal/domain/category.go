package domain

import "time"

// Category описывает категорию каталога (дерево через Children).
type Category struct {
	ID              string     `json:"id"`
	ParentID        string     `json:"parent_id,omitempty"`
	Slug            string     `json:"slug"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Image           string     `json:"image"`
	Position        int        `json:"position"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	ProductCount    int        `json:"product_count"`
	Published       *bool      `json:"published,omitempty"`
	Children        []Category `json:"children,omitempty"`
	Path            string     `json:"path"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CategoryProducts — ответ бэкенда на /categories/{slug}/products.
type CategoryProducts struct {
	Category Category      `json:"category"`
	Products Page[Product] `json:"products"`
}

type FilterOptions struct {
	Categories []CategoryFilter  `json:"categories"`
	Brands     []BrandFilter     `json:"brands"`
	PriceRange PriceRange        `json:"price_range"`
	Attributes []AttributeFilter `json:"attributes"`
}

type CategoryFilter struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

type BrandFilter struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type PriceRange struct {
	Min Money `json:"min"`
	Max Money `json:"max"`
}

type AttributeFilter struct {
	Name   string           `json:"name"`
	Values []AttributeValue `json:"values"`
}

type AttributeValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}
