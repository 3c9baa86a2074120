package domain

import (
	"encoding/json"
	"time"
)

// StaticPage — статическая страница (условия, контакты и т.п.).
type StaticPage struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	IsPublished     bool      `json:"is_published"`
	ShowInFooter    bool      `json:"show_in_footer"`
	Position        int       `json:"position"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NavSettings — настройки главного меню категорий.
type NavSettings struct {
	Items             []NavItem `json:"items"`
	MaxVisible        int       `json:"max_visible"`
	ShowProductCounts bool      `json:"show_product_counts"`
}

type NavItem struct {
	CategoryID string `json:"category_id"`
	LabelSK    string `json:"label_sk"`
	LabelEN    string `json:"label_en"`
	Position   int    `json:"position"`
	Visible    bool   `json:"visible"`
	ShowInMega bool   `json:"show_in_mega"`
	Icon       string `json:"icon"`
}

// Label возвращает словацкую подпись пункта, иначе английскую.
func (n NavItem) Label() string {
	if n.LabelSK != "" {
		return n.LabelSK
	}
	return n.LabelEN
}

// ExportInfo — сведения об экспортном XML-фиде (Heureka).
type ExportInfo struct {
	URL          string     `json:"url"`
	ProductCount int        `json:"product_count"`
	GeneratedAt  *time.Time `json:"generated_at,omitempty"`
	Format       string     `json:"format,omitempty"`
}

// Settings — настройки магазина; структура принадлежит бэкенду.
type Settings = json.RawMessage

// FilterSettings — настройки фильтров витрины; структура принадлежит бэкенду.
type FilterSettings = json.RawMessage

// AttributeStats — статистика атрибутов для настройки фильтров.
type AttributeStats = json.RawMessage
