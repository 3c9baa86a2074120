package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEffectivePrice(t *testing.T) {
	sale := decimal.RequireFromString("79.90")
	zero := decimal.Zero

	cases := []struct {
		name    string
		product Product
		want    string
	}{
		{"regular", Product{Price: decimal.RequireFromString("99.90")}, "99.90"},
		{"sale", Product{Price: decimal.RequireFromString("99.90"), SalePrice: &sale}, "79.90"},
		{"zero sale ignored", Product{Price: decimal.RequireFromString("99.90"), SalePrice: &zero}, "99.90"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.product.EffectivePrice()
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestPrimaryImage(t *testing.T) {
	var nilProduct *Product
	if got := nilProduct.PrimaryImage(); got != "/placeholder.svg" {
		t.Fatalf("nil product: got %s", got)
	}

	p := Product{Images: []ProductImage{{URL: "/a.jpg"}, {URL: "/b.jpg", IsPrimary: true}}}
	if got := p.PrimaryImage(); got != "/b.jpg" {
		t.Fatalf("expected primary image, got %s", got)
	}

	p = Product{Images: []ProductImage{{URL: "/a.jpg"}, {URL: "/b.jpg"}}}
	if got := p.PrimaryImage(); got != "/a.jpg" {
		t.Fatalf("expected first image, got %s", got)
	}

	p = Product{}
	if got := p.PrimaryImage(); got != "/placeholder.svg" {
		t.Fatalf("expected placeholder, got %s", got)
	}
}

func TestShippingPriceFor(t *testing.T) {
	method := ShippingMethod{
		Code:     "dpd",
		Price:    decimal.RequireFromString("4.49"),
		FreeFrom: decimal.RequireFromString("50"),
	}

	if got := method.PriceFor(decimal.RequireFromString("49.99")); !got.Equal(decimal.RequireFromString("4.49")) {
		t.Fatalf("below threshold: got %s", got)
	}
	if got := method.PriceFor(decimal.RequireFromString("50")); !got.IsZero() {
		t.Fatalf("at threshold shipping should be free, got %s", got)
	}
}
