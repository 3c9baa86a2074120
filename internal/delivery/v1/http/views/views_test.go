package views

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/internal/usecase"
	"github.com/profibuy/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

func TestDiscount(t *testing.T) {
	sale := decimal.RequireFromString("75")
	tests := []struct {
		name  string
		price any
		sale  any
		want  int
	}{
		{"sale", decimal.RequireFromString("100"), &sale, 25},
		{"no sale", decimal.RequireFromString("100"), (*decimal.Decimal)(nil), 0},
		{"sale above price", decimal.RequireFromString("50"), &sale, 0},
		{"floats", 200.0, 150.0, 25},
		{"garbage", "abc", &sale, 0},
		{"nan price", math.NaN(), 150.0, 0},
		{"inf sale", 200.0, math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := discount(tt.price, tt.sale); got != tt.want {
				t.Fatalf("discount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProductImage(t *testing.T) {
	if got := productImage(nil); got != "/placeholder.svg" {
		t.Fatalf("nil product: %s", got)
	}
	p := &domain.Product{Images: []domain.ProductImage{{URL: "/a.jpg"}, {URL: "/b.jpg", IsPrimary: true}}}
	if got := productImage(p); got != "/b.jpg" {
		t.Fatalf("primary image expected, got %s", got)
	}
}

func TestRenderAllPages(t *testing.T) {
	r, err := NewRenderer(logger.NewNop())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	sale := decimal.RequireFromString("9.99")
	product := domain.Product{ID: "p1", Slug: "vrtacka", Name: "Vŕtačka", Price: decimal.RequireFromString("12.50"), SalePrice: &sale, Stock: 3}
	page := domain.EmptyPage[domain.Product]()
	page.Items = []domain.Product{product}

	contents := map[string]any{
		PageHome:            &usecase.HomeView{Featured: page, Sale: domain.EmptyPage[domain.Product](), Categories: []domain.Category{{Name: "Náradie", Slug: "naradie"}}},
		PageProducts:        page,
		PageProduct:         &usecase.ProductView{Product: &product},
		PageCategories:      []domain.Category{{Name: "Náradie", Slug: "naradie"}},
		PageCategory:        &usecase.CategoryView{Category: &domain.Category{Name: "Náradie"}, Products: page, Filters: &domain.FilterOptions{}},
		PageSearch:          &usecase.SearchView{Query: "vŕtačka", Products: page},
		PageCart:            usecase.NewCartView(&domain.Cart{Items: []domain.CartItem{{ProductID: "p1", Quantity: 2, Price: sale, Product: &product}}}),
		PageCheckout:        &usecase.CheckoutView{Draft: domain.CheckoutDraft{Step: domain.StepAddress}, ShippingMethods: usecase.DefaultShippingMethods(), PaymentMethods: usecase.DefaultPaymentMethods()},
		PageCheckoutSuccess: &usecase.PlacedOrder{Reference: "MS-1001"},
		PageStatic:          &domain.StaticPage{Title: "Kontakt", Content: "Bratislava"},
		PageLogin:           &FormState{Error: "Nesprávny email alebo heslo"},
		PageRegister:        &FormState{},
		PageAccount:         nil,
		PageAdmin:           &domain.DashboardStats{},
		PageAdminLogin:      &FormState{},
		PageNotFound:        nil,
	}

	for _, name := range pages {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.Render(rec, http.StatusOK, name, &Data{
				Title:   name,
				User:    &domain.User{FirstName: "Ján", Role: domain.RoleAdmin},
				Content: contents[name],
			})
			if rec.Code != http.StatusOK {
				t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), "MegaShop") {
				t.Fatal("layout not rendered")
			}
		})
	}
}

func TestRenderFormatsPrices(t *testing.T) {
	r, err := NewRenderer(logger.NewNop())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	cart := usecase.NewCartView(&domain.Cart{Items: []domain.CartItem{{ProductID: "p1", Quantity: 1, Price: decimal.RequireFromString("1234.5")}}})
	rec := httptest.NewRecorder()
	r.Render(rec, http.StatusOK, PageCart, &Data{Content: cart})

	if !strings.Contains(rec.Body.String(), "1\u00a0234,50\u00a0€") {
		t.Fatalf("price not formatted: %s", rec.Body.String())
	}
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := NewRenderer(logger.NewNop())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	rec := httptest.NewRecorder()
	r.Render(rec, http.StatusOK, "missing", &Data{})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
