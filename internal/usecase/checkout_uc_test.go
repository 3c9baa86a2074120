package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

func validAddress() *domain.Address {
	return &domain.Address{
		FirstName:  "Jana",
		LastName:   "Nováková",
		Email:      "jana@megashop.sk",
		Phone:      "+421900123456",
		Street:     "Hlavná 1",
		City:       "Bratislava",
		PostalCode: "81101",
		Country:    "Slovensko",
	}
}

func cartWith(total string) domain.Cart {
	return domain.Cart{Items: []domain.CartItem{{ID: "i1", ProductID: "p1", Quantity: 1, Price: decimal.RequireFromString(total)}}}
}

func TestQuote(t *testing.T) {
	shipping := DefaultShippingMethods()
	payment := DefaultPaymentMethods()

	cases := []struct {
		name     string
		subtotal string
		ship     string
		pay      string
		want     string
	}{
		{"nothing selected", "20", "", "", "20"},
		{"paid shipping", "20", "dpd", "card", "24.49"},
		{"free from 50", "50", "dpd", "card", "50"},
		{"cod fee", "49.99", "packeta", "cod", "54.48"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cart := cartWith(c.subtotal)
			q := Quote(&cart, &domain.CheckoutDraft{ShippingID: c.ship, PaymentID: c.pay}, shipping, payment)
			if !q.Total.Equal(decimal.RequireFromString(c.want)) {
				t.Fatalf("total = %s, want %s", q.Total, c.want)
			}
			if q.Currency != "EUR" || q.ItemCount != 1 {
				t.Fatalf("unexpected quote %+v", q)
			}
		})
	}
}

func newCheckoutFixture(api *fakeStorefrontAPI) (*CheckoutUCImpl, *fakeEvents, *domain.Session) {
	events := &fakeEvents{}
	sessions := NewSessionUC(newFakeSessionRepo(), logger.NewNop())
	uc := NewCheckoutUC(api, sessions, events, logger.NewNop())
	return uc, events, domain.NewSession("s1", time.Now())
}

func TestShippingMethodsFallback(t *testing.T) {
	uc, _, _ := newCheckoutFixture(&fakeStorefrontAPI{shippingErr: e.ErrBackendUnavailable})

	methods := uc.ShippingMethods(context.Background())
	if len(methods) != 4 || methods[0].Code != "packeta" {
		t.Fatalf("expected static methods, got %+v", methods)
	}

	uc, _, _ = newCheckoutFixture(&fakeStorefrontAPI{shipping: []domain.ShippingMethod{
		{ID: "x", Code: "express", Price: decimal.NewFromInt(9), IsActive: true},
		{ID: "y", Code: "off", IsActive: false},
	}})
	methods = uc.ShippingMethods(context.Background())
	if len(methods) != 1 || methods[0].Code != "express" {
		t.Fatalf("expected active backend methods only, got %+v", methods)
	}
}

func TestUpdateStepGating(t *testing.T) {
	uc, _, session := newCheckoutFixture(&fakeStorefrontAPI{shippingErr: e.ErrBackendUnavailable})
	ctx := context.Background()
	step := func(s domain.CheckoutStep) *domain.CheckoutStep { return &s }
	str := func(s string) *string { return &s }

	if _, err := uc.Update(ctx, session, &CheckoutPatch{Step: step(domain.StepShipping)}); !errors.Is(err, e.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
	if _, err := uc.Update(ctx, session, &CheckoutPatch{Step: step(7)}); !errors.Is(err, e.ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
	if _, err := uc.Update(ctx, session, &CheckoutPatch{ShippingID: str("teleport")}); !errors.Is(err, e.ErrUnknownShipping) {
		t.Fatalf("expected ErrUnknownShipping, got %v", err)
	}

	view, err := uc.Update(ctx, session, &CheckoutPatch{Address: validAddress(), Step: step(domain.StepShipping)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if view.Draft.Step != domain.StepShipping || session.Checkout == nil {
		t.Fatalf("draft not advanced: %+v", view.Draft)
	}

	if _, err := uc.Update(ctx, session, &CheckoutPatch{Step: step(domain.StepPayment)}); !errors.Is(err, e.ErrShippingNotSelected) {
		t.Fatalf("expected ErrShippingNotSelected, got %v", err)
	}

	view, err = uc.Update(ctx, session, &CheckoutPatch{ShippingID: str("gls"), PaymentID: str("cod"), Step: step(domain.StepSummary)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if view.Quote.ShippingBy == nil || view.Quote.PaidBy == nil || view.Quote.PaidBy.Code != "cod" {
		t.Fatalf("quote misses selected methods: %+v", view.Quote)
	}

	// Назад можно всегда.
	if _, err := uc.Update(ctx, session, &CheckoutPatch{Step: step(domain.StepAddress)}); err != nil {
		t.Fatalf("going back failed: %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	uc, _, session := newCheckoutFixture(&fakeStorefrontAPI{shippingErr: e.ErrBackendUnavailable})
	ctx := context.Background()

	if _, err := uc.Submit(ctx, session); !errors.Is(err, e.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	session.Cart = cartWith("10")
	if _, err := uc.Submit(ctx, session); !errors.Is(err, e.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}

	session.Checkout = &domain.CheckoutDraft{Step: domain.StepSummary, Address: *validAddress()}
	if _, err := uc.Submit(ctx, session); !errors.Is(err, e.ErrShippingNotSelected) {
		t.Fatalf("expected ErrShippingNotSelected, got %v", err)
	}

	session.Checkout.ShippingID = "dpd"
	if _, err := uc.Submit(ctx, session); !errors.Is(err, e.ErrPaymentNotSelected) {
		t.Fatalf("expected ErrPaymentNotSelected, got %v", err)
	}
}

func TestSubmitPlacesOrder(t *testing.T) {
	var got *domain.CreateOrderReq
	var gotToken string
	api := &fakeStorefrontAPI{
		shippingErr: e.ErrBackendUnavailable,
		createOrder: func(token string, req *domain.CreateOrderReq) (*domain.Order, error) {
			got, gotToken = req, token
			return &domain.Order{ID: "uuid-1", OrderNumber: "MS-2024-0001"}, nil
		},
	}
	uc, events, session := newCheckoutFixture(api)
	session.Token = "customer-token"
	session.Cart = domain.Cart{Items: []domain.CartItem{
		{ID: "i1", ProductID: "p1", Quantity: 2, Price: decimal.RequireFromString("19.90")},
	}}
	session.Checkout = &domain.CheckoutDraft{
		Step:       domain.StepSummary,
		Address:    *validAddress(),
		ShippingID: "2",
		PaymentID:  "transfer",
		Note:       "Zvoniť dvakrát",
	}

	placed, err := uc.Submit(context.Background(), session)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if placed.Reference != "MS-2024-0001" {
		t.Fatalf("unexpected reference %q", placed.Reference)
	}
	if gotToken != "customer-token" {
		t.Fatalf("token not forwarded: %q", gotToken)
	}
	if got.ShippingMethod != "dpd" || got.PaymentMethod != "transfer" || got.Note != "Zvoniť dvakrát" {
		t.Fatalf("unexpected order request %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 || !got.Items[0].Price.Equal(decimal.RequireFromString("19.90")) {
		t.Fatalf("unexpected order items %+v", got.Items)
	}
	if got.BillingAddress != got.ShippingAddress {
		t.Fatal("billing and shipping address must match")
	}
	if !session.Cart.IsEmpty() || session.Checkout != nil {
		t.Fatal("cart and draft must be cleared after order")
	}

	recorded := events.recorded()
	if len(recorded) != 1 || recorded[0].EventType != domain.EventOrderPlaced || recorded[0].AggregateID != "MS-2024-0001" {
		t.Fatalf("expected order_placed event, got %+v", recorded)
	}
}

func TestSubmitBackendFailureKeepsCart(t *testing.T) {
	api := &fakeStorefrontAPI{
		shippingErr: e.ErrBackendUnavailable,
		createOrder: func(string, *domain.CreateOrderReq) (*domain.Order, error) {
			return nil, &e.BackendError{StatusCode: 400, Message: "Product out of stock"}
		},
	}
	uc, events, session := newCheckoutFixture(api)
	session.Cart = cartWith("10")
	session.Checkout = &domain.CheckoutDraft{Address: *validAddress(), ShippingID: "posta", PaymentID: "card"}

	if _, err := uc.Submit(context.Background(), session); err == nil {
		t.Fatal("expected error")
	}
	if session.Cart.IsEmpty() || session.Checkout == nil {
		t.Fatal("failed order must keep cart and draft")
	}
	if len(events.recorded()) != 0 {
		t.Fatal("no event on failure")
	}
}

func TestOrderReferenceFallsBackToID(t *testing.T) {
	api := &fakeStorefrontAPI{
		shippingErr: e.ErrBackendUnavailable,
		createOrder: func(string, *domain.CreateOrderReq) (*domain.Order, error) {
			return &domain.Order{ID: "uuid-2"}, nil
		},
	}
	uc, _, session := newCheckoutFixture(api)
	session.Cart = cartWith("10")
	session.Checkout = &domain.CheckoutDraft{Address: *validAddress(), ShippingID: "posta", PaymentID: "card"}

	placed, err := uc.Submit(context.Background(), session)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if placed.Reference != "uuid-2" {
		t.Fatalf("expected id fallback, got %q", placed.Reference)
	}
}
