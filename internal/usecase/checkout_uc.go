package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

var freeShippingFrom = decimal.NewFromInt(50)

// DefaultShippingMethods показываются, если бэкенд не вернул способы доставки.
func DefaultShippingMethods() []domain.ShippingMethod {
	return []domain.ShippingMethod{
		{ID: "1", Code: "packeta", Name: "Zásielkovňa", Description: "Vyzdvihnite si zásielku na vybranom mieste", Price: decimal.RequireFromString("2.99"), FreeFrom: freeShippingFrom, IsActive: true},
		{ID: "2", Code: "dpd", Name: "DPD kuriér", Description: "Doručenie na adresu do 1-2 dní", Price: decimal.RequireFromString("4.49"), FreeFrom: freeShippingFrom, IsActive: true},
		{ID: "3", Code: "gls", Name: "GLS kuriér", Description: "Doručenie na adresu do 1-2 dní", Price: decimal.RequireFromString("3.99"), FreeFrom: freeShippingFrom, IsActive: true},
		{ID: "4", Code: "posta", Name: "Slovenská pošta", Description: "Doručenie poštou do 3-5 dní", Price: decimal.RequireFromString("2.49"), FreeFrom: freeShippingFrom, IsActive: true},
	}
}

func DefaultPaymentMethods() []domain.PaymentMethod {
	return []domain.PaymentMethod{
		{ID: "1", Code: "card", Name: "Platba kartou", Description: "Visa, Mastercard", Fee: decimal.Zero, IsActive: true},
		{ID: "2", Code: "transfer", Name: "Bankový prevod", Description: "Platba vopred na účet", Fee: decimal.Zero, IsActive: true},
		{ID: "3", Code: "cod", Name: "Dobierka", Description: "Platba pri prevzatí", Fee: decimal.RequireFromString("1.50"), IsActive: true},
	}
}

type CheckoutUCImpl struct {
	api      StorefrontAPI
	sessions SessionUC
	events   EventsUC
	logger   logger.Logger
	now      func() time.Time
}

func NewCheckoutUC(api StorefrontAPI, sessions SessionUC, events EventsUC, logger logger.Logger) *CheckoutUCImpl {
	return &CheckoutUCImpl{
		api:      api,
		sessions: sessions,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// ShippingMethods — активные способы доставки бэкенда или статический список.
func (c *CheckoutUCImpl) ShippingMethods(ctx context.Context) []domain.ShippingMethod {
	methods, err := c.api.ListShippingMethods(ctx)
	if err != nil {
		c.logger.Warnf("shipping methods unavailable, using defaults: %v", e.Wrap(whereami.WhereAmI(), err))
		return DefaultShippingMethods()
	}

	active := make([]domain.ShippingMethod, 0, len(methods))
	for _, m := range methods {
		if m.IsActive {
			active = append(active, m)
		}
	}
	if len(active) == 0 {
		return DefaultShippingMethods()
	}
	return active
}

// View возвращает черновик, расчёт и справочники для текущего шага.
func (c *CheckoutUCImpl) View(ctx context.Context, session *domain.Session) *CheckoutView {
	shipping := c.ShippingMethods(ctx)
	payment := DefaultPaymentMethods()
	draft := c.draft(session)

	return &CheckoutView{
		Draft:           *draft,
		Quote:           Quote(&session.Cart, draft, shipping, payment),
		Cart:            NewCartView(&session.Cart),
		ShippingMethods: shipping,
		PaymentMethods:  payment,
	}
}

// Update применяет изменения черновика. Переход вперёд возможен только после заполнения
// предыдущих шагов, назад можно всегда.
func (c *CheckoutUCImpl) Update(ctx context.Context, session *domain.Session, patch *CheckoutPatch) (*CheckoutView, error) {
	shipping := c.ShippingMethods(ctx)
	payment := DefaultPaymentMethods()

	draft := *c.draft(session)

	if patch.Address != nil {
		draft.Address = *patch.Address
	}
	if patch.ShippingID != nil {
		if _, ok := findShipping(shipping, *patch.ShippingID); !ok && *patch.ShippingID != "" {
			return nil, e.ErrUnknownShipping
		}
		draft.ShippingID = *patch.ShippingID
	}
	if patch.PaymentID != nil {
		if _, ok := findPayment(payment, *patch.PaymentID); !ok && *patch.PaymentID != "" {
			return nil, e.ErrUnknownPayment
		}
		draft.PaymentID = *patch.PaymentID
	}
	if patch.Note != nil {
		draft.Note = *patch.Note
	}
	if patch.Step != nil {
		if !patch.Step.Valid() {
			return nil, e.ErrInvalidStep
		}
		if *patch.Step > draft.Step {
			if err := canEnter(*patch.Step, &draft); err != nil {
				return nil, err
			}
		}
		draft.Step = *patch.Step
	}

	session.Checkout = &draft
	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &CheckoutView{
		Draft:           draft,
		Quote:           Quote(&session.Cart, &draft, shipping, payment),
		Cart:            NewCartView(&session.Cart),
		ShippingMethods: shipping,
		PaymentMethods:  payment,
	}, nil
}

// Submit отправляет заказ бэкенду. После успеха корзина и черновик очищаются.
func (c *CheckoutUCImpl) Submit(ctx context.Context, session *domain.Session) (*PlacedOrder, error) {
	if session.Cart.IsEmpty() {
		return nil, e.ErrEmptyCart
	}

	draft := c.draft(session)
	if err := ValidateAddress(&draft.Address); err != nil {
		return nil, err
	}

	shipping, ok := findShipping(c.ShippingMethods(ctx), draft.ShippingID)
	if !ok {
		return nil, e.ErrShippingNotSelected
	}
	payment, ok := findPayment(DefaultPaymentMethods(), draft.PaymentID)
	if !ok {
		return nil, e.ErrPaymentNotSelected
	}

	req := &domain.CreateOrderReq{
		Items:           make([]domain.CreateOrderItem, 0, len(session.Cart.Items)),
		BillingAddress:  draft.Address,
		ShippingAddress: draft.Address,
		ShippingMethod:  shipping.Code,
		PaymentMethod:   payment.Code,
		Note:            draft.Note,
	}
	for _, item := range session.Cart.Items {
		req.Items = append(req.Items, domain.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := c.api.CreateOrder(ctx, session.Token, req)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	quote := Quote(&session.Cart, draft, []domain.ShippingMethod{shipping}, []domain.PaymentMethod{payment})
	itemCount := session.Cart.ItemCount()

	session.Cart.Clear()
	session.Checkout = nil
	if err := c.sessions.Save(ctx, session); err != nil {
		// Заказ уже создан, поэтому ошибку сохранения сессии только логируем.
		c.logger.Errorf(err, "order %s placed but session %s not saved", order.Reference(), session.ID)
	}

	event := domain.NewEvent(uuid.NewString(), domain.EventOrderPlaced, order.Reference(), map[string]any{
		"order_id":        order.ID,
		"order_number":    order.OrderNumber,
		"session_id":      session.ID,
		"item_count":      itemCount,
		"subtotal":        quote.Subtotal.String(),
		"total":           quote.Total.String(),
		"currency":        quote.Currency,
		"shipping_method": shipping.Code,
		"payment_method":  payment.Code,
	}, c.now())
	if err := c.events.Record(ctx, event); err != nil {
		c.logger.Warnf("order_placed event for %s not recorded: %v", order.Reference(), err)
	}

	c.logger.Infof("order %s placed (%d items, total %s)", order.Reference(), itemCount, quote.Total.StringFixed(2))

	return &PlacedOrder{Reference: order.Reference(), Order: order}, nil
}

func (c *CheckoutUCImpl) draft(session *domain.Session) *domain.CheckoutDraft {
	if session.Checkout != nil {
		return session.Checkout
	}

	draft := &domain.CheckoutDraft{
		Step: domain.StepAddress,
		Address: domain.Address{
			Country:     "Slovensko",
			CountryCode: "SK",
		},
	}
	if u := session.User; u != nil {
		draft.Address.FirstName = u.FirstName
		draft.Address.LastName = u.LastName
		draft.Address.Email = u.Email
		draft.Address.Phone = u.Phone
	}
	return draft
}

// Quote считает итог: доставка бесплатна от порога free_from, плюс комиссия способа оплаты.
func Quote(cart *domain.Cart, draft *domain.CheckoutDraft, shipping []domain.ShippingMethod, payment []domain.PaymentMethod) domain.CheckoutQuote {
	subtotal := cart.Total()
	quote := domain.CheckoutQuote{
		Subtotal:   subtotal,
		Shipping:   decimal.Zero,
		PaymentFee: decimal.Zero,
		ItemCount:  cart.ItemCount(),
		Currency:   domain.DefaultCurrency,
	}

	if m, ok := findShipping(shipping, draft.ShippingID); ok {
		quote.Shipping = m.PriceFor(subtotal)
		quote.ShippingBy = &m
	}
	if m, ok := findPayment(payment, draft.PaymentID); ok {
		quote.PaymentFee = m.Fee
		quote.PaidBy = &m
	}

	quote.Total = subtotal.Add(quote.Shipping).Add(quote.PaymentFee)
	return quote
}

// ValidateAddress проверяет обязательные поля адреса доставки.
func ValidateAddress(a *domain.Address) error {
	required := []string{a.FirstName, a.LastName, a.Email, a.Phone, a.Street, a.City, a.PostalCode}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return e.ErrInvalidAddress
		}
	}
	if !strings.Contains(a.Email, "@") {
		return e.ErrInvalidAddress
	}
	return nil
}

func canEnter(step domain.CheckoutStep, draft *domain.CheckoutDraft) error {
	if step > domain.StepAddress {
		if err := ValidateAddress(&draft.Address); err != nil {
			return err
		}
	}
	if step > domain.StepShipping && draft.ShippingID == "" {
		return e.ErrShippingNotSelected
	}
	if step > domain.StepPayment && draft.PaymentID == "" {
		return e.ErrPaymentNotSelected
	}
	return nil
}

// findShipping ищет способ по id или по коду.
func findShipping(methods []domain.ShippingMethod, key string) (domain.ShippingMethod, bool) {
	if key == "" {
		return domain.ShippingMethod{}, false
	}
	for _, m := range methods {
		if m.ID == key || m.Code == key {
			return m, true
		}
	}
	return domain.ShippingMethod{}, false
}

func findPayment(methods []domain.PaymentMethod, key string) (domain.PaymentMethod, bool) {
	if key == "" {
		return domain.PaymentMethod{}, false
	}
	for _, m := range methods {
		if m.ID == key || m.Code == key {
			return m, true
		}
	}
	return domain.PaymentMethod{}, false
}
