package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

type CartUCImpl struct {
	api      StorefrontAPI
	sessions SessionUC
	events   EventsUC
	logger   logger.Logger
}

func NewCartUC(api StorefrontAPI, sessions SessionUC, events EventsUC, logger logger.Logger) *CartUCImpl {
	return &CartUCImpl{
		api:      api,
		sessions: sessions,
		events:   events,
		logger:   logger,
	}
}

func (c *CartUCImpl) Get(_ context.Context, session *domain.Session) *CartView {
	return NewCartView(&session.Cart)
}

// AddItem кладёт товар в корзину. Цена и снимок товара берутся у бэкенда;
// если строка уже есть, количества складываются.
func (c *CartUCImpl) AddItem(ctx context.Context, session *domain.Session, req *AddCartItemReq) (*CartView, error) {
	if req.ProductID == "" {
		return nil, e.ErrMissingFields
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, e.ErrInvalidQuantity
	}

	product, err := c.api.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	session.Cart.Add(domain.CartItem{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		VariantID: req.VariantID,
		Quantity:  qty,
		Price:     product.EffectivePrice(),
		Product:   product,
	})

	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return NewCartView(&session.Cart), nil
}

// RemoveItem удаляет товар из корзины. Отсутствующий товар ничего не меняет.
func (c *CartUCImpl) RemoveItem(ctx context.Context, session *domain.Session, productID string) (*CartView, error) {
	if !session.Cart.Remove(productID) {
		return NewCartView(&session.Cart), nil
	}

	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return NewCartView(&session.Cart), nil
}

// UpdateQuantity меняет количество; quantity <= 0 удаляет строку, отсутствующий товар игнорируется.
func (c *CartUCImpl) UpdateQuantity(ctx context.Context, session *domain.Session, productID string, quantity int) (*CartView, error) {
	if !session.Cart.SetQuantity(productID, quantity) {
		return NewCartView(&session.Cart), nil
	}

	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return NewCartView(&session.Cart), nil
}

func (c *CartUCImpl) Clear(ctx context.Context, session *domain.Session) (*CartView, error) {
	items := session.Cart.ItemCount()
	session.Cart.Clear()

	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if items > 0 {
		event := domain.NewEvent(uuid.NewString(), domain.EventCartCleared, session.ID, map[string]any{
			"session_id": session.ID,
			"item_count": items,
		}, time.Now())
		if err := c.events.Record(ctx, event); err != nil {
			c.logger.Warnf("cart_cleared event not recorded: %v", err)
		}
	}

	return NewCartView(&session.Cart), nil
}
