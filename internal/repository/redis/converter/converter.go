package converter

import (
	"github.com/profibuy/storefront/internal/domain"
)

// SessionVersion меняется при несовместимом изменении формата; сессии старой версии считаются отсутствующими.
const SessionVersion = 1

// SessionConverter преобразует сессию между domain и моделью Redis.
type SessionConverter struct{}

func (SessionConverter) ToRedisModel(entity *domain.Session) *SessionRedisModel {
	model := &SessionRedisModel{
		Version:   SessionVersion,
		ID:        entity.ID,
		Items:     make([]CartItemModel, 0, len(entity.Cart.Items)),
		Token:     entity.Token,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}

	for _, item := range entity.Cart.Items {
		model.Items = append(model.Items, toCartItemModel(item))
	}

	if u := entity.User; u != nil {
		model.User = &UserModel{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     u.Phone,
			Role:      string(u.Role),
		}
	}

	if c := entity.Checkout; c != nil {
		model.Checkout = &CheckoutModel{
			Step:       int(c.Step),
			Address:    c.Address,
			ShippingID: c.ShippingID,
			PaymentID:  c.PaymentID,
			Note:       c.Note,
		}
	}

	return model
}

func (SessionConverter) ToDomain(model *SessionRedisModel) *domain.Session {
	session := &domain.Session{
		ID:        model.ID,
		Token:     model.Token,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	if len(model.Items) > 0 {
		session.Cart.Items = make([]domain.CartItem, 0, len(model.Items))
		for _, item := range model.Items {
			session.Cart.Items = append(session.Cart.Items, toCartItem(item))
		}
	}

	if u := model.User; u != nil {
		session.User = &domain.User{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     u.Phone,
			Role:      domain.Role(u.Role),
			IsActive:  true,
		}
	}

	if c := model.Checkout; c != nil {
		session.Checkout = &domain.CheckoutDraft{
			Step:       domain.CheckoutStep(c.Step),
			Address:    c.Address,
			ShippingID: c.ShippingID,
			PaymentID:  c.PaymentID,
			Note:       c.Note,
		}
	}

	return session
}

func toCartItemModel(item domain.CartItem) CartItemModel {
	model := CartItemModel{
		ID:        item.ID,
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Quantity:  item.Quantity,
		Price:     item.Price,
	}
	if p := item.Product; p != nil {
		model.Name = p.Name
		model.Slug = p.Slug
		model.SKU = p.SKU
		model.Stock = p.Stock
		if len(p.Images) > 0 {
			model.Image = p.PrimaryImage()
		}
	}
	return model
}

func toCartItem(model CartItemModel) domain.CartItem {
	item := domain.CartItem{
		ID:        model.ID,
		ProductID: model.ProductID,
		VariantID: model.VariantID,
		Quantity:  model.Quantity,
		Price:     model.Price,
	}
	if model.Name != "" || model.Slug != "" {
		item.Product = &domain.Product{
			ID:    model.ProductID,
			Name:  model.Name,
			Slug:  model.Slug,
			SKU:   model.SKU,
			Stock: model.Stock,
			Price: model.Price,
		}
		if model.Image != "" {
			item.Product.Images = []domain.ProductImage{{URL: model.Image, IsPrimary: true}}
		}
	}
	return item
}
