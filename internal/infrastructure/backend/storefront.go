package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/profibuy/storefront/internal/domain"
)

func (c *Client) ListProducts(ctx context.Context, params url.Values) (*domain.Page[domain.Product], error) {
	var page domain.Page[domain.Product]
	if err := c.do(ctx, http.MethodGet, "/api/products", params, "", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+segment(id), nil, "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/slug/"+segment(slug), nil, "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchProducts добавляет q к остальным параметрам листинга.
func (c *Client) SearchProducts(ctx context.Context, query string, params url.Values) (*domain.Page[domain.Product], error) {
	q := cloneValues(params)
	q.Set("q", query)

	var page domain.Page[domain.Product]
	if err := c.do(ctx, http.MethodGet, "/api/products/search", q, "", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, "", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories/"+segment(slug), nil, "", nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) GetCategoryProducts(ctx context.Context, slug string, params url.Values) (*domain.CategoryProducts, error) {
	var res domain.CategoryProducts
	if err := c.do(ctx, http.MethodGet, "/api/categories/"+segment(slug)+"/products", params, "", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetProductOffers разворачивает ответ {"offers": [...]}.
func (c *Client) GetProductOffers(ctx context.Context, productID string) ([]domain.Offer, error) {
	var res struct {
		Offers []domain.Offer `json:"offers"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products/"+segment(productID)+"/offers", nil, "", nil, &res); err != nil {
		return nil, err
	}
	return res.Offers, nil
}

// GetFilters возвращает фильтры категории или общие, если slug пустой.
func (c *Client) GetFilters(ctx context.Context, categorySlug string) (*domain.FilterOptions, error) {
	path := "/api/filters"
	if categorySlug != "" {
		path += "/" + segment(categorySlug)
	}

	var filters domain.FilterOptions
	if err := c.do(ctx, http.MethodGet, path, nil, "", nil, &filters); err != nil {
		return nil, err
	}
	return &filters, nil
}

func (c *Client) ListShippingMethods(ctx context.Context) ([]domain.ShippingMethod, error) {
	var methods []domain.ShippingMethod
	if err := c.do(ctx, http.MethodGet, "/api/shipping/methods", nil, "", nil, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// CreateOrder оформляет заказ. token может быть пустым для гостевого заказа.
func (c *Client) CreateOrder(ctx context.Context, token string, req *domain.CreateOrderReq) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+segment(id), nil, "", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) TrackOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/track/"+segment(orderNumber), nil, "", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetStaticPage(ctx context.Context, slug string) (*domain.StaticPage, error) {
	var page domain.StaticPage
	if err := c.do(ctx, http.MethodGet, "/api/pages/"+segment(slug), nil, "", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetNavigation(ctx context.Context) (*domain.NavSettings, error) {
	var nav domain.NavSettings
	if err := c.do(ctx, http.MethodGet, "/api/navigation", nil, "", nil, &nav); err != nil {
		return nil, err
	}
	return &nav, nil
}

func (c *Client) GetExportInfo(ctx context.Context) (*domain.ExportInfo, error) {
	var info domain.ExportInfo
	if err := c.do(ctx, http.MethodGet, "/api/export/info", nil, "", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Аутентификация

func (c *Client) Login(ctx context.Context, req *domain.LoginReq) (*domain.AuthRes, error) {
	var res domain.AuthRes
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Register(ctx context.Context, req *domain.RegisterReq) (*domain.AuthRes, error) {
	var res domain.AuthRes
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
