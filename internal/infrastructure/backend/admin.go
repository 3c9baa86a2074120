package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/profibuy/storefront/internal/domain"
)

// Все методы этого файла требуют токен администратора.

func (c *Client) Dashboard(ctx context.Context, token string) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/dashboard", nil, token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) ListAdminProducts(ctx context.Context, token string, params url.Values) (*domain.Page[domain.Product], error) {
	var page domain.Page[domain.Product]
	if err := c.do(ctx, http.MethodGet, "/api/admin/products", params, token, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, product *domain.Product) (*domain.Product, error) {
	var created domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/admin/products", nil, token, product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id string, product *domain.Product) (*domain.Product, error) {
	var updated domain.Product
	if err := c.do(ctx, http.MethodPut, "/api/admin/products/"+segment(id), nil, token, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/products/"+segment(id), nil, token, nil, nil)
}

func (c *Client) DeleteAllProducts(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/products/delete-all", nil, token, nil, nil)
}

func (c *Client) ListAdminOrders(ctx context.Context, token string, params url.Values) (*domain.Page[domain.Order], error) {
	var page domain.Page[domain.Order]
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders", params, token, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token string, id string, req *domain.UpdateOrderStatusReq) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPut, "/api/admin/orders/"+segment(id)+"/status", nil, token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Категории

func (c *Client) ListAllCategories(ctx context.Context, token string) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/api/admin/categories", nil, token, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, token string, category *domain.Category) (*domain.Category, error) {
	var created domain.Category
	if err := c.do(ctx, http.MethodPost, "/api/admin/categories", nil, token, category, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateCategory(ctx context.Context, token string, id string, category *domain.Category) (*domain.Category, error) {
	var updated domain.Category
	if err := c.do(ctx, http.MethodPut, "/api/admin/categories/"+segment(id), nil, token, category, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token string, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/categories/"+segment(id), nil, token, nil, nil)
}

// Фиды импорта

func (c *Client) ListFeeds(ctx context.Context, token string) ([]domain.Feed, error) {
	var feeds []domain.Feed
	if err := c.do(ctx, http.MethodGet, "/api/admin/feeds", nil, token, nil, &feeds); err != nil {
		return nil, err
	}
	return feeds, nil
}

func (c *Client) CreateFeed(ctx context.Context, token string, feed *domain.Feed) (*domain.Feed, error) {
	var created domain.Feed
	if err := c.do(ctx, http.MethodPost, "/api/admin/feeds", nil, token, feed, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) RunFeedImport(ctx context.Context, token string, id string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/feeds/"+segment(id)+"/run", nil, token, nil, nil)
}

func (c *Client) ClearCache(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/cache/clear", nil, token, nil, nil)
}

// Настройки магазина

func (c *Client) GetSettings(ctx context.Context, token string) (domain.Settings, error) {
	var settings domain.Settings
	if err := c.do(ctx, http.MethodGet, "/api/admin/settings", nil, token, nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettings — бэкенд отвечает {"success":true}, поэтому возвращаются переданные настройки.
func (c *Client) UpdateSettings(ctx context.Context, token string, settings domain.Settings) (domain.Settings, error) {
	if err := c.do(ctx, http.MethodPut, "/api/admin/settings", nil, token, settings, nil); err != nil {
		return nil, err
	}
	return settings, nil
}

func (c *Client) ChangePassword(ctx context.Context, token string, req *domain.ChangePasswordReq) error {
	return c.do(ctx, http.MethodPost, "/api/admin/change-password", nil, token, req, nil)
}

// Статические страницы

func (c *Client) ListStaticPages(ctx context.Context, token string) ([]domain.StaticPage, error) {
	var pages []domain.StaticPage
	if err := c.do(ctx, http.MethodGet, "/api/admin/pages", nil, token, nil, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

func (c *Client) CreateStaticPage(ctx context.Context, token string, page *domain.StaticPage) (*domain.StaticPage, error) {
	created := *page
	if err := c.do(ctx, http.MethodPost, "/api/admin/pages", nil, token, page, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateStaticPage(ctx context.Context, token string, id string, page *domain.StaticPage) (*domain.StaticPage, error) {
	updated := *page
	if err := c.do(ctx, http.MethodPut, "/api/admin/pages/"+segment(id), nil, token, page, &updated); err != nil {
		return nil, err
	}
	if updated.ID == "" {
		updated.ID = id
	}
	return &updated, nil
}

func (c *Client) DeleteStaticPage(ctx context.Context, token string, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/pages/"+segment(id), nil, token, nil, nil)
}

// Навигация и фильтры

func (c *Client) GetAdminNavigation(ctx context.Context, token string) (*domain.NavSettings, error) {
	var nav domain.NavSettings
	if err := c.do(ctx, http.MethodGet, "/api/admin/navigation", nil, token, nil, &nav); err != nil {
		return nil, err
	}
	return &nav, nil
}

// SaveNavigation отдаёт сохранённое меню. Поля, которых нет в ответе, берутся из запроса.
func (c *Client) SaveNavigation(ctx context.Context, token string, nav *domain.NavSettings) (*domain.NavSettings, error) {
	saved := *nav
	if err := c.do(ctx, http.MethodPost, "/api/admin/navigation", nil, token, nav, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) GetFilterSettings(ctx context.Context, token string) (domain.FilterSettings, error) {
	var settings domain.FilterSettings
	if err := c.do(ctx, http.MethodGet, "/api/admin/filter-settings", nil, token, nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (c *Client) SaveFilterSettings(ctx context.Context, token string, settings domain.FilterSettings) (domain.FilterSettings, error) {
	if err := c.do(ctx, http.MethodPost, "/api/admin/filter-settings", nil, token, settings, nil); err != nil {
		return nil, err
	}
	return settings, nil
}

func (c *Client) AttributeStats(ctx context.Context, token string) (domain.AttributeStats, error) {
	var stats domain.AttributeStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/attributes/stats", nil, token, nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
