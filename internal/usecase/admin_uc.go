package usecase

import (
	"context"
	"net/url"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/format"
	"github.com/profibuy/storefront/pkg/logger"
)

// AdminUCImpl — операции админки. Почти всё передаётся бэкенду с токеном администратора;
// здесь только проверки формы и согласование локального кэша.
type AdminUCImpl struct {
	admin     AdminAPI
	suppliers SupplierAPI
	cache     CatalogCacheRepository
	logger    logger.Logger
}

func NewAdminUC(admin AdminAPI, suppliers SupplierAPI, cache CatalogCacheRepository, logger logger.Logger) *AdminUCImpl {
	return &AdminUCImpl{
		admin:     admin,
		suppliers: suppliers,
		cache:     cache,
		logger:    logger,
	}
}

func (a *AdminUCImpl) Dashboard(ctx context.Context, token string) (*domain.DashboardStats, error) {
	stats, err := a.admin.Dashboard(ctx, token)
	return stats, wrap(err)
}

// Товары

func (a *AdminUCImpl) ListProducts(ctx context.Context, token string, params url.Values) (*domain.Page[domain.Product], error) {
	page, err := a.admin.ListAdminProducts(ctx, token, params)
	if err != nil {
		return nil, wrap(err)
	}
	res := normalizePage(page)
	return &res, nil
}

func (a *AdminUCImpl) CreateProduct(ctx context.Context, token string, product *domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(product.Name) == "" {
		return nil, e.ErrMissingFields
	}
	if product.Price.IsNegative() {
		return nil, e.ErrInvalidPrice
	}
	if product.Slug == "" {
		product.Slug = format.Slug(product.Name)
	}
	created, err := a.admin.CreateProduct(ctx, token, product)
	return created, wrap(err)
}

func (a *AdminUCImpl) UpdateProduct(ctx context.Context, token string, id string, product *domain.Product) (*domain.Product, error) {
	if product.Price.IsNegative() {
		return nil, e.ErrInvalidPrice
	}
	updated, err := a.admin.UpdateProduct(ctx, token, id, product)
	return updated, wrap(err)
}

func (a *AdminUCImpl) DeleteProduct(ctx context.Context, token string, id string) error {
	return wrap(a.admin.DeleteProduct(ctx, token, id))
}

func (a *AdminUCImpl) DeleteAllProducts(ctx context.Context, token string) error {
	if err := a.admin.DeleteAllProducts(ctx, token); err != nil {
		return wrap(err)
	}
	a.dropCache(ctx)
	return nil
}

// Заказы

func (a *AdminUCImpl) ListOrders(ctx context.Context, token string, params url.Values) (*domain.Page[domain.Order], error) {
	page, err := a.admin.ListAdminOrders(ctx, token, params)
	if err != nil {
		return nil, wrap(err)
	}
	res := normalizePage(page)
	return &res, nil
}

func (a *AdminUCImpl) UpdateOrderStatus(ctx context.Context, token string, id string, req *domain.UpdateOrderStatusReq) (*domain.Order, error) {
	if !req.Status.Valid() {
		return nil, e.Wrap(string(req.Status), e.ErrStatusBadRequest)
	}
	order, err := a.admin.UpdateOrderStatus(ctx, token, id, req)
	return order, wrap(err)
}

// Категории

func (a *AdminUCImpl) ListCategories(ctx context.Context, token string) ([]domain.Category, error) {
	categories, err := a.admin.ListAllCategories(ctx, token)
	if err != nil {
		return nil, wrap(err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (a *AdminUCImpl) CreateCategory(ctx context.Context, token string, category *domain.Category) (*domain.Category, error) {
	if strings.TrimSpace(category.Name) == "" {
		return nil, e.ErrMissingFields
	}
	if category.Slug == "" {
		category.Slug = format.Slug(category.Name)
	}
	created, err := a.admin.CreateCategory(ctx, token, category)
	if err != nil {
		return nil, wrap(err)
	}
	a.dropCache(ctx)
	return created, nil
}

func (a *AdminUCImpl) UpdateCategory(ctx context.Context, token string, id string, category *domain.Category) (*domain.Category, error) {
	updated, err := a.admin.UpdateCategory(ctx, token, id, category)
	if err != nil {
		return nil, wrap(err)
	}
	a.dropCache(ctx)
	return updated, nil
}

func (a *AdminUCImpl) DeleteCategory(ctx context.Context, token string, id string) error {
	if err := a.admin.DeleteCategory(ctx, token, id); err != nil {
		return wrap(err)
	}
	a.dropCache(ctx)
	return nil
}

// Фиды (старый импорт)

func (a *AdminUCImpl) ListFeeds(ctx context.Context, token string) ([]domain.Feed, error) {
	feeds, err := a.admin.ListFeeds(ctx, token)
	if err != nil {
		return nil, wrap(err)
	}
	if feeds == nil {
		feeds = []domain.Feed{}
	}
	return feeds, nil
}

func (a *AdminUCImpl) CreateFeed(ctx context.Context, token string, feed *domain.Feed) (*domain.Feed, error) {
	if strings.TrimSpace(feed.Name) == "" || strings.TrimSpace(feed.URL) == "" {
		return nil, e.ErrMissingFields
	}
	created, err := a.admin.CreateFeed(ctx, token, feed)
	return created, wrap(err)
}

func (a *AdminUCImpl) RunFeedImport(ctx context.Context, token string, id string) error {
	return wrap(a.admin.RunFeedImport(ctx, token, id))
}

// ClearCache чистит кэш бэкенда и локальный кэш каталога.
func (a *AdminUCImpl) ClearCache(ctx context.Context, token string) error {
	if err := a.admin.ClearCache(ctx, token); err != nil {
		return wrap(err)
	}
	if err := a.cache.Clear(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.logger.Infof("catalog cache cleared")
	return nil
}

// Настройки

func (a *AdminUCImpl) GetSettings(ctx context.Context, token string) (domain.Settings, error) {
	settings, err := a.admin.GetSettings(ctx, token)
	return settings, wrap(err)
}

func (a *AdminUCImpl) UpdateSettings(ctx context.Context, token string, settings domain.Settings) (domain.Settings, error) {
	if len(settings) == 0 {
		return nil, e.ErrMissingFields
	}
	updated, err := a.admin.UpdateSettings(ctx, token, settings)
	return updated, wrap(err)
}

func (a *AdminUCImpl) ChangePassword(ctx context.Context, token string, req *domain.ChangePasswordReq) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return e.ErrMissingFields
	}
	return wrap(a.admin.ChangePassword(ctx, token, req))
}

// Статические страницы

func (a *AdminUCImpl) ListPages(ctx context.Context, token string) ([]domain.StaticPage, error) {
	pages, err := a.admin.ListStaticPages(ctx, token)
	if err != nil {
		return nil, wrap(err)
	}
	if pages == nil {
		pages = []domain.StaticPage{}
	}
	return pages, nil
}

// CreatePage генерирует slug из заголовка, если он не задан.
func (a *AdminUCImpl) CreatePage(ctx context.Context, token string, page *domain.StaticPage) (*domain.StaticPage, error) {
	if err := preparePage(page); err != nil {
		return nil, err
	}
	created, err := a.admin.CreateStaticPage(ctx, token, page)
	return created, wrap(err)
}

func (a *AdminUCImpl) UpdatePage(ctx context.Context, token string, id string, page *domain.StaticPage) (*domain.StaticPage, error) {
	if err := preparePage(page); err != nil {
		return nil, err
	}
	updated, err := a.admin.UpdateStaticPage(ctx, token, id, page)
	return updated, wrap(err)
}

func (a *AdminUCImpl) DeletePage(ctx context.Context, token string, id string) error {
	return wrap(a.admin.DeleteStaticPage(ctx, token, id))
}

// Навигация и фильтры

func (a *AdminUCImpl) GetNavigation(ctx context.Context, token string) (*domain.NavSettings, error) {
	nav, err := a.admin.GetAdminNavigation(ctx, token)
	return nav, wrap(err)
}

func (a *AdminUCImpl) SaveNavigation(ctx context.Context, token string, nav *domain.NavSettings) (*domain.NavSettings, error) {
	saved, err := a.admin.SaveNavigation(ctx, token, nav)
	if err != nil {
		return nil, wrap(err)
	}
	a.dropCache(ctx)
	return saved, nil
}

func (a *AdminUCImpl) GetFilterSettings(ctx context.Context, token string) (domain.FilterSettings, error) {
	settings, err := a.admin.GetFilterSettings(ctx, token)
	return settings, wrap(err)
}

func (a *AdminUCImpl) SaveFilterSettings(ctx context.Context, token string, settings domain.FilterSettings) (domain.FilterSettings, error) {
	saved, err := a.admin.SaveFilterSettings(ctx, token, settings)
	if err != nil {
		return nil, wrap(err)
	}
	a.dropCache(ctx)
	return saved, nil
}

func (a *AdminUCImpl) AttributeStats(ctx context.Context, token string) (domain.AttributeStats, error) {
	stats, err := a.admin.AttributeStats(ctx, token)
	return stats, wrap(err)
}

// Поставщики

func (a *AdminUCImpl) ListSuppliers(ctx context.Context, token string) ([]domain.Supplier, error) {
	suppliers, err := a.suppliers.ListSuppliers(ctx, token)
	if err != nil {
		return nil, wrap(err)
	}
	if suppliers == nil {
		suppliers = []domain.Supplier{}
	}
	return suppliers, nil
}

func (a *AdminUCImpl) GetSupplier(ctx context.Context, token string, id string) (*domain.Supplier, error) {
	supplier, err := a.suppliers.GetSupplier(ctx, token, id)
	return supplier, wrap(err)
}

func (a *AdminUCImpl) CreateSupplier(ctx context.Context, token string, supplier *domain.Supplier) (*domain.Supplier, error) {
	if strings.TrimSpace(supplier.Name) == "" || strings.TrimSpace(supplier.FeedURL) == "" {
		return nil, e.ErrMissingFields
	}
	if supplier.Code == "" {
		supplier.Code = format.Slug(supplier.Name)
	}
	created, err := a.suppliers.CreateSupplier(ctx, token, supplier)
	return created, wrap(err)
}

func (a *AdminUCImpl) UpdateSupplier(ctx context.Context, token string, id string, supplier *domain.Supplier) (*domain.Supplier, error) {
	updated, err := a.suppliers.UpdateSupplier(ctx, token, id, supplier)
	return updated, wrap(err)
}

func (a *AdminUCImpl) DeleteSupplier(ctx context.Context, token string, id string) error {
	return wrap(a.suppliers.DeleteSupplier(ctx, token, id))
}

func (a *AdminUCImpl) ListStoredFeeds(ctx context.Context, token string, supplierID string) ([]domain.StoredFeed, error) {
	feeds, err := a.suppliers.ListStoredFeeds(ctx, token, supplierID)
	if err != nil {
		return nil, wrap(err)
	}
	if feeds == nil {
		feeds = []domain.StoredFeed{}
	}
	return feeds, nil
}

func (a *AdminUCImpl) DeleteStoredFeed(ctx context.Context, token string, supplierID string, feedID string) error {
	return wrap(a.suppliers.DeleteStoredFeed(ctx, token, supplierID, feedID))
}

func (a *AdminUCImpl) DownloadStatus(ctx context.Context, token string, supplierID string) (*domain.DownloadStatus, error) {
	status, err := a.suppliers.GetDownloadStatus(ctx, token, supplierID)
	return status, wrap(err)
}

func (a *AdminUCImpl) ListSupplierProducts(ctx context.Context, token string, supplierID string, params url.Values) (*domain.Page[domain.SupplierProduct], error) {
	page, err := a.suppliers.ListSupplierProducts(ctx, token, supplierID, params)
	if err != nil {
		return nil, wrap(err)
	}
	res := normalizePage(page)
	return &res, nil
}

func (a *AdminUCImpl) ListSupplierCategories(ctx context.Context, token string, supplierID string) ([]domain.SupplierCategory, error) {
	categories, err := a.suppliers.ListSupplierCategories(ctx, token, supplierID)
	if err != nil {
		return nil, wrap(err)
	}
	if categories == nil {
		categories = []domain.SupplierCategory{}
	}
	return categories, nil
}

func (a *AdminUCImpl) ListSupplierBrands(ctx context.Context, token string, supplierID string) ([]domain.SupplierBrand, error) {
	brands, err := a.suppliers.ListSupplierBrands(ctx, token, supplierID)
	if err != nil {
		return nil, wrap(err)
	}
	if brands == nil {
		brands = []domain.SupplierBrand{}
	}
	return brands, nil
}

func (a *AdminUCImpl) DeleteAllSupplierProducts(ctx context.Context, token string, supplierID string) error {
	if err := a.suppliers.DeleteAllSupplierProducts(ctx, token, supplierID); err != nil {
		return wrap(err)
	}
	a.dropCache(ctx)
	return nil
}

// dropCache сбрасывает кэш каталога после изменений; ошибка только логируется.
func (a *AdminUCImpl) dropCache(ctx context.Context) {
	if err := a.cache.Clear(ctx); err != nil {
		a.logger.Warnf("catalog cache not cleared: %v", err)
	}
}

func preparePage(page *domain.StaticPage) error {
	page.Title = strings.TrimSpace(page.Title)
	if page.Title == "" {
		return e.ErrMissingFields
	}
	if page.Slug == "" {
		page.Slug = format.Slug(page.Title)
	} else {
		page.Slug = format.Slug(page.Slug)
	}
	if page.Slug == "" {
		return e.ErrMissingFields
	}
	return nil
}

// wrap добавляет место вызова, сохраняя nil.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	return e.Wrap(whereami.WhereAmI(2), err)
}
