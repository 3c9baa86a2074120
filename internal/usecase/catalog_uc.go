package usecase

import (
	"context"
	"net/url"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

const (
	categoriesCacheKey = "categories"
	navigationCacheKey = "navigation"
	filtersCacheKey    = "filters"
)

// CatalogUCImpl обслуживает чтение витрины. Ошибки списков не пробрасываются:
// страница получает пустой список, ошибка уходит в лог.
type CatalogUCImpl struct {
	api    StorefrontAPI
	cache  CatalogCacheRepository
	logger logger.Logger
}

func NewCatalogUC(api StorefrontAPI, cache CatalogCacheRepository, logger logger.Logger) *CatalogUCImpl {
	return &CatalogUCImpl{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

// Home — хиты продаж, товары со скидкой и категории для главной.
func (c *CatalogUCImpl) Home(ctx context.Context) *HomeView {
	featured := c.Products(ctx, url.Values{"limit": {"8"}, "sort": {"bestselling"}})
	sale := c.Products(ctx, url.Values{"limit": {"4"}, "sort": {"newest"}, "on_sale": {"true"}})

	return &HomeView{
		Featured:   featured,
		Sale:       sale,
		Categories: c.Categories(ctx),
	}
}

// Products пробрасывает параметры пагинации, фильтров и сортировки бэкенду как есть.
func (c *CatalogUCImpl) Products(ctx context.Context, params url.Values) domain.Page[domain.Product] {
	page, err := c.api.ListProducts(ctx, params)
	if err != nil {
		c.logger.Warnf("products listing failed, showing empty page: %v", e.Wrap(whereami.WhereAmI(), err))
		return domain.EmptyPage[domain.Product]()
	}
	return normalizePage(page)
}

func (c *CatalogUCImpl) Product(ctx context.Context, slug string) (*ProductView, error) {
	product, err := c.api.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	offers, err := c.api.GetProductOffers(ctx, product.ID)
	if err != nil {
		c.logger.Warnf("offers for product %s unavailable: %v", product.ID, e.Wrap(whereami.WhereAmI(), err))
		offers = nil
	}
	if offers == nil {
		offers = []domain.Offer{}
	}

	return &ProductView{Product: product, Offers: offers}, nil
}

func (c *CatalogUCImpl) Category(ctx context.Context, slug string, params url.Values) (*CategoryView, error) {
	res, err := c.api.GetCategoryProducts(ctx, slug, params)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	category := &res.Category
	if category.ID == "" {
		category = c.category(ctx, slug)
	}

	return &CategoryView{
		Category: category,
		Products: normalizePage(&res.Products),
		Filters:  c.Filters(ctx, slug),
	}, nil
}

// category дозапрашивает карточку категории, если бэкенд вернул товары без неё.
func (c *CatalogUCImpl) category(ctx context.Context, slug string) *domain.Category {
	category, err := c.api.GetCategory(ctx, slug)
	if err != nil {
		c.logger.Warnf("category %q unavailable: %v", slug, e.Wrap(whereami.WhereAmI(), err))
		return &domain.Category{Slug: slug}
	}
	return category
}

// Search с пустым запросом не обращается к бэкенду.
func (c *CatalogUCImpl) Search(ctx context.Context, query string, params url.Values) *SearchView {
	query = strings.TrimSpace(query)
	view := &SearchView{Query: query, Products: domain.EmptyPage[domain.Product]()}
	if query == "" {
		return view
	}

	page, err := c.api.SearchProducts(ctx, query, params)
	if err != nil {
		c.logger.Warnf("search %q failed: %v", query, e.Wrap(whereami.WhereAmI(), err))
		return view
	}

	view.Products = normalizePage(page)
	return view
}

func (c *CatalogUCImpl) Categories(ctx context.Context) []domain.Category {
	var cached []domain.Category
	if c.fromCache(ctx, categoriesCacheKey, &cached) {
		return cached
	}

	categories, err := c.api.ListCategories(ctx)
	if err != nil {
		c.logger.Warnf("categories unavailable: %v", e.Wrap(whereami.WhereAmI(), err))
		return []domain.Category{}
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	c.toCache(ctx, categoriesCacheKey, categories)
	return categories
}

// Filters — фильтры каталога; пустой slug означает фильтры по всему каталогу.
func (c *CatalogUCImpl) Filters(ctx context.Context, categorySlug string) *domain.FilterOptions {
	key := filtersCacheKey
	if categorySlug != "" {
		key += ":" + categorySlug
	}

	var cached domain.FilterOptions
	if c.fromCache(ctx, key, &cached) {
		return &cached
	}

	filters, err := c.api.GetFilters(ctx, categorySlug)
	if err != nil {
		c.logger.Warnf("filters for %q unavailable: %v", categorySlug, e.Wrap(whereami.WhereAmI(), err))
		return &domain.FilterOptions{}
	}

	c.toCache(ctx, key, filters)
	return filters
}

func (c *CatalogUCImpl) Navigation(ctx context.Context) *domain.NavSettings {
	var cached domain.NavSettings
	if c.fromCache(ctx, navigationCacheKey, &cached) {
		return &cached
	}

	nav, err := c.api.GetNavigation(ctx)
	if err != nil {
		c.logger.Warnf("navigation unavailable: %v", e.Wrap(whereami.WhereAmI(), err))
		return &domain.NavSettings{Items: []domain.NavItem{}}
	}

	c.toCache(ctx, navigationCacheKey, nav)
	return nav
}

func (c *CatalogUCImpl) StaticPage(ctx context.Context, slug string) (*domain.StaticPage, error) {
	page, err := c.api.GetStaticPage(ctx, slug)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return page, nil
}

func (c *CatalogUCImpl) ExportInfo(ctx context.Context) (*domain.ExportInfo, error) {
	info, err := c.api.GetExportInfo(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return info, nil
}

func (c *CatalogUCImpl) Order(ctx context.Context, id string) (*domain.Order, error) {
	order, err := c.api.GetOrder(ctx, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return order, nil
}

func (c *CatalogUCImpl) TrackOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, e.ErrMissingFields
	}

	order, err := c.api.TrackOrder(ctx, orderNumber)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return order, nil
}

// ClearCache сбрасывает локальный кэш каталога.
func (c *CatalogUCImpl) ClearCache(ctx context.Context) error {
	if err := c.cache.Clear(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (c *CatalogUCImpl) fromCache(ctx context.Context, key string, dst any) bool {
	ok, err := c.cache.Get(ctx, key, dst)
	if err != nil {
		c.logger.Warnf("catalog cache read %s failed: %v", key, err)
		return false
	}
	return ok
}

func (c *CatalogUCImpl) toCache(ctx context.Context, key string, value any) {
	if err := c.cache.Set(ctx, key, value); err != nil {
		c.logger.Warnf("catalog cache write %s failed: %v", key, err)
	}
}

func normalizePage[T any](page *domain.Page[T]) domain.Page[T] {
	if page == nil {
		return domain.EmptyPage[T]()
	}

	res := *page
	if res.Items == nil {
		res.Items = []T{}
	}
	if res.Page == 0 {
		res.Page = domain.DefaultPage
	}
	if res.Limit == 0 {
		res.Limit = domain.DefaultLimit
	}
	return res
}
