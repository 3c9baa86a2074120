package usecase

import (
	"context"
	"net/url"

	"github.com/profibuy/storefront/internal/domain"
)

// StorefrontAPI — публичная часть REST API бэкенда.
type StorefrontAPI interface {
	ListProducts(ctx context.Context, params url.Values) (*domain.Page[domain.Product], error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	SearchProducts(ctx context.Context, query string, params url.Values) (*domain.Page[domain.Product], error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, slug string) (*domain.Category, error)
	GetCategoryProducts(ctx context.Context, slug string, params url.Values) (*domain.CategoryProducts, error)
	GetProductOffers(ctx context.Context, productID string) ([]domain.Offer, error)
	GetFilters(ctx context.Context, categorySlug string) (*domain.FilterOptions, error)
	ListShippingMethods(ctx context.Context) ([]domain.ShippingMethod, error)
	CreateOrder(ctx context.Context, token string, req *domain.CreateOrderReq) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	TrackOrder(ctx context.Context, orderNumber string) (*domain.Order, error)
	GetStaticPage(ctx context.Context, slug string) (*domain.StaticPage, error)
	GetNavigation(ctx context.Context) (*domain.NavSettings, error)
	GetExportInfo(ctx context.Context) (*domain.ExportInfo, error)
}

type AuthAPI interface {
	Login(ctx context.Context, req *domain.LoginReq) (*domain.AuthRes, error)
	Register(ctx context.Context, req *domain.RegisterReq) (*domain.AuthRes, error)
}

// AdminAPI — административная часть REST API. token — Bearer-токен администратора.
type AdminAPI interface {
	Dashboard(ctx context.Context, token string) (*domain.DashboardStats, error)

	ListAdminProducts(ctx context.Context, token string, params url.Values) (*domain.Page[domain.Product], error)
	CreateProduct(ctx context.Context, token string, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, token string, id string, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, token string, id string) error
	DeleteAllProducts(ctx context.Context, token string) error

	ListAdminOrders(ctx context.Context, token string, params url.Values) (*domain.Page[domain.Order], error)
	UpdateOrderStatus(ctx context.Context, token string, id string, req *domain.UpdateOrderStatusReq) (*domain.Order, error)

	ListAllCategories(ctx context.Context, token string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, token string, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, token string, id string, category *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, token string, id string) error

	ListFeeds(ctx context.Context, token string) ([]domain.Feed, error)
	CreateFeed(ctx context.Context, token string, feed *domain.Feed) (*domain.Feed, error)
	RunFeedImport(ctx context.Context, token string, id string) error

	ClearCache(ctx context.Context, token string) error
	GetSettings(ctx context.Context, token string) (domain.Settings, error)
	UpdateSettings(ctx context.Context, token string, settings domain.Settings) (domain.Settings, error)
	ChangePassword(ctx context.Context, token string, req *domain.ChangePasswordReq) error

	ListStaticPages(ctx context.Context, token string) ([]domain.StaticPage, error)
	CreateStaticPage(ctx context.Context, token string, page *domain.StaticPage) (*domain.StaticPage, error)
	UpdateStaticPage(ctx context.Context, token string, id string, page *domain.StaticPage) (*domain.StaticPage, error)
	DeleteStaticPage(ctx context.Context, token string, id string) error

	GetAdminNavigation(ctx context.Context, token string) (*domain.NavSettings, error)
	SaveNavigation(ctx context.Context, token string, nav *domain.NavSettings) (*domain.NavSettings, error)
	GetFilterSettings(ctx context.Context, token string) (domain.FilterSettings, error)
	SaveFilterSettings(ctx context.Context, token string, settings domain.FilterSettings) (domain.FilterSettings, error)
	AttributeStats(ctx context.Context, token string) (domain.AttributeStats, error)
}

// SupplierAPI — управление поставщиками и их фидами.
type SupplierAPI interface {
	ListSuppliers(ctx context.Context, token string) ([]domain.Supplier, error)
	GetSupplier(ctx context.Context, token string, id string) (*domain.Supplier, error)
	CreateSupplier(ctx context.Context, token string, supplier *domain.Supplier) (*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, token string, id string, supplier *domain.Supplier) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, token string, id string) error

	ListStoredFeeds(ctx context.Context, token string, supplierID string) ([]domain.StoredFeed, error)
	DeleteStoredFeed(ctx context.Context, token string, supplierID string, feedID string) error

	StartDownload(ctx context.Context, token string, supplierID string) error
	GetDownloadStatus(ctx context.Context, token string, supplierID string) (*domain.DownloadStatus, error)
	StartImport(ctx context.Context, token string, supplierID string) (*domain.ImportProgress, error)
	GetImportProgress(ctx context.Context, token string, supplierID string, importID string) (*domain.ImportProgress, error)
	LinkAll(ctx context.Context, token string, supplierID string) (*domain.LinkStarted, error)
	GetLinkProgress(ctx context.Context, token string, supplierID string, linkID string) (*domain.LinkProgress, error)

	ListSupplierProducts(ctx context.Context, token string, supplierID string, params url.Values) (*domain.Page[domain.SupplierProduct], error)
	ListSupplierCategories(ctx context.Context, token string, supplierID string) ([]domain.SupplierCategory, error)
	ListSupplierBrands(ctx context.Context, token string, supplierID string) ([]domain.SupplierBrand, error)
	DeleteAllSupplierProducts(ctx context.Context, token string, supplierID string) error
}

// MessageProducer публикует события витрины во внешний брокер.
type MessageProducer interface {
	WriteEvent(ctx context.Context, event *domain.Event) error
}

type MediaInfra interface {
	UploadFiles(ctx context.Context, req *UploadMediaReq) (*UploadMediaRes, error)
	CleanupFiles(keys []string)
}
