package usecase

import (
	"context"
	"net/url"

	"github.com/profibuy/storefront/internal/domain"
)

type SessionUC interface {
	Load(ctx context.Context, id string) (*domain.Session, bool, error)
	Save(ctx context.Context, session *domain.Session) error
	Rotate(ctx context.Context, session *domain.Session) error
	Destroy(ctx context.Context, id string) error
}

type CartUC interface {
	Get(ctx context.Context, session *domain.Session) *CartView
	AddItem(ctx context.Context, session *domain.Session, req *AddCartItemReq) (*CartView, error)
	RemoveItem(ctx context.Context, session *domain.Session, productID string) (*CartView, error)
	UpdateQuantity(ctx context.Context, session *domain.Session, productID string, quantity int) (*CartView, error)
	Clear(ctx context.Context, session *domain.Session) (*CartView, error)
}

type AuthUC interface {
	Login(ctx context.Context, session *domain.Session, clientIP string, req *domain.LoginReq) (*domain.User, error)
	AdminLogin(ctx context.Context, session *domain.Session, clientIP string, req *domain.LoginReq) (*domain.User, error)
	Register(ctx context.Context, session *domain.Session, clientIP string, req *domain.RegisterReq) (*domain.User, error)
	Logout(ctx context.Context, session *domain.Session) error
	IsAdmin(token string) bool
}

type CatalogUC interface {
	Home(ctx context.Context) *HomeView
	Products(ctx context.Context, params url.Values) domain.Page[domain.Product]
	Product(ctx context.Context, slug string) (*ProductView, error)
	Category(ctx context.Context, slug string, params url.Values) (*CategoryView, error)
	Search(ctx context.Context, query string, params url.Values) *SearchView
	Categories(ctx context.Context) []domain.Category
	Filters(ctx context.Context, categorySlug string) *domain.FilterOptions
	Navigation(ctx context.Context) *domain.NavSettings
	StaticPage(ctx context.Context, slug string) (*domain.StaticPage, error)
	ExportInfo(ctx context.Context) (*domain.ExportInfo, error)
	Order(ctx context.Context, id string) (*domain.Order, error)
	TrackOrder(ctx context.Context, orderNumber string) (*domain.Order, error)
	ClearCache(ctx context.Context) error
}

type CheckoutUC interface {
	ShippingMethods(ctx context.Context) []domain.ShippingMethod
	View(ctx context.Context, session *domain.Session) *CheckoutView
	Update(ctx context.Context, session *domain.Session, patch *CheckoutPatch) (*CheckoutView, error)
	Submit(ctx context.Context, session *domain.Session) (*PlacedOrder, error)
}

type AdminUC interface {
	Dashboard(ctx context.Context, token string) (*domain.DashboardStats, error)

	ListProducts(ctx context.Context, token string, params url.Values) (*domain.Page[domain.Product], error)
	CreateProduct(ctx context.Context, token string, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, token string, id string, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, token string, id string) error
	DeleteAllProducts(ctx context.Context, token string) error

	ListOrders(ctx context.Context, token string, params url.Values) (*domain.Page[domain.Order], error)
	UpdateOrderStatus(ctx context.Context, token string, id string, req *domain.UpdateOrderStatusReq) (*domain.Order, error)

	ListCategories(ctx context.Context, token string) ([]domain.Category, error)
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

	ListPages(ctx context.Context, token string) ([]domain.StaticPage, error)
	CreatePage(ctx context.Context, token string, page *domain.StaticPage) (*domain.StaticPage, error)
	UpdatePage(ctx context.Context, token string, id string, page *domain.StaticPage) (*domain.StaticPage, error)
	DeletePage(ctx context.Context, token string, id string) error

	GetNavigation(ctx context.Context, token string) (*domain.NavSettings, error)
	SaveNavigation(ctx context.Context, token string, nav *domain.NavSettings) (*domain.NavSettings, error)
	GetFilterSettings(ctx context.Context, token string) (domain.FilterSettings, error)
	SaveFilterSettings(ctx context.Context, token string, settings domain.FilterSettings) (domain.FilterSettings, error)
	AttributeStats(ctx context.Context, token string) (domain.AttributeStats, error)

	ListSuppliers(ctx context.Context, token string) ([]domain.Supplier, error)
	GetSupplier(ctx context.Context, token string, id string) (*domain.Supplier, error)
	CreateSupplier(ctx context.Context, token string, supplier *domain.Supplier) (*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, token string, id string, supplier *domain.Supplier) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, token string, id string) error
	ListStoredFeeds(ctx context.Context, token string, supplierID string) ([]domain.StoredFeed, error)
	DeleteStoredFeed(ctx context.Context, token string, supplierID string, feedID string) error
	DownloadStatus(ctx context.Context, token string, supplierID string) (*domain.DownloadStatus, error)
	ListSupplierProducts(ctx context.Context, token string, supplierID string, params url.Values) (*domain.Page[domain.SupplierProduct], error)
	ListSupplierCategories(ctx context.Context, token string, supplierID string) ([]domain.SupplierCategory, error)
	ListSupplierBrands(ctx context.Context, token string, supplierID string) ([]domain.SupplierBrand, error)
	DeleteAllSupplierProducts(ctx context.Context, token string, supplierID string) error
}

// JobUC — долгие операции поставщиков, которые витрина опрашивает сама.
type JobUC interface {
	StartImport(ctx context.Context, token string, supplierID string) (*domain.Job, error)
	StartLink(ctx context.Context, token string, supplierID string) (*domain.Job, error)
	StartDownload(ctx context.Context, token string, supplierID string) (*domain.Job, error)
	Get(id string) (*domain.Job, error)
	List(supplierID string) []domain.Job
}

type MediaUC interface {
	Upload(ctx context.Context, req *UploadMediaReq) (*UploadMediaRes, error)
}

type EventsUC interface {
	Record(ctx context.Context, events ...*domain.Event) error
}

var (
	_ SessionUC  = (*SessionUCImpl)(nil)
	_ CartUC     = (*CartUCImpl)(nil)
	_ AuthUC     = (*AuthUCImpl)(nil)
	_ CatalogUC  = (*CatalogUCImpl)(nil)
	_ CheckoutUC = (*CheckoutUCImpl)(nil)
	_ AdminUC    = (*AdminUCImpl)(nil)
	_ JobUC      = (*JobTracker)(nil)
	_ MediaUC    = (*MediaUCImpl)(nil)
	_ EventsUC   = (*EventsUCImpl)(nil)
)
