package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/profibuy/storefront/docs" // Импорт сгенерированных файлов
	"github.com/profibuy/storefront/internal/delivery/v1/http/views"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const requestTimeout = 60 * time.Second

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// Handlers — всё, что нужно для регистрации маршрутов.
type Handlers struct {
	Pages      *PageHandler
	Store      *StoreHandler
	Admin      *AdminHandler
	Suppliers  *SupplierHandler
	Media      *MediaHandler
	Sessions   *SessionMiddleware
	AdminGate  func(redirect bool) func(http.Handler) http.Handler
	APIProxy   http.Handler
	SwaggerURL string
}

func (r *Router) Init(h Handlers) {
	r.router.Use(middleware.RequestID)
	r.router.Use(RequestLogger(r.logger))
	r.router.Use(middleware.Recoverer)

	r.router.Get("/health", health)
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(h.SwaggerURL), // ссылка на JSON
	))
	r.router.Handle("/placeholder.svg", views.Static())

	r.router.Group(func(s chi.Router) {
		s.Use(h.Sessions.Handler)

		// Прокси не ограничивается таймаутом: импорт фидов на бэкенде отвечает долго.
		s.Handle("/api/*", h.APIProxy)

		s.Group(func(app chi.Router) {
			app.Use(middleware.Timeout(requestTimeout))

			registerPageRoutes(app, h.Pages, h.AdminGate)
			registerStoreRoutes(app, h.Store)

			app.Route("/admin/api", func(admin chi.Router) {
				admin.Use(h.AdminGate(false))
				registerAdminRoutes(admin, h.Admin, h.Media)
				registerSupplierRoutes(admin, h.Suppliers)
			})
		})
	})

	r.router.NotFound(h.Pages.notFound)
}

func registerPageRoutes(router chi.Router, p *PageHandler, adminGate func(bool) func(http.Handler) http.Handler) {
	router.Get("/", p.home)
	router.Get("/products", p.products)
	router.Get("/products/{slug}", p.product)
	router.Get("/categories", p.categories)
	router.Get("/categories/{slug}", p.category)
	router.Get("/search", p.search)
	router.Get("/cart", p.cartPage)
	router.Get("/checkout", p.checkoutPage)
	router.Get("/checkout/success", p.checkoutSuccess)
	router.Get("/page/{slug}", p.staticPage)
	router.Get("/login", p.loginPage)
	router.Post("/login", p.login)
	router.Get("/register", p.registerPage)
	router.Post("/register", p.register)
	router.Get("/account", p.account)
	router.Get("/admin/login", p.adminLoginPage)
	router.Post("/admin/login", p.adminLogin)
	router.With(adminGate(true)).Get("/admin", p.adminDashboard)
}

func registerStoreRoutes(router chi.Router, s *StoreHandler) {
	router.Route("/store", func(st chi.Router) {
		st.Get("/cart", s.getCart)
		st.Delete("/cart", s.clearCart)
		st.Post("/cart/items", s.addItem)
		st.Put("/cart/items/{productID}", s.updateItem)
		st.Delete("/cart/items/{productID}", s.removeItem)

		st.Post("/auth/login", s.login)
		st.Post("/auth/register", s.register)
		st.Post("/auth/logout", s.logout)
		st.Get("/me", s.me)

		st.Get("/checkout", s.getCheckout)
		st.Put("/checkout", s.updateCheckout)
		st.Post("/checkout", s.submitCheckout)

		st.Get("/orders/{id}", s.getOrder)
		st.Get("/orders/track/{number}", s.trackOrder)
	})
}

func registerAdminRoutes(router chi.Router, a *AdminHandler, m *MediaHandler) {
	router.Get("/dashboard", a.dashboard)

	router.Get("/products", a.listProducts)
	router.Post("/products", a.createProduct)
	router.Delete("/products", a.deleteAllProducts)
	router.Put("/products/{id}", a.updateProduct)
	router.Delete("/products/{id}", a.deleteProduct)

	router.Get("/orders", a.listOrders)
	router.Put("/orders/{id}/status", a.updateOrderStatus)

	router.Get("/categories", a.listCategories)
	router.Post("/categories", a.createCategory)
	router.Put("/categories/{id}", a.updateCategory)
	router.Delete("/categories/{id}", a.deleteCategory)

	router.Get("/feeds", a.listFeeds)
	router.Post("/feeds", a.createFeed)
	router.Post("/feeds/{id}/run", a.runFeed)

	router.Post("/cache/clear", a.clearCache)
	router.Get("/settings", a.getSettings)
	router.Put("/settings", a.updateSettings)
	router.Post("/change-password", a.changePassword)

	router.Get("/pages", a.listPages)
	router.Post("/pages", a.createPage)
	router.Put("/pages/{id}", a.updatePage)
	router.Delete("/pages/{id}", a.deletePage)

	router.Get("/navigation", a.getNavigation)
	router.Put("/navigation", a.saveNavigation)
	router.Get("/filter-settings", a.getFilterSettings)
	router.Put("/filter-settings", a.saveFilterSettings)
	router.Get("/attributes/stats", a.attributeStats)
	router.Get("/export/info", a.exportInfo)

	router.Post("/media", m.upload)
}

func registerSupplierRoutes(router chi.Router, s *SupplierHandler) {
	router.Route("/suppliers", func(sp chi.Router) {
		sp.Get("/", s.list)
		sp.Post("/", s.create)

		sp.Route("/{id}", func(one chi.Router) {
			one.Get("/", s.get)
			one.Put("/", s.update)
			one.Delete("/", s.remove)

			one.Get("/feeds", s.storedFeeds)
			one.Delete("/feeds/{feedID}", s.deleteStoredFeed)

			one.Post("/download", s.startJob(domain.JobDownload))
			one.Get("/download-status", s.downloadStatus)
			one.Post("/import", s.startJob(domain.JobImport))
			one.Post("/link-all", s.startJob(domain.JobLink))
			one.Get("/jobs", s.supplierJobs)

			one.Get("/products", s.products)
			one.Delete("/products", s.deleteAllProducts)
			one.Get("/categories", s.categories)
			one.Get("/brands", s.brands)
		})
	})

	router.Get("/jobs/{id}", s.job)
}

// health
//
//	@Summary	Проверка живости процесса
//	@Tags		service
//	@Produce	json
//	@Success	200	{object}	SuccessResponse
//	@Router		/health [get]
func health(w http.ResponseWriter, _ *http.Request) {
	writeOK(w)
}
