package http

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/profibuy/storefront/internal/delivery/v1/http/views"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/internal/usecase"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

const menuSize = 8

// PageHandler рендерит HTML-страницы витрины и админки.
type PageHandler struct {
	catalog  usecase.CatalogUC
	cart     usecase.CartUC
	checkout usecase.CheckoutUC
	auth     usecase.AuthUC
	admin    usecase.AdminUC
	renderer *views.Renderer
	logger   logger.Logger
}

func NewPageHandler(
	catalog usecase.CatalogUC,
	cart usecase.CartUC,
	checkout usecase.CheckoutUC,
	auth usecase.AuthUC,
	admin usecase.AdminUC,
	renderer *views.Renderer,
	logger logger.Logger,
) *PageHandler {
	return &PageHandler{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		auth:     auth,
		admin:    admin,
		renderer: renderer,
		logger:   logger,
	}
}

func (p *PageHandler) home(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, views.PageHome, "", p.catalog.Home(r.Context()))
}

func (p *PageHandler) products(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, views.PageProducts, "Produkty", p.catalog.Products(r.Context(), r.URL.Query()))
}

func (p *PageHandler) product(w http.ResponseWriter, r *http.Request) {
	view, err := p.catalog.Product(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.render(w, r, http.StatusOK, views.PageProduct, view.Product.Name, view)
}

func (p *PageHandler) categories(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, views.PageCategories, "Kategórie", p.catalog.Categories(r.Context()))
}

func (p *PageHandler) category(w http.ResponseWriter, r *http.Request) {
	view, err := p.catalog.Category(r.Context(), chi.URLParam(r, "slug"), r.URL.Query())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.render(w, r, http.StatusOK, views.PageCategory, view.Category.Name, view)
}

func (p *PageHandler) search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := params.Get("q")
	params.Del("q")
	p.render(w, r, http.StatusOK, views.PageSearch, "Vyhľadávanie", p.catalog.Search(r.Context(), query, params))
}

func (p *PageHandler) cartPage(w http.ResponseWriter, r *http.Request) {
	session := SessionFromCtx(r.Context())
	p.render(w, r, http.StatusOK, views.PageCart, "Košík", p.cart.Get(r.Context(), session))
}

func (p *PageHandler) checkoutPage(w http.ResponseWriter, r *http.Request) {
	session := SessionFromCtx(r.Context())
	if session.Cart.IsEmpty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	p.render(w, r, http.StatusOK, views.PageCheckout, "Objednávka", p.checkout.View(r.Context(), session))
}

func (p *PageHandler) checkoutSuccess(w http.ResponseWriter, r *http.Request) {
	placed := &usecase.PlacedOrder{Reference: r.URL.Query().Get("order")}
	p.render(w, r, http.StatusOK, views.PageCheckoutSuccess, "Ďakujeme", placed)
}

func (p *PageHandler) staticPage(w http.ResponseWriter, r *http.Request) {
	page, err := p.catalog.StaticPage(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.render(w, r, http.StatusOK, views.PageStatic, page.Title, page)
}

func (p *PageHandler) loginPage(w http.ResponseWriter, r *http.Request) {
	if SessionFromCtx(r.Context()).IsAuthenticated() {
		http.Redirect(w, r, "/account", http.StatusSeeOther)
		return
	}
	p.render(w, r, http.StatusOK, views.PageLogin, "Prihlásenie", &views.FormState{Next: r.URL.Query().Get("next")})
}

// login — обычная отправка формы без JavaScript.
func (p *PageHandler) login(w http.ResponseWriter, r *http.Request) {
	session := SessionFromCtx(r.Context())
	req := &domain.LoginReq{Email: r.FormValue("email"), Password: r.FormValue("password")}

	if _, err := p.auth.Login(r.Context(), session, clientIP(r), req); err != nil {
		code, _ := ToHTTPResponse(err)
		p.render(w, r, code, views.PageLogin, "Prihlásenie", &views.FormState{Error: formError(err), Email: req.Email})
		return
	}

	http.Redirect(w, r, safeNext(r.FormValue("next"), "/account"), http.StatusSeeOther)
}

func (p *PageHandler) registerPage(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, views.PageRegister, "Registrácia", &views.FormState{})
}

func (p *PageHandler) register(w http.ResponseWriter, r *http.Request) {
	session := SessionFromCtx(r.Context())
	req := &domain.RegisterReq{
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Phone:     r.FormValue("phone"),
	}

	if _, err := p.auth.Register(r.Context(), session, clientIP(r), req); err != nil {
		code, _ := ToHTTPResponse(err)
		p.render(w, r, code, views.PageRegister, "Registrácia", &views.FormState{Error: formError(err), Email: req.Email})
		return
	}

	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

func (p *PageHandler) account(w http.ResponseWriter, r *http.Request) {
	if !SessionFromCtx(r.Context()).IsAuthenticated() {
		http.Redirect(w, r, "/login?next=/account", http.StatusSeeOther)
		return
	}
	p.render(w, r, http.StatusOK, views.PageAccount, "Môj účet", nil)
}

func (p *PageHandler) adminDashboard(w http.ResponseWriter, r *http.Request) {
	session := SessionFromCtx(r.Context())

	stats, err := p.admin.Dashboard(r.Context(), session.Token)
	if err != nil {
		p.logger.Warnf("dashboard unavailable: %v", err)
		stats = &domain.DashboardStats{}
	}
	p.render(w, r, http.StatusOK, views.PageAdmin, "Administrácia", stats)
}

func (p *PageHandler) adminLoginPage(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, views.PageAdminLogin, "Administrácia", &views.FormState{})
}

func (p *PageHandler) adminLogin(w http.ResponseWriter, r *http.Request) {
	session := SessionFromCtx(r.Context())
	req := &domain.LoginReq{Email: r.FormValue("email"), Password: r.FormValue("password")}

	if _, err := p.auth.AdminLogin(r.Context(), session, clientIP(r), req); err != nil {
		code, _ := ToHTTPResponse(err)
		p.render(w, r, code, views.PageAdminLogin, "Administrácia", &views.FormState{Error: formError(err), Email: req.Email})
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (p *PageHandler) notFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusNotFound, views.PageNotFound, "Nenájdené", nil)
}

// fail показывает 404 для отсутствующих товаров и страниц, остальное логирует.
func (p *PageHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, _ := ToHTTPResponse(err)
	if code != http.StatusNotFound {
		p.logger.Errorf(err, "%s %s failed", r.Method, r.URL.Path)
	}
	p.render(w, r, code, views.PageNotFound, "Chyba", nil)
}

func (p *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, page, title string, content any) {
	session := SessionFromCtx(r.Context())

	data := &views.Data{
		Title:      title,
		Categories: p.menu(r),
		Content:    content,
	}
	if session != nil {
		data.User = session.User
		data.CartCount = session.Cart.ItemCount()
	}

	p.renderer.Render(w, status, page, data)
}

// menu строит главное меню: пункты из настроек навигации, иначе корневые категории.
func (p *PageHandler) menu(r *http.Request) []domain.Category {
	categories := p.catalog.Categories(r.Context())
	nav := p.catalog.Navigation(r.Context())

	if nav == nil || len(nav.Items) == 0 {
		menu := make([]domain.Category, 0, menuSize)
		for _, c := range categories {
			if c.ParentID == "" {
				menu = append(menu, c)
			}
			if len(menu) == menuSize {
				break
			}
		}
		return menu
	}

	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	items := make([]domain.NavItem, 0, len(nav.Items))
	for _, item := range nav.Items {
		if item.Visible {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })

	limit := nav.MaxVisible
	if limit <= 0 {
		limit = menuSize
	}

	menu := make([]domain.Category, 0, limit)
	for _, item := range items {
		c, ok := byID[item.CategoryID]
		if !ok {
			continue
		}
		if label := item.Label(); label != "" {
			c.Name = label
		}
		menu = append(menu, c)
		if len(menu) == limit {
			break
		}
	}
	return menu
}

func formError(err error) string {
	switch {
	case errors.Is(err, e.ErrInvalidCredentials), errors.Is(err, e.ErrUnauthorized):
		return "Nesprávny email alebo heslo"
	case errors.Is(err, e.ErrForbidden):
		return "Účet nemá prístup do administrácie"
	case errors.Is(err, e.ErrTooManyRequests):
		return "Príliš veľa pokusov, skúste to neskôr"
	case errors.Is(err, e.ErrMissingFields):
		return "Vyplňte všetky povinné polia"
	}
	_, msg := ToHTTPResponse(err)
	return msg
}

// safeNext разрешает перенаправление только на локальные пути.
func safeNext(next, fallback string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return fallback
	}
	return next
}
