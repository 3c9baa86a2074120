// Package views рендерит серверные HTML-страницы витрины и админки.
// Шаблоны встроены в бинарник.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/format"
	"github.com/profibuy/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Страницы, которые умеет рендерить Renderer.
const (
	PageHome            = "home"
	PageProducts        = "products"
	PageProduct         = "product"
	PageCategories      = "categories"
	PageCategory        = "category"
	PageSearch          = "search"
	PageCart            = "cart"
	PageCheckout        = "checkout"
	PageCheckoutSuccess = "checkout_success"
	PageStatic          = "page"
	PageLogin           = "login"
	PageRegister        = "register"
	PageAccount         = "account"
	PageAdmin           = "admin"
	PageAdminLogin      = "admin_login"
	PageNotFound        = "not_found"
)

var pages = []string{
	PageHome, PageProducts, PageProduct, PageCategories, PageCategory, PageSearch,
	PageCart, PageCheckout, PageCheckoutSuccess, PageStatic, PageLogin, PageRegister,
	PageAccount, PageAdmin, PageAdminLogin, PageNotFound,
}

// Data — общий контекст шаблона: шапка (пользователь, корзина, меню) и содержимое страницы.
type Data struct {
	Title      string
	User       *domain.User
	CartCount  int
	Categories []domain.Category
	Content    any
}

// FormState — состояние форм логина и регистрации после неудачной отправки.
type FormState struct {
	Error string
	Email string
	Next  string
}

type Renderer struct {
	pages  map[string]*template.Template
	logger logger.Logger
}

func NewRenderer(logger logger.Logger) (*Renderer, error) {
	r := &Renderer{
		pages:  make(map[string]*template.Template, len(pages)),
		logger: logger,
	}

	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(Funcs()).ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("parse %s: %w", name, err))
		}
		r.pages[name] = tmpl
	}

	return r, nil
}

// Render выполняет шаблон в буфер, чтобы ошибка шаблона не оставила полуотданную страницу.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data *Data) {
	tmpl, ok := r.pages[name]
	if !ok {
		r.logger.Errorf(e.ErrNotFound, "template %s is not registered", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logger.Errorf(err, "render %s failed", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Static отдаёт встроенные статические файлы (заглушка изображения товара).
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatPrice":  format.PriceOf,
		"discount":     discount,
		"productImage": productImage,
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
	}
}

// discount принимает цену и акционную цену в любом виде, который понимает шаблон.
func discount(price any, sale any) int {
	p, ok := toDecimal(price)
	if !ok {
		return 0
	}
	s, ok := toDecimal(sale)
	if !ok {
		return 0
	}
	return format.Discount(p, &s)
}

func productImage(p *domain.Product) string {
	return p.PrimaryImage()
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch d := v.(type) {
	case decimal.Decimal:
		return d, true
	case *decimal.Decimal:
		if d == nil {
			return decimal.Zero, false
		}
		return *d, true
	case float64:
		if !format.Finite(d) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(d), true
	case int:
		return decimal.NewFromInt(int64(d)), true
	}
	return decimal.Zero, false
}
