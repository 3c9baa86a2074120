package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/internal/usecase"
	"github.com/profibuy/storefront/pkg/logger"
)

// AdminHandler — JSON API админки. Каждый метод передаёт запрос бэкенду с токеном из сессии.
type AdminHandler struct {
	admin   usecase.AdminUC
	catalog usecase.CatalogUC
	logger  logger.Logger
}

func NewAdminHandler(admin usecase.AdminUC, catalog usecase.CatalogUC, logger logger.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, catalog: catalog, logger: logger}
}

func token(r *http.Request) string {
	return SessionFromCtx(r.Context()).Token
}

// respond пишет результат вызова бэкенда или ошибку с его статусом.
func respond[T any](w http.ResponseWriter, status int, v T, err error) {
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteSuccess(w, status, v)
}

func respondOK(w http.ResponseWriter, err error) {
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w)
}

// dashboard
//
//	@Summary	Статистика для панели администратора
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	domain.DashboardStats
//	@Failure	401	{object}	ErrorResponse
//	@Failure	403	{object}	ErrorResponse
//	@Router		/admin/api/dashboard [get]
func (a *AdminHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := a.admin.Dashboard(r.Context(), token(r))
	respond(w, http.StatusOK, stats, err)
}

func (a *AdminHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	page, err := a.admin.ListProducts(r.Context(), token(r), r.URL.Query())
	respond(w, http.StatusOK, page, err)
}

func (a *AdminHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := decodeJSON(w, r, &product); err != nil {
		WriteError(w, err)
		return
	}
	created, err := a.admin.CreateProduct(r.Context(), token(r), &product)
	respond(w, http.StatusCreated, created, err)
}

func (a *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := decodeJSON(w, r, &product); err != nil {
		WriteError(w, err)
		return
	}
	updated, err := a.admin.UpdateProduct(r.Context(), token(r), chi.URLParam(r, "id"), &product)
	respond(w, http.StatusOK, updated, err)
}

func (a *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	respondOK(w, a.admin.DeleteProduct(r.Context(), token(r), chi.URLParam(r, "id")))
}

func (a *AdminHandler) deleteAllProducts(w http.ResponseWriter, r *http.Request) {
	a.logger.Warnf("delete all products requested by session %s", SessionFromCtx(r.Context()).ID)
	respondOK(w, a.admin.DeleteAllProducts(r.Context(), token(r)))
}

func (a *AdminHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	page, err := a.admin.ListOrders(r.Context(), token(r), r.URL.Query())
	respond(w, http.StatusOK, page, err)
}

// updateOrderStatus
//
//	@Summary	Сменить статус заказа
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"ID заказа"
//	@Param		body	body		domain.UpdateOrderStatusReq	true	"Новый статус"
//	@Success	200		{object}	domain.Order
//	@Failure	400		{object}	ErrorResponse
//	@Router		/admin/api/orders/{id}/status [put]
func (a *AdminHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateOrderStatusReq
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	order, err := a.admin.UpdateOrderStatus(r.Context(), token(r), chi.URLParam(r, "id"), &req)
	respond(w, http.StatusOK, order, err)
}

func (a *AdminHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.admin.ListCategories(r.Context(), token(r))
	respond(w, http.StatusOK, categories, err)
}

func (a *AdminHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := decodeJSON(w, r, &category); err != nil {
		WriteError(w, err)
		return
	}
	created, err := a.admin.CreateCategory(r.Context(), token(r), &category)
	respond(w, http.StatusCreated, created, err)
}

func (a *AdminHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := decodeJSON(w, r, &category); err != nil {
		WriteError(w, err)
		return
	}
	updated, err := a.admin.UpdateCategory(r.Context(), token(r), chi.URLParam(r, "id"), &category)
	respond(w, http.StatusOK, updated, err)
}

func (a *AdminHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	respondOK(w, a.admin.DeleteCategory(r.Context(), token(r), chi.URLParam(r, "id")))
}

func (a *AdminHandler) listFeeds(w http.ResponseWriter, r *http.Request) {
	feeds, err := a.admin.ListFeeds(r.Context(), token(r))
	respond(w, http.StatusOK, feeds, err)
}

func (a *AdminHandler) createFeed(w http.ResponseWriter, r *http.Request) {
	var feed domain.Feed
	if err := decodeJSON(w, r, &feed); err != nil {
		WriteError(w, err)
		return
	}
	created, err := a.admin.CreateFeed(r.Context(), token(r), &feed)
	respond(w, http.StatusCreated, created, err)
}

func (a *AdminHandler) runFeed(w http.ResponseWriter, r *http.Request) {
	respondOK(w, a.admin.RunFeedImport(r.Context(), token(r), chi.URLParam(r, "id")))
}

func (a *AdminHandler) clearCache(w http.ResponseWriter, r *http.Request) {
	respondOK(w, a.admin.ClearCache(r.Context(), token(r)))
}

func (a *AdminHandler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.admin.GetSettings(r.Context(), token(r))
	respond(w, http.StatusOK, settings, err)
}

func (a *AdminHandler) updateSettings(w http.ResponseWriter, r *http.Request) {
	raw, err := readRawJSON(w, r)
	if err != nil {
		WriteError(w, err)
		return
	}
	settings, err := a.admin.UpdateSettings(r.Context(), token(r), domain.Settings(raw))
	respond(w, http.StatusOK, settings, err)
}

func (a *AdminHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ChangePasswordReq
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	respondOK(w, a.admin.ChangePassword(r.Context(), token(r), &req))
}

func (a *AdminHandler) listPages(w http.ResponseWriter, r *http.Request) {
	pages, err := a.admin.ListPages(r.Context(), token(r))
	respond(w, http.StatusOK, pages, err)
}

// createPage
//
//	@Summary		Создать статическую страницу
//	@Description	Пустой slug генерируется из заголовка
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			page	body		domain.StaticPage	true	"Страница"
//	@Success		201		{object}	domain.StaticPage
//	@Router			/admin/api/pages [post]
func (a *AdminHandler) createPage(w http.ResponseWriter, r *http.Request) {
	var page domain.StaticPage
	if err := decodeJSON(w, r, &page); err != nil {
		WriteError(w, err)
		return
	}
	created, err := a.admin.CreatePage(r.Context(), token(r), &page)
	respond(w, http.StatusCreated, created, err)
}

func (a *AdminHandler) updatePage(w http.ResponseWriter, r *http.Request) {
	var page domain.StaticPage
	if err := decodeJSON(w, r, &page); err != nil {
		WriteError(w, err)
		return
	}
	updated, err := a.admin.UpdatePage(r.Context(), token(r), chi.URLParam(r, "id"), &page)
	respond(w, http.StatusOK, updated, err)
}

func (a *AdminHandler) deletePage(w http.ResponseWriter, r *http.Request) {
	respondOK(w, a.admin.DeletePage(r.Context(), token(r), chi.URLParam(r, "id")))
}

func (a *AdminHandler) getNavigation(w http.ResponseWriter, r *http.Request) {
	nav, err := a.admin.GetNavigation(r.Context(), token(r))
	respond(w, http.StatusOK, nav, err)
}

func (a *AdminHandler) saveNavigation(w http.ResponseWriter, r *http.Request) {
	var nav domain.NavSettings
	if err := decodeJSON(w, r, &nav); err != nil {
		WriteError(w, err)
		return
	}
	saved, err := a.admin.SaveNavigation(r.Context(), token(r), &nav)
	respond(w, http.StatusOK, saved, err)
}

func (a *AdminHandler) getFilterSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.admin.GetFilterSettings(r.Context(), token(r))
	respond(w, http.StatusOK, settings, err)
}

func (a *AdminHandler) saveFilterSettings(w http.ResponseWriter, r *http.Request) {
	raw, err := readRawJSON(w, r)
	if err != nil {
		WriteError(w, err)
		return
	}
	settings, err := a.admin.SaveFilterSettings(r.Context(), token(r), domain.FilterSettings(raw))
	respond(w, http.StatusOK, settings, err)
}

func (a *AdminHandler) attributeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.admin.AttributeStats(r.Context(), token(r))
	respond(w, http.StatusOK, stats, err)
}

// exportInfo
//
//	@Summary	Адрес и состояние XML-фида товаров для маркетплейсов
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	domain.ExportInfo
//	@Router		/admin/api/export/info [get]
func (a *AdminHandler) exportInfo(w http.ResponseWriter, r *http.Request) {
	info, err := a.catalog.ExportInfo(r.Context())
	respond(w, http.StatusOK, info, err)
}
