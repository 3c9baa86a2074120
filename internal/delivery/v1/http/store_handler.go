package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/internal/usecase"
	"github.com/profibuy/storefront/pkg/logger"
)

// StoreHandler — JSON-эндпоинты состояния посетителя: корзина, вход, оформление и отслеживание заказа.
type StoreHandler struct {
	cart     usecase.CartUC
	auth     usecase.AuthUC
	checkout usecase.CheckoutUC
	catalog  usecase.CatalogUC
	logger   logger.Logger
}

func NewStoreHandler(
	cart usecase.CartUC,
	auth usecase.AuthUC,
	checkout usecase.CheckoutUC,
	catalog usecase.CatalogUC,
	logger logger.Logger,
) *StoreHandler {
	return &StoreHandler{
		cart:     cart,
		auth:     auth,
		checkout: checkout,
		catalog:  catalog,
		logger:   logger,
	}
}

type updateQuantityReq struct {
	Quantity int `json:"quantity"`
}

type meRes struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user"`
	IsAdmin       bool         `json:"is_admin"`
}

type userRes struct {
	User *domain.User `json:"user"`
}

// getCart
//
//	@Summary	Корзина посетителя
//	@Tags		store
//	@Produce	json
//	@Success	200	{object}	usecase.CartView
//	@Router		/store/cart [get]
func (s *StoreHandler) getCart(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, s.cart.Get(r.Context(), SessionFromCtx(r.Context())))
}

// addItem
//
//	@Summary		Добавить товар в корзину
//	@Description	Цена и снимок товара берутся с бэкенда; если строка уже есть, количества складываются
//	@Tags			store
//	@Accept			json
//	@Produce		json
//	@Param			item	body		usecase.AddCartItemReq	true	"Товар"
//	@Success		200		{object}	usecase.CartView
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/store/cart/items [post]
func (s *StoreHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req usecase.AddCartItemReq
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	view, err := s.cart.AddItem(r.Context(), SessionFromCtx(r.Context()), &req)
	if err != nil {
		s.logger.Warnf("add to cart %s: %v", req.ProductID, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, view)
}

// updateItem
//
//	@Summary	Изменить количество (0 удаляет строку)
//	@Tags		store
//	@Accept		json
//	@Produce	json
//	@Param		productID	path		string				true	"ID товара"
//	@Param		body		body		updateQuantityReq	true	"Количество"
//	@Success	200			{object}	usecase.CartView
//	@Router		/store/cart/items/{productID} [put]
func (s *StoreHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityReq
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	view, err := s.cart.UpdateQuantity(r.Context(), SessionFromCtx(r.Context()), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, view)
}

func (s *StoreHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	view, err := s.cart.RemoveItem(r.Context(), SessionFromCtx(r.Context()), chi.URLParam(r, "productID"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, view)
}

func (s *StoreHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	view, err := s.cart.Clear(r.Context(), SessionFromCtx(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, view)
}

// login
//
//	@Summary	Вход покупателя
//	@Tags		store
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		domain.LoginReq	true	"Email и пароль"
//	@Success	200			{object}	userRes
//	@Failure	401			{object}	ErrorResponse
//	@Failure	429			{object}	ErrorResponse
//	@Router		/store/auth/login [post]
func (s *StoreHandler) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginReq
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	user, err := s.auth.Login(r.Context(), SessionFromCtx(r.Context()), clientIP(r), &req)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, userRes{User: user})
}

func (s *StoreHandler) register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterReq
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	user, err := s.auth.Register(r.Context(), SessionFromCtx(r.Context()), clientIP(r), &req)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, userRes{User: user})
}

func (s *StoreHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), SessionFromCtx(r.Context())); err != nil {
		s.logger.Errorf(err, "logout failed")
		WriteError(w, err)
		return
	}

	writeOK(w)
}

func (s *StoreHandler) me(w http.ResponseWriter, r *http.Request) {
	session := SessionFromCtx(r.Context())

	WriteSuccess(w, http.StatusOK, meRes{
		Authenticated: session.IsAuthenticated(),
		User:          session.User,
		IsAdmin:       session.IsAuthenticated() && s.auth.IsAdmin(session.Token),
	})
}

// getCheckout
//
//	@Summary	Черновик заказа и расчёт суммы
//	@Tags		checkout
//	@Produce	json
//	@Success	200	{object}	usecase.CheckoutView
//	@Router		/store/checkout [get]
func (s *StoreHandler) getCheckout(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, s.checkout.View(r.Context(), SessionFromCtx(r.Context())))
}

// updateCheckout
//
//	@Summary	Обновить черновик заказа (шаг, адрес, доставка, оплата)
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		patch	body		usecase.CheckoutPatch	true	"Изменения"
//	@Success	200		{object}	usecase.CheckoutView
//	@Failure	400		{object}	ErrorResponse
//	@Router		/store/checkout [put]
func (s *StoreHandler) updateCheckout(w http.ResponseWriter, r *http.Request) {
	var patch usecase.CheckoutPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		WriteError(w, err)
		return
	}

	view, err := s.checkout.Update(r.Context(), SessionFromCtx(r.Context()), &patch)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, view)
}

// submitCheckout
//
//	@Summary	Оформить заказ
//	@Tags		checkout
//	@Produce	json
//	@Success	201	{object}	usecase.PlacedOrder
//	@Failure	400	{object}	ErrorResponse
//	@Router		/store/checkout [post]
func (s *StoreHandler) submitCheckout(w http.ResponseWriter, r *http.Request) {
	placed, err := s.checkout.Submit(r.Context(), SessionFromCtx(r.Context()))
	if err != nil {
		s.logger.Warnf("checkout failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, placed)
}

// getOrder
//
//	@Summary	Заказ по ID (страница подтверждения)
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"ID заказа"
//	@Success	200	{object}	domain.Order
//	@Failure	404	{object}	ErrorResponse
//	@Router		/store/orders/{id} [get]
func (s *StoreHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.catalog.Order(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, order)
}

// trackOrder
//
//	@Summary	Отслеживание заказа по номеру
//	@Tags		orders
//	@Produce	json
//	@Param		number	path		string	true	"Номер заказа"
//	@Success	200		{object}	domain.Order
//	@Failure	404		{object}	ErrorResponse
//	@Router		/store/orders/track/{number} [get]
func (s *StoreHandler) trackOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.catalog.TrackOrder(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, order)
}
