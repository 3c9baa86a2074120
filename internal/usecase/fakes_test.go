package usecase

import (
	"context"
	"net/url"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
)

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string][]byte
	saveErr  error
	saves    int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string][]byte)}
}

func (f *fakeSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.sessions[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *fakeSessionRepo) Save(_ context.Context, s *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	f.sessions[s.ID] = data
	f.saves++
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	cleared int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (f *fakeCache) Set(_ context.Context, key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	return nil
}

func (f *fakeCache) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = make(map[string][]byte)
	f.cleared++
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []*domain.Event
	err    error
}

func (f *fakeEvents) Record(_ context.Context, events ...*domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, events...)
	return nil
}

func (f *fakeEvents) recorded() []*domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.Event(nil), f.events...)
}

// fakeStorefrontAPI реализует только то, что задано в полях; остальное паникует через встроенный nil-интерфейс.
type fakeStorefrontAPI struct {
	StorefrontAPI

	mu    sync.Mutex
	calls map[string]int

	products       map[string]*domain.Product
	listProducts   func(params url.Values) (*domain.Page[domain.Product], error)
	categories     []domain.Category
	categoriesErr  error
	offersErr      error
	shipping       []domain.ShippingMethod
	shippingErr    error
	createOrder    func(token string, req *domain.CreateOrderReq) (*domain.Order, error)
	filters        *domain.FilterOptions
	searchProducts func(q string) (*domain.Page[domain.Product], error)
	categoryPage   *domain.CategoryProducts
	category       *domain.Category
	orders         map[string]*domain.Order
}

func (f *fakeStorefrontAPI) called(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeStorefrontAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeStorefrontAPI) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	f.called("GetProduct")
	p, ok := f.products[id]
	if !ok {
		return nil, &e.BackendError{StatusCode: 404, Message: "Product not found"}
	}
	return p, nil
}

func (f *fakeStorefrontAPI) GetProductBySlug(_ context.Context, slug string) (*domain.Product, error) {
	f.called("GetProductBySlug")
	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, &e.BackendError{StatusCode: 404, Message: "Product not found"}
}

func (f *fakeStorefrontAPI) GetProductOffers(_ context.Context, _ string) ([]domain.Offer, error) {
	f.called("GetProductOffers")
	if f.offersErr != nil {
		return nil, f.offersErr
	}
	return []domain.Offer{{ID: "o1", ShopName: "Shop"}}, nil
}

func (f *fakeStorefrontAPI) ListProducts(_ context.Context, params url.Values) (*domain.Page[domain.Product], error) {
	f.called("ListProducts")
	return f.listProducts(params)
}

func (f *fakeStorefrontAPI) SearchProducts(_ context.Context, q string, _ url.Values) (*domain.Page[domain.Product], error) {
	f.called("SearchProducts")
	return f.searchProducts(q)
}

func (f *fakeStorefrontAPI) ListCategories(_ context.Context) ([]domain.Category, error) {
	f.called("ListCategories")
	return f.categories, f.categoriesErr
}

func (f *fakeStorefrontAPI) GetFilters(_ context.Context, _ string) (*domain.FilterOptions, error) {
	f.called("GetFilters")
	if f.filters == nil {
		return nil, &e.BackendError{StatusCode: 500}
	}
	return f.filters, nil
}

func (f *fakeStorefrontAPI) GetCategoryProducts(_ context.Context, _ string, _ url.Values) (*domain.CategoryProducts, error) {
	f.called("GetCategoryProducts")
	if f.categoryPage == nil {
		return nil, &e.BackendError{StatusCode: 404, Message: "Category not found"}
	}
	return f.categoryPage, nil
}

func (f *fakeStorefrontAPI) GetCategory(_ context.Context, _ string) (*domain.Category, error) {
	f.called("GetCategory")
	if f.category == nil {
		return nil, e.ErrBackendUnavailable
	}
	return f.category, nil
}

func (f *fakeStorefrontAPI) TrackOrder(_ context.Context, number string) (*domain.Order, error) {
	f.called("TrackOrder")
	order, ok := f.orders[number]
	if !ok {
		return nil, &e.BackendError{StatusCode: 404, Message: "Order not found"}
	}
	return order, nil
}

func (f *fakeStorefrontAPI) ListShippingMethods(_ context.Context) ([]domain.ShippingMethod, error) {
	f.called("ListShippingMethods")
	return f.shipping, f.shippingErr
}

func (f *fakeStorefrontAPI) CreateOrder(_ context.Context, token string, req *domain.CreateOrderReq) (*domain.Order, error) {
	f.called("CreateOrder")
	return f.createOrder(token, req)
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeOutboxRepo struct {
	created []*domain.Event
	failOn  int
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *domain.Event) (*domain.Event, error) {
	if f.failOn > 0 && len(f.created)+1 == f.failOn {
		return nil, e.ErrInternalServerError
	}
	event.ID = int64(len(f.created) + 1)
	f.created = append(f.created, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(context.Context, int) ([]*domain.Event, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(context.Context, int64) error { return nil }

func (f *fakeOutboxRepo) ReleaseForRetry(context.Context, int64) error { return nil }
