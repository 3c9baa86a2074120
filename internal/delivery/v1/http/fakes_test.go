package http

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/internal/usecase"
	"github.com/profibuy/storefront/pkg/e"
)

type fakeSessions struct {
	mu      sync.Mutex
	store   map[string]*domain.Session
	nextID  int
	loadErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{store: map[string]*domain.Session{}}
}

func (f *fakeSessions) Load(_ context.Context, id string) (*domain.Session, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, false, f.loadErr
	}
	if s, ok := f.store[id]; ok {
		loaded := *s
		return &loaded, false, nil
	}
	f.nextID++
	return domain.NewSession(fmt.Sprintf("new-%d", f.nextID), time.Now()), true, nil
}

func (f *fakeSessions) Save(_ context.Context, session *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *session
	f.store[session.ID] = &stored
	session.MarkSaved()
	return nil
}

func (f *fakeSessions) Rotate(_ context.Context, session *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.store, session.ID)
	f.nextID++
	session.ID = fmt.Sprintf("rotated-%d", f.nextID)
	stored := *session
	f.store[session.ID] = &stored
	session.MarkSaved()
	return nil
}

func (f *fakeSessions) Destroy(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.store, id)
	return nil
}

type fakeCart struct {
	usecase.CartUC
	added *usecase.AddCartItemReq
}

func (f *fakeCart) Get(_ context.Context, session *domain.Session) *usecase.CartView {
	return usecase.NewCartView(&session.Cart)
}

func (f *fakeCart) AddItem(_ context.Context, session *domain.Session, req *usecase.AddCartItemReq) (*usecase.CartView, error) {
	if req.ProductID == "missing" {
		return nil, &e.BackendError{StatusCode: 404, Message: "Product not found"}
	}
	f.added = req
	session.Cart.Add(domain.CartItem{ProductID: req.ProductID, Quantity: req.Quantity})
	return usecase.NewCartView(&session.Cart), nil
}

type fakeAuth struct {
	usecase.AuthUC
	adminToken string
	mu         sync.Mutex
	clientIPs  []string
}

func (f *fakeAuth) IsAdmin(token string) bool {
	return token != "" && token == f.adminToken
}

func (f *fakeAuth) Login(_ context.Context, session *domain.Session, clientIP string, req *domain.LoginReq) (*domain.User, error) {
	f.mu.Lock()
	f.clientIPs = append(f.clientIPs, clientIP)
	f.mu.Unlock()

	if req.Password != "secret" {
		return nil, e.ErrInvalidCredentials
	}
	session.Token = "tok-" + req.Email
	session.User = &domain.User{Email: req.Email}
	return session.User, nil
}

type fakeCatalog struct {
	usecase.CatalogUC
}

var fakeOrder = domain.Order{ID: "o-1", OrderNumber: "MS-1001", Status: domain.OrderPending}

func (fakeCatalog) Order(_ context.Context, id string) (*domain.Order, error) {
	if id != fakeOrder.ID {
		return nil, &e.BackendError{StatusCode: 404, Message: "Order not found"}
	}
	order := fakeOrder
	return &order, nil
}

func (fakeCatalog) TrackOrder(_ context.Context, number string) (*domain.Order, error) {
	if number != fakeOrder.OrderNumber {
		return nil, &e.BackendError{StatusCode: 404, Message: "Order not found"}
	}
	order := fakeOrder
	return &order, nil
}

func (fakeCatalog) ExportInfo(context.Context) (*domain.ExportInfo, error) {
	return &domain.ExportInfo{URL: "http://backend:8080/api/export/heureka.xml", ProductCount: 42}, nil
}

func (fakeCatalog) Home(context.Context) *usecase.HomeView {
	return &usecase.HomeView{Featured: domain.EmptyPage[domain.Product](), Sale: domain.EmptyPage[domain.Product]()}
}

func (fakeCatalog) Product(_ context.Context, slug string) (*usecase.ProductView, error) {
	return nil, &e.BackendError{StatusCode: 404, Message: "Product not found: " + slug}
}

func (fakeCatalog) Categories(context.Context) []domain.Category {
	return []domain.Category{
		{ID: "1", Name: "Náradie", Slug: "naradie"},
		{ID: "2", Name: "Záhrada", Slug: "zahrada"},
		{ID: "3", ParentID: "1", Name: "Vŕtačky", Slug: "vrtacky"},
	}
}

func (fakeCatalog) Navigation(context.Context) *domain.NavSettings {
	return &domain.NavSettings{}
}

type fakeAdmin struct {
	usecase.AdminUC
	lastToken string
}

func (f *fakeAdmin) Dashboard(_ context.Context, token string) (*domain.DashboardStats, error) {
	f.lastToken = token
	return &domain.DashboardStats{TotalOrders: 7}, nil
}

func (f *fakeAdmin) ListProducts(_ context.Context, token string, params url.Values) (*domain.Page[domain.Product], error) {
	f.lastToken = token
	page := domain.EmptyPage[domain.Product]()
	page.Page = 2
	if params.Get("page") != "2" {
		return nil, e.ErrStatusBadRequest
	}
	return &page, nil
}

type fakeMedia struct {
	req *usecase.UploadMediaReq
}

func (f *fakeMedia) Upload(_ context.Context, req *usecase.UploadMediaReq) (*usecase.UploadMediaRes, error) {
	f.req = req
	res := &usecase.UploadMediaRes{}
	for range req.Files {
		res.Keys = append(res.Keys, "k")
		res.URLs = append(res.URLs, "http://cdn/k")
	}
	return res, nil
}

type fakeJobs struct {
	usecase.JobUC
}

func (fakeJobs) Get(id string) (*domain.Job, error) {
	if id != "job-1" {
		return nil, e.ErrJobNotFound
	}
	return &domain.Job{ID: id, Kind: domain.JobImport, State: domain.JobRunning}, nil
}

func (fakeJobs) StartImport(_ context.Context, _ string, supplierID string) (*domain.Job, error) {
	return &domain.Job{ID: "job-1", Kind: domain.JobImport, SupplierID: supplierID, State: domain.JobRunning}, nil
}
