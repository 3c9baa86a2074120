package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

type fakeAdminAPI struct {
	AdminAPI

	createdPage  *domain.StaticPage
	statusCalls  int
	cacheCleared int
}

func (f *fakeAdminAPI) CreateStaticPage(_ context.Context, _ string, page *domain.StaticPage) (*domain.StaticPage, error) {
	f.createdPage = page
	res := *page
	res.ID = "page-1"
	return &res, nil
}

func (f *fakeAdminAPI) UpdateOrderStatus(_ context.Context, _ string, id string, req *domain.UpdateOrderStatusReq) (*domain.Order, error) {
	f.statusCalls++
	return &domain.Order{ID: id, Status: req.Status}, nil
}

func (f *fakeAdminAPI) ClearCache(context.Context, string) error {
	f.cacheCleared++
	return nil
}

func (f *fakeAdminAPI) DeleteCategory(context.Context, string, string) error {
	return &e.BackendError{StatusCode: 409, Message: "Category has products"}
}

func TestCreatePageGeneratesSlug(t *testing.T) {
	api := &fakeAdminAPI{}
	uc := NewAdminUC(api, nil, newFakeCache(), logger.NewNop())

	page, err := uc.CreatePage(context.Background(), "tok", &domain.StaticPage{Title: "Obchodné podmienky", Content: "<p>…</p>"})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if page.Slug != "obchodne-podmienky" || api.createdPage.Slug != "obchodne-podmienky" {
		t.Fatalf("unexpected slug %q", page.Slug)
	}

	if _, err := uc.CreatePage(context.Background(), "tok", &domain.StaticPage{Title: "  "}); !errors.Is(err, e.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestUpdateOrderStatusValidates(t *testing.T) {
	api := &fakeAdminAPI{}
	uc := NewAdminUC(api, nil, newFakeCache(), logger.NewNop())

	if _, err := uc.UpdateOrderStatus(context.Background(), "tok", "o1", &domain.UpdateOrderStatusReq{Status: "lost"}); !errors.Is(err, e.ErrStatusBadRequest) {
		t.Fatalf("expected ErrStatusBadRequest, got %v", err)
	}
	if api.statusCalls != 0 {
		t.Fatal("invalid status must not reach backend")
	}

	order, err := uc.UpdateOrderStatus(context.Background(), "tok", "o1", &domain.UpdateOrderStatusReq{Status: domain.OrderShipped, TrackingNumber: "Z123"})
	if err != nil || order.Status != domain.OrderShipped {
		t.Fatalf("UpdateOrderStatus: %+v %v", order, err)
	}
}

func TestClearCacheDropsLocalCache(t *testing.T) {
	api := &fakeAdminAPI{}
	cache := newFakeCache()
	_ = cache.Set(context.Background(), "categories", []string{"x"})
	uc := NewAdminUC(api, nil, cache, logger.NewNop())

	if err := uc.ClearCache(context.Background(), "tok"); err != nil {
		t.Fatalf("ClearCache: %v", err)
	}
	if api.cacheCleared != 1 || cache.cleared != 1 || len(cache.entries) != 0 {
		t.Fatalf("both caches must be cleared: backend=%d local=%d", api.cacheCleared, cache.cleared)
	}
}

func TestBackendStatusPropagates(t *testing.T) {
	uc := NewAdminUC(&fakeAdminAPI{}, nil, newFakeCache(), logger.NewNop())

	err := uc.DeleteCategory(context.Background(), "tok", "c1")
	if status, ok := e.BackendStatus(err); !ok || status != 409 {
		t.Fatalf("expected backend 409, got %v", err)
	}
}
