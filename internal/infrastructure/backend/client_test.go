package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/profibuy/storefront/internal/cfg"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&cfg.BackendCfg{URL: srv.URL + "/", Timeout: 5 * time.Second}, logger.NewNop())
}

func TestListProductsForwardsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("sort") != "bestselling" || r.URL.Query().Get("limit") != "8" {
			t.Errorf("query not forwarded: %s", r.URL.RawQuery)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("anonymous call must not send Authorization")
		}
		_, _ = io.WriteString(w, `{"items":[{"id":"p1","name":"Myš","price":19.9}],"total":1,"page":1,"limit":8,"total_pages":1}`)
	})

	page, err := client.ListProducts(context.Background(), url.Values{"sort": {"bestselling"}, "limit": {"8"}})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Myš" || page.Items[0].Price.String() != "19.9" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestEnvelopeIsUnwrapped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer adm" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		_, _ = io.WriteString(w, `{"success":true,"data":[{"id":"s1","name":"Action","code":"action"}]}`)
	})

	suppliers, err := client.ListSuppliers(context.Background(), "adm")
	if err != nil {
		t.Fatalf("ListSuppliers: %v", err)
	}
	if len(suppliers) != 1 || suppliers[0].Code != "action" {
		t.Fatalf("unexpected suppliers %+v", suppliers)
	}
}

func TestLinkAllReadsTopLevelID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/admin/suppliers/s1/link-all" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"success":true,"link_id":"l-42","message":"Linking started in background"}`)
	})

	started, err := client.LinkAll(context.Background(), "adm", "s1")
	if err != nil {
		t.Fatalf("LinkAll: %v", err)
	}
	if started.LinkID != "l-42" {
		t.Fatalf("expected l-42, got %q", started.LinkID)
	}
}

func TestErrorStatusBecomesBackendError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"Invalid credentials"}`)
	})

	_, err := client.Login(context.Background(), &domain.LoginReq{Email: "a@b.sk", Password: "x"})
	if !errors.Is(err, e.ErrBackendStatus) {
		t.Fatalf("expected ErrBackendStatus, got %v", err)
	}
	status, ok := e.BackendStatus(err)
	if !ok || status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	var be *e.BackendError
	if errors.As(err, &be) && be.Message != "Invalid credentials" {
		t.Fatalf("unexpected message %q", be.Message)
	}
}

func TestSuccessFalseIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":false,"error":"Supplier not found"}`)
	})

	if _, err := client.GetSupplier(context.Background(), "adm", "s1"); !errors.Is(err, e.ErrBackendStatus) {
		t.Fatalf("expected ErrBackendStatus, got %v", err)
	}
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	client := NewClient(&cfg.BackendCfg{URL: addr, Timeout: time.Second}, logger.NewNop())
	if err := client.Health(context.Background()); !errors.Is(err, e.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestOffersAndCategoriesAreUnwrapped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products/p1/offers":
			_, _ = io.WriteString(w, `{"offers":[{"id":"o1"},{"id":"o2"}]}`)
		case "/api/admin/suppliers/s1/categories":
			_, _ = io.WriteString(w, `{"success":true,"data":{"tree":[],"categories":[{"id":"c1","name":"Myši"}]}}`)
		default:
			http.NotFound(w, r)
		}
	})

	offers, err := client.GetProductOffers(context.Background(), "p1")
	if err != nil || len(offers) != 2 {
		t.Fatalf("GetProductOffers: %v %v", offers, err)
	}

	categories, err := client.ListSupplierCategories(context.Background(), "adm", "s1")
	if err != nil || len(categories) != 1 || categories[0].Name != "Myši" {
		t.Fatalf("ListSupplierCategories: %v %v", categories, err)
	}
}

func TestSupplierProductsPageTranslation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "50" || q.Get("offset") != "100" {
			t.Errorf("page must become offset, got %s", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"success":true,"data":[{"id":"sp1"}],"total":120,"limit":50,"offset":100}`)
	})

	page, err := client.ListSupplierProducts(context.Background(), "adm", "s1", url.Values{"page": {"3"}, "limit": {"50"}})
	if err != nil {
		t.Fatalf("ListSupplierProducts: %v", err)
	}
	if page.Page != 3 || page.TotalPages != 3 || page.Total != 120 || len(page.Items) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestFiltersPath(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = io.WriteString(w, `{"categories":[],"brands":[],"price_range":{"min":0,"max":0},"attributes":[]}`)
	})

	if _, err := client.GetFilters(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := client.GetFilters(context.Background(), "mysi"); err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || paths[0] != "/api/filters" || paths[1] != "/api/filters/mysi" {
		t.Fatalf("unexpected paths %v", paths)
	}
}

func TestSaveNavigationKeepsRequestOnBareSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	nav := &domain.NavSettings{MaxVisible: 8, Items: []domain.NavItem{{CategoryID: "c1", Visible: true}}}
	saved, err := client.SaveNavigation(context.Background(), "adm", nav)
	if err != nil {
		t.Fatalf("SaveNavigation: %v", err)
	}
	if saved.MaxVisible != 8 || len(saved.Items) != 1 {
		t.Fatalf("request values lost: %+v", saved)
	}
}
