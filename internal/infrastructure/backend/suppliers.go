package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
)

func supplierPath(id string, rest string) string {
	return "/api/admin/suppliers/" + segment(id) + rest
}

func (c *Client) ListSuppliers(ctx context.Context, token string) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	if err := c.do(ctx, http.MethodGet, "/api/admin/suppliers", nil, token, nil, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (c *Client) GetSupplier(ctx context.Context, token string, id string) (*domain.Supplier, error) {
	var supplier domain.Supplier
	if err := c.do(ctx, http.MethodGet, supplierPath(id, ""), nil, token, nil, &supplier); err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (c *Client) CreateSupplier(ctx context.Context, token string, supplier *domain.Supplier) (*domain.Supplier, error) {
	var created domain.Supplier
	if err := c.do(ctx, http.MethodPost, "/api/admin/suppliers", nil, token, supplier, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateSupplier(ctx context.Context, token string, id string, supplier *domain.Supplier) (*domain.Supplier, error) {
	var updated domain.Supplier
	if err := c.do(ctx, http.MethodPut, supplierPath(id, ""), nil, token, supplier, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteSupplier(ctx context.Context, token string, id string) error {
	return c.do(ctx, http.MethodDelete, supplierPath(id, ""), nil, token, nil, nil)
}

// Файлы фидов

func (c *Client) ListStoredFeeds(ctx context.Context, token string, supplierID string) ([]domain.StoredFeed, error) {
	var feeds []domain.StoredFeed
	if err := c.do(ctx, http.MethodGet, supplierPath(supplierID, "/feeds"), nil, token, nil, &feeds); err != nil {
		return nil, err
	}
	return feeds, nil
}

func (c *Client) DeleteStoredFeed(ctx context.Context, token string, supplierID string, feedID string) error {
	return c.do(ctx, http.MethodDelete, supplierPath(supplierID, "/feeds/"+segment(feedID)), nil, token, nil, nil)
}

// StartDownload запускает скачивание фида. Прогресс читается через GetDownloadStatus.
func (c *Client) StartDownload(ctx context.Context, token string, supplierID string) error {
	return c.do(ctx, http.MethodPost, supplierPath(supplierID, "/download"), nil, token, nil, nil)
}

func (c *Client) GetDownloadStatus(ctx context.Context, token string, supplierID string) (*domain.DownloadStatus, error) {
	var status domain.DownloadStatus
	if err := c.do(ctx, http.MethodGet, supplierPath(supplierID, "/download-status"), nil, token, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Импорт и привязка

func (c *Client) StartImport(ctx context.Context, token string, supplierID string) (*domain.ImportProgress, error) {
	var progress domain.ImportProgress
	if err := c.do(ctx, http.MethodPost, supplierPath(supplierID, "/import"), nil, token, nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (c *Client) GetImportProgress(ctx context.Context, token string, supplierID string, importID string) (*domain.ImportProgress, error) {
	var progress domain.ImportProgress
	path := supplierPath(supplierID, "/import/"+segment(importID)+"/progress")
	if err := c.do(ctx, http.MethodGet, path, nil, token, nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// LinkAll — link_id приходит на верхнем уровне ответа, без data.
func (c *Client) LinkAll(ctx context.Context, token string, supplierID string) (*domain.LinkStarted, error) {
	var started domain.LinkStarted
	if err := c.do(ctx, http.MethodPost, supplierPath(supplierID, "/link-all"), nil, token, nil, &started); err != nil {
		return nil, err
	}
	return &started, nil
}

func (c *Client) GetLinkProgress(ctx context.Context, token string, supplierID string, linkID string) (*domain.LinkProgress, error) {
	var progress domain.LinkProgress
	path := supplierPath(supplierID, "/link/"+segment(linkID)+"/progress")
	if err := c.do(ctx, http.MethodGet, path, nil, token, nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// Каталог поставщика

// supplierProductsRes — товары лежат в data, счётчики рядом с ним.
type supplierProductsRes struct {
	Data   []domain.SupplierProduct `json:"data"`
	Total  int                      `json:"total"`
	Limit  int                      `json:"limit"`
	Offset int                      `json:"offset"`
}

// ListSupplierProducts переводит limit/offset бэкенда в постраничный ответ.
func (c *Client) ListSupplierProducts(ctx context.Context, token string, supplierID string, params url.Values) (*domain.Page[domain.SupplierProduct], error) {
	q := cloneValues(params)
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 && q.Get("offset") == "" {
		limit := domain.DefaultLimit
		if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 {
			limit = l
		}
		q.Set("limit", strconv.Itoa(limit))
		q.Set("offset", strconv.Itoa((page-1)*limit))
	}

	body, err := c.raw(ctx, http.MethodGet, supplierPath(supplierID, "/products"), q, token, nil)
	if err != nil {
		return nil, err
	}

	var res supplierProductsRes
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return toPage(res), nil
}

func toPage(res supplierProductsRes) *domain.Page[domain.SupplierProduct] {
	page := &domain.Page[domain.SupplierProduct]{
		Items: res.Data,
		Total: res.Total,
		Limit: res.Limit,
		Page:  domain.DefaultPage,
	}
	if page.Items == nil {
		page.Items = []domain.SupplierProduct{}
	}
	if page.Limit > 0 {
		page.Page = res.Offset/page.Limit + 1
		page.TotalPages = (res.Total + page.Limit - 1) / page.Limit
	}
	return page
}

// ListSupplierCategories — бэкенд отдаёт дерево и плоский список, используется только список.
func (c *Client) ListSupplierCategories(ctx context.Context, token string, supplierID string) ([]domain.SupplierCategory, error) {
	var res struct {
		Categories []domain.SupplierCategory `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, supplierPath(supplierID, "/categories"), nil, token, nil, &res); err != nil {
		return nil, err
	}
	return res.Categories, nil
}

func (c *Client) ListSupplierBrands(ctx context.Context, token string, supplierID string) ([]domain.SupplierBrand, error) {
	var brands []domain.SupplierBrand
	if err := c.do(ctx, http.MethodGet, supplierPath(supplierID, "/brands"), nil, token, nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (c *Client) DeleteAllSupplierProducts(ctx context.Context, token string, supplierID string) error {
	return c.do(ctx, http.MethodDelete, supplierPath(supplierID, "/delete-all-products"), nil, token, nil, nil)
}
