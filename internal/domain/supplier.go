package domain

import (
	"encoding/json"
	"time"
)

// Supplier — поставщик с XML/CSV фидом.
type Supplier struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Code               string          `json:"code"`
	Description        string          `json:"description"`
	Website            string          `json:"website"`
	Logo               string          `json:"logo"`
	ContactEmail       string          `json:"contact_email"`
	ContactPhone       string          `json:"contact_phone"`
	FeedURL            string          `json:"feed_url"`
	FeedType           string          `json:"feed_type"`
	FeedFormat         string          `json:"feed_format"`
	XMLItemPath        string          `json:"xml_item_path"`
	CategorySeparator  string          `json:"category_separator"`
	MaxDownloadsPerDay int             `json:"max_downloads_per_day"`
	DownloadCountToday int             `json:"download_count_today"`
	LastDownloadDate   *time.Time      `json:"last_download_date"`
	AuthType           string          `json:"auth_type"`
	AuthCredentials    json.RawMessage `json:"auth_credentials,omitempty"`
	FieldMappings      json.RawMessage `json:"field_mappings,omitempty"`
	IsActive           bool            `json:"is_active"`
	Priority           int             `json:"priority"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	CurrentFeed        *StoredFeed     `json:"current_feed,omitempty"`
	ProductCount       int             `json:"product_count,omitempty"`
}

// StoredFeed — скачанный файл фида поставщика.
type StoredFeed struct {
	ID               string    `json:"id"`
	SupplierID       string    `json:"supplier_id"`
	Filename         string    `json:"filename"`
	FileSize         int64     `json:"file_size"`
	ContentType      string    `json:"content_type"`
	DownloadedAt     time.Time `json:"downloaded_at"`
	DownloadDuration int       `json:"download_duration_ms"`
	SourceURL        string    `json:"source_url"`
	TotalProducts    int       `json:"total_products"`
	TotalCategories  int       `json:"total_categories"`
	TotalBrands      int       `json:"total_brands"`
	Status           string    `json:"status"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	IsCurrent        bool      `json:"is_current"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// ImportProgress — состояние импорта фида (GET .../import/{id}/progress).
type ImportProgress struct {
	ID                string    `json:"id"`
	SupplierID        string    `json:"supplier_id"`
	StoredFeedID      string    `json:"stored_feed_id"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at,omitempty"`
	DurationMs        int       `json:"duration_ms"`
	TotalItems        int       `json:"total_items"`
	Processed         int       `json:"processed"`
	Created           int       `json:"created"`
	Updated           int       `json:"updated"`
	Skipped           int       `json:"skipped"`
	Errors            int       `json:"errors"`
	CategoriesCreated int       `json:"categories_created"`
	CategoriesUpdated int       `json:"categories_updated"`
	BrandsCreated     int       `json:"brands_created"`
	Status            string    `json:"status"`
	ProgressPercent   float64   `json:"progress_percent"`
	CurrentItem       string    `json:"current_item"`
	ErrorMessage      string    `json:"error_message,omitempty"`
	TriggeredBy       string    `json:"triggered_by"`
	Logs              []string  `json:"logs"`
}

// LinkProgress — состояние привязки товаров поставщика к основному каталогу.
type LinkProgress struct {
	Status    string `json:"status"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Created   int    `json:"created"`
	Updated   int    `json:"updated"`
	Errors    int    `json:"errors"`
	Message   string `json:"message"`
}

// LinkStarted — ответ на POST .../link-all.
type LinkStarted struct {
	LinkID string `json:"link_id"`
}

// DownloadProgress — активное скачивание фида.
type DownloadProgress struct {
	SupplierID string    `json:"supplier_id"`
	Status     string    `json:"status"`
	BytesTotal int64     `json:"bytes_total"`
	BytesDown  int64     `json:"bytes_downloaded"`
	Percent    float64   `json:"percent"`
	Speed      string    `json:"speed"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	FeedID     string    `json:"feed_id,omitempty"`
}

// DownloadStatus — ответ GET .../download-status.
type DownloadStatus struct {
	CanDownload        bool              `json:"can_download"`
	DownloadsToday     int               `json:"downloads_today"`
	MaxDownloads       int               `json:"max_downloads"`
	DownloadsRemaining int               `json:"downloads_remaining"`
	LastDownload       *time.Time        `json:"last_download"`
	CurrentFeed        *StoredFeed       `json:"current_feed"`
	ActiveDownload     *DownloadProgress `json:"active_download,omitempty"`
}

type SupplierProduct struct {
	ID           string         `json:"id"`
	SupplierID   string         `json:"supplier_id"`
	ExternalID   string         `json:"external_id"`
	EAN          string         `json:"ean"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	PriceNet     Money          `json:"price_net"`
	PriceVAT     Money          `json:"price_vat"`
	VATRate      float64        `json:"vat_rate"`
	SRP          Money          `json:"srp"`
	Stock        int            `json:"stock"`
	StockStatus  string         `json:"stock_status"`
	CategoryTree string         `json:"category_tree"`
	ProducerName string         `json:"producer_name"`
	Images       []ProductImage `json:"images"`
	ProductID    *string        `json:"product_id,omitempty"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type SupplierCategory struct {
	ID               string  `json:"id"`
	SupplierID       string  `json:"supplier_id"`
	ExternalID       string  `json:"external_id"`
	ParentExternalID string  `json:"parent_external_id"`
	Name             string  `json:"name"`
	FullPath         string  `json:"full_path"`
	CategoryID       *string `json:"category_id,omitempty"`
	ProductCount     int     `json:"product_count"`
}

type SupplierBrand struct {
	ID           string  `json:"id"`
	SupplierID   string  `json:"supplier_id"`
	ExternalID   string  `json:"external_id"`
	Name         string  `json:"name"`
	BrandID      *string `json:"brand_id,omitempty"`
	ProductCount int     `json:"product_count"`
}

// Feed — фид импорта товаров (старый механизм /admin/feeds).
type Feed struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	URL          string            `json:"url"`
	Type         string            `json:"type"`
	Mapping      map[string]string `json:"mapping"`
	Schedule     string            `json:"schedule"`
	IsActive     bool              `json:"is_active"`
	LastRunAt    *time.Time        `json:"last_run_at,omitempty"`
	LastStatus   string            `json:"last_status"`
	ProductCount int               `json:"product_count"`
	CreatedAt    time.Time         `json:"created_at"`
}
