package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/cfg"
	"github.com/profibuy/storefront/internal/usecase"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

const maxErrorBody = 4 << 10

// Client — типизированный клиент REST API бэкенда. Вся бизнес-логика живёт там,
// клиент только сериализует запросы и разворачивает ответы.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

func NewClient(cfg *cfg.BackendCfg, logger logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// BaseURL нужен прокси и диагностике.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope — обёртка {success,data,error}, которую возвращает часть эндпоинтов.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// Health проверяет доступность бэкенда через GET /health.
func (c *Client) Health(ctx context.Context) error {
	const op = "BackendClient.Health"

	if _, err := c.raw(ctx, http.MethodGet, "/health", nil, "", nil); err != nil {
		return e.Wrap(op, err)
	}
	return nil
}

// do выполняет запрос и декодирует ответ в out. Если ответ обёрнут в envelope
// с полем data, в out попадает только data.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, in, out any) error {
	body, err := c.raw(ctx, method, path, query, token, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if trimmed := bytes.TrimSpace(body); trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil && env.Success != nil {
			if !*env.Success {
				return &e.BackendError{StatusCode: http.StatusBadGateway, Message: env.text()}
			}
			if len(env.Data) > 0 {
				body = env.Data
			}
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return e.Wrap(fmt.Sprintf("%s %s: decode", method, path), err)
	}
	return nil
}

// raw отправляет запрос и возвращает тело успешного ответа без разбора.
func (c *Client) raw(ctx context.Context, method, path string, query url.Values, token string, in any) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warnf("backend %s %s unreachable: %v", method, path, err)
		return nil, e.Wrap(fmt.Sprintf("%s %s", method, path), errors.Join(e.ErrBackendUnavailable, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrBackendUnavailable, err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		berr := &e.BackendError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
		c.logger.Debugf("backend %s %s answered %d: %s", method, path, resp.StatusCode, berr.Message)
		return nil, e.Wrap(fmt.Sprintf("%s %s", method, path), berr)
	}

	return data, nil
}

func (env *envelope) text() string {
	if env.Error != "" {
		return env.Error
	}
	return env.Message
}

// errorMessage достаёт текст ошибки из {"error": ...} или {"message": ...}.
func errorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if msg := env.text(); msg != "" {
			return msg
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	return msg
}

// segment экранирует часть пути.
func segment(s string) string {
	return url.PathEscape(s)
}

var (
	_ usecase.StorefrontAPI = (*Client)(nil)
	_ usecase.AuthAPI       = (*Client)(nil)
	_ usecase.AdminAPI      = (*Client)(nil)
	_ usecase.SupplierAPI   = (*Client)(nil)
)
