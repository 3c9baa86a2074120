package proxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

// TokenSource возвращает токен посетителя из серверной сессии или "".
type TokenSource func(r *http.Request) string

// Proxy пересылает /api/* на бэкенд без изменений. Единственное дополнение:
// если браузер не прислал Authorization, подставляется токен из сессии.
type Proxy struct {
	target *url.URL
	rp     *httputil.ReverseProxy
	token  TokenSource
	logger logger.Logger
}

type unreachableRes struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Debug   unreachableInfo `json:"debug"`
}

type unreachableInfo struct {
	Target     string `json:"target"`
	BackendURL string `json:"backend_url"`
	Method     string `json:"method"`
}

func New(backendURL string, token TokenSource, logger logger.Logger) (*Proxy, error) {
	target, err := url.Parse(backendURL)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	p := &Proxy{
		target: target,
		token:  token,
		logger: logger,
	}
	p.rp = &httputil.ReverseProxy{
		Rewrite:        p.rewrite,
		ModifyResponse: modifyResponse,
		ErrorHandler:   p.handleError,
	}

	return p, nil
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

	p.rp.ServeHTTP(ww, r)

	p.logger.Infof(
		"proxy %s %s -> %s status=%d bytes=%d latency=%s",
		r.Method, r.URL.Path, p.targetFor(r), ww.Status(), ww.BytesWritten(), time.Since(start),
	)
}

// forwardingHeaders ReverseProxy в режиме Rewrite удаляет из исходящего запроса.
var forwardingHeaders = []string{"Forwarded", "X-Forwarded-For", "X-Forwarded-Host", "X-Forwarded-Proto"}

// rewrite направляет запрос на API_URL + path + query. Host заменяется адресом бэкенда,
// заголовки пересылки передаются как пришли от браузера.
func (p *Proxy) rewrite(pr *httputil.ProxyRequest) {
	pr.SetURL(p.target)

	for _, h := range forwardingHeaders {
		if values, ok := pr.In.Header[h]; ok {
			pr.Out.Header[h] = append([]string(nil), values...)
		}
	}

	if pr.In.Header.Get("Authorization") != "" || p.token == nil {
		return
	}
	if token := p.token(pr.In); token != "" {
		pr.Out.Header.Set("Authorization", "Bearer "+token)
	}
}

func modifyResponse(resp *http.Response) error {
	resp.Header.Del("Transfer-Encoding")
	return nil
}

// handleError отвечает 502 с диагностикой, если бэкенд недоступен.
func (p *Proxy) handleError(w http.ResponseWriter, r *http.Request, err error) {
	target := p.targetFor(r)
	p.logger.Errorf(err, "proxy %s %s: backend unreachable", r.Method, target)

	body, mErr := json.Marshal(unreachableRes{
		Success: false,
		Error:   "Backend unreachable: " + err.Error(),
		Debug: unreachableInfo{
			Target:     target,
			BackendURL: p.target.String(),
			Method:     r.Method,
		},
	})
	if mErr != nil {
		http.Error(w, "Backend unreachable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	_, _ = w.Write(body)
}

func (p *Proxy) targetFor(r *http.Request) string {
	u := *p.target
	u.Path = r.URL.Path
	u.RawPath = r.URL.RawPath
	u.RawQuery = r.URL.RawQuery
	return u.String()
}
