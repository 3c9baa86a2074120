package http

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/profibuy/storefront/internal/cfg"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/internal/usecase"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

type ctxKey int

const sessionCtxKey ctxKey = iota

// SessionFromCtx возвращает сессию, загруженную SessionMiddleware.
func SessionFromCtx(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(sessionCtxKey).(*domain.Session)
	return session
}

func withSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, session)
}

// SessionMiddleware загружает сессию посетителя по cookie и кладёт её в контекст запроса.
// Новая сессия попадает в Redis только когда её что-то изменит.
type SessionMiddleware struct {
	sessions usecase.SessionUC
	cfg      *cfg.SessionCfg
	logger   logger.Logger
}

func NewSessionMiddleware(sessions usecase.SessionUC, cfg *cfg.SessionCfg, logger logger.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(m.cfg.CookieName); err == nil {
			id = c.Value
		}

		session, isNew, err := m.sessions.Load(r.Context(), id)
		if err != nil {
			// Redis недоступен: витрина продолжает работать с временной сессией.
			m.logger.Warnf("session %s not loaded: %v", id, err)
			session, isNew = domain.NewSession(uuid.NewString(), time.Now()), false
			id = session.ID
		}

		cw := &sessionCookieWriter{
			ResponseWriter: w,
			session:        session,
			cookieID:       id,
			issue:          isNew,
			setCookie:      m.setCookie,
		}
		next.ServeHTTP(cw, r.WithContext(withSession(r.Context(), session)))
	})
}

func (m *SessionMiddleware) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionCookieWriter выставляет cookie перед первой записью ответа: для новой сессии,
// после сохранения (продлевает срок вслед за TTL в Redis) и после смены id при входе.
type sessionCookieWriter struct {
	http.ResponseWriter
	session   *domain.Session
	cookieID  string
	issue     bool
	setCookie func(w http.ResponseWriter, id string)
	written   bool
}

func (w *sessionCookieWriter) WriteHeader(status int) {
	w.writeCookie()
	w.ResponseWriter.WriteHeader(status)
}

func (w *sessionCookieWriter) Write(b []byte) (int, error) {
	w.writeCookie()
	return w.ResponseWriter.Write(b)
}

func (w *sessionCookieWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *sessionCookieWriter) writeCookie() {
	if w.written {
		return
	}
	w.written = true

	if w.issue || w.session.Saved() || w.session.ID != w.cookieID {
		w.setCookie(w.ResponseWriter, w.session.ID)
	}
}

// SessionToken — источник токена для прокси /api/*.
func SessionToken(r *http.Request) string {
	if session := SessionFromCtx(r.Context()); session != nil {
		return session.Token
	}
	return ""
}

// RequestLogger пишет в лог метод, путь, статус, размер ответа и время обработки.
func RequestLogger(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Infof("%s %s %d %dB %s req_id=%s",
				r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
		})
	}
}

// AdminOnly пропускает только сессии с токеном администратора.
// JSON-маршруты получают 401/403, HTML-страницы перенаправляются на /admin/login.
func AdminOnly(auth usecase.AuthUC, redirect bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := SessionFromCtx(r.Context())

			if session.IsAuthenticated() && auth.IsAdmin(session.Token) {
				next.ServeHTTP(w, r)
				return
			}

			if redirect {
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}
			if !session.IsAuthenticated() {
				WriteError(w, e.ErrUnauthorized)
				return
			}
			WriteError(w, e.ErrForbidden)
		})
	}
}

// clientIP — адрес TCP-соединения без порта. Заголовки X-Forwarded-For и X-Real-IP
// задаёт клиент, поэтому для ограничения попыток входа они не используются.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
