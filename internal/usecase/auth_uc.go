package usecase

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/cfg"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
	"golang.org/x/time/rate"
)

type AuthUCImpl struct {
	api      AuthAPI
	sessions SessionUC
	limiter  *LoginLimiter
	cfg      *cfg.AuthCfg
	logger   logger.Logger
	now      func() time.Time
}

func NewAuthUC(api AuthAPI, sessions SessionUC, cfg *cfg.AuthCfg, logger logger.Logger) *AuthUCImpl {
	return &AuthUCImpl{
		api:      api,
		sessions: sessions,
		limiter:  NewLoginLimiter(rate.Limit(cfg.LoginRate), cfg.LoginBurst),
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Login проверяет учётные данные у бэкенда и сохраняет токен в сессии.
// При ошибке сессия не меняется.
func (a *AuthUCImpl) Login(ctx context.Context, session *domain.Session, clientIP string, req *domain.LoginReq) (*domain.User, error) {
	res, err := a.login(ctx, clientIP, req)
	if err != nil {
		return nil, err
	}

	return a.remember(ctx, session, res)
}

// AdminLogin — вход в админку: токен должен нести роль администратора.
func (a *AuthUCImpl) AdminLogin(ctx context.Context, session *domain.Session, clientIP string, req *domain.LoginReq) (*domain.User, error) {
	res, err := a.login(ctx, clientIP, req)
	if err != nil {
		return nil, err
	}

	if !a.IsAdmin(res.Token) {
		a.logger.Warnf("admin login refused for %s: role is not %s", req.Email, a.cfg.AdminRole)
		return nil, e.ErrForbidden
	}

	return a.remember(ctx, session, res)
}

func (a *AuthUCImpl) Register(ctx context.Context, session *domain.Session, clientIP string, req *domain.RegisterReq) (*domain.User, error) {
	if !a.limiter.Allow(clientIP) {
		return nil, e.ErrTooManyRequests
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return nil, e.ErrMissingFields
	}

	res, err := a.api.Register(ctx, req)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a.remember(ctx, session, res)
}

func (a *AuthUCImpl) Logout(ctx context.Context, session *domain.Session) error {
	session.Logout()
	if err := a.sessions.Save(ctx, session); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

// IsAdmin сообщает, что токен не истёк и содержит role=admin.
// С JWT_SECRET подпись проверяется, без него claims читаются как есть: решение всё равно за бэкендом.
func (a *AuthUCImpl) IsAdmin(token string) bool {
	claims, err := a.claims(token)
	if err != nil {
		a.logger.Debugf("token rejected: %v", err)
		return false
	}

	role, _ := claims["role"].(string)
	return role == a.cfg.AdminRole
}

func (a *AuthUCImpl) login(ctx context.Context, clientIP string, req *domain.LoginReq) (*domain.AuthRes, error) {
	if !a.limiter.Allow(clientIP) {
		a.logger.Warnf("login throttled for %s", clientIP)
		return nil, e.ErrTooManyRequests
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, e.ErrMissingFields
	}

	res, err := a.api.Login(ctx, req)
	if err != nil {
		if status, ok := e.BackendStatus(err); ok && (status == http.StatusUnauthorized || status == http.StatusBadRequest) {
			return nil, e.ErrInvalidCredentials
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if res.Token == "" {
		return nil, e.ErrInvalidCredentials
	}

	return res, nil
}

func (a *AuthUCImpl) remember(ctx context.Context, session *domain.Session, res *domain.AuthRes) (*domain.User, error) {
	prevToken, prevUser := session.Token, session.User

	session.Token = res.Token
	session.User = res.User

	if err := a.sessions.Rotate(ctx, session); err != nil {
		session.Token, session.User = prevToken, prevUser
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return res.User, nil
}

func (a *AuthUCImpl) claims(token string) (jwt.MapClaims, error) {
	if token == "" {
		return nil, e.ErrUnauthorized
	}

	claims := jwt.MapClaims{}

	if a.cfg.JWTSecret != "" {
		parser := jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
			jwt.WithLeeway(a.cfg.TokenLeeway),
			jwt.WithTimeFunc(a.now),
		)
		if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
			return []byte(a.cfg.JWTSecret), nil
		}); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		return claims, nil
	}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if exp != nil && a.now().After(exp.Add(a.cfg.TokenLeeway)) {
		return nil, e.Wrap(whereami.WhereAmI(), jwt.ErrTokenExpired)
	}

	return claims, nil
}

const maxTrackedVisitors = 1024

// LoginLimiter ограничивает частоту попыток входа с одного IP.
type LoginLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	visitors map[string]*visitor
	ttl      time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLoginLimiter(limit rate.Limit, burst int) *LoginLimiter {
	return &LoginLimiter{
		limit:    limit,
		burst:    burst,
		visitors: make(map[string]*visitor),
		ttl:      10 * time.Minute,
	}
}

func (l *LoginLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	v, ok := l.visitors[ip]
	if !ok {
		if len(l.visitors) >= maxTrackedVisitors {
			l.evict(now)
		}
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// evict убирает IP, которые давно не приходили. Если таких нет, освобождает место,
// удаляя самый давний. Вызывается под мьютексом.
func (l *LoginLimiter) evict(now time.Time) {
	var (
		oldestIP string
		oldest   time.Time
	)
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, ip)
			continue
		}
		if oldestIP == "" || v.lastSeen.Before(oldest) {
			oldestIP, oldest = ip, v.lastSeen
		}
	}

	if len(l.visitors) >= maxTrackedVisitors {
		delete(l.visitors, oldestIP)
	}
}

func (l *LoginLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}
