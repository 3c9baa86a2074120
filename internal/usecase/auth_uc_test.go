package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/profibuy/storefront/internal/cfg"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

const testSecret = "test-secret"

type fakeAuthAPI struct {
	users map[string]*domain.AuthRes
	calls int
}

func (f *fakeAuthAPI) Login(_ context.Context, req *domain.LoginReq) (*domain.AuthRes, error) {
	f.calls++
	res, ok := f.users[req.Email]
	if !ok || req.Password != "heslo" {
		return nil, &e.BackendError{StatusCode: 401, Message: "Invalid credentials"}
	}
	return res, nil
}

func (f *fakeAuthAPI) Register(_ context.Context, req *domain.RegisterReq) (*domain.AuthRes, error) {
	f.calls++
	if _, ok := f.users[req.Email]; ok {
		return nil, &e.BackendError{StatusCode: 409, Message: "Email already registered"}
	}
	return &domain.AuthRes{Token: "new-token", User: &domain.User{Email: req.Email, Role: domain.RoleCustomer}}, nil
}

func signToken(t *testing.T, secret, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u1",
		"email": "admin@megashop.sk",
		"role":  role,
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newAuthFixture(t *testing.T, secret string) (*AuthUCImpl, *fakeAuthAPI, *domain.Session) {
	t.Helper()
	api := &fakeAuthAPI{users: map[string]*domain.AuthRes{
		"admin@megashop.sk": {
			Token: signToken(t, testSecret, "admin", time.Now().Add(time.Hour)),
			User:  &domain.User{Email: "admin@megashop.sk", Role: domain.RoleAdmin},
		},
		"jana@megashop.sk": {
			Token: signToken(t, testSecret, "customer", time.Now().Add(time.Hour)),
			User:  &domain.User{Email: "jana@megashop.sk", Role: domain.RoleCustomer},
		},
	}}
	conf := &cfg.AuthCfg{
		JWTSecret:   secret,
		LoginRate:   1,
		LoginBurst:  3,
		AdminRole:   "admin",
		TokenLeeway: time.Second,
	}
	uc := NewAuthUC(api, NewSessionUC(newFakeSessionRepo(), logger.NewNop()), conf, logger.NewNop())
	return uc, api, domain.NewSession("s1", time.Now())
}

func TestLoginStoresToken(t *testing.T) {
	uc, _, session := newAuthFixture(t, testSecret)

	user, err := uc.Login(context.Background(), session, "10.0.0.1", &domain.LoginReq{Email: " jana@megashop.sk ", Password: "heslo"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "jana@megashop.sk" || !session.IsAuthenticated() {
		t.Fatalf("session not authenticated: %+v", session)
	}
}

func TestLoginFailureLeavesSession(t *testing.T) {
	uc, _, session := newAuthFixture(t, testSecret)
	session.Token = "previous"

	_, err := uc.Login(context.Background(), session, "10.0.0.1", &domain.LoginReq{Email: "jana@megashop.sk", Password: "wrong"})
	if !errors.Is(err, e.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if session.Token != "previous" {
		t.Fatal("failed login must not touch the session")
	}
}

func TestLoginThrottledPerIP(t *testing.T) {
	uc, api, session := newAuthFixture(t, testSecret)
	ctx := context.Background()
	req := func() *domain.LoginReq { return &domain.LoginReq{Email: "jana@megashop.sk", Password: "wrong"} }

	for i := 0; i < 3; i++ {
		_, _ = uc.Login(ctx, session, "10.0.0.9", req())
	}
	if _, err := uc.Login(ctx, session, "10.0.0.9", req()); !errors.Is(err, e.ErrTooManyRequests) {
		t.Fatalf("expected ErrTooManyRequests, got %v", err)
	}
	if api.calls != 3 {
		t.Fatalf("throttled attempt must not reach backend, calls=%d", api.calls)
	}

	// Другой IP не затронут.
	if _, err := uc.Login(ctx, session, "10.0.0.10", req()); errors.Is(err, e.ErrTooManyRequests) {
		t.Fatal("limiter must be per IP")
	}
}

func TestLoginLimiterBounded(t *testing.T) {
	l := NewLoginLimiter(1, 1)

	for i := 0; i < maxTrackedVisitors*3; i++ {
		l.Allow(fmt.Sprintf("10.%d.%d.%d", i>>16&0xff, i>>8&0xff, i&0xff))
	}
	if n := l.tracked(); n > maxTrackedVisitors {
		t.Fatalf("limiter tracks %d addresses, cap is %d", n, maxTrackedVisitors)
	}

	if !l.Allow("192.0.2.1") || l.Allow("192.0.2.1") {
		t.Fatal("fresh address must get exactly one attempt")
	}
}

func TestLoginRotatesSessionID(t *testing.T) {
	uc, _, session := newAuthFixture(t, testSecret)

	if _, err := uc.Login(context.Background(), session, "10.0.0.1", &domain.LoginReq{Email: "jana@megashop.sk", Password: "heslo"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.ID == "s1" || session.ID == "" {
		t.Fatalf("session id must change on login, got %q", session.ID)
	}
	if !session.Saved() {
		t.Fatal("rotated session must be saved")
	}
}

func TestAdminLoginRequiresRole(t *testing.T) {
	uc, _, session := newAuthFixture(t, testSecret)
	ctx := context.Background()

	if _, err := uc.AdminLogin(ctx, session, "1.1.1.1", &domain.LoginReq{Email: "jana@megashop.sk", Password: "heslo"}); !errors.Is(err, e.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if session.IsAuthenticated() {
		t.Fatal("refused admin login must not store token")
	}

	if _, err := uc.AdminLogin(ctx, session, "1.1.1.1", &domain.LoginReq{Email: "admin@megashop.sk", Password: "heslo"}); err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if !uc.IsAdmin(session.Token) {
		t.Fatal("admin token not recognised")
	}
}

func TestIsAdmin(t *testing.T) {
	verified, _, _ := newAuthFixture(t, testSecret)
	unverified, _, _ := newAuthFixture(t, "")

	valid := signToken(t, testSecret, "admin", time.Now().Add(time.Hour))
	foreign := signToken(t, "other-secret", "admin", time.Now().Add(time.Hour))
	expired := signToken(t, testSecret, "admin", time.Now().Add(-time.Hour))
	customer := signToken(t, testSecret, "customer", time.Now().Add(time.Hour))

	cases := []struct {
		name string
		uc   *AuthUCImpl
		tok  string
		want bool
	}{
		{"verified admin", verified, valid, true},
		{"wrong signature", verified, foreign, false},
		{"expired", verified, expired, false},
		{"customer", verified, customer, false},
		{"garbage", verified, "not-a-jwt", false},
		{"empty", verified, "", false},
		{"unverified admin", unverified, foreign, true},
		{"unverified expired", unverified, expired, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.uc.IsAdmin(c.tok); got != c.want {
				t.Fatalf("IsAdmin = %v, want %v", got, c.want)
			}
		})
	}
}

func TestRegisterAndLogout(t *testing.T) {
	uc, _, session := newAuthFixture(t, testSecret)
	ctx := context.Background()

	if _, err := uc.Register(ctx, session, "2.2.2.2", &domain.RegisterReq{Email: "novy@megashop.sk"}); !errors.Is(err, e.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}

	user, err := uc.Register(ctx, session, "2.2.2.2", &domain.RegisterReq{
		Email: "novy@megashop.sk", Password: "heslo123", FirstName: "Ján", LastName: "Nový",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "novy@megashop.sk" || session.Token != "new-token" {
		t.Fatalf("unexpected state after register: %+v", session)
	}

	session.Cart.Add(domain.CartItem{ProductID: "p1", Quantity: 1})
	if err := uc.Logout(ctx, session); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if session.IsAuthenticated() || session.User != nil {
		t.Fatal("logout must clear token and user")
	}
	if session.Cart.IsEmpty() {
		t.Fatal("logout keeps the cart")
	}
}
