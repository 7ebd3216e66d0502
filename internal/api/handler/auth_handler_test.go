package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/token"
)

type stubAuth struct {
	login          func(ctx context.Context, email, password string) (string, *domain.User, error)
	register       func(ctx context.Context, name, email, password string) (*domain.User, error)
	refresh        func(ctx context.Context, claims token.Claims) (string, error)
	changePassword func(ctx context.Context, claims token.Claims, current, next string) error
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.login(ctx, email, password)
}
func (s *stubAuth) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.register(ctx, name, email, password)
}
func (s *stubAuth) Refresh(ctx context.Context, claims token.Claims) (string, error) {
	return s.refresh(ctx, claims)
}
func (s *stubAuth) ChangePassword(ctx context.Context, claims token.Claims, current, next string) error {
	return s.changePassword(ctx, claims, current, next)
}

func authContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	res := http.Response{Header: rec.Header()}
	for _, c := range res.Cookies() {
		if c.Name == token.CookieName {
			return c
		}
	}
	return nil
}

func TestLogin_SetsCookieNotBody(t *testing.T) {
	auth := &stubAuth{
		login: func(_ context.Context, email, password string) (string, *domain.User, error) {
			return "signed-token", &domain.User{ID: "u1", Email: email, Name: "Ana", Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(auth, token.NewIssuer("s", time.Hour, 0), false)

	c, rec := authContext(`{"email":"ana@gym.pt","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value != "signed-token" || !cookie.HttpOnly {
		t.Fatalf("session cookie missing or wrong: %+v", cookie)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["id"] != "u1" || body["role"] != domain.RoleAdmin {
		t.Fatalf("body %v", body)
	}
	// The token must never leave the cookie.
	if _, ok := body["token"]; ok {
		t.Fatal("token leaked into the response body")
	}
}

func TestLogin_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuth{}, token.NewIssuer("s", time.Hour, 0), false)

	c, _ := authContext(`{"email":"not-an-email","password":"x"}`)
	err := h.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400", err)
	}
}

func TestLogin_ServiceErrorPassedThrough(t *testing.T) {
	auth := &stubAuth{
		login: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(auth, token.NewIssuer("s", time.Hour, 0), false)

	c, _ := authContext(`{"email":"ana@gym.pt","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want the domain error for the central mapper", err)
	}
}

func TestRegister_Created(t *testing.T) {
	auth := &stubAuth{
		register: func(_ context.Context, name, email, _ string) (*domain.User, error) {
			return &domain.User{ID: "u1", Name: name, Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(auth, token.NewIssuer("s", time.Hour, 0), false)

	c, rec := authContext(`{"name":"Ana","email":"ana@gym.pt","password":"longenough"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, want 201", rec.Code)
	}
	if sessionCookie(rec) != nil {
		t.Fatal("register must not start a session")
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuth{}, token.NewIssuer("s", time.Hour, 0), false)

	c, rec := authContext("")
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value != "" || cookie.MaxAge != -1 {
		t.Fatalf("logout cookie: %+v", cookie)
	}
}
