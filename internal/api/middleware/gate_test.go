package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/token"
)

func gateServer(t *testing.T, issuer *token.Issuer) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.Use(Gate(GateConfig{Issuer: issuer, Log: zerolog.Nop()}))

	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/health", ok)
	e.GET("/login", ok)
	e.GET("/dashboard", ok)
	e.GET("/athlete", ok)
	e.GET("/api/clients", ok)
	e.GET("/api/bookings", ok)
	e.GET("/api/auth/me", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("user_id").(string))
	})
	return e
}

func gateRequest(e *echo.Echo, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: token.CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGate_PublicPassthrough(t *testing.T) {
	e := gateServer(t, token.NewIssuer("s", time.Hour, 0))

	if rec := gateRequest(e, "/login", ""); rec.Code != http.StatusOK {
		t.Fatalf("anonymous /login: got %d, want 200", rec.Code)
	}
}

func TestGate_AnonymousProtected(t *testing.T) {
	e := gateServer(t, token.NewIssuer("s", time.Hour, 0))

	if rec := gateRequest(e, "/api/clients", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous api: got %d, want 401", rec.Code)
	}
	rec := gateRequest(e, "/dashboard", "")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("anonymous page: got %d -> %q, want 302 -> /login", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGate_ExpiredBehavesLikeAbsent(t *testing.T) {
	issuer := token.NewIssuer("s", time.Hour, 0)
	expired, err := token.NewIssuer("s", -time.Hour, 0).Issue(token.Claims{ID: "u1", Role: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	e := gateServer(t, issuer)
	if rec := gateRequest(e, "/api/clients", expired); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token on api: got %d, want 401", rec.Code)
	}
	rec := gateRequest(e, "/dashboard", expired)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expired token on page: got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGate_AuthPageBounce(t *testing.T) {
	issuer := token.NewIssuer("s", time.Hour, 0)
	signed, _ := issuer.Issue(token.Claims{ID: "u1", Role: "admin"})

	e := gateServer(t, issuer)
	rec := gateRequest(e, "/login", signed)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("authenticated /login: got %d -> %q, want 302 -> /dashboard", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGate_CrossRoleReroute(t *testing.T) {
	issuer := token.NewIssuer("s", time.Hour, 0)
	e := gateServer(t, issuer)

	cases := []struct {
		role, path, home string
	}{
		{"client", "/dashboard", "/athlete"},
		{"admin", "/athlete", "/dashboard"},
		{"admin", "/api/admin/stats", "/dashboard"},
		{"employee", "/admin", "/dashboard"},
	}
	for _, tc := range cases {
		signed, _ := issuer.Issue(token.Claims{ID: "u1", Role: tc.role})
		rec := gateRequest(e, tc.path, signed)
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != tc.home {
			t.Errorf("%s on %s: got %d -> %q, want 302 -> %s",
				tc.role, tc.path, rec.Code, rec.Header().Get("Location"), tc.home)
		}
	}
}

func TestGate_InjectsClaims(t *testing.T) {
	issuer := token.NewIssuer("s", time.Hour, 0)
	signed, _ := issuer.Issue(token.Claims{ID: "u42", Role: "admin"})

	e := gateServer(t, issuer)
	rec := gateRequest(e, "/api/auth/me", signed)
	if rec.Code != http.StatusOK || rec.Body.String() != "u42" {
		t.Fatalf("claims injection: got %d %q", rec.Code, rec.Body.String())
	}
}

func TestGate_SilentRenewal(t *testing.T) {
	// Token lifetime sits entirely inside the renewal window.
	issuer := token.NewIssuer("s", time.Hour, 2*time.Hour)
	signed, _ := issuer.Issue(token.Claims{ID: "u1", Role: "admin"})

	e := gateServer(t, issuer)
	rec := gateRequest(e, "/api/bookings", signed)
	if rec.Code != http.StatusOK {
		t.Fatalf("request failed: %d", rec.Code)
	}

	var renewed bool
	for _, sc := range rec.Header().Values("Set-Cookie") {
		if strings.HasPrefix(sc, token.CookieName+"=") {
			renewed = true
		}
	}
	if !renewed {
		t.Fatal("expected a replacement session cookie")
	}

	// Renewal is a side effect of decoding the token, so an authenticated
	// call to a public path rotates too.
	signed, _ = issuer.Issue(token.Claims{ID: "u1", Role: "admin"})
	rec = gateRequest(e, "/health", signed)
	if rec.Code != http.StatusOK {
		t.Fatalf("public request failed: %d", rec.Code)
	}
	renewed = false
	for _, sc := range rec.Header().Values("Set-Cookie") {
		if strings.HasPrefix(sc, token.CookieName+"=") {
			renewed = true
		}
	}
	if !renewed {
		t.Fatal("expected renewal on an authenticated public request")
	}

	// Fresh token, no renewal.
	fresh := token.NewIssuer("s", time.Hour, time.Minute)
	signed, _ = fresh.Issue(token.Claims{ID: "u1", Role: "admin"})
	e = gateServer(t, fresh)
	rec = gateRequest(e, "/api/bookings", signed)
	for _, sc := range rec.Header().Values("Set-Cookie") {
		if strings.HasPrefix(sc, token.CookieName+"=") {
			t.Fatalf("unexpected renewal: %s", sc)
		}
	}
}
