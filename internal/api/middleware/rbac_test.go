package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

func invokeRBAC(t *testing.T, mw echo.MiddlewareFunc, role string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", role)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestRBAC_Allows(t *testing.T) {
	rec, called := invokeRBAC(t, RBAC(domain.RoleAdmin, domain.RoleEmployee), domain.RoleAdmin)
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	rec, called := invokeRBAC(t, RBAC(domain.RoleAdmin), domain.RoleClient)
	if called {
		t.Fatalf("next handler called for forbidden role")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_DeletedRoleForbidden(t *testing.T) {
	// Soft-deleted identities carry a sentinel role that no allow-list contains.
	rec, _ := invokeRBAC(t, RBAC(domain.RoleClient), domain.DeletedRole(domain.RoleClient))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for deleted role, got %d", rec.Code)
	}
}

func TestRoleHelpers(t *testing.T) {
	cases := []struct {
		name  string
		mw    echo.MiddlewareFunc
		role  string
		allow bool
	}{
		{"trainer admits admin", TrainerOnly(), domain.RoleAdmin, true},
		{"trainer admits employee", TrainerOnly(), domain.RoleEmployee, true},
		{"trainer rejects client", TrainerOnly(), domain.RoleClient, false},
		{"athlete admits client", AthleteOnly(), domain.RoleClient, true},
		{"athlete rejects admin", AthleteOnly(), domain.RoleAdmin, false},
		{"superadmin admits superadmin", SuperadminOnly(), domain.RoleSuperadmin, true},
		{"superadmin rejects admin", SuperadminOnly(), domain.RoleAdmin, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, called := invokeRBAC(t, tc.mw, tc.role)
			if called != tc.allow {
				t.Fatalf("called=%v, want %v", called, tc.allow)
			}
		})
	}
}
