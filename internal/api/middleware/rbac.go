package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

// RBAC enforces role-based access control on a route group. Handlers behind
// it still re-check ownership; this is the allow-list layer of the defense.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// TrainerOnly admits the PT-side roles.
func TrainerOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin, domain.RoleEmployee)
}

// AthleteOnly admits athletes.
func AthleteOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleClient)
}

// SuperadminOnly admits platform operators.
func SuperadminOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleSuperadmin)
}
