package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/token"
)

// ctxClaims extracts the identity claims injected by the edge gate and
// fast-fails when they are missing: presence of role proves the gate ran.
func ctxClaims(c echo.Context) (token.Claims, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return token.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return token.Claims{
		ID:    str(c.Get("user_id")),
		Email: str(c.Get("email")),
		Name:  str(c.Get("name")),
		Role:  role,
	}, nil
}

// tenantID returns the owning trainer id resolved by the gate. For employees
// this is their employer's id; for everyone else their own.
func tenantID(c echo.Context) string {
	if t := str(c.Get("tenant_id")); t != "" {
		return t
	}
	return str(c.Get("user_id"))
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
