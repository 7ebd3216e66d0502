package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/api/metrics"
	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/token"
)

// Route classification tables. Prefix match against the request path.
var (
	publicPrefixes = []string{
		"/api/auth/login",
		"/api/auth/register",
		"/api/invites/validate",
		"/api/onboarding",
		"/login",
		"/register",
		"/onboarding",
		"/health",
		"/metrics",
	}

	// authPages bounce already-authenticated visitors to their role home.
	authPages = []string{"/login", "/register"}

	trainerPrefixes    = []string{"/dashboard", "/api/clients", "/api/invites", "/api/employees"}
	athletePrefixes    = []string{"/athlete", "/api/athlete", "/api/checkins"}
	superadminPrefixes = []string{"/admin", "/api/admin"}
)

// GateConfig configures the edge request gate.
type GateConfig struct {
	Issuer *token.Issuer
	Log    zerolog.Logger
	// SecureCookies toggles the Secure attribute on minted cookies.
	SecureCookies bool
	// ResolveTenant maps claims to the tenant (owning trainer) id. Employees
	// resolve to their employer; everyone else to their own id. Optional.
	ResolveTenant func(ctx context.Context, claims token.Claims) string
}

// Gate is the single choke point every request passes through. It classifies
// the path, resolves identity from the session cookie, partitions protected
// areas by role, and opportunistically rotates tokens nearing expiry.
//
// Expired or malformed tokens are treated exactly like absent ones. Role-route
// mismatches never 403 here; callers are silently rerouted to their own home.
func Gate(cfg GateConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			claims, authenticated := gateClaims(c, cfg.Issuer)

			if isPublic(path) {
				if authenticated && matchesAny(path, authPages) {
					return c.Redirect(http.StatusFound, domain.HomePath(claims.Role))
				}
				if authenticated {
					injectClaims(c, cfg, claims)
					renewIfEligible(c, cfg, claims)
				}
				return next(c)
			}

			if !authenticated {
				if strings.HasPrefix(path, "/api/") {
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
				}
				return c.Redirect(http.StatusFound, "/login")
			}

			if home, ok := crossRole(path, claims.Role); ok {
				return c.Redirect(http.StatusFound, home)
			}

			injectClaims(c, cfg, claims)
			renewIfEligible(c, cfg, claims)

			return next(c)
		}
	}
}

// gateClaims reads and validates the session cookie.
func gateClaims(c echo.Context, issuer *token.Issuer) (token.Claims, bool) {
	cookie, err := c.Cookie(token.CookieName)
	if err != nil || cookie.Value == "" {
		return token.Claims{}, false
	}
	claims, err := issuer.Parse(cookie.Value)
	if err != nil {
		return token.Claims{}, false
	}
	return claims, true
}

func injectClaims(c echo.Context, cfg GateConfig, claims token.Claims) {
	c.Set("user_id", claims.ID)
	c.Set("email", claims.Email)
	c.Set("name", claims.Name)
	c.Set("role", claims.Role)

	tenant := claims.ID
	if cfg.ResolveTenant != nil {
		tenant = cfg.ResolveTenant(c.Request().Context(), claims)
	}
	c.Set("tenant_id", tenant)
}

// renewIfEligible mints a replacement token when the current one has less
// than the renewal window of lifetime left. Best-effort: a failure is logged
// and the request proceeds on the old token.
func renewIfEligible(c echo.Context, cfg GateConfig, claims token.Claims) {
	if !cfg.Issuer.ShouldRenew(claims, time.Now()) {
		return
	}
	signed, err := cfg.Issuer.Issue(claims)
	if err != nil {
		cfg.Log.Warn().Err(err).Str("user_id", claims.ID).Msg("token renewal failed")
		return
	}
	c.SetCookie(token.Cookie(signed, cfg.Issuer.TTL(), cfg.SecureCookies))
	metrics.TokensRenewedTotal.Inc()
}

// crossRole reports whether the path belongs to another role's partition and
// returns the caller's home when it does.
func crossRole(path, role string) (string, bool) {
	var allowed bool
	switch {
	case matchesAny(path, superadminPrefixes):
		allowed = role == domain.RoleSuperadmin
	case matchesAny(path, athletePrefixes):
		allowed = role == domain.RoleClient
	case matchesAny(path, trainerPrefixes):
		allowed = domain.TrainerRole(role)
	default:
		allowed = true
	}
	if allowed {
		return "", false
	}
	return domain.HomePath(role), true
}

func isPublic(path string) bool {
	return matchesAny(path, publicPrefixes)
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
