package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/ports"
	"github.com/joaaoazul/siganext/internal/core/token"
)

// AuthHandler owns the session endpoints. The token always travels in the
// HTTP-only session cookie; it is never returned in a response body.
type AuthHandler struct {
	auth          ports.AuthService
	issuer        *token.Issuer
	secureCookies bool
}

func NewAuthHandler(auth ports.AuthService, issuer *token.Issuer, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, issuer: issuer, secureCookies: secureCookies}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type changePasswordRequest struct {
	Current string `json:"current_password" validate:"required"`
	Next    string `json:"new_password" validate:"required,min=8"`
}

type sessionResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	signed, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(token.Cookie(signed, h.issuer.TTL(), h.secureCookies))
	return c.JSON(http.StatusOK, sessionResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
}

// Register creates a trainer account. Athletes join via invite onboarding.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sessionResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
}

// Refresh re-signs the current session with a fresh expiry. Complements the
// gate's silent renewal for clients that want an explicit refresh.
func (h *AuthHandler) Refresh(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	signed, err := h.auth.Refresh(c.Request().Context(), claims)
	if err != nil {
		return err
	}

	c.SetCookie(token.Cookie(signed, h.issuer.TTL(), h.secureCookies))
	return c.NoContent(http.StatusNoContent)
}

// ChangePassword verifies the current password before storing the new one.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.ChangePassword(c.Request().Context(), claims, req.Current, req.Next); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Logout clears the session cookie. The signed token itself stays valid until
// expiry; there is no server-side revocation.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(token.ExpiredCookie(h.secureCookies))
	return c.NoContent(http.StatusNoContent)
}

// Me returns the caller's identity claims.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		ID:    claims.ID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	})
}
