package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"disabled account", domain.ErrAccountDisabled, http.StatusUnauthorized, "account disabled"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"duplicate email", domain.ErrUserExists, http.StatusConflict, "email already registered"},
		{"validation", domain.ErrValidation, http.StatusBadRequest, "invalid input"},
		{"expired invite", domain.ErrInviteExpired, http.StatusBadRequest, "invite expired"},
		{"bad transition", domain.ErrInvalidTransition, http.StatusUnprocessableEntity, "invalid status transition"},
		{"missing client", domain.ErrClientNotFound, http.StatusNotFound, "client not found"},
		{"echo error", echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts"), http.StatusTooManyRequests, "too many attempts"},
		{"wrapped domain error", fmt.Errorf("find booking slot: %w", domain.ErrNotFound), http.StatusNotFound, "not found"},
		{"unexpected", errors.New("mongo: topology closed"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handle(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("code %d, want %d", rec.Code, tc.code)
			}
			if !strings.Contains(rec.Body.String(), tc.body) {
				t.Fatalf("body %q, want it to mention %q", rec.Body.String(), tc.body)
			}
		})
	}
}
