package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/service"
)

// InviteHandler exposes invite issuance to trainers and validation to the
// public onboarding page.
type InviteHandler struct {
	invites *service.InviteService
}

func NewInviteHandler(invites *service.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

type createInviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type validateInviteRequest struct {
	Code  string `json:"code"`
	Token string `json:"token"`
}

type validateInviteResponse struct {
	Email     string `json:"email"`
	TrainerID string `json:"trainer_id"`
	ExpiresAt string `json:"expires_at"`
}

// Create issues an invite for the trainer's prospective athlete.
func (h *InviteHandler) Create(c echo.Context) error {
	var req createInviteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invite, err := h.invites.Create(c.Request().Context(), tenantID(c), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, invite)
}

// List returns the trainer's invites, newest first.
func (h *InviteHandler) List(c echo.Context) error {
	invites, err := h.invites.List(c.Request().Context(), tenantID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invites)
}

// Revoke removes a pending invite the trainer owns.
func (h *InviteHandler) Revoke(c echo.Context) error {
	if err := h.invites.Revoke(c.Request().Context(), c.Param("id"), tenantID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Validate is the public pre-onboarding check: resolves the invite by code or
// link token and confirms it is still redeemable. The invite code itself is
// never echoed back.
func (h *InviteHandler) Validate(c echo.Context) error {
	var req validateInviteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	invite, err := h.invites.Validate(c.Request().Context(), req.Code, req.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, validateInviteResponse{
		Email:     invite.Email,
		TrainerID: invite.TrainerID,
		ExpiresAt: invite.ExpiresAt.Format(time.RFC3339),
	})
}
