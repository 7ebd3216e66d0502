package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/ports"
	"github.com/joaaoazul/siganext/internal/core/service"
)

// AdminHandler serves the superadmin area: platform stats, incidents and the
// audit log.
type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type openIncidentRequest struct {
	Severity string `json:"severity" validate:"required,oneof=low medium high critical"`
	Title    string `json:"title" validate:"required"`
	Detail   string `json:"detail"`
}

func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) OpenIncident(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req openIncidentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inc, err := h.admin.OpenIncident(c.Request().Context(), claims.ID, req.Severity, req.Title, req.Detail)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, inc)
}

// ListIncidents returns incidents; ?open=true narrows to unresolved ones.
func (h *AdminHandler) ListIncidents(c echo.Context) error {
	list, err := h.admin.ListIncidents(c.Request().Context(), c.QueryParam("open") == "true")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) ResolveIncident(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.admin.ResolveIncident(c.Request().Context(), c.Param("id"), claims.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Logs queries the audit log with optional actor, resource, since and limit
// filters.
func (h *AdminHandler) Logs(c echo.Context) error {
	filter := ports.AuditFilter{
		ActorID:  c.QueryParam("actor_id"),
		Resource: c.QueryParam("resource"),
	}
	if raw := c.QueryParam("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "since must be RFC3339")
		}
		filter.Since = since
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		filter.Limit = limit
	}

	entries, err := h.admin.Logs(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
