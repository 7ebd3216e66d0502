package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/service"
)

// ContentHandler serves trainer-authored material. Athlete reads branch on
// role and respect the per-item audience.
type ContentHandler struct {
	content *service.ContentService
}

func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

type contentRequest struct {
	Title    string   `json:"title" validate:"required"`
	Kind     string   `json:"kind" validate:"required,oneof=video article pdf"`
	URL      string   `json:"url" validate:"required,url"`
	Audience []string `json:"audience"`
}

func (h *ContentHandler) Create(c echo.Context) error {
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.content.Create(c.Request().Context(), tenantID(c), domain.ContentItem{
		Title:    req.Title,
		Kind:     req.Kind,
		URL:      req.URL,
		Audience: req.Audience,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// List returns the trainer's own items, or the shared subset for athletes.
func (h *ContentHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var items []domain.ContentItem
	if claims.Role == domain.RoleClient {
		items, err = h.content.ListForClient(c.Request().Context(), claims.ID)
	} else {
		items, err = h.content.ListForTrainer(c.Request().Context(), tenantID(c))
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) Update(c echo.Context) error {
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.content.Update(c.Request().Context(), c.Param("id"), tenantID(c), domain.ContentItem{
		Title:    req.Title,
		Kind:     req.Kind,
		URL:      req.URL,
		Audience: req.Audience,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) Delete(c echo.Context) error {
	if err := h.content.Delete(c.Request().Context(), c.Param("id"), tenantID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
