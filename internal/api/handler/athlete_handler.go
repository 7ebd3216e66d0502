package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/service"
)

// AthleteHandler serves the athlete's own read surface under /api/athlete.
// The principal id in athlete tokens is the Client profile id, so every call
// keys directly off claims.ID.
type AthleteHandler struct {
	clients   *service.ClientService
	training  *service.TrainingPlanService
	nutrition *service.NutritionPlanService
	content   *service.ContentService
}

func NewAthleteHandler(clients *service.ClientService, training *service.TrainingPlanService, nutrition *service.NutritionPlanService, content *service.ContentService) *AthleteHandler {
	return &AthleteHandler{clients: clients, training: training, nutrition: nutrition, content: content}
}

// Profile returns the athlete's own profile.
func (h *AthleteHandler) Profile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	client, err := h.clients.GetOwn(c.Request().Context(), claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Metrics returns the athlete's own body composition history.
func (h *AthleteHandler) Metrics(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	history, err := h.clients.MetricHistory(c.Request().Context(), claims.ID, claims.ID, claims.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}

// TrainingPlans returns the plans assigned to the athlete.
func (h *AthleteHandler) TrainingPlans(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	plans, err := h.training.ListByClient(c.Request().Context(), claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

// NutritionPlans returns the nutrition plans assigned to the athlete.
func (h *AthleteHandler) NutritionPlans(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	plans, err := h.nutrition.ListByClient(c.Request().Context(), claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

// Content returns the material the athlete's trainer shared with them.
func (h *AthleteHandler) Content(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	items, err := h.content.ListForClient(c.Request().Context(), claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
