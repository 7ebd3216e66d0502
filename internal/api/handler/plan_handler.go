package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/service"
)

// TrainingPlanHandler serves trainer-side plan CRUD. Athlete reads go through
// AthleteHandler.
type TrainingPlanHandler struct {
	plans *service.TrainingPlanService
}

func NewTrainingPlanHandler(plans *service.TrainingPlanService) *TrainingPlanHandler {
	return &TrainingPlanHandler{plans: plans}
}

type trainingPlanRequest struct {
	ClientID    string                   `json:"client_id" validate:"required"`
	Name        string                   `json:"name" validate:"required"`
	Description string                   `json:"description"`
	Sessions    []domain.TrainingSession `json:"sessions"`
	Active      bool                     `json:"active"`
}

type updateTrainingPlanRequest struct {
	Name        string                   `json:"name" validate:"required"`
	Description string                   `json:"description"`
	Sessions    []domain.TrainingSession `json:"sessions"`
	Active      bool                     `json:"active"`
}

func (h *TrainingPlanHandler) Create(c echo.Context) error {
	var req trainingPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.plans.Create(c.Request().Context(), tenantID(c), domain.TrainingPlan{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Sessions:    req.Sessions,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *TrainingPlanHandler) List(c echo.Context) error {
	plans, err := h.plans.ListByTrainer(c.Request().Context(), tenantID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

func (h *TrainingPlanHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	plan, err := h.plans.Get(c.Request().Context(), c.Param("id"), tenantID(c), claims.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *TrainingPlanHandler) Update(c echo.Context) error {
	var req updateTrainingPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.plans.Update(c.Request().Context(), c.Param("id"), tenantID(c), domain.TrainingPlan{
		Name:        req.Name,
		Description: req.Description,
		Sessions:    req.Sessions,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *TrainingPlanHandler) Delete(c echo.Context) error {
	if err := h.plans.Delete(c.Request().Context(), c.Param("id"), tenantID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// NutritionPlanHandler mirrors TrainingPlanHandler for nutrition plans.
type NutritionPlanHandler struct {
	plans *service.NutritionPlanService
}

func NewNutritionPlanHandler(plans *service.NutritionPlanService) *NutritionPlanHandler {
	return &NutritionPlanHandler{plans: plans}
}

type nutritionPlanRequest struct {
	ClientID     string              `json:"client_id" validate:"required"`
	Name         string              `json:"name" validate:"required"`
	CaloriesKcal float64             `json:"calories_kcal" validate:"omitempty,gt=0"`
	Macros       domain.MacroTargets `json:"macros"`
	Meals        []domain.Meal       `json:"meals"`
	Active       bool                `json:"active"`
}

type updateNutritionPlanRequest struct {
	Name         string              `json:"name" validate:"required"`
	CaloriesKcal float64             `json:"calories_kcal" validate:"omitempty,gt=0"`
	Macros       domain.MacroTargets `json:"macros"`
	Meals        []domain.Meal       `json:"meals"`
	Active       bool                `json:"active"`
}

func (h *NutritionPlanHandler) Create(c echo.Context) error {
	var req nutritionPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.plans.Create(c.Request().Context(), tenantID(c), domain.NutritionPlan{
		ClientID:     req.ClientID,
		Name:         req.Name,
		CaloriesKcal: req.CaloriesKcal,
		Macros:       req.Macros,
		Meals:        req.Meals,
		Active:       req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *NutritionPlanHandler) List(c echo.Context) error {
	plans, err := h.plans.ListByTrainer(c.Request().Context(), tenantID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

func (h *NutritionPlanHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	plan, err := h.plans.Get(c.Request().Context(), c.Param("id"), tenantID(c), claims.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *NutritionPlanHandler) Update(c echo.Context) error {
	var req updateNutritionPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.plans.Update(c.Request().Context(), c.Param("id"), tenantID(c), domain.NutritionPlan{
		Name:         req.Name,
		CaloriesKcal: req.CaloriesKcal,
		Macros:       req.Macros,
		Meals:        req.Meals,
		Active:       req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *NutritionPlanHandler) Delete(c echo.Context) error {
	if err := h.plans.Delete(c.Request().Context(), c.Param("id"), tenantID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
