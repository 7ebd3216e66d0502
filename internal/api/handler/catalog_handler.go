package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/service"
)

// CatalogHandler serves the shared exercise and food catalogs. Reads are open
// to all authenticated roles; writes are restricted by route middleware.
type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type exerciseRequest struct {
	Name        string `json:"name" validate:"required"`
	MuscleGroup string `json:"muscle_group"`
	Equipment   string `json:"equipment"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
}

type foodRequest struct {
	Name        string  `json:"name" validate:"required"`
	KcalPer100g float64 `json:"kcal_per_100g" validate:"gte=0"`
	ProteinG    float64 `json:"protein_g" validate:"gte=0"`
	CarbsG      float64 `json:"carbs_g" validate:"gte=0"`
	FatG        float64 `json:"fat_g" validate:"gte=0"`
}

func (h *CatalogHandler) CreateExercise(c echo.Context) error {
	var req exerciseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.catalog.CreateExercise(c.Request().Context(), tenantID(c), domain.Exercise{
		Name:        req.Name,
		MuscleGroup: req.MuscleGroup,
		Equipment:   req.Equipment,
		VideoURL:    req.VideoURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHandler) ListExercises(c echo.Context) error {
	exercises, err := h.catalog.ListExercises(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, exercises)
}

func (h *CatalogHandler) UpdateExercise(c echo.Context) error {
	var req exerciseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ex, err := h.catalog.UpdateExercise(c.Request().Context(), c.Param("id"), domain.Exercise{
		Name:        req.Name,
		MuscleGroup: req.MuscleGroup,
		Equipment:   req.Equipment,
		VideoURL:    req.VideoURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ex)
}

func (h *CatalogHandler) DeleteExercise(c echo.Context) error {
	if err := h.catalog.DeleteExercise(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) CreateFood(c echo.Context) error {
	var req foodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.catalog.CreateFood(c.Request().Context(), tenantID(c), domain.Food{
		Name:        req.Name,
		KcalPer100g: req.KcalPer100g,
		ProteinG:    req.ProteinG,
		CarbsG:      req.CarbsG,
		FatG:        req.FatG,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHandler) ListFoods(c echo.Context) error {
	foods, err := h.catalog.ListFoods(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, foods)
}

func (h *CatalogHandler) UpdateFood(c echo.Context) error {
	var req foodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	food, err := h.catalog.UpdateFood(c.Request().Context(), c.Param("id"), domain.Food{
		Name:        req.Name,
		KcalPer100g: req.KcalPer100g,
		ProteinG:    req.ProteinG,
		CarbsG:      req.CarbsG,
		FatG:        req.FatG,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, food)
}

func (h *CatalogHandler) DeleteFood(c echo.Context) error {
	if err := h.catalog.DeleteFood(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
