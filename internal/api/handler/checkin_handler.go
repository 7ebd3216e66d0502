package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/service"
)

// CheckInHandler serves the athlete's self-report endpoints. Trainer reads go
// through the client subresource.
type CheckInHandler struct {
	checkins *service.CheckInService
}

func NewCheckInHandler(checkins *service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkins: checkins}
}

type checkInRequest struct {
	Date       string  `json:"date"` // YYYY-MM-DD, defaults to today
	WeightKg   float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	Mood       string  `json:"mood"`
	SleepHours float64 `json:"sleep_hours" validate:"omitempty,gte=0,lte=24"`
	Notes      string  `json:"notes"`
}

// Submit stores a check-in for the athlete and notifies their trainer.
func (h *CheckInHandler) Submit(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req checkInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	created, err := h.checkins.Submit(c.Request().Context(), claims.ID, domain.CheckIn{
		Date:       date,
		WeightKg:   req.WeightKg,
		Mood:       req.Mood,
		SleepHours: req.SleepHours,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// List returns the athlete's own check-ins.
func (h *CheckInHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	list, err := h.checkins.List(c.Request().Context(), claims.ID, claims.ID, claims.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
