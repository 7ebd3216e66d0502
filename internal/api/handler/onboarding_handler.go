package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/ports"
	"github.com/joaaoazul/siganext/internal/core/service"
)

// OnboardingHandler exposes the public, invite-gated athlete signup.
type OnboardingHandler struct {
	onboarding *service.OnboardingService
}

func NewOnboardingHandler(onboarding *service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

type onboardingRequest struct {
	InviteCode  string  `json:"invite_code"`
	InviteToken string  `json:"invite_token"`
	Name        string  `json:"name" validate:"required"`
	Password    string  `json:"password" validate:"required,min=8"`
	Phone       string  `json:"phone"`
	BirthDate   string  `json:"birth_date"` // YYYY-MM-DD
	Sex         string  `json:"sex" validate:"omitempty,oneof=male female"`
	HeightCm    float64 `json:"height_cm" validate:"omitempty,gt=0"`
	WeightKg    float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	Goals       string  `json:"goals"`
}

// Complete redeems the invite and creates the linked athlete profile and login.
func (h *OnboardingHandler) Complete(c echo.Context) error {
	var req onboardingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var birth time.Time
	if req.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
		}
		birth = parsed
	}

	result, err := h.onboarding.Complete(c.Request().Context(), ports.OnboardingInput{
		InviteCode:  req.InviteCode,
		InviteToken: req.InviteToken,
		Name:        req.Name,
		Password:    req.Password,
		Phone:       req.Phone,
		BirthDate:   birth,
		Sex:         req.Sex,
		HeightCm:    req.HeightCm,
		WeightKg:    req.WeightKg,
		Goals:       req.Goals,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}
