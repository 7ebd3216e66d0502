package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
	"github.com/joaaoazul/siganext/internal/core/service"
)

// ClientHandler serves the trainer-side athlete roster plus the metric and
// check-in subresources.
type ClientHandler struct {
	clients  *service.ClientService
	checkins *service.CheckInService
}

func NewClientHandler(clients *service.ClientService, checkins *service.CheckInService) *ClientHandler {
	return &ClientHandler{clients: clients, checkins: checkins}
}

type createClientRequest struct {
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     string  `json:"phone"`
	BirthDate string  `json:"birth_date"` // YYYY-MM-DD
	Sex       string  `json:"sex" validate:"omitempty,oneof=male female"`
	HeightCm  float64 `json:"height_cm" validate:"omitempty,gt=0"`
	WeightKg  float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	Goals     string  `json:"goals"`
}

type updateClientRequest struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	HeightCm float64 `json:"height_cm" validate:"omitempty,gt=0"`
	WeightKg float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	Goals    string  `json:"goals"`
}

// List returns the trainer's active athletes.
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.clients.List(c.Request().Context(), tenantID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// Create adds a profile-only athlete to the roster.
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
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

	created, err := h.clients.Create(c.Request().Context(), tenantID(c), domain.Client{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: birth,
		Sex:       req.Sex,
		HeightCm:  req.HeightCm,
		WeightKg:  req.WeightKg,
		Goals:     req.Goals,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Get returns one athlete the trainer owns.
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.clients.Get(c.Request().Context(), c.Param("id"), tenantID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Update mutates profile fields of an owned athlete.
func (h *ClientHandler) Update(c echo.Context) error {
	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clients.Update(c.Request().Context(), c.Param("id"), tenantID(c), ports.ClientUpdateInput{
		Name:     req.Name,
		Phone:    req.Phone,
		HeightCm: req.HeightCm,
		WeightKg: req.WeightKg,
		Goals:    req.Goals,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Delete soft-deletes the athlete and disables their login.
func (h *ClientHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	actor := domain.AuditEntry{ActorID: claims.ID, ActorRole: claims.Role}
	if err := h.clients.SoftDelete(c.Request().Context(), c.Param("id"), tenantID(c), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Metrics returns the athlete's body composition history.
func (h *ClientHandler) Metrics(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	history, err := h.clients.MetricHistory(c.Request().Context(), c.Param("id"), tenantID(c), claims.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}

// CheckIns returns the athlete's check-ins for the owning trainer.
func (h *ClientHandler) CheckIns(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	list, err := h.checkins.List(c.Request().Context(), c.Param("id"), tenantID(c), claims.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
