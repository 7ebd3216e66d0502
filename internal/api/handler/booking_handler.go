package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/service"
)

// BookingHandler serves session slots for both sides: trainers publish and
// manage slots, athletes book and release them. Listing branches on role.
type BookingHandler struct {
	bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createSlotRequest struct {
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required"`
	Notes    string    `json:"notes"`
}

// List returns the trainer's slots or, for athletes, their bookings plus their
// trainer's open slots.
func (h *BookingHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var slots []domain.BookingSlot
	if claims.Role == domain.RoleClient {
		slots, err = h.bookings.ListForClient(c.Request().Context(), claims.ID)
	} else {
		slots, err = h.bookings.ListForTrainer(c.Request().Context(), tenantID(c))
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, slots)
}

// Create publishes an open slot for the trainer.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createSlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slot, err := h.bookings.CreateSlot(c.Request().Context(), tenantID(c), req.StartsAt, req.EndsAt, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, slot)
}

// Book claims an open slot for the athlete.
func (h *BookingHandler) Book(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if claims.Role != domain.RoleClient {
		return domain.ErrForbidden
	}

	slot, err := h.bookings.Book(c.Request().Context(), c.Param("id"), claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, slot)
}

// Cancel releases a slot: athletes reopen their booking, trainers close the slot.
func (h *BookingHandler) Cancel(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	callerID := claims.ID
	if claims.Role != domain.RoleClient {
		callerID = tenantID(c)
	}
	slot, err := h.bookings.Cancel(c.Request().Context(), c.Param("id"), callerID, claims.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, slot)
}

// Complete marks a booked session as held.
func (h *BookingHandler) Complete(c echo.Context) error {
	slot, err := h.bookings.Complete(c.Request().Context(), c.Param("id"), tenantID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, slot)
}

// Delete removes a slot the trainer owns.
func (h *BookingHandler) Delete(c echo.Context) error {
	if err := h.bookings.DeleteSlot(c.Request().Context(), c.Param("id"), tenantID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
