package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/service"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the caller's notifications; ?unread=true narrows to unread.
func (h *NotificationHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	list, err := h.notifications.List(c.Request().Context(), claims.ID, c.QueryParam("unread") == "true")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// MarkRead stamps one notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.Request().Context(), c.Param("id"), claims.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unread returns the caller's cached unread notification count.
func (h *NotificationHandler) Unread(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadResponse{Unread: h.notifications.UnreadCount(c.Request().Context(), claims.ID)})
}
