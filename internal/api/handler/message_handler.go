package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/core/service"
)

// MessageHandler serves polled direct messaging. The ?since cursor lets
// clients fetch only messages newer than their last poll.
type MessageHandler struct {
	messages *service.MessageService
}

func NewMessageHandler(messages *service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Body        string `json:"body" validate:"required"`
}

type unreadResponse struct {
	Unread int64 `json:"unread"`
}

// Send stores a message addressed to another principal.
func (h *MessageHandler) Send(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.messages.Send(c.Request().Context(), claims.ID, req.RecipientID, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// Conversation returns the thread with the peer, optionally after ?since.
func (h *MessageHandler) Conversation(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var since time.Time
	if raw := c.QueryParam("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "since must be RFC3339")
		}
		since = parsed
	}

	msgs, err := h.messages.Conversation(c.Request().Context(), claims.ID, c.Param("peer"), since)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// MarkRead stamps the peer's messages to the caller as read.
func (h *MessageHandler) MarkRead(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.messages.MarkRead(c.Request().Context(), claims.ID, c.Param("peer")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unread returns the caller's cached unread message count.
func (h *MessageHandler) Unread(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadResponse{Unread: h.messages.UnreadCount(c.Request().Context(), claims.ID)})
}
