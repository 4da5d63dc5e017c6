package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/notification/model"
	"library-backend/internal/domains/notification/service"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type NotificationHandler struct {
	service service.Service
}

func NewNotificationHandler(svc service.Service) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// ListMine handles GET /v1/notifications/my?unread=true
func (h *NotificationHandler) ListMine(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.service.ListMine(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, notifications, &response.Meta{Total: len(notifications)})
}

// UnreadCount handles GET /v1/notifications/my/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	count, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": count})
}

// MarkRead handles PUT /v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	n, err := h.service.MarkRead(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, n)
}

// MarkAllRead handles PUT /v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	updated, err := h.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}

func (h *NotificationHandler) handleError(c *gin.Context, err error) {
	response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
}
