package controllers

import (
	"net/http"

	"notification-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationController struct {
	query  services.QueryService
	logger *zap.Logger
}

func NewNotificationController(query services.QueryService, logger *zap.Logger) *NotificationController {
	return &NotificationController{query: query, logger: logger}
}

func (nc *NotificationController) GetByUser(ctx *gin.Context) {
	userID := ctx.Param("userId")

	notifications, err := nc.query.GetByUserID(ctx.Request.Context(), userID)
	if err != nil {
		nc.logger.Error("failed to get notifications",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

func (nc *NotificationController) GetUnreadByUser(ctx *gin.Context) {
	userID := ctx.Param("userId")

	notifications, err := nc.query.GetUnreadByUserID(ctx.Request.Context(), userID)
	if err != nil {
		nc.logger.Error("failed to get unread notifications",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

func (nc *NotificationController) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	notification, err := nc.query.GetByID(ctx.Request.Context(), id)
	if err != nil {
		nc.logger.Error("failed to get notification",
			zap.String("notification_id", id),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if notification == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}

	ctx.JSON(http.StatusOK, notification)
}

func (nc *NotificationController) MarkAsRead(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := nc.query.MarkAsRead(ctx.Request.Context(), id); err != nil {
		nc.logger.Error("failed to mark notification as read",
			zap.String("notification_id", id),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Delete acknowledges the request without deleting anything: notifications
// are never removed by this service.
func (nc *NotificationController) Delete(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}
