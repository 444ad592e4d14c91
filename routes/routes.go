package routes

import (
	"net/http"

	"notification-service/controllers"
	"notification-service/ws"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, controller *controllers.NotificationController, hub *ws.Hub) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "notification-service"})
	})

	router.GET("/ws/:userId", hub.Handler())

	notifications := router.Group("/notifications")
	{
		notifications.GET("/user/:userId", controller.GetByUser)
		notifications.GET("/user/:userId/unread", controller.GetUnreadByUser)
		notifications.GET("/:id", controller.GetByID)
		notifications.PATCH("/:id/read", controller.MarkAsRead)
		notifications.DELETE("/:id", controller.Delete)
	}
}
