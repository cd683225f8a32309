package notification

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/tourneo/tourneo/internal/middleware"
)

// NotificationRoutes sets up notification routes.
func NotificationRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewNotificationRepository(db)
	controller := NewNotificationController(repo)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.GET("/users/me/notifications", controller.GetMyNotifications)
		authRoutes.PUT("/notifications/:notification_id/read", controller.MarkNotificationAsRead)
	}
}
