package organization

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/notification"
)

// OrganizationRoutes sets up organization and membership routes.
func OrganizationRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewOrganizationRepository(db)
	publisher := notification.NewDispatcher(notification.NewNotificationRepository(db))
	controller := NewOrganizationController(repo, publisher)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/organizations", controller.CreateOrganization)
		authRoutes.POST("/organizations/:org_id/join", controller.JoinOrganization)
		authRoutes.GET("/users/me/organizations", controller.GetMyOrganizations)
	}
}
