package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tourneo/tourneo/config"
	"github.com/tourneo/tourneo/internal/organization"
	"github.com/tourneo/tourneo/internal/user"
)

// AuthRoutes sets up registration and login routes.
func AuthRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	users := user.NewUserRepository(db)
	orgs := organization.NewOrganizationRepository(db)
	controller := NewAuthController(users, orgs, cfg)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", controller.Register)
		authGroup.POST("/login", controller.Login)
	}
}
