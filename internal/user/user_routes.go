package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/tourneo/tourneo/internal/middleware"
)

// UserRoutes sets up profile and player profile routes.
func UserRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewUserRepository(db)
	controller := NewUserController(repo)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.GET("/users/me", controller.GetProfile)
		authRoutes.PUT("/users/me", controller.UpdateProfile)

		authRoutes.POST("/users/me/player-profiles", controller.CreatePlayerProfile)
		authRoutes.GET("/users/me/player-profiles", controller.GetPlayerProfiles)
		authRoutes.PUT("/users/me/player-profiles/:game_id", controller.UpdatePlayerProfile)
	}
}
