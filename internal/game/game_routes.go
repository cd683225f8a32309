package game

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/tourneo/tourneo/internal/middleware"
)

// GameRoutes sets up game catalog routes.
func GameRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewGameRepository(db)
	controller := NewGameController(repo)

	router.GET("/games", controller.GetAllGames)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/games", controller.CreateGame)
	}
}
