package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/registration"
	"github.com/tourneo/tourneo/internal/user"
)

// MatchRoutes sets up match history and stats routes.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewMatchRepository(db)
	registrations := registration.NewRegistrationRepository(db)
	users := user.NewUserRepository(db)
	controller := NewMatchController(repo, registrations, users)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.GET("/users/me/matches", controller.GetMyMatches)
		authRoutes.GET("/users/me/stats", controller.GetMyStats)
		authRoutes.GET("/users/me/tournament-history", controller.GetTournamentHistory)
	}
}
