package tournament

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tourneo/tourneo/internal/game"
	mw "github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/organization"
)

// TournamentRoutes sets up tournament catalog routes.
func TournamentRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewTournamentRepository(db)
	orgs := organization.NewOrganizationRepository(db)
	games := game.NewGameRepository(db)
	controller := NewTournamentController(repo, orgs, games)

	// Catalog reads are public.
	router.GET("/organizations/:org_id/tournaments", controller.GetOrganizationTournaments)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/organizations/:org_id/tournaments", controller.CreateTournament)
		authRoutes.PUT("/organizations/:org_id/tournaments/:tournament_id", controller.UpdateTournament)
		authRoutes.POST("/organizations/:org_id/tournaments/:tournament_id/categories", controller.AddCategory)
		authRoutes.PUT("/organizations/:org_id/tournaments/:tournament_id/categories/:category_id", controller.UpdateCategory)
		authRoutes.DELETE("/organizations/:org_id/tournaments/:tournament_id/categories/:category_id", controller.DeleteCategory)
		authRoutes.GET("/users/me/hosted-tournaments", controller.GetHostedTournaments)
	}
}
