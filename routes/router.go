package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/tourneo/tourneo/config"
	"github.com/tourneo/tourneo/internal/auth"
	"github.com/tourneo/tourneo/internal/game"
	"github.com/tourneo/tourneo/internal/match"
	"github.com/tourneo/tourneo/internal/notification"
	"github.com/tourneo/tourneo/internal/organization"
	"github.com/tourneo/tourneo/internal/registration"
	"github.com/tourneo/tourneo/internal/team"
	"github.com/tourneo/tourneo/internal/tournament"
	"github.com/tourneo/tourneo/internal/user"
)

// SetupRoutes builds the gin engine and mounts every feature's routes under
// /api.
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	auth.AuthRoutes(api, db, cfg)
	user.UserRoutes(api, db, cfg.JWT.Secret)
	organization.OrganizationRoutes(api, db, cfg.JWT.Secret)
	game.GameRoutes(api, db, cfg.JWT.Secret)
	tournament.TournamentRoutes(api, db, cfg.JWT.Secret)
	team.TeamRoutes(api, db, cfg.JWT.Secret)
	registration.RegistrationRoutes(api, db, cfg.JWT.Secret)
	notification.NotificationRoutes(api, db, cfg.JWT.Secret)
	match.MatchRoutes(api, db, cfg.JWT.Secret)

	return r
}
