package registration

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/notification"
	"github.com/tourneo/tourneo/internal/team"
	"github.com/tourneo/tourneo/internal/tournament"
)

// RegistrationRoutes sets up registration and payment routes.
func RegistrationRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewRegistrationRepository(db)
	tournaments := tournament.NewTournamentRepository(db)
	teams := team.NewTeamRepository(db)
	publisher := notification.NewDispatcher(notification.NewNotificationRepository(db))
	controller := NewRegistrationController(repo, tournaments, teams, publisher)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/registrations", controller.RegisterForTournament)
		authRoutes.POST("/registrations/:registration_id/pay", controller.PayRegistration)
		authRoutes.GET("/users/me/registrations", controller.GetMyRegistrations)
	}
}
