package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/notification"
	"github.com/tourneo/tourneo/internal/tournament"
)

// TeamRoutes sets up team lifecycle routes.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewTeamRepository(db)
	tournaments := tournament.NewTournamentRepository(db)
	publisher := notification.NewDispatcher(notification.NewNotificationRepository(db))
	controller := NewTeamController(repo, tournaments, publisher)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/teams", controller.CreateTeam)
		authRoutes.POST("/teams/:team_id/invites", controller.InviteTeamMember)
		authRoutes.POST("/teams/:team_id/invites/respond", controller.RespondToTeamInvite)
		authRoutes.DELETE("/teams/:team_id/members/:user_id", controller.RemoveTeamMember)
		authRoutes.POST("/teams/:team_id/leave", controller.LeaveTeam)
		authRoutes.GET("/users/me/teams", controller.GetMyTeams)
		authRoutes.GET("/users/me/team-invites", controller.GetTeamInvites)
	}
}
