package main

import (
	"github.com/rs/zerolog/log"

	"github.com/tourneo/tourneo/config"
	_ "github.com/tourneo/tourneo/docs"
	"github.com/tourneo/tourneo/internal/game"
	"github.com/tourneo/tourneo/internal/match"
	"github.com/tourneo/tourneo/internal/notification"
	"github.com/tourneo/tourneo/internal/organization"
	"github.com/tourneo/tourneo/internal/registration"
	"github.com/tourneo/tourneo/internal/team"
	"github.com/tourneo/tourneo/internal/tournament"
	"github.com/tourneo/tourneo/internal/user"
	"github.com/tourneo/tourneo/pkg/logger"
	"github.com/tourneo/tourneo/routes"
)

// @title Tourneo REST API
// @version 1.0
// @description Tournament management backend: organizations, tournaments, teams, registrations.
// @host localhost:8090
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	cfg := config.GetConfig()
	logger.Init(cfg.App.Env)

	err := config.DB.AutoMigrate(
		&user.User{}, &user.PlayerProfile{},
		&organization.Organization{}, &organization.Membership{},
		&game.Game{},
		&tournament.Tournament{}, &tournament.Category{},
		&team.Team{}, &team.TeamMember{},
		&registration.Registration{},
		&notification.Notification{},
		&match.Match{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("automigrate failed")
	}

	if err := seedGames(); err != nil {
		log.Fatal().Err(err).Msg("game seed failed")
	}

	r := routes.SetupRoutes(config.DB, cfg)

	log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("starting server")
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}

// seedGames inserts the default game catalog on first boot.
func seedGames() error {
	repo := game.NewGameRepository(config.DB)
	defaults := []game.Game{
		{Key: "badminton", Name: "Badminton"},
		{Key: "table-tennis", Name: "Table Tennis"},
		{Key: "chess", Name: "Chess"},
		{Key: "football", Name: "Football"},
	}
	for _, g := range defaults {
		existing, err := repo.GetByKey(g.Key)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := repo.Create(&g); err != nil {
				return err
			}
		}
	}
	return nil
}
