package match

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/registration"
	"github.com/tourneo/tourneo/internal/user"
	"github.com/tourneo/tourneo/pkg/responses"
)

const defaultMatchLimit = 20

// MatchController serves match history and aggregated stats.
type MatchController struct {
	repo          MatchRepository
	registrations registration.RegistrationRepository
	users         user.UserRepository
}

// NewMatchController creates a new match controller.
func NewMatchController(repo MatchRepository, registrations registration.RegistrationRepository, users user.UserRepository) *MatchController {
	return &MatchController{repo: repo, registrations: registrations, users: users}
}

// MatchView decorates a match with the result from the caller's perspective.
// Result stays null for unfinished matches, missing scores, and draws.
type MatchView struct {
	Match
	Result *string `json:"result"`
}

type StatsResponse struct {
	TotalMatches   int                  `json:"total_matches"`
	Wins           int                  `json:"wins"`
	Losses         int                  `json:"losses"`
	WinRate        float64              `json:"win_rate"`
	PlayerProfiles []user.PlayerProfile `json:"player_profiles"`
}

type TournamentHistoryEntry struct {
	Registration registration.Registration `json:"registration"`
	Matches      int                       `json:"matches"`
	Wins         int                       `json:"wins"`
	Losses       int                       `json:"losses"`
}

func teamIDSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func tally(matches []Match, teams map[uint]bool) (wins, losses int) {
	for i := range matches {
		if result := matches[i].ResultFor(teams); result != nil {
			if *result == "won" {
				wins++
			} else {
				losses++
			}
		}
	}
	return wins, losses
}

// GetMyMatches godoc
// @Summary Get recent matches for the current user's teams
// @Tags Matches
// @Produce json
// @Param limit query int false "Maximum number of matches" default(20)
// @Success 200 {object} responses.SuccessResponse{data=[]MatchView} "Matches, newest first"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me/matches [get]
func (mc *MatchController) GetMyMatches(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	limit := defaultMatchLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			responses.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	teamIDs, err := mc.repo.GetUserTeamIDs(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve teams: "+err.Error())
		return
	}
	matches, err := mc.repo.GetMatchesForTeams(teamIDs, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve matches: "+err.Error())
		return
	}

	teams := teamIDSet(teamIDs)
	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, MatchView{Match: m, Result: m.ResultFor(teams)})
	}
	responses.SendSuccess(c, http.StatusOK, "Matches retrieved successfully", views)
}

// GetMyStats godoc
// @Summary Get aggregated match stats for the current user
// @Description Win rate is a percentage and reports 0 when the user has no matches.
// @Tags Matches
// @Produce json
// @Param tournament_id query int false "Restrict stats to one tournament"
// @Success 200 {object} responses.SuccessResponse{data=StatsResponse} "Stats"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me/stats [get]
func (mc *MatchController) GetMyStats(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	teamIDs, err := mc.repo.GetUserTeamIDs(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve teams: "+err.Error())
		return
	}

	var matches []Match
	if raw := c.Query("tournament_id"); raw != "" {
		tournamentID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			responses.BadRequest(c, "Invalid tournament ID")
			return
		}
		matches, err = mc.repo.GetTournamentMatchesForTeams(teamIDs, uint(tournamentID))
		if err != nil {
			responses.InternalServerError(c, "Failed to retrieve matches: "+err.Error())
			return
		}
	} else {
		matches, err = mc.repo.GetMatchesForTeams(teamIDs, 0)
		if err != nil {
			responses.InternalServerError(c, "Failed to retrieve matches: "+err.Error())
			return
		}
	}

	wins, losses := tally(matches, teamIDSet(teamIDs))
	stats := StatsResponse{
		TotalMatches: len(matches),
		Wins:         wins,
		Losses:       losses,
	}
	if stats.TotalMatches > 0 {
		stats.WinRate = float64(wins) / float64(stats.TotalMatches) * 100
	}

	profiles, err := mc.users.GetPlayerProfiles(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve player profiles: "+err.Error())
		return
	}
	stats.PlayerProfiles = profiles

	responses.SendSuccess(c, http.StatusOK, "Stats retrieved successfully", stats)
}

// GetTournamentHistory godoc
// @Summary Get the current user's registrations with per-tournament match tallies
// @Tags Matches
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]TournamentHistoryEntry} "History"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me/tournament-history [get]
func (mc *MatchController) GetTournamentHistory(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	regs, err := mc.registrations.GetUserRegistrations(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve registrations: "+err.Error())
		return
	}
	teamIDs, err := mc.repo.GetUserTeamIDs(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve teams: "+err.Error())
		return
	}
	teams := teamIDSet(teamIDs)

	history := make([]TournamentHistoryEntry, 0, len(regs))
	for _, reg := range regs {
		matches, err := mc.repo.GetTournamentMatchesForTeams(teamIDs, reg.TournamentID)
		if err != nil {
			responses.InternalServerError(c, "Failed to retrieve matches: "+err.Error())
			return
		}
		wins, losses := tally(matches, teams)
		history = append(history, TournamentHistoryEntry{
			Registration: reg,
			Matches:      len(matches),
			Wins:         wins,
			Losses:       losses,
		})
	}
	responses.SendSuccess(c, http.StatusOK, "Tournament history retrieved successfully", history)
}
