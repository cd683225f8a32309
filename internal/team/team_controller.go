package team

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/models"
	"github.com/tourneo/tourneo/internal/notification"
	"github.com/tourneo/tourneo/internal/tournament"
	"github.com/tourneo/tourneo/pkg/responses"
)

// TeamController handles team creation and roster lifecycle requests.
type TeamController struct {
	repo        TeamRepository
	tournaments tournament.TournamentRepository
	publisher   notification.Publisher
}

// NewTeamController creates a new team controller.
func NewTeamController(repo TeamRepository, tournaments tournament.TournamentRepository, publisher notification.Publisher) *TeamController {
	return &TeamController{repo: repo, tournaments: tournaments, publisher: publisher}
}

type CreateTeamRequest struct {
	TournamentID uint   `json:"tournament_id" binding:"required"`
	CategoryID   uint   `json:"category_id" binding:"required"`
	Name         string `json:"name" binding:"required,min=2,max=100"`
}

type InviteTeamMemberRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type RespondToInviteRequest struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

// MyTeamsResponse groups the caller's teams by their relation to them.
type MyTeamsResponse struct {
	CaptainedTeams []Team `json:"captained_teams"`
	MemberTeams    []Team `json:"member_teams"`
}

// LeaveTeamResponse may carry an advisory warning when the team is registered
// but not yet paid.
type LeaveTeamResponse struct {
	Warning string `json:"warning,omitempty"`
}

var errTeamConflict = errors.New("already on a team in this category")

// CreateTeam godoc
// @Summary Create a team in a TEAM category
// @Description The caller becomes captain. A user may be captain or member of at most one team per category.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team data"
// @Success 201 {object} responses.SuccessResponse{data=Team} "Team created"
// @Failure 400 {object} responses.ErrorResponse "Category is not team-entry or caller already has a team in it"
// @Failure 404 {object} responses.ErrorResponse "Category not found"
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	cat, err := tc.tournaments.GetCategoryByID(req.CategoryID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve category: "+err.Error())
		return
	}
	if cat == nil || cat.TournamentID != req.TournamentID {
		responses.NotFound(c, "Category")
		return
	}
	if cat.EntryType != tournament.EntryTypeTeam {
		responses.BadRequest(c, "Teams can only be created in TEAM categories")
		return
	}

	t := Team{
		TournamentID: req.TournamentID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		CaptainID:    userID,
	}
	var conflict *Team
	err = tc.repo.WithTransaction(func(txRepo TeamRepository) error {
		existing, err := txRepo.FindUserTeamInCategory(req.CategoryID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			conflict = existing
			return errTeamConflict
		}
		return txRepo.CreateTeam(&t)
	})
	if errors.Is(err, errTeamConflict) {
		responses.BadRequest(c, fmt.Sprintf("You already belong to team '%s' in this category", conflict.Name))
		return
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to create team: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", t)
}

// InviteTeamMember godoc
// @Summary Invite a user to a team
// @Description Captain only. Occupancy (captain plus invited plus accepted) must stay below the category team size.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param invite body InviteTeamMemberRequest true "Invitee"
// @Success 201 {object} responses.SuccessResponse{data=TeamMember} "Invitation created"
// @Failure 400 {object} responses.ErrorResponse "Duplicate invite, invitee already on a team in this category, or team is full"
// @Failure 403 {object} responses.ErrorResponse "Only the captain can invite"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/invites [post]
func (tc *TeamController) InviteTeamMember(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}
	var req InviteTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	if t.CaptainID != userID {
		responses.Forbidden(c, "Only the team captain can invite members")
		return
	}
	if req.UserID == t.CaptainID {
		responses.BadRequest(c, "The captain is already on the team")
		return
	}

	cat, err := tc.tournaments.GetCategoryByID(t.CategoryID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve category: "+err.Error())
		return
	}
	if cat == nil {
		responses.NotFound(c, "Category")
		return
	}

	member := TeamMember{
		TeamID: t.ID,
		UserID: req.UserID,
		Status: MemberStatusInvited,
	}
	var failure string
	err = tc.repo.WithTransaction(func(txRepo TeamRepository) error {
		existing, err := txRepo.GetMember(t.ID, req.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			failure = "User already has an invitation or membership for this team"
			return errTeamConflict
		}
		elsewhere, err := txRepo.FindUserTeamInCategory(t.CategoryID, req.UserID)
		if err != nil {
			return err
		}
		if elsewhere != nil {
			failure = fmt.Sprintf("User already belongs to team '%s' in this category", elsewhere.Name)
			return errTeamConflict
		}
		if cat.Settings.TeamSize != nil {
			roster, err := txRepo.CountRoster(t.ID)
			if err != nil {
				return err
			}
			// roster + 1 counts the captain.
			if roster+1 >= int64(*cat.Settings.TeamSize) {
				failure = "Team is already at full capacity"
				return errTeamConflict
			}
		}
		return txRepo.CreateMember(&member)
	})
	if errors.Is(err, errTeamConflict) {
		responses.BadRequest(c, failure)
		return
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to create invitation: "+err.Error())
		return
	}

	tc.publisher.Publish(notification.Event{
		UserID: req.UserID,
		Type:   notification.TypeTeamInvite,
		Payload: models.JSONMap{
			"teamId":   t.ID,
			"teamName": t.Name,
		},
	})
	responses.SendSuccess(c, http.StatusCreated, "Invitation sent successfully", member)
}

// RespondToTeamInvite godoc
// @Summary Accept or reject a team invitation
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param response body RespondToInviteRequest true "accept or reject"
// @Success 200 {object} responses.SuccessResponse "Invitation resolved"
// @Failure 400 {object} responses.ErrorResponse "Invitation is not pending"
// @Failure 404 {object} responses.ErrorResponse "Team or invitation not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/invites/respond [post]
func (tc *TeamController) RespondToTeamInvite(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}
	var req RespondToInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	member, err := tc.repo.GetMember(t.ID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve invitation: "+err.Error())
		return
	}
	if member == nil {
		responses.NotFound(c, "Invitation")
		return
	}
	if member.Status != MemberStatusInvited {
		responses.BadRequest(c, "Invitation has already been resolved")
		return
	}

	if req.Action == "accept" {
		now := time.Now()
		member.Status = MemberStatusAccepted
		member.RespondedAt = &now
		if err := tc.repo.UpdateMember(member); err != nil {
			responses.InternalServerError(c, "Failed to accept invitation: "+err.Error())
			return
		}
	} else {
		if err := tc.repo.DeleteMember(member); err != nil {
			responses.InternalServerError(c, "Failed to reject invitation: "+err.Error())
			return
		}
	}

	tc.publisher.Publish(notification.Event{
		UserID: t.CaptainID,
		Type:   notification.TypeTeamUpdate,
		Payload: models.JSONMap{
			"teamId":   t.ID,
			"teamName": t.Name,
			"userId":   userID,
			"action":   req.Action,
		},
	})

	if req.Action == "accept" {
		responses.SendSuccess(c, http.StatusOK, "Invitation accepted", member)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invitation rejected", nil)
}

// RemoveTeamMember godoc
// @Summary Remove a member from a team
// @Description Captain only. A paid registration locks the roster.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param user_id path uint true "Member user ID"
// @Success 200 {object} responses.SuccessResponse "Member removed"
// @Failure 400 {object} responses.ErrorResponse "Cannot remove the captain"
// @Failure 403 {object} responses.ErrorResponse "Not the captain, or roster is locked by a paid registration"
// @Failure 404 {object} responses.ErrorResponse "Team or member not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/members/{user_id} [delete]
func (tc *TeamController) RemoveTeamMember(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}

	t, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	if t.CaptainID != userID {
		responses.Forbidden(c, "Only the team captain can remove members")
		return
	}
	if uint(targetID) == t.CaptainID {
		responses.BadRequest(c, "The captain cannot be removed from the team")
		return
	}

	paid, err := tc.repo.HasPaidRegistration(t.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check registrations: "+err.Error())
		return
	}
	if paid {
		responses.Forbidden(c, "Roster is locked: the team has a paid registration")
		return
	}

	member, err := tc.repo.GetMember(t.ID, uint(targetID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve member: "+err.Error())
		return
	}
	if member == nil {
		responses.NotFound(c, "Team member")
		return
	}
	if err := tc.repo.DeleteMember(member); err != nil {
		responses.InternalServerError(c, "Failed to remove member: "+err.Error())
		return
	}

	tc.publisher.Publish(notification.Event{
		UserID: uint(targetID),
		Type:   notification.TypeTeamUpdate,
		Payload: models.JSONMap{
			"teamId":   t.ID,
			"teamName": t.Name,
			"action":   "removed",
		},
	})
	responses.SendSuccess(c, http.StatusOK, "Member removed successfully", nil)
}

// LeaveTeam godoc
// @Summary Leave a team
// @Description Accepted members only; the captain cannot leave. A paid registration locks the roster.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=LeaveTeamResponse} "Left team; may carry an advisory warning"
// @Failure 400 {object} responses.ErrorResponse "Caller is the captain or not an accepted member"
// @Failure 403 {object} responses.ErrorResponse "Roster is locked by a paid registration"
// @Failure 404 {object} responses.ErrorResponse "Team or membership not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/leave [post]
func (tc *TeamController) LeaveTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	t, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	if t.CaptainID == userID {
		responses.BadRequest(c, "The captain cannot leave the team")
		return
	}

	member, err := tc.repo.GetMember(t.ID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve membership: "+err.Error())
		return
	}
	if member == nil {
		responses.NotFound(c, "Team membership")
		return
	}
	if member.Status != MemberStatusAccepted {
		responses.BadRequest(c, "Only accepted members can leave a team")
		return
	}

	paid, err := tc.repo.HasPaidRegistration(t.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check registrations: "+err.Error())
		return
	}
	if paid {
		responses.Forbidden(c, "Roster is locked: the team has a paid registration")
		return
	}

	registered, err := tc.repo.HasActiveRegistration(t.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check registrations: "+err.Error())
		return
	}

	if err := tc.repo.DeleteMember(member); err != nil {
		responses.InternalServerError(c, "Failed to leave team: "+err.Error())
		return
	}

	tc.publisher.Publish(notification.Event{
		UserID: t.CaptainID,
		Type:   notification.TypeTeamUpdate,
		Payload: models.JSONMap{
			"teamId":   t.ID,
			"teamName": t.Name,
			"userId":   userID,
			"action":   "left",
		},
	})

	resp := LeaveTeamResponse{}
	if registered {
		resp.Warning = "The team has an unpaid registration in this category"
	}
	responses.SendSuccess(c, http.StatusOK, "Left team successfully", resp)
}

// GetMyTeams godoc
// @Summary Get teams the current user captains or has joined
// @Tags Teams
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=MyTeamsResponse} "Teams"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me/teams [get]
func (tc *TeamController) GetMyTeams(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	captained, err := tc.repo.GetCaptainedTeams(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve teams: "+err.Error())
		return
	}
	member, err := tc.repo.GetMemberTeams(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve teams: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Teams retrieved successfully", MyTeamsResponse{
		CaptainedTeams: captained,
		MemberTeams:    member,
	})
}

// GetTeamInvites godoc
// @Summary Get pending team invitations for the current user
// @Tags Teams
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]TeamMember} "Pending invitations"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me/team-invites [get]
func (tc *TeamController) GetTeamInvites(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	invites, err := tc.repo.GetPendingInvites(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve invitations: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invitations retrieved successfully", invites)
}
