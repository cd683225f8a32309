package registration

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/models"
	"github.com/tourneo/tourneo/internal/notification"
	"github.com/tourneo/tourneo/internal/team"
	"github.com/tourneo/tourneo/internal/tournament"
	"github.com/tourneo/tourneo/pkg/responses"
)

// RegistrationController handles registration and payment requests.
type RegistrationController struct {
	repo        RegistrationRepository
	tournaments tournament.TournamentRepository
	teams       team.TeamRepository
	publisher   notification.Publisher
}

// NewRegistrationController creates a new registration controller.
func NewRegistrationController(repo RegistrationRepository, tournaments tournament.TournamentRepository, teams team.TeamRepository, publisher notification.Publisher) *RegistrationController {
	return &RegistrationController{repo: repo, tournaments: tournaments, teams: teams, publisher: publisher}
}

type RegisterRequest struct {
	TournamentID uint  `json:"tournament_id" binding:"required"`
	CategoryID   uint  `json:"category_id" binding:"required"`
	TeamID       *uint `json:"team_id"`
}

type PayRegistrationRequest struct {
	PaymentInfo models.JSONMap `json:"payment_info"`
}

var errDuplicateRegistration = errors.New("already registered in this category")

// recipients returns the captain plus accepted members, the parties notified
// on team registration and payment events.
func (rc *RegistrationController) recipients(t *team.Team) []uint {
	ids := []uint{t.CaptainID}
	for _, m := range t.Members {
		if m.Status == team.MemberStatusAccepted {
			ids = append(ids, m.UserID)
		}
	}
	return ids
}

// RegisterForTournament godoc
// @Summary Register for a tournament category
// @Description INDIVIDUAL categories register the caller directly. TEAM categories require a team the caller captains or has joined.
// @Tags Registrations
// @Accept json
// @Produce json
// @Param registration body RegisterRequest true "Registration data"
// @Success 201 {object} responses.SuccessResponse{data=Registration} "Registration created"
// @Failure 400 {object} responses.ErrorResponse "Duplicate registration or missing team for a TEAM category"
// @Failure 403 {object} responses.ErrorResponse "Caller is not on the team"
// @Failure 404 {object} responses.ErrorResponse "Category or team not found"
// @Security ApiKeyAuth
// @Router /registrations [post]
func (rc *RegistrationController) RegisterForTournament(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	cat, err := rc.tournaments.GetCategoryByID(req.CategoryID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve category: "+err.Error())
		return
	}
	if cat == nil || cat.TournamentID != req.TournamentID {
		responses.NotFound(c, "Category")
		return
	}

	reg := Registration{
		TournamentID: req.TournamentID,
		CategoryID:   req.CategoryID,
		UserID:       userID,
		Status:       StatusRegistered,
	}
	var events []notification.Event

	if cat.EntryType == tournament.EntryTypeTeam {
		if req.TeamID == nil {
			responses.BadRequest(c, "A team is required to register for a TEAM category")
			return
		}
		t, err := rc.teams.GetTeamByID(*req.TeamID)
		if err != nil {
			responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
			return
		}
		if t == nil || t.CategoryID != cat.ID {
			responses.NotFound(c, "Team")
			return
		}
		if t.CaptainID != userID {
			member, err := rc.teams.GetMember(t.ID, userID)
			if err != nil {
				responses.InternalServerError(c, "Failed to check team membership: "+err.Error())
				return
			}
			if member == nil || member.Status != team.MemberStatusAccepted {
				responses.Forbidden(c, "Only the captain or an accepted member can register the team")
				return
			}
		}
		reg.TeamID = req.TeamID
		for _, id := range rc.recipients(t) {
			events = append(events, notification.Event{
				UserID: id,
				Type:   notification.TypeRegistrationConfirmed,
				Payload: models.JSONMap{
					"tournamentId": req.TournamentID,
					"categoryId":   req.CategoryID,
					"teamId":       t.ID,
					"teamName":     t.Name,
				},
			})
		}
	} else {
		events = append(events, notification.Event{
			UserID: userID,
			Type:   notification.TypeRegistrationConfirmed,
			Payload: models.JSONMap{
				"tournamentId": req.TournamentID,
				"categoryId":   req.CategoryID,
			},
		})
	}

	err = rc.repo.WithTransaction(func(txRepo RegistrationRepository) error {
		existing, err := txRepo.GetActive(req.TournamentID, req.CategoryID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return errDuplicateRegistration
		}
		return txRepo.Create(&reg)
	})
	if errors.Is(err, errDuplicateRegistration) {
		responses.BadRequest(c, "You are already registered in this category")
		return
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to create registration: "+err.Error())
		return
	}

	rc.publisher.Publish(events...)
	responses.SendSuccess(c, http.StatusCreated, "Registered successfully", reg)
}

// PayRegistration godoc
// @Summary Pay for a registration
// @Description Marks the registration paid exactly once. Team registrations are payable by the captain only; individual ones by their owner.
// @Tags Registrations
// @Accept json
// @Produce json
// @Param registration_id path uint true "Registration ID"
// @Param payment body PayRegistrationRequest true "Payment info"
// @Success 200 {object} responses.SuccessResponse{data=Registration} "Registration paid"
// @Failure 400 {object} responses.ErrorResponse "Already paid or cancelled"
// @Failure 403 {object} responses.ErrorResponse "Caller may not pay this registration"
// @Failure 404 {object} responses.ErrorResponse "Registration not found"
// @Security ApiKeyAuth
// @Router /registrations/{registration_id}/pay [post]
func (rc *RegistrationController) PayRegistration(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	registrationID, err := strconv.ParseUint(c.Param("registration_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid registration ID")
		return
	}
	// The body is optional; payment info may be omitted entirely.
	var req PayRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	reg, err := rc.repo.GetByID(uint(registrationID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve registration: "+err.Error())
		return
	}
	if reg == nil {
		responses.NotFound(c, "Registration")
		return
	}
	if reg.Paid {
		responses.BadRequest(c, "Registration has already been paid")
		return
	}
	if reg.Status != StatusRegistered {
		responses.BadRequest(c, "Cancelled registrations cannot be paid")
		return
	}

	var events []notification.Event
	if reg.TeamID != nil {
		t, err := rc.teams.GetTeamByID(*reg.TeamID)
		if err != nil {
			responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
			return
		}
		if t == nil {
			responses.NotFound(c, "Team")
			return
		}
		if t.CaptainID != userID {
			responses.Forbidden(c, "Only the team captain can pay for a team registration")
			return
		}
		for _, id := range rc.recipients(t) {
			events = append(events, notification.Event{
				UserID: id,
				Type:   notification.TypePaymentConfirmed,
				Payload: models.JSONMap{
					"registrationId": reg.ID,
					"teamId":         t.ID,
					"teamName":       t.Name,
				},
			})
		}
	} else {
		if reg.UserID != userID {
			responses.Forbidden(c, "Only the registration owner can pay")
			return
		}
		events = append(events, notification.Event{
			UserID: userID,
			Type:   notification.TypePaymentConfirmed,
			Payload: models.JSONMap{
				"registrationId": reg.ID,
			},
		})
	}

	reg.Paid = true
	reg.PaymentInfo = req.PaymentInfo
	reg.PaymentRef = uuid.NewString()
	if err := rc.repo.Update(reg); err != nil {
		responses.InternalServerError(c, "Failed to update registration: "+err.Error())
		return
	}

	rc.publisher.Publish(events...)
	responses.SendSuccess(c, http.StatusOK, "Payment recorded successfully", reg)
}

// GetMyRegistrations godoc
// @Summary Get the current user's active registrations
// @Tags Registrations
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Registration} "Registrations, newest first"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me/registrations [get]
func (rc *RegistrationController) GetMyRegistrations(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	regs, err := rc.repo.GetUserRegistrations(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve registrations: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Registrations retrieved successfully", regs)
}
