package organization

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/models"
	"github.com/tourneo/tourneo/internal/notification"
	"github.com/tourneo/tourneo/pkg/responses"
)

// OrganizationController handles organization and membership requests.
type OrganizationController struct {
	repo      OrganizationRepository
	publisher notification.Publisher
}

// NewOrganizationController creates a new organization controller.
func NewOrganizationController(repo OrganizationRepository, publisher notification.Publisher) *OrganizationController {
	return &OrganizationController{repo: repo, publisher: publisher}
}

type CreateOrganizationRequest struct {
	Name          string         `json:"name" binding:"required,min=2,max=100"`
	Slug          string         `json:"slug" binding:"required,min=2,max=100"`
	DefaultGameID *uint          `json:"default_game_id"`
	Branding      models.JSONMap `json:"branding"`
}

type JoinOrganizationRequest struct {
	Role string `json:"role" binding:"omitempty,oneof=manager follower"`
}

// CreateOrganization godoc
// @Summary Create a new organization
// @Description Creates an organization; the creator is seeded as super_manager.
// @Tags Organizations
// @Accept json
// @Produce json
// @Param organization body CreateOrganizationRequest true "Organization data"
// @Success 201 {object} responses.SuccessResponse{data=Organization} "Organization created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input or slug already exists"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /organizations [post]
func (oc *OrganizationController) CreateOrganization(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	existing, err := oc.repo.GetBySlug(req.Slug)
	if err != nil {
		responses.InternalServerError(c, "Failed to check organization slug: "+err.Error())
		return
	}
	if existing != nil {
		responses.BadRequest(c, "Organization with slug '"+req.Slug+"' already exists")
		return
	}

	org := Organization{
		Name:          req.Name,
		Slug:          req.Slug,
		DefaultGameID: req.DefaultGameID,
		Branding:      req.Branding,
	}

	if err := oc.repo.CreateWithOwner(&org, userID); err != nil {
		responses.InternalServerError(c, "Failed to create organization: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Organization created successfully", org)
}

// JoinOrganization godoc
// @Summary Join an existing organization
// @Description Creates a membership for the caller. Default role is follower.
// @Tags Organizations
// @Accept json
// @Produce json
// @Param org_id path uint true "Organization ID"
// @Param membership body JoinOrganizationRequest true "Join data"
// @Success 201 {object} responses.SuccessResponse{data=Membership} "Membership created"
// @Failure 400 {object} responses.ErrorResponse "Already a member"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Organization not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /organizations/{org_id}/join [post]
func (oc *OrganizationController) JoinOrganization(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	orgID, err := strconv.ParseUint(c.Param("org_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid organization ID")
		return
	}

	// The body is optional; role defaults to follower.
	var req JoinOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	org, err := oc.repo.GetByID(uint(orgID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve organization: "+err.Error())
		return
	}
	if org == nil {
		responses.NotFound(c, "Organization")
		return
	}

	existing, err := oc.repo.GetMembership(uint(orgID), userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check membership: "+err.Error())
		return
	}
	if existing != nil {
		responses.BadRequest(c, "You are already a member of this organization")
		return
	}

	role := req.Role
	if role == "" {
		role = RoleFollower
	}

	membership := Membership{
		OrgID:  uint(orgID),
		UserID: userID,
		Role:   role,
	}
	if err := oc.repo.CreateMembership(&membership); err != nil {
		responses.InternalServerError(c, "Failed to join organization: "+err.Error())
		return
	}

	oc.publisher.Publish(notification.Event{
		UserID: userID,
		Type:   notification.TypeOrgJoined,
		Payload: models.JSONMap{
			"orgId":   org.ID,
			"orgName": org.Name,
			"role":    role,
		},
	})

	responses.SendSuccess(c, http.StatusCreated, "Joined organization successfully", membership)
}

// GetMyOrganizations godoc
// @Summary Get organizations the current user belongs to
// @Tags Organizations
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Organization} "Organizations"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me/organizations [get]
func (oc *OrganizationController) GetMyOrganizations(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	orgs, err := oc.repo.GetUserOrganizations(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve organizations: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Organizations retrieved successfully", orgs)
}
