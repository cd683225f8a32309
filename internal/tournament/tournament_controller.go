package tournament

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tourneo/tourneo/internal/game"
	"github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/models"
	"github.com/tourneo/tourneo/internal/organization"
	"github.com/tourneo/tourneo/pkg/responses"
)

// TournamentController handles tournament and category catalog requests.
type TournamentController struct {
	repo  TournamentRepository
	orgs  organization.OrganizationRepository
	games game.GameRepository
}

// NewTournamentController creates a new tournament controller.
func NewTournamentController(repo TournamentRepository, orgs organization.OrganizationRepository, games game.GameRepository) *TournamentController {
	return &TournamentController{repo: repo, orgs: orgs, games: games}
}

type CreateTournamentRequest struct {
	Name        string         `json:"name" binding:"required,min=2,max=150"`
	Slug        string         `json:"slug" binding:"required,min=2,max=150"`
	GameID      uint           `json:"game_id" binding:"required"`
	Description string         `json:"description"`
	StartDate   *time.Time     `json:"start_date"`
	EndDate     *time.Time     `json:"end_date"`
	Settings    models.JSONMap `json:"settings"`
}

type UpdateTournamentRequest struct {
	Name        *string        `json:"name" binding:"omitempty,min=2,max=150"`
	Slug        *string        `json:"slug" binding:"omitempty,min=2,max=150"`
	GameID      *uint          `json:"game_id"`
	Description *string        `json:"description"`
	StartDate   *time.Time     `json:"start_date"`
	EndDate     *time.Time     `json:"end_date"`
	Settings    models.JSONMap `json:"settings"`
}

type CreateCategoryRequest struct {
	Name       string                 `json:"name" binding:"required,min=2,max=150"`
	Key        string                 `json:"key" binding:"required,min=1,max=100"`
	EntryType  string                 `json:"entry_type" binding:"required,oneof=INDIVIDUAL TEAM"`
	EntryLimit *int                   `json:"entry_limit"`
	TeamSize   *int                   `json:"team_size" binding:"omitempty,min=1"`
	Settings   map[string]interface{} `json:"settings"`
}

type UpdateCategoryRequest struct {
	Name       *string                `json:"name" binding:"omitempty,min=2,max=150"`
	Key        *string                `json:"key" binding:"omitempty,min=1,max=100"`
	EntryType  *string                `json:"entry_type" binding:"omitempty,oneof=INDIVIDUAL TEAM"`
	EntryLimit *int                   `json:"entry_limit"`
	TeamSize   *int                   `json:"team_size" binding:"omitempty,min=1"`
	Settings   map[string]interface{} `json:"settings"`
}

// CategoryWithCounts decorates a category with its attachment counts.
type CategoryWithCounts struct {
	Category
	RegistrationCount int64 `json:"registration_count"`
	TeamCount         int64 `json:"team_count"`
}

// TournamentWithCounts decorates a tournament with aggregate counts.
type TournamentWithCounts struct {
	Tournament
	RegistrationCount int64                `json:"registration_count"`
	MatchCount        int64                `json:"match_count"`
	Categories        []CategoryWithCounts `json:"categories"`
}

// canManage reports whether the caller may mutate the tournament. The creator
// keeps manage rights; everyone else needs a current manager-grade membership
// in the owning organization, re-read at call time.
func (tc *TournamentController) canManage(t *Tournament, callerID uint) (bool, error) {
	if t.CreatedBy == callerID {
		return true, nil
	}
	role, err := tc.orgs.CurrentRole(t.OrgID, callerID)
	if err != nil {
		return false, err
	}
	return organization.IsManagerRole(role), nil
}

// CreateTournament godoc
// @Summary Create a tournament under an organization
// @Description Requires a current manager or super_manager membership in the organization.
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param org_id path uint true "Organization ID"
// @Param tournament body CreateTournamentRequest true "Tournament data"
// @Success 201 {object} responses.SuccessResponse{data=Tournament} "Tournament created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input or slug already exists"
// @Failure 403 {object} responses.ErrorResponse "Caller is not a manager of the organization"
// @Failure 404 {object} responses.ErrorResponse "Organization or game not found"
// @Security ApiKeyAuth
// @Router /organizations/{org_id}/tournaments [post]
func (tc *TournamentController) CreateTournament(c *gin.Context) {
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
	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	org, err := tc.orgs.GetByID(uint(orgID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve organization: "+err.Error())
		return
	}
	if org == nil {
		responses.NotFound(c, "Organization")
		return
	}

	role, err := tc.orgs.CurrentRole(uint(orgID), userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check membership: "+err.Error())
		return
	}
	if !organization.IsManagerRole(role) {
		responses.Forbidden(c, "Only organization managers can create tournaments")
		return
	}

	g, err := tc.games.GetByID(req.GameID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve game: "+err.Error())
		return
	}
	if g == nil {
		responses.NotFound(c, "Game")
		return
	}

	t := Tournament{
		OrgID:       uint(orgID),
		Slug:        req.Slug,
		GameID:      req.GameID,
		CreatedBy:   userID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Settings:    req.Settings,
	}
	err = tc.repo.WithTransaction(func(txRepo TournamentRepository) error {
		existing, err := txRepo.GetTournamentBySlug(uint(orgID), req.Slug)
		if err != nil {
			return err
		}
		if existing != nil {
			return errDuplicateSlug
		}
		return txRepo.CreateTournament(&t)
	})
	if err == errDuplicateSlug {
		responses.BadRequest(c, "Tournament with slug '"+req.Slug+"' already exists in this organization")
		return
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to create tournament: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Tournament created successfully", t)
}

// AddCategory godoc
// @Summary Add a category to a tournament
// @Description Caller must be the tournament creator or a current organization manager. TEAM categories require a team size.
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param org_id path uint true "Organization ID"
// @Param tournament_id path uint true "Tournament ID"
// @Param category body CreateCategoryRequest true "Category data"
// @Success 201 {object} responses.SuccessResponse{data=Category} "Category created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input, duplicate key, or TEAM without team size"
// @Failure 403 {object} responses.ErrorResponse "Caller may not manage this tournament"
// @Failure 404 {object} responses.ErrorResponse "Tournament not found"
// @Security ApiKeyAuth
// @Router /organizations/{org_id}/tournaments/{tournament_id}/categories [post]
func (tc *TournamentController) AddCategory(c *gin.Context) {
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
	tournamentID, err := strconv.ParseUint(c.Param("tournament_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid tournament ID")
		return
	}
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := tc.repo.GetTournamentByID(uint(tournamentID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve tournament: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}
	if t.OrgID != uint(orgID) {
		responses.Forbidden(c, "Tournament does not belong to this organization")
		return
	}

	allowed, err := tc.canManage(t, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check permissions: "+err.Error())
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only the tournament creator or an organization manager can manage categories")
		return
	}

	settings := CategorySettings{Extra: req.Settings}.Merge(CategorySettings{TeamSize: req.TeamSize})
	if req.EntryType == EntryTypeTeam && settings.TeamSize == nil {
		responses.BadRequest(c, "Team size is required for TEAM categories")
		return
	}

	cat := Category{
		TournamentID: t.ID,
		Key:          req.Key,
		Name:         req.Name,
		EntryType:    req.EntryType,
		EntryLimit:   req.EntryLimit,
		Settings:     settings,
	}
	err = tc.repo.WithTransaction(func(txRepo TournamentRepository) error {
		existing, err := txRepo.GetCategoryByKey(t.ID, req.Key)
		if err != nil {
			return err
		}
		if existing != nil {
			return errDuplicateKey
		}
		return txRepo.CreateCategory(&cat)
	})
	if err == errDuplicateKey {
		responses.BadRequest(c, "Category with key '"+req.Key+"' already exists in this tournament")
		return
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to create category: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Category created successfully", cat)
}

// UpdateTournament godoc
// @Summary Update a tournament
// @Description Caller must be the tournament creator or a current organization manager.
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param org_id path uint true "Organization ID"
// @Param tournament_id path uint true "Tournament ID"
// @Param tournament body UpdateTournamentRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Tournament} "Tournament updated"
// @Failure 400 {object} responses.ErrorResponse "Invalid input or new slug already exists"
// @Failure 403 {object} responses.ErrorResponse "Caller may not manage this tournament"
// @Failure 404 {object} responses.ErrorResponse "Tournament or game not found"
// @Security ApiKeyAuth
// @Router /organizations/{org_id}/tournaments/{tournament_id} [put]
func (tc *TournamentController) UpdateTournament(c *gin.Context) {
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
	tournamentID, err := strconv.ParseUint(c.Param("tournament_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid tournament ID")
		return
	}
	var req UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := tc.repo.GetTournamentByID(uint(tournamentID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve tournament: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}
	if t.OrgID != uint(orgID) {
		responses.Forbidden(c, "Tournament does not belong to this organization")
		return
	}

	allowed, err := tc.canManage(t, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check permissions: "+err.Error())
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only the tournament creator or an organization manager can update this tournament")
		return
	}

	if req.GameID != nil && *req.GameID != t.GameID {
		g, err := tc.games.GetByID(*req.GameID)
		if err != nil {
			responses.InternalServerError(c, "Failed to retrieve game: "+err.Error())
			return
		}
		if g == nil {
			responses.NotFound(c, "Game")
			return
		}
		t.GameID = *req.GameID
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.StartDate != nil {
		t.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		t.EndDate = req.EndDate
	}
	if req.Settings != nil {
		t.Settings = req.Settings
	}

	slugChanged := req.Slug != nil && *req.Slug != t.Slug
	err = tc.repo.WithTransaction(func(txRepo TournamentRepository) error {
		if slugChanged {
			existing, err := txRepo.GetTournamentBySlug(t.OrgID, *req.Slug)
			if err != nil {
				return err
			}
			if existing != nil {
				return errDuplicateSlug
			}
			t.Slug = *req.Slug
		}
		return txRepo.UpdateTournament(t)
	})
	if err == errDuplicateSlug {
		responses.BadRequest(c, "Tournament with slug '"+*req.Slug+"' already exists in this organization")
		return
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to update tournament: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tournament updated successfully", t)
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Settings are shallow-merged over the existing blob. A category whose effective entry type is TEAM must end up with a team size.
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param org_id path uint true "Organization ID"
// @Param tournament_id path uint true "Tournament ID"
// @Param category_id path uint true "Category ID"
// @Param category body UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Category} "Category updated"
// @Failure 400 {object} responses.ErrorResponse "Invalid input, duplicate key, or TEAM without team size"
// @Failure 403 {object} responses.ErrorResponse "Caller may not manage this tournament"
// @Failure 404 {object} responses.ErrorResponse "Tournament or category not found"
// @Security ApiKeyAuth
// @Router /organizations/{org_id}/tournaments/{tournament_id}/categories/{category_id} [put]
func (tc *TournamentController) UpdateCategory(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	t, cat, ok := tc.loadCategoryForManage(c, userID)
	if !ok {
		return
	}
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Name != nil {
		cat.Name = *req.Name
	}
	if req.EntryType != nil {
		cat.EntryType = *req.EntryType
	}
	if req.EntryLimit != nil {
		cat.EntryLimit = req.EntryLimit
	}

	cat.Settings = cat.Settings.Merge(CategorySettings{TeamSize: req.TeamSize, Extra: req.Settings})
	if cat.EntryType == EntryTypeTeam && cat.Settings.TeamSize == nil {
		responses.BadRequest(c, "Team size is required for TEAM categories")
		return
	}

	keyChanged := req.Key != nil && *req.Key != cat.Key
	err = tc.repo.WithTransaction(func(txRepo TournamentRepository) error {
		if keyChanged {
			existing, err := txRepo.GetCategoryByKey(t.ID, *req.Key)
			if err != nil {
				return err
			}
			if existing != nil {
				return errDuplicateKey
			}
			cat.Key = *req.Key
		}
		return txRepo.UpdateCategory(cat)
	})
	if err == errDuplicateKey {
		responses.BadRequest(c, "Category with key '"+*req.Key+"' already exists in this tournament")
		return
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to update category: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Category updated successfully", cat)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Blocked while any registration or team references the category.
// @Tags Tournaments
// @Produce json
// @Param org_id path uint true "Organization ID"
// @Param tournament_id path uint true "Tournament ID"
// @Param category_id path uint true "Category ID"
// @Success 200 {object} responses.SuccessResponse "Category deleted"
// @Failure 400 {object} responses.ErrorResponse "Category has registrations or teams attached"
// @Failure 403 {object} responses.ErrorResponse "Caller may not manage this tournament"
// @Failure 404 {object} responses.ErrorResponse "Tournament or category not found"
// @Security ApiKeyAuth
// @Router /organizations/{org_id}/tournaments/{tournament_id}/categories/{category_id} [delete]
func (tc *TournamentController) DeleteCategory(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	_, cat, ok := tc.loadCategoryForManage(c, userID)
	if !ok {
		return
	}

	counts, err := tc.repo.GetCategoryCounts(cat.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check category usage: "+err.Error())
		return
	}
	if counts.Registrations > 0 || counts.Teams > 0 {
		responses.BadRequest(c, "Cannot delete a category that has registrations or teams")
		return
	}

	if err := tc.repo.DeleteCategory(cat.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete category: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Category deleted successfully", nil)
}

// GetOrganizationTournaments godoc
// @Summary List an organization's tournaments
// @Description Public read. Tournaments are ordered newest first and carry aggregate counts.
// @Tags Tournaments
// @Produce json
// @Param org_id path uint true "Organization ID"
// @Success 200 {object} responses.SuccessResponse{data=[]TournamentWithCounts} "Tournaments"
// @Failure 404 {object} responses.ErrorResponse "Organization not found"
// @Router /organizations/{org_id}/tournaments [get]
func (tc *TournamentController) GetOrganizationTournaments(c *gin.Context) {
	orgID, err := strconv.ParseUint(c.Param("org_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid organization ID")
		return
	}
	org, err := tc.orgs.GetByID(uint(orgID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve organization: "+err.Error())
		return
	}
	if org == nil {
		responses.NotFound(c, "Organization")
		return
	}

	tournaments, err := tc.repo.GetOrganizationTournaments(uint(orgID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve tournaments: "+err.Error())
		return
	}

	views := make([]TournamentWithCounts, 0, len(tournaments))
	for _, t := range tournaments {
		tCounts, err := tc.repo.GetTournamentCounts(t.ID)
		if err != nil {
			responses.InternalServerError(c, "Failed to aggregate counts: "+err.Error())
			return
		}
		catViews := make([]CategoryWithCounts, 0, len(t.Categories))
		for _, cat := range t.Categories {
			cCounts, err := tc.repo.GetCategoryCounts(cat.ID)
			if err != nil {
				responses.InternalServerError(c, "Failed to aggregate counts: "+err.Error())
				return
			}
			catViews = append(catViews, CategoryWithCounts{
				Category:          cat,
				RegistrationCount: cCounts.Registrations,
				TeamCount:         cCounts.Teams,
			})
		}
		views = append(views, TournamentWithCounts{
			Tournament:        t,
			RegistrationCount: tCounts.Registrations,
			MatchCount:        tCounts.Matches,
			Categories:        catViews,
		})
	}
	responses.SendSuccess(c, http.StatusOK, "Tournaments retrieved successfully", views)
}

// GetHostedTournaments godoc
// @Summary List tournaments created by the current user
// @Tags Tournaments
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Tournament} "Tournaments"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me/hosted-tournaments [get]
func (tc *TournamentController) GetHostedTournaments(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	tournaments, err := tc.repo.GetHostedTournaments(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve tournaments: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Hosted tournaments retrieved successfully", tournaments)
}

// loadCategoryForManage resolves the org/tournament/category path params,
// verifies ownership and manage rights, and writes the error response itself
// when any check fails.
func (tc *TournamentController) loadCategoryForManage(c *gin.Context, userID uint) (*Tournament, *Category, bool) {
	orgID, err := strconv.ParseUint(c.Param("org_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid organization ID")
		return nil, nil, false
	}
	tournamentID, err := strconv.ParseUint(c.Param("tournament_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid tournament ID")
		return nil, nil, false
	}
	categoryID, err := strconv.ParseUint(c.Param("category_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid category ID")
		return nil, nil, false
	}

	t, err := tc.repo.GetTournamentByID(uint(tournamentID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve tournament: "+err.Error())
		return nil, nil, false
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return nil, nil, false
	}
	if t.OrgID != uint(orgID) {
		responses.Forbidden(c, "Tournament does not belong to this organization")
		return nil, nil, false
	}

	allowed, err := tc.canManage(t, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check permissions: "+err.Error())
		return nil, nil, false
	}
	if !allowed {
		responses.Forbidden(c, "Only the tournament creator or an organization manager can manage categories")
		return nil, nil, false
	}

	cat, err := tc.repo.GetCategoryByID(uint(categoryID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve category: "+err.Error())
		return nil, nil, false
	}
	if cat == nil || cat.TournamentID != t.ID {
		responses.NotFound(c, "Category")
		return nil, nil, false
	}
	return t, cat, true
}
