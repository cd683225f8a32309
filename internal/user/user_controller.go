package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tourneo/tourneo/internal/middleware"
	"github.com/tourneo/tourneo/internal/models"
	"github.com/tourneo/tourneo/pkg/responses"
)

// UserController handles profile and player profile requests.
type UserController struct {
	repo UserRepository
}

// NewUserController creates a new user controller.
func NewUserController(repo UserRepository) *UserController {
	return &UserController{repo: repo}
}

type UpdateProfileRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

type CreatePlayerProfileRequest struct {
	GameID uint           `json:"game_id" binding:"required"`
	Rating int            `json:"rating" binding:"omitempty,gte=0"`
	Meta   models.JSONMap `json:"meta"`
}

type UpdatePlayerProfileRequest struct {
	Rating *int           `json:"rating" binding:"omitempty,gte=0"`
	Meta   models.JSONMap `json:"meta"`
}

// GetProfile godoc
// @Summary Get current user profile
// @Tags Users
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=User} "User profile"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Security ApiKeyAuth
// @Router /users/me [get]
func (uc *UserController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	u, err := uc.repo.GetUserByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve profile: "+err.Error())
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", u)
}

// UpdateProfile godoc
// @Summary Update current user profile
// @Description Updates mutable profile fields. Email is immutable.
// @Tags Users
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} responses.SuccessResponse{data=User} "Updated profile"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me [put]
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := uc.repo.GetUserByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve profile: "+err.Error())
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.AvatarURL != nil {
		u.AvatarURL = *req.AvatarURL
	}

	if err := uc.repo.UpdateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", u)
}

// CreatePlayerProfile godoc
// @Summary Create a player profile for a game
// @Tags Player Profiles
// @Accept json
// @Produce json
// @Param profile body CreatePlayerProfileRequest true "Player profile data"
// @Success 201 {object} responses.SuccessResponse{data=PlayerProfile} "Profile created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input or profile exists"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me/player-profiles [post]
func (uc *UserController) CreatePlayerProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreatePlayerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	existing, err := uc.repo.GetPlayerProfile(userID, req.GameID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check player profile: "+err.Error())
		return
	}
	if existing != nil {
		responses.BadRequest(c, "Player profile for this game already exists")
		return
	}

	profile := PlayerProfile{
		UserID: userID,
		GameID: req.GameID,
		Rating: req.Rating,
		Meta:   req.Meta,
	}
	if profile.Rating == 0 {
		profile.Rating = 1000
	}

	if err := uc.repo.CreatePlayerProfile(&profile); err != nil {
		responses.InternalServerError(c, "Failed to create player profile: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Player profile created successfully", profile)
}

// UpdatePlayerProfile godoc
// @Summary Update a player profile
// @Tags Player Profiles
// @Accept json
// @Produce json
// @Param game_id path uint true "Game ID"
// @Param profile body UpdatePlayerProfileRequest true "Player profile fields"
// @Success 200 {object} responses.SuccessResponse{data=PlayerProfile} "Updated profile"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Profile not found"
// @Security ApiKeyAuth
// @Router /users/me/player-profiles/{game_id} [put]
func (uc *UserController) UpdatePlayerProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	gameID, err := strconv.ParseUint(c.Param("game_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid game ID")
		return
	}

	var req UpdatePlayerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	profile, err := uc.repo.GetPlayerProfile(userID, uint(gameID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve player profile: "+err.Error())
		return
	}
	if profile == nil {
		responses.NotFound(c, "Player profile")
		return
	}

	if req.Rating != nil {
		profile.Rating = *req.Rating
	}
	if req.Meta != nil {
		profile.Meta = req.Meta
	}

	if err := uc.repo.UpdatePlayerProfile(profile); err != nil {
		responses.InternalServerError(c, "Failed to update player profile: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player profile updated successfully", profile)
}

// GetPlayerProfiles godoc
// @Summary Get all player profiles for the current user
// @Tags Player Profiles
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]PlayerProfile} "Player profiles"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me/player-profiles [get]
func (uc *UserController) GetPlayerProfiles(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	profiles, err := uc.repo.GetPlayerProfiles(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve player profiles: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player profiles retrieved successfully", profiles)
}
