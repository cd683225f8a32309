package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tourneo/tourneo/config"
	"github.com/tourneo/tourneo/internal/organization"
	"github.com/tourneo/tourneo/internal/user"
	"github.com/tourneo/tourneo/pkg/responses"
	"github.com/tourneo/tourneo/pkg/token"
	"github.com/tourneo/tourneo/utils"
)

// AuthController handles registration and login.
type AuthController struct {
	users  user.UserRepository
	orgs   organization.OrganizationRepository
	config *config.Config
}

// NewAuthController creates a new auth controller.
func NewAuthController(users user.UserRepository, orgs organization.OrganizationRepository, cfg *config.Config) *AuthController {
	return &AuthController{users: users, orgs: orgs, config: cfg}
}

// roleSnapshot collects the user's distinct organization roles. The snapshot
// is informational; mutation endpoints re-check the memberships table.
func (ac *AuthController) roleSnapshot(userID uint) ([]string, error) {
	memberships, err := ac.orgs.GetUserMemberships(userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var roles []string
	for _, m := range memberships {
		if !seen[m.Role] {
			seen[m.Role] = true
			roles = append(roles, m.Role)
		}
	}
	return roles, nil
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account and returns a signed access token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} responses.SuccessResponse{data=AuthResponse} "User registered"
// @Failure 400 {object} responses.ErrorResponse "Invalid input or email already in use"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	existing, err := ac.users.GetUserByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "Failed to check email: "+err.Error())
		return
	}
	if existing != nil {
		responses.BadRequest(c, "User with this email already exists")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}

	u := user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Phone:    req.Phone,
	}
	if err := ac.users.CreateUser(&u); err != nil {
		responses.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	accessToken, err := token.GenerateJWT(u.ID, u.Email, nil, ac.config.JWT.Secret, ac.config.JWT.ExpiryHours)
	if err != nil {
		responses.InternalServerError(c, "Failed to generate token")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "User registered successfully", AuthResponse{
		AccessToken: accessToken,
		User:        u,
	})
}

// Login godoc
// @Summary Log in with email and password
// @Description Verifies credentials and returns a signed access token with a
// @Description snapshot of the user's organization roles.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse} "Logged in"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := ac.users.GetUserByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve user: "+err.Error())
		return
	}
	if u == nil || !utils.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	roles, err := ac.roleSnapshot(u.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load roles: "+err.Error())
		return
	}

	accessToken, err := token.GenerateJWT(u.ID, u.Email, roles, ac.config.JWT.Secret, ac.config.JWT.ExpiryHours)
	if err != nil {
		responses.InternalServerError(c, "Failed to generate token")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged in successfully", AuthResponse{
		AccessToken: accessToken,
		User:        *u,
		Roles:       roles,
	})
}
