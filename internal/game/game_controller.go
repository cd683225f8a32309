package game

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tourneo/tourneo/pkg/responses"
)

// GameController handles game catalog requests.
type GameController struct {
	repo GameRepository
}

// NewGameController creates a new game controller.
func NewGameController(repo GameRepository) *GameController {
	return &GameController{repo: repo}
}

type CreateGameRequest struct {
	Key  string `json:"key" binding:"required,min=2,max=50"`
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// GetAllGames godoc
// @Summary Get all available games
// @Description Retrieves the game catalog referenced by tournaments and player profiles.
// @Tags Games
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Game} "List of games"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /games [get]
func (gc *GameController) GetAllGames(c *gin.Context) {
	games, err := gc.repo.GetAll()
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve games: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Games retrieved successfully", games)
}

// CreateGame godoc
// @Summary Create a game
// @Description Adds a game to the catalog. Used for seeding new disciplines.
// @Tags Games
// @Accept json
// @Produce json
// @Param game body CreateGameRequest true "Game data"
// @Success 201 {object} responses.SuccessResponse{data=Game} "Game created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input or duplicate key"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /games [post]
func (gc *GameController) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	existing, err := gc.repo.GetByKey(req.Key)
	if err != nil {
		responses.InternalServerError(c, "Failed to check game key: "+err.Error())
		return
	}
	if existing != nil {
		responses.BadRequest(c, "Game with key '"+req.Key+"' already exists")
		return
	}

	g := Game{Key: req.Key, Name: req.Name}
	if err := gc.repo.Create(&g); err != nil {
		responses.InternalServerError(c, "Failed to create game: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Game created successfully", g)
}
