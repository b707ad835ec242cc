package controller

import (
	"ctchen222/perfect-tic-tac-toe/internal/api/models"
	"ctchen222/perfect-tic-tac-toe/internal/api/response"
	"ctchen222/perfect-tic-tac-toe/internal/api/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GameController serves the game ledger.
type GameController struct {
	gameService service.GameService
}

// NewGameController creates a new GameController.
func NewGameController(gameService service.GameService) *GameController {
	return &GameController{
		gameService: gameService,
	}
}

// Record stores a finished game.
func (gc *GameController) Record(c *gin.Context) {
	var req models.RecordGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := gc.gameService.Record(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.CreatedResponse(c, rec)
}

// List returns the most recent games.
func (gc *GameController) List(c *gin.Context) {
	var q models.ListGamesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	games, err := gc.gameService.List(c.Request.Context(), q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessResponseList(c, games)
}

// Get returns one game by ID.
func (gc *GameController) Get(c *gin.Context) {
	rec, err := gc.gameService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessResponse(c, rec)
}

// Stats counts recorded games by result.
func (gc *GameController) Stats(c *gin.Context) {
	stats, err := gc.gameService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessResponse(c, stats)
}
