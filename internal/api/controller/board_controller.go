package controller

import (
	"ctchen222/perfect-tic-tac-toe/internal/api/models"
	"ctchen222/perfect-tic-tac-toe/internal/api/response"
	"ctchen222/perfect-tic-tac-toe/internal/api/service"
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"ctchen222/perfect-tic-tac-toe/pkg/proto"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BoardController handles the stateless board endpoints.
type BoardController struct {
	boardService service.BoardService
}

// NewBoardController creates a new BoardController.
func NewBoardController(boardService service.BoardService) *BoardController {
	return &BoardController{
		boardService: boardService,
	}
}

// New returns the empty starting board.
func (bc *BoardController) New(c *gin.Context) {
	response.SuccessResponse(c, proto.NewBoardState(game.NewBoard()))
}

// Analyze reports everything derived from a board.
func (bc *BoardController) Analyze(c *gin.Context) {
	var req models.BoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := bc.boardService.Analyze(c.Request.Context(), req.Board)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessResponse(c, state)
}

// Move applies a move for the player whose turn it is.
func (bc *BoardController) Move(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := bc.boardService.Move(c.Request.Context(), req.Board, game.Move{Row: *req.Row, Col: *req.Col})
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessResponse(c, state)
}

// BestMove asks the bot for a move.
func (bc *BoardController) BestMove(c *gin.Context) {
	var req models.BestMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := bc.boardService.BestMove(c.Request.Context(), req.Board, req.Difficulty)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessResponse(c, res)
}
