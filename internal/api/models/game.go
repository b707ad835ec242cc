package models

import "ctchen222/perfect-tic-tac-toe/internal/game"

// BoardRequest carries a board in its 9 character form.
type BoardRequest struct {
	Board string `json:"board" binding:"required,board"`
}

// MoveRequest asks for a move to be applied for the player to move.
type MoveRequest struct {
	Board string `json:"board" binding:"required,board"`
	Row   *int   `json:"row" binding:"required"`
	Col   *int   `json:"col" binding:"required"`
}

// BestMoveRequest asks the bot for a move. Difficulty defaults to hard.
type BestMoveRequest struct {
	Board      string `json:"board" binding:"required,board"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// RecordGameRequest submits a finished game for the ledger.
type RecordGameRequest struct {
	Moves   []game.Move `json:"moves" binding:"required,min=5,max=9"`
	PlayerX string      `json:"player_x" binding:"omitempty,max=64"`
	PlayerO string      `json:"player_o" binding:"omitempty,max=64"`
}

// ListGamesQuery pages through the ledger.
type ListGamesQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
