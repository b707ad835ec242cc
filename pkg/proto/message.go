package proto

import "ctchen222/perfect-tic-tac-toe/internal/game"

// BoardState is the wire view of a board and everything derived from it.
type BoardState struct {
	Board      string              `json:"board"`
	Rows       [][]game.PlayerMark `json:"rows"`
	Next       game.PlayerMark     `json:"next,omitempty"`
	LegalMoves []game.Move         `json:"legal_moves"`
	Winner     game.PlayerMark     `json:"winner,omitempty"`
	Result     game.GameResult     `json:"result"`
	Status     game.Status         `json:"status"`
	Terminal   bool                `json:"terminal"`
	Utility    *int                `json:"utility,omitempty"`
}

// NewBoardState derives the wire view of b. Once the game is over Next is
// omitted, no move is legal and Utility is set.
func NewBoardState(b game.Board) BoardState {
	s := BoardState{
		Board:      b.String(),
		Rows:       b.Rows(),
		LegalMoves: b.LegalMoves(),
		Winner:     b.Winner(),
		Result:     b.Result(),
		Status:     b.Status(),
		Terminal:   b.IsTerminal(),
	}
	if s.Terminal {
		u := b.Utility()
		s.Utility = &u
		s.LegalMoves = []game.Move{}
	} else {
		s.Next = b.CurrentPlayer()
	}
	return s
}

// BoardFromState rebuilds the board from its rows.
func BoardFromState(s BoardState) (game.Board, error) {
	return game.BoardFromRows(s.Rows)
}

// MoveResult is the answer to a best-move query.
type MoveResult struct {
	Move       game.Move `json:"move"`
	Difficulty string    `json:"difficulty"`
	Value      *int      `json:"value,omitempty"`
	Nodes      int       `json:"nodes,omitempty"`
	Board      string    `json:"board"`
}
