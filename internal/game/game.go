package game

import (
	"errors"
	"fmt"
)

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string
type GameResult string
type Status string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// Game results
	InProgress GameResult = "InProgress"
	XWon       GameResult = "XWon"
	OWon       GameResult = "OWon"
	Draw       GameResult = "Draw"

	// Game lifecycle
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusWonByX     Status = "won_by_x"
	StatusWonByO     Status = "won_by_o"
	StatusTied       Status = "tied"

	// Board boundaries
	BorderMin = 0
	BorderMax = 2
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrInvalidBoard = errors.New("invalid board")
)

// lines holds the 8 winning lines in scan order: rows, columns, diagonals.
var lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid of marks. It is a value type: every operation that
// changes the position returns a new Board.
type Board [3][3]PlayerMark

// Move identifies a single cell by row and column.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Opponent returns the other player's mark. None has no opponent.
func (m PlayerMark) Opponent() PlayerMark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// InBounds reports whether the move addresses a cell on the board.
func (m Move) InBounds() bool {
	return m.Row >= BorderMin && m.Row <= BorderMax && m.Col >= BorderMin && m.Col <= BorderMax
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// NewBoard returns a board with all nine cells empty.
func NewBoard() Board {
	return Board{}
}

// MoveCount returns the number of occupied cells.
func (b Board) MoveCount() int {
	n := 0
	for r := range [3]int{} {
		for c := range [3]int{} {
			if b[r][c] != None {
				n++
			}
		}
	}
	return n
}

// CurrentPlayer returns the mark to move. X always moves first, so an even
// number of occupied cells means it is X's turn.
func (b Board) CurrentPlayer() PlayerMark {
	if b == NewBoard() {
		return PlayerX
	}
	if b.MoveCount()%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

// LegalMoves returns the empty cells in row-major order.
func (b Board) LegalMoves() []Move {
	moves := make([]Move, 0, 9)
	for r := range [3]int{} {
		for c := range [3]int{} {
			if b[r][c] == None {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

// Apply returns a copy of the board with the current player's mark placed at m.
// The receiver is never modified.
func (b Board) Apply(m Move) (Board, error) {
	if !m.InBounds() {
		return b, fmt.Errorf("%w: %s is off the board", ErrIllegalMove, m)
	}
	if b[m.Row][m.Col] != None {
		return b, fmt.Errorf("%w: %s is already occupied", ErrIllegalMove, m)
	}

	next := b
	next[m.Row][m.Col] = b.CurrentPlayer()
	return next, nil
}

// Winner returns the mark that completed a line, or None.
func (b Board) Winner() PlayerMark {
	for _, ln := range lines {
		first := b[ln[0].Row][ln[0].Col]
		if first != None && first == b[ln[1].Row][ln[1].Col] && first == b[ln[2].Row][ln[2].Col] {
			return first
		}
	}
	return None
}

// IsFull reports whether no empty cell is left.
func (b Board) IsFull() bool {
	return b.MoveCount() == 9
}

// IsTerminal reports whether the game on this board is over.
func (b Board) IsTerminal() bool {
	return b.Winner() != None || b.IsFull()
}

// Utility scores a finished board: +1 if X won, -1 if O won, 0 for a draw.
// A board that is not terminal also scores 0; callers check IsTerminal first.
func (b Board) Utility() int {
	switch b.Winner() {
	case PlayerX:
		return 1
	case PlayerO:
		return -1
	default:
		return 0
	}
}

// Result derives the outcome of the board.
func (b Board) Result() GameResult {
	switch b.Winner() {
	case PlayerX:
		return XWon
	case PlayerO:
		return OWon
	}
	if b.IsFull() {
		return Draw
	}
	return InProgress
}

// Status places the board in the game lifecycle.
func (b Board) Status() Status {
	switch b.Result() {
	case XWon:
		return StatusWonByX
	case OWon:
		return StatusWonByO
	case Draw:
		return StatusTied
	}
	if b.MoveCount() == 0 {
		return StatusNotStarted
	}
	return StatusInProgress
}

// IsTerminal reports whether the status is absorbing.
func (s Status) IsTerminal() bool {
	return s == StatusWonByX || s == StatusWonByO || s == StatusTied
}

// Replay applies moves in order starting from an empty board. A move played
// after the game has ended is illegal.
func Replay(moves []Move) (Board, error) {
	b := NewBoard()
	for i, m := range moves {
		if b.IsTerminal() {
			return b, fmt.Errorf("%w: move %d %s played after the game ended", ErrIllegalMove, i+1, m)
		}
		next, err := b.Apply(m)
		if err != nil {
			return b, fmt.Errorf("move %d: %w", i+1, err)
		}
		b = next
	}
	return b, nil
}
