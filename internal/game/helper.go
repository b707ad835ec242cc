package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// RandomMark picks X or O with equal probability.
func RandomMark() PlayerMark {
	if rand.IntN(2) == 0 {
		return PlayerX
	}
	return PlayerO
}

// MoveFromIndex converts a keypad position 1..9 (row-major) to a move.
func MoveFromIndex(i int) (Move, error) {
	if i < 1 || i > 9 {
		return Move{}, fmt.Errorf("%w: position %d is outside 1..9", ErrIllegalMove, i)
	}
	return Move{Row: (i - 1) / 3, Col: (i - 1) % 3}, nil
}

// Index is the inverse of MoveFromIndex.
func (m Move) Index() int {
	return m.Row*3 + m.Col + 1
}

// String encodes the board as 9 row-major characters: X, O or '.'.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(9)
	for r := range [3]int{} {
		for c := range [3]int{} {
			switch b[r][c] {
			case PlayerX:
				sb.WriteByte('X')
			case PlayerO:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// ParseBoard decodes the 9 character form produced by Board.String.
// '-', '_' and ' ' are also accepted for empty cells, and marks are case-insensitive.
func ParseBoard(s string) (Board, error) {
	if len(s) != 9 {
		return Board{}, fmt.Errorf("%w: want 9 cells, got %d", ErrInvalidBoard, len(s))
	}

	var b Board
	for i := 0; i < 9; i++ {
		switch s[i] {
		case 'X', 'x':
			b[i/3][i%3] = PlayerX
		case 'O', 'o':
			b[i/3][i%3] = PlayerO
		case '.', '-', '_', ' ':
			b[i/3][i%3] = None
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q at %d", ErrInvalidBoard, s[i], i)
		}
	}

	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Rows converts the board to a slice of slices, the shape used on the wire.
func (b Board) Rows() [][]PlayerMark {
	rows := make([][]PlayerMark, 3)
	for i := range [3]int{} {
		rows[i] = make([]PlayerMark, 3)
		for j := range [3]int{} {
			rows[i][j] = b[i][j]
		}
	}
	return rows
}

// BoardFromRows is the inverse of Rows. The result is validated.
func BoardFromRows(rows [][]PlayerMark) (Board, error) {
	var b Board
	if len(rows) != 3 {
		return b, fmt.Errorf("%w: want 3 rows, got %d", ErrInvalidBoard, len(rows))
	}
	for i, row := range rows {
		if len(row) != 3 {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, i, len(row))
		}
		for j, cell := range row {
			if cell != None && cell != PlayerX && cell != PlayerO {
				return Board{}, fmt.Errorf("%w: unknown mark %q", ErrInvalidBoard, cell)
			}
			b[i][j] = cell
		}
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Validate checks that the board could arise from alternating play with X
// first: X has as many marks as O, or exactly one more.
func (b Board) Validate() error {
	var xs, ohs int
	for r := range [3]int{} {
		for c := range [3]int{} {
			switch b[r][c] {
			case PlayerX:
				xs++
			case PlayerO:
				ohs++
			}
		}
	}
	if d := xs - ohs; d != 0 && d != 1 {
		return fmt.Errorf("%w: %d X marks and %d O marks", ErrInvalidBoard, xs, ohs)
	}
	return nil
}
