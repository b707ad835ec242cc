package cli

import (
	"context"
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"ctchen222/perfect-tic-tac-toe/internal/player"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Human is a player.Agent fed by the person at the terminal.
type Human struct {
	view  *View
	delay time.Duration
}

// NewHuman creates an agent reading moves through view. delay is a pause
// after each accepted move so the choice stays on screen.
func NewHuman(view *View, delay time.Duration) *Human {
	return &Human{view: view, delay: delay}
}

// NewHumanPlayer wraps a Human agent in a player.
func NewHumanPlayer(view *View, mark game.PlayerMark, delay time.Duration) *player.Player {
	return player.NewPlayer("human", mark, NewHuman(view, delay))
}

func (h *Human) Kind() string { return "human" }

// NextMove asks until the person enters a legal move.
func (h *Human) NextMove(ctx context.Context, board game.Board) (game.Move, error) {
	prompt := fmt.Sprintf("%s to move (1-9 or \"row col\", q=quit): ", board.CurrentPlayer())
	for {
		if err := ctx.Err(); err != nil {
			return game.Move{}, err
		}

		line, err := h.view.in.ReadLine(prompt)
		if err != nil {
			return game.Move{}, err
		}
		if line == "" {
			continue
		}

		m, err := ParseMove(line)
		if err != nil {
			if errors.Is(err, ErrQuit) {
				return game.Move{}, err
			}
			fmt.Fprintf(h.view.out, "%v\n", err)
			continue
		}
		if !slices.Contains(board.LegalMoves(), m) {
			fmt.Fprintf(h.view.out, "Cell %s is taken, pick another.\n", m)
			continue
		}

		if h.delay > 0 {
			select {
			case <-time.After(h.delay):
			case <-ctx.Done():
				return game.Move{}, ctx.Err()
			}
		}
		return m, nil
	}
}

// ParseMove reads a keypad digit 1-9 or a 0-based "row col" pair.
func ParseMove(s string) (game.Move, error) {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	switch len(fields) {
	case 1:
		if fields[0] == "q" || fields[0] == "quit" || fields[0] == "exit" {
			return game.Move{}, ErrQuit
		}
		i, err := strconv.Atoi(fields[0])
		if err != nil {
			return game.Move{}, fmt.Errorf("%w: %q is not a position", game.ErrIllegalMove, s)
		}
		return game.MoveFromIndex(i)
	case 2:
		r, errR := strconv.Atoi(fields[0])
		c, errC := strconv.Atoi(fields[1])
		if errR != nil || errC != nil {
			return game.Move{}, fmt.Errorf("%w: %q is not a row and column", game.ErrIllegalMove, s)
		}
		m := game.Move{Row: r, Col: c}
		if !m.InBounds() {
			return game.Move{}, fmt.Errorf("%w: %s is off the board", game.ErrIllegalMove, m)
		}
		return m, nil
	default:
		return game.Move{}, fmt.Errorf("%w: %q", game.ErrIllegalMove, s)
	}
}
