package bot

import (
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"errors"
	"fmt"
	"math/rand/v2"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty selects how strong the bot plays.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty maps a name to a Difficulty. The empty string means Hard.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s), nil
	case "":
		return Hard, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownDifficulty, s)
	}
}

// Result is the outcome of a full minimax search.
type Result struct {
	Move  game.Move
	Value int // minimax value of Move: +1 X wins, -1 O wins, 0 draw
	Nodes int // boards visited, including the root
	Found bool
}

// BestMove returns the optimal move for the player to move. It reports false
// when the board is already terminal.
func BestMove(b game.Board) (game.Move, bool) {
	res := Search(b)
	return res.Move, res.Found
}

// Search runs an exhaustive minimax search from b. X maximizes and O
// minimizes. Among equally good moves the first in LegalMoves order wins.
func Search(b game.Board) Result {
	if b.IsTerminal() {
		return Result{Value: b.Utility(), Nodes: 1}
	}

	res := Result{Nodes: 1, Found: true}
	maximizing := b.CurrentPlayer() == game.PlayerX
	for i, m := range b.LegalMoves() {
		next, _ := b.Apply(m)

		var v, n int
		if maximizing {
			v, n = minValue(next)
		} else {
			v, n = maxValue(next)
		}
		res.Nodes += n

		if i == 0 || (maximizing && v > res.Value) || (!maximizing && v < res.Value) {
			res.Move, res.Value = m, v
		}
	}
	return res
}

// maxValue is the value of b with X to move, and the number of boards visited.
func maxValue(b game.Board) (int, int) {
	if b.IsTerminal() {
		return b.Utility(), 1
	}

	best, nodes := -2, 1
	for _, m := range b.LegalMoves() {
		next, _ := b.Apply(m)
		v, n := minValue(next)
		nodes += n
		best = max(best, v)
	}
	return best, nodes
}

// minValue is the value of b with O to move.
func minValue(b game.Board) (int, int) {
	if b.IsTerminal() {
		return b.Utility(), 1
	}

	best, nodes := 2, 1
	for _, m := range b.LegalMoves() {
		next, _ := b.Apply(m)
		v, n := maxValue(next)
		nodes += n
		best = min(best, v)
	}
	return best, nodes
}

// CalculateNextMove determines the bot's next move based on the specified difficulty.
// rng drives the random choices of the weaker levels; it may be nil for Hard.
func CalculateNextMove(b game.Board, difficulty Difficulty, rng *rand.Rand) (game.Move, bool) {
	switch difficulty {
	case Easy:
		return easyMove(b, rng)
	case Medium:
		return mediumMove(b, rng)
	default:
		return BestMove(b)
	}
}

// easyMove makes a completely random move.
func easyMove(b game.Board, rng *rand.Rand) (game.Move, bool) {
	if b.IsTerminal() {
		return game.Move{}, false
	}
	moves := b.LegalMoves()
	return moves[rng.IntN(len(moves))], true
}

// mediumMove will win if it can, block if it must, otherwise move randomly.
func mediumMove(b game.Board, rng *rand.Rand) (game.Move, bool) {
	if b.IsTerminal() {
		return game.Move{}, false
	}
	mark := b.CurrentPlayer()

	// 1. Win: Check if the bot can win in the next move
	if m, ok := findWinningMove(b, mark); ok {
		return m, true
	}

	// 2. Block: Check if the opponent is about to win and block them
	if m, ok := findWinningMove(b, mark.Opponent()); ok {
		return m, true
	}

	// 3. Random: Otherwise, make a random move
	return easyMove(b, rng)
}

// findWinningMove returns the first empty cell (row-major) that would complete a line for mark.
func findWinningMove(b game.Board, mark game.PlayerMark) (game.Move, bool) {
	for _, m := range b.LegalMoves() {
		probe := b
		probe[m.Row][m.Col] = mark
		if probe.Winner() == mark {
			return m, true
		}
	}
	return game.Move{}, false
}
