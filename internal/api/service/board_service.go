package service

import (
	"context"
	"ctchen222/perfect-tic-tac-toe/internal/bot"
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"ctchen222/perfect-tic-tac-toe/pkg/proto"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("api.service")

// BoardService answers stateless questions about a single board.
type BoardService interface {
	Analyze(ctx context.Context, board string) (proto.BoardState, error)
	Move(ctx context.Context, board string, m game.Move) (proto.BoardState, error)
	BestMove(ctx context.Context, board string, difficulty string) (proto.MoveResult, error)
}

type boardService struct{}

// NewBoardService creates a new BoardService.
func NewBoardService() BoardService {
	return &boardService{}
}

func (s *boardService) Analyze(ctx context.Context, board string) (proto.BoardState, error) {
	b, err := game.ParseBoard(board)
	if err != nil {
		return proto.BoardState{}, err
	}
	return proto.NewBoardState(b), nil
}

// Move applies m for the player to move. Moving on a finished board is illegal.
func (s *boardService) Move(ctx context.Context, board string, m game.Move) (proto.BoardState, error) {
	b, err := game.ParseBoard(board)
	if err != nil {
		return proto.BoardState{}, err
	}
	if b.IsTerminal() {
		return proto.BoardState{}, fmt.Errorf("%w: the game is already over", game.ErrIllegalMove)
	}

	next, err := b.Apply(m)
	if err != nil {
		return proto.BoardState{}, err
	}
	return proto.NewBoardState(next), nil
}

// BestMove picks a move at the given difficulty. Only the hard level reports
// the minimax value and the size of the search.
func (s *boardService) BestMove(ctx context.Context, board string, difficulty string) (proto.MoveResult, error) {
	ctx, span := tracer.Start(ctx, "BoardService.BestMove")
	defer span.End()

	b, err := game.ParseBoard(board)
	if err != nil {
		return proto.MoveResult{}, err
	}
	level, err := bot.ParseDifficulty(difficulty)
	if err != nil {
		return proto.MoveResult{}, err
	}
	if b.IsTerminal() {
		return proto.MoveResult{}, bot.ErrGameFinished
	}
	span.SetAttributes(attribute.String("game.board", b.String()), attribute.String("bot.difficulty", string(level)))

	if level == bot.Hard {
		res := bot.Search(b)
		next, _ := b.Apply(res.Move)
		return proto.MoveResult{
			Move:       res.Move,
			Difficulty: string(level),
			Value:      &res.Value,
			Nodes:      res.Nodes,
			Board:      next.String(),
		}, nil
	}

	m, err := bot.NewBot(b.CurrentPlayer(), level).NextMove(ctx, b)
	if err != nil {
		return proto.MoveResult{}, err
	}
	next, _ := b.Apply(m)
	return proto.MoveResult{Move: m, Difficulty: string(level), Board: next.String()}, nil
}
