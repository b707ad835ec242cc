package service

import (
	"context"
	"ctchen222/perfect-tic-tac-toe/internal/api/models"
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"ctchen222/perfect-tic-tac-toe/internal/repository"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -destination=mocks/mock_game_service.go -package=mocks . GameService

const DefaultListLimit = 20

var ErrGameNotFinished = errors.New("game is not finished")

// GameService records finished games and reads the ledger back.
type GameService interface {
	Record(ctx context.Context, req *models.RecordGameRequest) (*repository.GameRecord, error)
	Get(ctx context.Context, id string) (*repository.GameRecord, error)
	List(ctx context.Context, limit int) ([]repository.GameRecord, error)
	Stats(ctx context.Context) (repository.Stats, error)
}

type gameService struct {
	gameRepo repository.GameRepository
}

// NewGameService creates a new GameService.
func NewGameService(gameRepo repository.GameRepository) GameService {
	return &gameService{gameRepo: gameRepo}
}

// Record replays the submitted moves and stores the game if it is over.
func (s *gameService) Record(ctx context.Context, req *models.RecordGameRequest) (*repository.GameRecord, error) {
	ctx, span := tracer.Start(ctx, "GameService.Record")
	defer span.End()

	board, err := game.Replay(req.Moves)
	if err != nil {
		return nil, err
	}
	if !board.IsTerminal() {
		return nil, fmt.Errorf("%w: %d moves played", ErrGameNotFinished, board.MoveCount())
	}

	rec := &repository.GameRecord{
		ID:      uuid.New().String(),
		PlayerX: playerName(req.PlayerX),
		PlayerO: playerName(req.PlayerO),
		Moves:   req.Moves,
		Board:   board.String(),
		Result:  board.Result(),
	}
	span.SetAttributes(attribute.String("game.id", rec.ID), attribute.String("game.result", string(rec.Result)))

	if err := s.gameRepo.Save(ctx, rec); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Game recorded", "game.id", rec.ID, "game.result", rec.Result)
	return rec, nil
}

func (s *gameService) Get(ctx context.Context, id string) (*repository.GameRecord, error) {
	return s.gameRepo.FindByID(ctx, id)
}

// List returns the most recent games. A non-positive limit means DefaultListLimit.
func (s *gameService) List(ctx context.Context, limit int) ([]repository.GameRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.gameRepo.List(ctx, limit)
}

func (s *gameService) Stats(ctx context.Context) (repository.Stats, error) {
	return s.gameRepo.Stats(ctx)
}

func playerName(name string) string {
	if name == "" {
		return "anonymous"
	}
	return name
}
