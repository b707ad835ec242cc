package room

import (
	"context"
	"ctchen222/perfect-tic-tac-toe/internal/events"
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"ctchen222/perfect-tic-tac-toe/internal/player"
	"ctchen222/perfect-tic-tac-toe/internal/repository"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("room")

var (
	ErrBadPlayers    = errors.New("room needs one X player and one O player")
	ErrAlreadyPlayed = errors.New("room already played its game")
	ErrGameAborted   = errors.New("game aborted")
)

// Listener receives the events of a room, in order, on the room's goroutine.
type Listener interface {
	OnEvent(ctx context.Context, e events.Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, e events.Event)

func (f ListenerFunc) OnEvent(ctx context.Context, e events.Event) { f(ctx, e) }

// Room hosts a single game between two players.
type Room struct {
	ID       string
	playerX  *player.Player
	playerO  *player.Player
	gameRepo repository.GameRepository
	listener Listener
	logger   *slog.Logger

	mu     sync.Mutex
	board  game.Board
	moves  []game.Move
	played bool
}

type Option func(*Room)

// WithRepository records the finished game in repo.
func WithRepository(repo repository.GameRepository) Option {
	return func(r *Room) { r.gameRepo = repo }
}

func WithListener(l Listener) Option {
	return func(r *Room) { r.listener = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Room) { r.logger = l }
}

// New creates a room for playerX and playerO. An empty id gets a random one.
func New(id string, playerX, playerO *player.Player, opts ...Option) (*Room, error) {
	if playerX == nil || playerO == nil || playerX.Mark != game.PlayerX || playerO.Mark != game.PlayerO {
		return nil, ErrBadPlayers
	}
	if playerX.Agent == nil || playerO.Agent == nil {
		return nil, fmt.Errorf("%w: missing agent", ErrBadPlayers)
	}

	if id == "" {
		id = uuid.New().String()
	}

	r := &Room{
		ID:      id,
		playerX: playerX,
		playerO: playerO,
		logger:  slog.Default(),
		board:   game.NewBoard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("room.id", r.ID)
	return r, nil
}

// Board returns a snapshot of the current board.
func (r *Room) Board() game.Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.board
}

// Status returns where the game is in its lifecycle.
func (r *Room) Status() game.Status {
	return r.Board().Status()
}

// Moves returns the moves played so far.
func (r *Room) Moves() []game.Move {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]game.Move(nil), r.moves...)
}

// Play runs the game to completion and returns the final board. An illegal
// move from an agent stops the game immediately.
func (r *Room) Play(ctx context.Context) (game.Board, error) {
	ctx, span := tracer.Start(ctx, "room.Play", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("player.x", r.playerX.Kind()),
		attribute.String("player.o", r.playerO.Kind()),
	))
	defer span.End()

	r.mu.Lock()
	if r.played {
		r.mu.Unlock()
		return r.Board(), ErrAlreadyPlayed
	}
	r.played = true
	r.mu.Unlock()

	r.emit(ctx, events.TypeGameStarted, events.GameStartedPayload{
		RoomID:  r.ID,
		PlayerX: r.playerX.Kind(),
		PlayerO: r.playerO.Kind(),
		Board:   r.Board().String(),
	})
	r.logger.InfoContext(ctx, "Game started", "player.x", r.playerX.ID, "player.o", r.playerO.ID)

	board := r.Board()
	for !board.IsTerminal() {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "game aborted")
			return board, fmt.Errorf("%w: %w", ErrGameAborted, err)
		}

		current := r.playerFor(board.CurrentPlayer())
		move, err := current.Agent.NextMove(ctx, board)
		if err != nil {
			span.RecordError(err)
			if ctx.Err() != nil {
				span.SetStatus(codes.Error, "game aborted")
				return board, fmt.Errorf("%w: %w", ErrGameAborted, err)
			}
			span.SetStatus(codes.Error, "player failed to move")
			return board, fmt.Errorf("player %s (%s): %w", current.ID, current.Mark, err)
		}

		next, err := board.Apply(move)
		if err != nil {
			r.logger.ErrorContext(ctx, "Rejected illegal move", "player.id", current.ID, "move", move.String(), "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "illegal move")
			return board, fmt.Errorf("player %s (%s): %w", current.ID, current.Mark, err)
		}

		r.mu.Lock()
		r.board = next
		r.moves = append(r.moves, move)
		r.mu.Unlock()
		board = next

		r.logger.DebugContext(ctx, "Move applied", "player.mark", current.Mark, "move", move.String(), "board", board.String())
		r.emit(ctx, events.TypeMoveMade, events.MoveMadePayload{
			RoomID: r.ID,
			Mark:   current.Mark,
			Move:   move,
			Board:  board.String(),
			Status: board.Status(),
		})
	}

	result := board.Result()
	span.SetAttributes(attribute.String("game.result", string(result)))
	r.logger.InfoContext(ctx, "Game over", "game.result", result, "board", board.String())
	r.emit(ctx, events.TypeGameOver, events.GameOverPayload{
		RoomID: r.ID,
		Result: result,
		Winner: board.Winner(),
		Board:  board.String(),
	})

	if err := r.record(ctx, board); err != nil {
		// A ledger failure does not fail the game.
		r.logger.ErrorContext(ctx, "Failed to record game", "error", err)
		span.RecordError(err)
	}
	return board, nil
}

func (r *Room) playerFor(mark game.PlayerMark) *player.Player {
	if mark == game.PlayerX {
		return r.playerX
	}
	return r.playerO
}

func (r *Room) record(ctx context.Context, board game.Board) error {
	if r.gameRepo == nil {
		return nil
	}
	return r.gameRepo.Save(ctx, &repository.GameRecord{
		ID:      r.ID,
		PlayerX: r.playerX.Kind(),
		PlayerO: r.playerO.Kind(),
		Moves:   r.Moves(),
		Board:   board.String(),
		Result:  board.Result(),
	})
}

func (r *Room) emit(ctx context.Context, eventType string, payload any) {
	if r.listener == nil {
		return
	}
	e, err := events.New(eventType, payload)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to build event", "event", eventType, "error", err)
		return
	}
	r.listener.OnEvent(ctx, e)
}
