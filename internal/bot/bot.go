package bot

import (
	"context"
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"ctchen222/perfect-tic-tac-toe/internal/player"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrNotMyTurn    = errors.New("not the bot's turn")
	ErrGameFinished = errors.New("game already finished")
)

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

// Bot is a computer-controlled player. It implements player.Agent.
type Bot struct {
	mark       game.PlayerMark
	difficulty Difficulty
	delay      time.Duration // pause before answering, for pacing only
	rng        *rand.Rand
	logger     *slog.Logger

	nodes    metric.Int64Counter
	duration metric.Float64Histogram
}

type Option func(*Bot)

// WithDelay makes the bot wait before each move.
func WithDelay(d time.Duration) Option {
	return func(b *Bot) { b.delay = d }
}

// WithRand sets the random source used by the easy and medium levels.
func WithRand(rng *rand.Rand) Option {
	return func(b *Bot) { b.rng = rng }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Bot) { b.logger = l }
}

// NewBot creates a bot playing mark at the given difficulty.
func NewBot(mark game.PlayerMark, difficulty Difficulty, opts ...Option) *Bot {
	b := &Bot{
		mark:       mark,
		difficulty: difficulty,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}

	var err error
	b.nodes, err = meter.Int64Counter("bot.search.nodes",
		metric.WithDescription("Boards visited by minimax searches"))
	if err != nil {
		b.logger.Warn("failed to create search node counter", "error", err)
	}
	b.duration, err = meter.Float64Histogram("bot.search.duration",
		metric.WithDescription("Time spent choosing a move"),
		metric.WithUnit("ms"))
	if err != nil {
		b.logger.Warn("failed to create search duration histogram", "error", err)
	}
	return b
}

func (b *Bot) Mark() game.PlayerMark { return b.mark }

func (b *Bot) Kind() string { return "bot:" + string(b.difficulty) }

// NextMove waits for the configured delay, then picks a move for the board.
func (b *Bot) NextMove(ctx context.Context, board game.Board) (game.Move, error) {
	ctx, span := tracer.Start(ctx, "bot.NextMove", trace.WithAttributes(
		attribute.String("player.mark", string(b.mark)),
		attribute.String("bot.difficulty", string(b.difficulty)),
		attribute.String("game.board", board.String()),
	))
	defer span.End()

	if board.IsTerminal() {
		span.SetStatus(codes.Error, "game already finished")
		return game.Move{}, ErrGameFinished
	}
	if board.CurrentPlayer() != b.mark {
		err := fmt.Errorf("%w: %s to move", ErrNotMyTurn, board.CurrentPlayer())
		span.RecordError(err)
		span.SetStatus(codes.Error, "not the bot's turn")
		return game.Move{}, err
	}

	b.logger.DebugContext(ctx, "Bot is thinking", "player.mark", b.mark, "bot.difficulty", b.difficulty)
	if b.delay > 0 {
		select {
		case <-time.After(b.delay):
		case <-ctx.Done():
			span.RecordError(ctx.Err())
			return game.Move{}, ctx.Err()
		}
	}

	start := time.Now()
	var (
		move  game.Move
		found bool
	)
	if b.difficulty == Hard || b.difficulty == "" {
		res := Search(board)
		move, found = res.Move, res.Found
		span.SetAttributes(attribute.Int("search.nodes", res.Nodes), attribute.Int("search.value", res.Value))
		if b.nodes != nil {
			b.nodes.Add(ctx, int64(res.Nodes), metric.WithAttributes(attribute.String("player.mark", string(b.mark))))
		}
	} else {
		move, found = CalculateNextMove(board, b.difficulty, b.rng)
	}
	if b.duration != nil {
		b.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000,
			metric.WithAttributes(attribute.String("bot.difficulty", string(b.difficulty))))
	}

	if !found {
		span.SetStatus(codes.Error, "no move found")
		return game.Move{}, ErrGameFinished
	}

	span.SetAttributes(attribute.String("move", move.String()))
	b.logger.InfoContext(ctx, "Bot chose a move", "player.mark", b.mark, "move", move.String())
	return move, nil
}

// NewBotPlayer creates a new player instance that is a bot.
func NewBotPlayer(mark game.PlayerMark, difficulty Difficulty, opts ...Option) *player.Player {
	botID := "bot-" + uuid.New().String()[:8]
	p := player.NewPlayer(botID, mark, NewBot(mark, difficulty, opts...))
	p.IsBot = true
	return p
}
