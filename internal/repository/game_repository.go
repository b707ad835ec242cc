package repository

import (
	"context"
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -destination=mocks/mock_game_repository.go -package=mocks . GameRepository

var tracer = otel.Tracer("repository.game")

var ErrGameNotFound = errors.New("game not found")

// timeLayout has a fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// GameRecord is one finished game in the ledger.
type GameRecord struct {
	ID        string          `json:"id"`
	PlayerX   string          `json:"player_x"`
	PlayerO   string          `json:"player_o"`
	Moves     []game.Move     `json:"moves"`
	Board     string          `json:"board"`
	Result    game.GameResult `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// Stats counts finished games by result.
type Stats struct {
	Total int `json:"total"`
	XWins int `json:"x_wins"`
	OWins int `json:"o_wins"`
	Draws int `json:"draws"`
}

// GameRepository defines the interface for game ledger operations.
type GameRepository interface {
	Save(ctx context.Context, record *GameRecord) error
	FindByID(ctx context.Context, id string) (*GameRecord, error)
	List(ctx context.Context, limit int) ([]GameRecord, error)
	Stats(ctx context.Context) (Stats, error)
}

type dbGameRecord struct {
	ID        string `db:"id"`
	PlayerX   string `db:"player_x"`
	PlayerO   string `db:"player_o"`
	Moves     string `db:"moves"`
	Board     string `db:"board"`
	Result    string `db:"result"`
	CreatedAt string `db:"created_at"`
}

type sqliteGameRepository struct {
	db *sqlx.DB
}

// NewGameRepository creates a new SQLite-based GameRepository.
func NewGameRepository(db *sqlx.DB) GameRepository {
	return &sqliteGameRepository{db: db}
}

// Save inserts a finished game.
func (r *sqliteGameRepository) Save(ctx context.Context, record *GameRecord) error {
	ctx, span := tracer.Start(ctx, "GameRepository.Save")
	defer span.End()
	span.SetAttributes(attribute.String("game.id", record.ID))

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	row := dbGameRecord{
		ID:        record.ID,
		PlayerX:   record.PlayerX,
		PlayerO:   record.PlayerO,
		Moves:     EncodeMoves(record.Moves),
		Board:     record.Board,
		Result:    string(record.Result),
		CreatedAt: record.CreatedAt.UTC().Format(timeLayout),
	}

	query := `INSERT INTO games (id, player_x, player_o, moves, board, result, created_at)
		VALUES (:id, :player_x, :player_o, :moves, :board, :result, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save game")
		return fmt.Errorf("failed to save game %s: %w", record.ID, err)
	}
	return nil
}

// FindByID retrieves a game by its ID.
func (r *sqliteGameRepository) FindByID(ctx context.Context, id string) (*GameRecord, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.FindByID")
	defer span.End()
	span.SetAttributes(attribute.String("game.id", id))

	var row dbGameRecord
	query := `SELECT id, player_x, player_o, moves, board, result, created_at FROM games WHERE id = ?`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get game")
		return nil, fmt.Errorf("failed to get game %s: %w", id, err)
	}
	return row.toRecord()
}

// List returns the most recent games first.
func (r *sqliteGameRepository) List(ctx context.Context, limit int) ([]GameRecord, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.List")
	defer span.End()

	var rows []dbGameRecord
	query := `SELECT id, player_x, player_o, moves, board, result, created_at
		FROM games ORDER BY created_at DESC, id LIMIT ?`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list games")
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	records := make([]GameRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

// Stats aggregates results over the whole ledger.
func (r *sqliteGameRepository) Stats(ctx context.Context) (Stats, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.Stats")
	defer span.End()

	var counts []struct {
		Result string `db:"result"`
		N      int    `db:"n"`
	}
	query := `SELECT result, COUNT(*) AS n FROM games GROUP BY result`
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to aggregate games")
		return Stats{}, fmt.Errorf("failed to aggregate games: %w", err)
	}

	var s Stats
	for _, c := range counts {
		s.Total += c.N
		switch game.GameResult(c.Result) {
		case game.XWon:
			s.XWins = c.N
		case game.OWon:
			s.OWins = c.N
		case game.Draw:
			s.Draws = c.N
		}
	}
	return s, nil
}

func (row dbGameRecord) toRecord() (*GameRecord, error) {
	moves, err := DecodeMoves(row.Moves)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", row.ID, err)
	}
	createdAt, err := time.Parse(timeLayout, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("game %s: bad created_at: %w", row.ID, err)
	}
	return &GameRecord{
		ID:        row.ID,
		PlayerX:   row.PlayerX,
		PlayerO:   row.PlayerO,
		Moves:     moves,
		Board:     row.Board,
		Result:    game.GameResult(row.Result),
		CreatedAt: createdAt,
	}, nil
}

// EncodeMoves stores moves as keypad digits, e.g. "5137".
func EncodeMoves(moves []game.Move) string {
	var sb strings.Builder
	for _, m := range moves {
		sb.WriteString(strconv.Itoa(m.Index()))
	}
	return sb.String()
}

// DecodeMoves is the inverse of EncodeMoves.
func DecodeMoves(s string) ([]game.Move, error) {
	moves := make([]game.Move, 0, len(s))
	for _, ch := range s {
		m, err := game.MoveFromIndex(int(ch - '0'))
		if err != nil {
			return nil, fmt.Errorf("bad move list %q: %w", s, err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}
