package service

import (
	"context"
	"ctchen222/perfect-tic-tac-toe/internal/api/models"
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"ctchen222/perfect-tic-tac-toe/internal/repository"
	"ctchen222/perfect-tic-tac-toe/internal/repository/mocks"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func moves(idx ...int) []game.Move {
	out := make([]game.Move, 0, len(idx))
	for _, i := range idx {
		m, _ := game.MoveFromIndex(i)
		out = append(out, m)
	}
	return out
}

func TestGameService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockGameRepository(ctrl)
	svc := NewGameService(repo)

	// Given: X wins along the top row
	req := &models.RecordGameRequest{Moves: moves(1, 4, 2, 5, 3), PlayerX: "alice"}

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec *repository.GameRecord) error {
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, "alice", rec.PlayerX)
		assert.Equal(t, "anonymous", rec.PlayerO)
		assert.Equal(t, "XXXOO....", rec.Board)
		assert.Equal(t, game.XWon, rec.Result)
		return nil
	})

	// When
	rec, err := svc.Record(context.Background(), req)

	// Then
	require.NoError(t, err)
	assert.Equal(t, game.XWon, rec.Result)
}

func TestGameService_RecordRejects(t *testing.T) {
	tests := []struct {
		name    string
		moves   []game.Move
		wantErr error
	}{
		{"Unfinished game", moves(1, 2, 3, 4, 5), ErrGameNotFinished},
		{"Occupied cell", moves(1, 1, 2, 3, 4), game.ErrIllegalMove},
		{"Move after the win", moves(1, 4, 2, 5, 3, 6), game.ErrIllegalMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockGameRepository(ctrl)
			repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

			_, err := NewGameService(repo).Record(context.Background(), &models.RecordGameRequest{Moves: tt.moves})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGameService_RecordSaveFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockGameRepository(ctrl)
	saveErr := errors.New("database is locked")
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(saveErr)

	_, err := NewGameService(repo).Record(context.Background(), &models.RecordGameRequest{Moves: moves(1, 4, 2, 5, 3)})

	assert.ErrorIs(t, err, saveErr)
}

func TestGameService_ListDefaultsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockGameRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), DefaultListLimit).Return([]repository.GameRecord{{ID: "a"}}, nil)
	repo.EXPECT().List(gomock.Any(), 5).Return(nil, nil)

	svc := NewGameService(repo)

	got, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.List(context.Background(), 5)
	require.NoError(t, err)
}

func TestGameService_GetAndStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockGameRepository(ctrl)
	repo.EXPECT().FindByID(gomock.Any(), "missing").Return(nil, repository.ErrGameNotFound)
	repo.EXPECT().Stats(gomock.Any()).Return(repository.Stats{Total: 2, Draws: 2}, nil)

	svc := NewGameService(repo)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrGameNotFound)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Draws)
}
