package proto

import (
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardState_InProgress(t *testing.T) {
	b, err := game.ParseBoard("XX.OO....")
	require.NoError(t, err)

	s := NewBoardState(b)

	assert.Equal(t, "XX.OO....", s.Board)
	assert.Equal(t, game.PlayerX, s.Next)
	assert.Len(t, s.LegalMoves, 5)
	assert.Equal(t, game.InProgress, s.Result)
	assert.Equal(t, game.StatusInProgress, s.Status)
	assert.False(t, s.Terminal)
	assert.Nil(t, s.Utility)

	back, err := BoardFromState(s)
	require.NoError(t, err)
	assert.Equal(t, b, back)
}

func TestNewBoardState_Terminal(t *testing.T) {
	b, err := game.ParseBoard("XXXOO....")
	require.NoError(t, err)

	s := NewBoardState(b)

	assert.True(t, s.Terminal)
	assert.Empty(t, s.Next)
	assert.Empty(t, s.LegalMoves)
	assert.Equal(t, game.PlayerX, s.Winner)
	require.NotNil(t, s.Utility)
	assert.Equal(t, 1, *s.Utility)
}
