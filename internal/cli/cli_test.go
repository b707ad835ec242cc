package cli

import (
	"bytes"
	"context"
	"ctchen222/perfect-tic-tac-toe/internal/bot"
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"ctchen222/perfect-tic-tac-toe/internal/room"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(input string) (*View, *bytes.Buffer) {
	var out bytes.Buffer
	return NewView(NewBufferedReader(strings.NewReader(input), &out), &out), &out
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		want    game.Move
		wantErr error
	}{
		{"1", game.Move{Row: 0, Col: 0}, nil},
		{"5", game.Move{Row: 1, Col: 1}, nil},
		{"9", game.Move{Row: 2, Col: 2}, nil},
		{"2 1", game.Move{Row: 2, Col: 1}, nil},
		{"0,2", game.Move{Row: 0, Col: 2}, nil},
		{"0", game.Move{}, game.ErrIllegalMove},
		{"10", game.Move{}, game.ErrIllegalMove},
		{"3 0", game.Move{}, game.ErrIllegalMove},
		{"a b", game.Move{}, game.ErrIllegalMove},
		{"centre", game.Move{}, game.ErrIllegalMove},
		{"1 2 3", game.Move{}, game.ErrIllegalMove},
		{"Q", game.Move{}, ErrQuit},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMove(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChooseMark(t *testing.T) {
	tests := []struct {
		input   string
		want    game.PlayerMark
		wantErr error
	}{
		{"\n", game.PlayerX, nil},
		{"o\n", game.PlayerO, nil},
		{"maybe\nX\n", game.PlayerX, nil},
		{"q\n", game.None, ErrQuit},
		{"", game.None, ErrQuit},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			v, _ := newTestView(tt.input)

			got, err := v.ChooseMark()

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChooseMarkRandom(t *testing.T) {
	v, _ := newTestView("r\n")

	got, err := v.ChooseMark()

	require.NoError(t, err)
	assert.Contains(t, []game.PlayerMark{game.PlayerX, game.PlayerO}, got)
}

func TestPlayAgain(t *testing.T) {
	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "\n": false, "n\n": false, "what\nn\n": false} {
		v, _ := newTestView(input)

		got, err := v.PlayAgain()

		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestRender(t *testing.T) {
	v, out := newTestView("")
	b, err := game.ParseBoard("X...O....")
	require.NoError(t, err)

	v.Render(b)

	assert.Contains(t, out.String(), " X | 2 | 3 ")
	assert.Contains(t, out.String(), " 4 | O | 6 ")
	assert.Contains(t, out.String(), "---+---+---")
}

func TestShowResult(t *testing.T) {
	tests := []struct {
		board string
		human game.PlayerMark
		want  string
	}{
		{"XXXOO....", game.PlayerX, "You win!"},
		{"XXXOO....", game.PlayerO, "X wins."},
		{"XOXXOOOXX", game.PlayerX, "It's a draw."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			v, out := newTestView("")
			b, err := game.ParseBoard(tt.board)
			require.NoError(t, err)

			v.ShowResult(b, tt.human)

			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestHumanNextMove_RepromptsUntilLegal(t *testing.T) {
	// Given: the centre is taken and the first two answers are unusable
	v, out := newTestView("5\nabc\n1\n")
	b, err := game.ParseBoard("....X....")
	require.NoError(t, err)

	m, err := NewHuman(v, 0).NextMove(context.Background(), b)

	require.NoError(t, err)
	assert.Equal(t, game.Move{Row: 0, Col: 0}, m)
	assert.Contains(t, out.String(), "is taken")
	assert.Contains(t, out.String(), "not a position")
}

func TestHumanNextMove_Quit(t *testing.T) {
	v, _ := newTestView("quit\n")

	_, err := NewHuman(v, 0).NextMove(context.Background(), game.NewBoard())

	assert.ErrorIs(t, err, ErrQuit)
}

func TestHumanNextMove_EndOfInput(t *testing.T) {
	v, _ := newTestView("")

	_, err := NewHuman(v, 0).NextMove(context.Background(), game.NewBoard())

	assert.ErrorIs(t, err, ErrQuit)
}

func TestHumanLosesToPerfectBot(t *testing.T) {
	// Given: a human who walks into the same corner plan every time
	v, out := newTestView("1\n2\n4\n7\n8\n")
	human := NewHumanPlayer(v, game.PlayerX, 0)
	v.human = game.PlayerX
	computer := bot.NewBotPlayer(game.PlayerO, bot.Hard)

	r, err := room.New("cli-test", human, computer, room.WithListener(v))
	require.NoError(t, err)

	// When
	board, err := r.Play(context.Background())

	// Then: the bot never loses, and the view reported the end of the game
	require.NoError(t, err)
	assert.NotEqual(t, game.PlayerX, board.Winner())
	assert.True(t, board.IsTerminal())
	assert.Contains(t, out.String(), "O plays")
	assert.True(t, strings.Contains(out.String(), "O wins.") || strings.Contains(out.String(), "It's a draw."))
}
