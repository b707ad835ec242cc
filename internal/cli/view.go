package cli

import (
	"context"
	"ctchen222/perfect-tic-tac-toe/internal/events"
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// View draws games on a terminal and asks the questions around them.
// It implements room.Listener.
type View struct {
	in    LineReader
	out   io.Writer
	human game.PlayerMark
}

func NewView(in LineReader, out io.Writer) *View {
	return &View{in: in, out: out}
}

// ChooseMark asks which side the person wants to play. An empty answer means X.
func (v *View) ChooseMark() (game.PlayerMark, error) {
	for {
		answer, err := v.in.ReadLine("Play as X or O? X moves first [X/o/r=random, q=quit]: ")
		if err != nil {
			return game.None, err
		}

		switch strings.ToLower(answer) {
		case "", "x":
			v.human = game.PlayerX
		case "o":
			v.human = game.PlayerO
		case "r", "random":
			v.human = game.RandomMark()
		case "q", "quit", "exit":
			return game.None, ErrQuit
		default:
			fmt.Fprintf(v.out, "Please answer X, O or R.\n")
			continue
		}
		fmt.Fprintf(v.out, "You are %s.\n", v.human)
		return v.human, nil
	}
}

// Render prints the board. Empty cells show their keypad number.
func (v *View) Render(b game.Board) {
	var sb strings.Builder
	sb.WriteString("\n")
	for r := range 3 {
		for c := range 3 {
			cell := string(b[r][c])
			if cell == "" {
				cell = fmt.Sprint(game.Move{Row: r, Col: c}.Index())
			}
			fmt.Fprintf(&sb, " %s ", cell)
			if c < 2 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
		if r < 2 {
			sb.WriteString("---+---+---\n")
		}
	}
	sb.WriteString("\n")
	fmt.Fprint(v.out, sb.String())
}

// ShowResult announces how the game ended from the point of view of human.
func (v *View) ShowResult(b game.Board, human game.PlayerMark) {
	switch b.Winner() {
	case game.None:
		fmt.Fprintln(v.out, "It's a draw.")
	case human:
		fmt.Fprintln(v.out, "You win!")
	default:
		fmt.Fprintf(v.out, "%s wins.\n", b.Winner())
	}
}

// PlayAgain asks whether to start another game.
func (v *View) PlayAgain() (bool, error) {
	for {
		answer, err := v.in.ReadLine("Play again? [y/N]: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "", "n", "no", "q", "quit":
			return false, nil
		}
	}
}

// OnEvent renders the room's progress.
func (v *View) OnEvent(ctx context.Context, e events.Event) {
	switch e.Type {
	case events.TypeGameStarted:
		v.Render(game.NewBoard())
	case events.TypeMoveMade:
		var p events.MoveMadePayload
		if err := e.Decode(&p); err != nil {
			slog.ErrorContext(ctx, "Bad move event", "error", err)
			return
		}
		b, err := game.ParseBoard(p.Board)
		if err != nil {
			slog.ErrorContext(ctx, "Bad board in move event", "error", err)
			return
		}
		fmt.Fprintf(v.out, "%s plays %d %s\n", p.Mark, p.Move.Index(), p.Move)
		v.Render(b)
	case events.TypeGameOver:
		var p events.GameOverPayload
		if err := e.Decode(&p); err != nil {
			slog.ErrorContext(ctx, "Bad game over event", "error", err)
			return
		}
		b, err := game.ParseBoard(p.Board)
		if err != nil {
			slog.ErrorContext(ctx, "Bad board in game over event", "error", err)
			return
		}
		v.ShowResult(b, v.human)
	}
}
