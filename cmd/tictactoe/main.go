package main

import (
	"context"
	"ctchen222/perfect-tic-tac-toe/internal/bot"
	"ctchen222/perfect-tic-tac-toe/internal/cli"
	"ctchen222/perfect-tic-tac-toe/internal/config"
	"ctchen222/perfect-tic-tac-toe/internal/db"
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"ctchen222/perfect-tic-tac-toe/internal/logger"
	"ctchen222/perfect-tic-tac-toe/internal/player"
	"ctchen222/perfect-tic-tac-toe/internal/repository"
	"ctchen222/perfect-tic-tac-toe/internal/room"
	"ctchen222/perfect-tic-tac-toe/internal/telemetry"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, cli.ErrQuit) && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Bye.")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The board owns stdout; logs go to stderr.
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Init(os.Stderr, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	var opts []room.Option
	if cfg.Storage.Path != "" {
		pool, err := db.Connect(ctx, cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer pool.Close()
		opts = append(opts, room.WithRepository(repository.NewGameRepository(pool)))
	}

	difficulty, err := bot.ParseDifficulty(cfg.Game.Difficulty)
	if err != nil {
		return err
	}

	in, err := cli.NewLineReader(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer in.Close()

	view := cli.NewView(in, os.Stdout)
	opts = append(opts, room.WithListener(view))

	fmt.Printf("Tic-Tac-Toe against a %s bot. Cells are numbered 1-9 like a phone keypad.\n", difficulty)
	for {
		mark, err := view.ChooseMark()
		if err != nil {
			return err
		}

		time.Sleep(cfg.Game.SelectDelay)

		human := cli.NewHumanPlayer(view, mark, cfg.Game.SelectDelay)
		computer := bot.NewBotPlayer(mark.Opponent(), difficulty, bot.WithDelay(cfg.Game.ThinkDelay))

		x, o := seat(human, computer)
		r, err := room.New("", x, o, opts...)
		if err != nil {
			return err
		}
		if _, err := r.Play(ctx); err != nil {
			return err
		}

		again, err := view.PlayAgain()
		if err != nil || !again {
			return err
		}
	}
}

// seat returns the two players ordered X first.
func seat(a, b *player.Player) (*player.Player, *player.Player) {
	if a.Mark == game.PlayerX {
		return a, b
	}
	return b, a
}
