package player

import (
	"context"
	"ctchen222/perfect-tic-tac-toe/internal/game"
)

// Agent abstracts whoever decides a player's moves: a person at a terminal or a bot.
type Agent interface {
	NextMove(ctx context.Context, board game.Board) (game.Move, error)
}

// Player represents one side of a game.
type Player struct {
	ID    string
	Mark  game.PlayerMark
	Agent Agent
	IsBot bool
}

// NewPlayer creates a new Player.
func NewPlayer(id string, mark game.PlayerMark, agent Agent) *Player {
	return &Player{
		ID:    id,
		Mark:  mark,
		Agent: agent,
	}
}

// Kind describes the player for game records, e.g. "human" or "bot:hard".
func (p *Player) Kind() string {
	if k, ok := p.Agent.(interface{ Kind() string }); ok {
		return k.Kind()
	}
	if p.IsBot {
		return "bot"
	}
	return "human"
}
