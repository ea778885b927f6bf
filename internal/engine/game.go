package engine

import (
	"errors"

	"github.com/suderio/eels-and-escalators/internal/board"
	"github.com/suderio/eels-and-escalators/internal/dice"
)

var (
	// ErrNoBoard is returned when a game is started without a board.
	ErrNoBoard = errors.New("game requires a board")
	// ErrNoPlayers is returned when a game is started with fewer than one player.
	ErrNoPlayers = errors.New("game requires at least one player")
)

// State is the lifecycle of a game.
type State int

const (
	InProgress State = iota
	Won
)

func (s State) String() string {
	if s == Won {
		return "won"
	}
	return "in progress"
}

// TurnEvent is reported to a game's observer after every turn.
type TurnEvent struct {
	Round  uint64 `json:"round"`
	Player int    `json:"player"`
	Move
}

// Game drives rounds of turns until one player wins. A Game is not safe for
// concurrent use; the board it reads is.
type Game struct {
	board   *board.Board
	players []Player
	dice    *dice.Set
	src     dice.Source
	state   State
	rounds  uint64
	winner  int

	// OnTurn, if set, is called after each resolved turn.
	OnTurn func(TurnEvent)
}

// NewGame sets up a game with fresh players on b, rolling dice from src.
func NewGame(b *board.Board, players int, src dice.Source, opts ...dice.Option) (*Game, error) {
	if b == nil || b.Len() == 0 {
		return nil, ErrNoBoard
	}
	if players < 1 {
		return nil, ErrNoPlayers
	}
	g := &Game{
		board:   b,
		players: make([]Player, players),
		dice:    dice.NewSet(opts...),
		src:     src,
		winner:  -1,
	}
	for i := range g.players {
		g.players[i] = NewPlayer()
	}
	return g, nil
}

// PlayRound gives every player one turn in seating order. The round stops at
// the first winner and still counts.
func (g *Game) PlayRound() State {
	if g.state == Won {
		return g.state
	}
	g.rounds++
	for i := range g.players {
		p := &g.players[i]
		g.dice.RollAll(g.src)
		mv := ResolveTurn(p, g.board, g.dice.Result())
		if g.OnTurn != nil {
			g.OnTurn(TurnEvent{Round: g.rounds, Player: i, Move: mv})
		}
		if p.HasWon {
			g.state = Won
			g.winner = i
			break
		}
	}
	return g.state
}

// Run plays rounds until the game is won and returns the number of rounds.
// There is no round limit: a board that never lets anyone finish never
// returns.
func (g *Game) Run() uint64 {
	for g.PlayRound() != Won {
	}
	return g.rounds
}

// State returns the current lifecycle state.
func (g *Game) State() State { return g.state }

// Rounds returns how many rounds have been played so far.
func (g *Game) Rounds() uint64 { return g.rounds }

// Winner returns the seat of the winning player, or -1 while in progress.
func (g *Game) Winner() int { return g.winner }

// Players returns a snapshot of every player's state.
func (g *Game) Players() []Player {
	out := make([]Player, len(g.players))
	copy(out, g.players)
	return out
}

// Play runs a single game to completion and returns its round count.
func Play(b *board.Board, players int, src dice.Source, opts ...dice.Option) (uint64, error) {
	g, err := NewGame(b, players, src, opts...)
	if err != nil {
		return 0, err
	}
	return g.Run(), nil
}
