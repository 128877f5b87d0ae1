package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/daystram/x88chess/board"
)

// ErrIllegalMove is returned when a move cannot be played on the game board.
var ErrIllegalMove = fmt.Errorf("%w: illegal move", board.ErrIllegalState)

type Difficulty uint8

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
	DifficultyUltra
)

var difficultyNames = map[Difficulty]string{
	DifficultyEasy:   "Easy",
	DifficultyMedium: "Medium",
	DifficultyHard:   "Hard",
	DifficultyUltra:  "Ultra Hard",
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return "Unknown"
}

// ParseDifficulty accepts "easy", "medium", "hard" and "ultra" in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	case "ultra", "ultra hard", "ultrahard":
		return DifficultyUltra, nil
	default:
		return 0, fmt.Errorf("%w: unknown difficulty %q", board.ErrMalformedInput, s)
	}
}

type difficultyPreset struct {
	minDepth, maxDepth int
	evaluator          Evaluator
}

var difficultyPresets = map[Difficulty]difficultyPreset{
	DifficultyEasy:   {2, 3, SimpleEvaluator{}},
	DifficultyMedium: {3, 4, SimpleEvaluator{}},
	DifficultyHard:   {4, 6, AdvancedEvaluator{}},
	DifficultyUltra:  {5, 20, AdvancedEvaluator{}},
}

// NewEngineWithDifficulty builds an engine with the depth limits and
// evaluator of d. Other fields of cfg are kept.
func NewEngineWithDifficulty(d Difficulty, cfg *EngineConfig) *Engine {
	var c EngineConfig
	if cfg != nil {
		c = *cfg
	}
	p, ok := difficultyPresets[d]
	if !ok {
		p = difficultyPresets[DifficultyHard]
	}
	c.MinDepth, c.MaxDepth, c.Evaluator = p.minDepth, p.maxDepth, p.evaluator
	return NewEngine(&c)
}

// Game pairs an engine with the board of the game it plays, keeping both in
// step. Moves of either side go through Apply.
type Game struct {
	b          *board.Board
	engine     *Engine
	clock      Clock
	difficulty Difficulty
	increment  time.Duration
	plies      int
	reports    chan<- Report

	// every position of the game, independent of what the engine searched
	positions *RepetitionTable
}

func NewGame(d Difficulty, increment time.Duration, cfg *EngineConfig, opts ...board.BoardOption) (*Game, error) {
	b, err := board.NewBoard(opts...)
	if err != nil {
		return nil, err
	}
	positions := NewRepetitionTable()
	positions.Increment(b)
	return &Game{
		b:          b,
		engine:     NewEngineWithDifficulty(d, cfg),
		clock:      NewAdvancedClock(),
		difficulty: d,
		increment:  increment,
		plies:      b.Ply(),
		positions:  positions,
	}, nil
}

func (g *Game) Name() string {
	return "Bot " + g.difficulty.String()
}

func (g *Game) Board() *board.Board {
	return g.b
}

func (g *Game) Engine() *Engine {
	return g.engine
}

// SetReports forwards search reports of ComputeMove to ch.
func (g *Game) SetReports(ch chan<- Report) {
	g.reports = ch
}

func (g *Game) Apply(mv board.Move) error {
	if g.b.Ply() != g.plies {
		return fmt.Errorf("%w: board at ply %d, game at ply %d", board.ErrIllegalState, g.b.Ply(), g.plies)
	}
	if !g.b.IsLegalMove(mv) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, mv.UCI())
	}
	g.b.Apply(mv)
	g.plies++
	g.positions.Increment(g.b)
	return nil
}

// IsThreefoldRepetition reports whether the current position occurred three
// times in the game.
func (g *Game) IsThreefoldRepetition() bool {
	return g.positions.IsDraw(g.b)
}

// ComputeMove searches a move for the side to play without applying it.
func (g *Game) ComputeMove(ctx context.Context, myTime, opTime time.Duration) (board.Move, error) {
	if g.b.Ply() != g.plies {
		return board.Move{}, fmt.Errorf("%w: board at ply %d, game at ply %d", board.ErrIllegalState, g.b.Ply(), g.plies)
	}
	return g.engine.Search(ctx, g.b, &SearchConfig{
		ClockConfig: ClockConfig{
			MyTime:    myTime,
			OpTime:    opTime,
			Increment: g.increment,
		},
		Clock:   g.clock,
		Reports: g.reports,
	})
}

// Hint searches like ComputeMove, but the game does not remember the
// searched positions as played.
func (g *Game) Hint(ctx context.Context, myTime, opTime time.Duration) (board.Move, error) {
	mv, err := g.ComputeMove(ctx, myTime, opTime)
	if err != nil {
		return mv, err
	}
	reps := g.engine.Repetitions()
	reps.Decrement(g.b)
	g.b.Apply(mv)
	reps.Decrement(g.b)
	g.b.MustUndo()
	return mv, nil
}
