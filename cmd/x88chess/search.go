package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/daystram/x88chess/board"
	"github.com/daystram/x88chess/engine"
)

// verifyMaxDepth keeps verified searches free of repeated and transposed
// positions across depths, which the reference search does not model.
const verifyMaxDepth = 3

var errVerify = errors.New("search verification failed")

type searchOptions struct {
	difficulty engine.Difficulty
	depth      int
	clockTime  time.Duration
	steps      int
	verify     bool
	book       engine.Book
}

// search lets the engine play the side to move against random replies.
func search(ctx context.Context, w io.Writer, logger zerolog.Logger, fen string, opts searchOptions) error {
	if opts.verify && (opts.depth < 1 || opts.depth > verifyMaxDepth) {
		return fmt.Errorf("search.verify needs search.depth between 1 and %d, got %d", verifyMaxDepth, opts.depth)
	}

	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	root := b.Clone()

	cfg := &engine.EngineConfig{Book: opts.book, Logger: &logger}
	if opts.verify {
		cfg.Book = nil
	}
	var e *engine.Engine
	var clock engine.Clock = engine.NewAdvancedClock()
	if opts.depth > 0 {
		cfg.MinDepth, cfg.MaxDepth = opts.depth, opts.depth
		cfg.DisableQuiescence = opts.verify
		cfg.DisableCheckExtension = opts.verify
		e = engine.NewEngine(cfg)
		clock = engine.DepthClock{}
	} else {
		e = engine.NewEngineWithDifficulty(opts.difficulty, cfg)
	}

	fmt.Fprintln(w, b.Draw())
	fmt.Fprintln(w, b.FEN())
	fmt.Fprintln(w, b.DebugString())

	playingSide := b.Turn()
	myTime, opTime := opts.clockTime, opts.clockTime
	var history []board.Move
	for i := 0; i < 2*opts.steps && b.State().IsRunning() && ctx.Err() == nil; i++ {
		var mv board.Move
		if b.Turn() == playingSide {
			if opts.verify {
				e.ResetGame()
			}
			start := time.Now()
			mv, err = e.Search(ctx, b, &engine.SearchConfig{
				ClockConfig: engine.ClockConfig{MyTime: myTime, OpTime: opTime},
				Clock:       clock,
			})
			if err != nil {
				return err
			}
			myTime -= time.Since(start)
			fmt.Fprintln(w, e.Stats())

			if opts.verify {
				if err := verifyMove(b, mv, opts.depth, e.Evaluator()); err != nil {
					return err
				}
				logger.Debug().Str("move", mv.UCI()).Msg("verified")
			}
		} else {
			mvs := b.GenerateMoves()
			mv = mvs[frand.Intn(len(mvs))]
		}

		fmt.Fprintf(w, "\n>>> %s: %s\n", b.Turn(), b.SAN(mv))
		b.Apply(mv)
		history = append(history, mv)
		fmt.Fprintln(w, b.FEN())
		fmt.Fprintln(w, b.Draw())
	}

	logger.Info().Stringer("state", b.State()).Int("plies", len(history)).Msg("game ended")
	fmt.Fprintln(w, b.FEN())
	fmt.Fprintln(w, engine.DumpHistory(root, history))
	return nil
}

// verifyMove checks that mv scores the same as the best move of a plain
// negamax of the same depth.
func verifyMove(b *board.Board, mv board.Move, depth int, ev engine.Evaluator) error {
	_, want := engine.ReferenceSearch(b, depth, ev)
	b.Apply(mv)
	_, child := engine.ReferenceSearch(b, depth-1, ev)
	b.MustUndo()
	if got := -child; got != want {
		return fmt.Errorf("%w: %s on %s scores %d, best is %d", errVerify, mv.UCI(), b.FEN(), got, want)
	}
	return nil
}
