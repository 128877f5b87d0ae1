package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/x88chess/board"
	"github.com/daystram/x88chess/engine"
)

const (
	playMyTime = time.Minute
	playOpTime = 0
)

// console is a line based game against the engine. Every line is a move, in
// SAN, UCI or server notation, or one of the commands below.
type console struct {
	out    io.Writer
	logger zerolog.Logger

	fen        string
	difficulty engine.Difficulty
	book       engine.Book
	game       *engine.Game
}

func play(ctx context.Context, r io.Reader, w io.Writer, logger zerolog.Logger, fen string, d engine.Difficulty, bk engine.Book) error {
	c := &console{
		out:        w,
		logger:     logger,
		fen:        fen,
		difficulty: d,
		book:       bk,
	}
	return c.Run(ctx, r)
}

func (c *console) Run(ctx context.Context, r io.Reader) error {
	if err := c.reset(); err != nil {
		return err
	}
	c.prompt()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		cmd := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(cmd) {
		case "":
			continue
		case "quit":
			return nil
		case "new":
			if err := c.reset(); err != nil {
				return err
			}
		case "d":
			c.println(c.game.Board().Draw())
			continue
		case "search":
			c.commandSearch(ctx)
			continue
		case "go":
			if err := c.commandGo(ctx); err != nil {
				return err
			}
		default:
			if !c.commandMove(cmd) {
				c.println(fmt.Sprintf("%q is not a legal move", cmd))
				continue
			}
		}
		c.prompt()
	}
	return scanner.Err()
}

func (c *console) reset() error {
	cfg := &engine.EngineConfig{Book: c.book, Logger: &c.logger}
	g, err := engine.NewGame(c.difficulty, 0, cfg, board.WithFEN(c.fen))
	if err != nil {
		return err
	}
	c.game = g
	c.println("Computer player: " + g.Name())
	return nil
}

func (c *console) commandSearch(ctx context.Context) {
	b := c.game.Board()
	mv, err := c.game.Hint(ctx, playMyTime, playOpTime)
	if err != nil {
		c.println(err)
		return
	}
	c.println("Computer recommends: " + b.SAN(mv))
}

func (c *console) commandGo(ctx context.Context) error {
	b := c.game.Board()
	mv, err := c.game.ComputeMove(ctx, playMyTime, playOpTime)
	if err != nil {
		c.println(err)
		return nil
	}
	san := b.SAN(mv)
	if err := c.game.Apply(mv); err != nil {
		return err
	}
	c.println("Computer moves: " + san)
	c.logger.Debug().Stringer("stats", c.game.Engine().Stats()).Msg("search done")
	return nil
}

func (c *console) commandMove(s string) bool {
	b := c.game.Board()
	mv, ok := c.parseMove(b, s)
	if !ok {
		return false
	}
	return c.game.Apply(mv) == nil
}

func (c *console) parseMove(b *board.Board, s string) (board.Move, bool) {
	for _, mv := range b.GenerateMoves() {
		if strings.EqualFold(b.SAN(mv), s) {
			return mv, true
		}
	}
	for _, parse := range []func(string) (board.Move, error){b.ParseUCIMove, b.ParseServerMove} {
		if mv, err := parse(s); err == nil && b.IsLegalMove(mv) {
			return mv, true
		}
	}
	return board.Move{}, false
}

func (c *console) prompt() {
	b := c.game.Board()
	side := "Black"
	if b.Turn() == board.SideWhite {
		side = "White"
	}
	c.println(fmt.Sprintf("Position (%s to move):\n%s", side, b.Draw()))

	if c.game.IsThreefoldRepetition() {
		c.println("Draw by threefold repetition")
		c.println(`Type "new" to play again or "quit"`)
		return
	}

	mvs := b.GenerateMoves()
	if len(mvs) == 0 {
		if winner, ok := b.State().Winner(); ok {
			c.println(fmt.Sprintf("Checkmate, %s wins", winner))
		} else {
			c.println("Stalemate")
		}
		c.println(`Type "new" to play again or "quit"`)
		return
	}

	sans := make([]string, 0, len(mvs))
	for _, mv := range mvs {
		sans = append(sans, b.SAN(mv))
	}
	sort.Strings(sans)
	builder := strings.Builder{}
	_, _ = builder.WriteString("Moves:")
	for i, san := range sans {
		if i%10 == 0 {
			_, _ = builder.WriteString("\n  ")
		}
		_, _ = builder.WriteString(" " + san)
	}
	c.println(builder.String())
	c.println(fmt.Sprintf(`%s move (or "go" or "search" or "quit")>`, side))
}

func (c *console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}
