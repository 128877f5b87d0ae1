package bench

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/x88chess/board"
)

// Result holds the leaf counts of a perft run. The move kinds count the
// moves leading to the leaves.
type Result struct {
	Depth      int
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
	Elapsed    time.Duration
}

func (r Result) String() string {
	return message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d (%.3fs elapsed)",
			r.Depth, r.Nodes, int(float64(r.Nodes)/(r.Elapsed+1).Seconds()),
			r.Captures, r.EnPassants, r.Castles, r.Promotions, r.Checks, r.Elapsed.Seconds())
}

func (r *Result) add(o Result) {
	r.Nodes += o.Nodes
	r.Captures += o.Captures
	r.EnPassants += o.EnPassants
	r.Castles += o.Castles
	r.Promotions += o.Promotions
	r.Checks += o.Checks
}

func (r *Result) tally(b *board.Board, mv board.Move) {
	r.Nodes++
	if mv.IsCapture() {
		r.Captures++
	}
	if mv.IsEnPassant {
		r.EnPassants++
	}
	if mv.Castle != board.CastleDirectionUnknown {
		r.Castles++
	}
	if mv.IsPromote() {
		r.Promotions++
	}
	b.Apply(mv)
	if b.InCheck() {
		r.Checks++
	}
	b.MustUndo()
}

// Perft counts the leaves depth plies below fen. With verbose, the count of
// every root move is sent to out before the summary. The parallel mode
// searches each root move on its own goroutine and board.
func Perft(ctx context.Context, depth int, fen string, parallel, verbose bool, out chan<- string) (Result, error) {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return Result{}, err
	}

	emit := func(s string) {
		if out == nil {
			return
		}
		select {
		case out <- s:
		case <-ctx.Done():
		}
	}

	start := time.Now()
	var res Result
	switch {
	case depth <= 0:
		res.Nodes = 1
	case parallel:
		res, err = perftParallel(ctx, b, depth, verbose, emit)
	default:
		res, err = perftSequential(ctx, b, depth, verbose, emit)
	}
	res.Depth = depth
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, err
	}

	emit(res.String())
	return res, nil
}

func perftSequential(ctx context.Context, b *board.Board, depth int, verbose bool, emit func(string)) (Result, error) {
	var res Result
	for _, mv := range b.GenerateMoves() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		child := perftMove(b, mv, depth, &res)
		if verbose {
			emit(fmt.Sprintf("%s: %d", mv.UCI(), child))
		}
	}
	return res, nil
}

func perftParallel(ctx context.Context, b *board.Board, depth int, verbose bool, emit func(string)) (Result, error) {
	mvs := b.GenerateMoves()
	results := make([]Result, len(mvs))
	g, gctx := errgroup.WithContext(ctx)
	for i, mv := range mvs {
		i, mv := i, mv
		bb := b.Clone()
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			child := perftMove(bb, mv, depth, &results[i])
			if verbose {
				emit(fmt.Sprintf("%s: %d", mv.UCI(), child))
			}
			return nil
		})
	}
	err := g.Wait()

	var res Result
	for _, r := range results {
		res.add(r)
	}
	return res, err
}

// Divide returns the leaf count below each root move, keyed by UCI notation.
func Divide(b *board.Board, depth int) map[string]uint64 {
	counts := make(map[string]uint64)
	if depth <= 0 {
		return counts
	}
	var res Result
	for _, mv := range b.GenerateMoves() {
		counts[mv.UCI()] = perftMove(b, mv, depth, &res)
	}
	return counts
}

func perftMove(b *board.Board, mv board.Move, depth int, res *Result) uint64 {
	if depth == 1 {
		res.tally(b, mv)
		return 1
	}
	b.Apply(mv)
	defer b.MustUndo()
	return perftNode(b, depth-1, res)
}

func perftNode(b *board.Board, depth int, res *Result) uint64 {
	var sum uint64
	for _, mv := range b.GenerateMoves() {
		sum += perftMove(b, mv, depth, res)
	}
	return sum
}
