package main

import (
	"fmt"
	"io"
	"time"

	"lukechampine.com/frand"

	"github.com/daystram/x88chess/board"
)

// step plays random moves from fen, printing every position, and reports the
// average cost of the board operations.
func step(w io.Writer, fen string, steps int) error {
	fmt.Fprintln(w, "============ step")
	var (
		timesGenerateMoves []time.Duration
		timesApply         []time.Duration
		timesUndo          []time.Duration
		timesState         []time.Duration
	)
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	for i := 0; i < steps; i++ {
		t1 := time.Now()
		mvs := b.GenerateMoves()
		t2 := time.Now()
		timesGenerateMoves = append(timesGenerateMoves, t2.Sub(t1))
		if len(mvs) == 0 {
			return fmt.Errorf("%w: unexpected move exhaustion: state=%s", board.ErrIllegalState, b.State())
		}
		mv := mvs[frand.Intn(len(mvs))]
		san := b.SAN(mv)
		turn := b.Turn()
		moveNumber := b.Ply()/2 + 1

		// time a round trip before keeping the move
		t1 = time.Now()
		b.Apply(mv)
		t2 = time.Now()
		timesApply = append(timesApply, t2.Sub(t1))
		t1 = time.Now()
		b.MustUndo()
		t2 = time.Now()
		timesUndo = append(timesUndo, t2.Sub(t1))
		b.Apply(mv)

		t1 = time.Now()
		st := b.State()
		t2 = time.Now()
		timesState = append(timesState, t2.Sub(t1))

		fmt.Fprintf(w, "\n===== [#%d] %s: %s\n", moveNumber, turn, san)
		fmt.Fprintln(w, b.Draw())
		fmt.Fprintln(w, b.FEN())
		fmt.Fprintln(w, b.DebugString())
		if !st.IsRunning() {
			break
		}
	}

	avg := func(ds []time.Duration) time.Duration {
		if len(ds) == 0 {
			return 0
		}
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		return s / time.Duration(len(ds))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, b.State())
	fmt.Fprintln(w, "genmv:", avg(timesGenerateMoves))
	fmt.Fprintln(w, "apply:", avg(timesApply))
	fmt.Fprintln(w, "undo: ", avg(timesUndo))
	fmt.Fprintln(w, "state:", avg(timesState))
	return nil
}
