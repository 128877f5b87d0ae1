package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/daystram/x88chess/board"
)

func movegen(w io.Writer, fen string, draw bool) error {
	fmt.Fprintln(w, "============ movegen")
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "to move:", b.Turn())
	fmt.Fprintln(w, b.Dump())
	fmt.Fprintln(w, b.Draw())
	fmt.Fprintln(w, b.State())
	dumpMoves(w, b)

	if draw {
		for _, mv := range b.GenerateMoves() {
			san := b.SAN(mv)
			b.Apply(mv)
			fmt.Fprintln(w, san)
			fmt.Fprintln(w, b.Draw())
			fmt.Fprintln(w, b.FEN())
			b.MustUndo()
		}
	}
	return nil
}

func dumpMoves(w io.Writer, b *board.Board) {
	mvs := b.GenerateMoves()
	for i, mv := range mvs {
		fmt.Fprintf(w, "option %*d: [%s] [%s] [%s] %s %s %s => %s (cap=%v) (enp=%v) (cas=%s) (pro=%s)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), b.SAN(mv), mv.Smith(), b.Turn(), mv.Piece, mv.From, mv.To,
			mv.IsCapture(), mv.IsEnPassant, mv.Castle, mv.Promote)
	}
}
