package bench

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/daystram/x88chess/board"
	"github.com/daystram/x88chess/internal/testutil"
)

func TestPerft(t *testing.T) {
	t.Parallel()

	// Results obtained from https://www.chessprogramming.org/Perft_Results.
	tests := map[string][]struct {
		depth     int
		wantNodes uint64
		onlyNodes bool
		wantCap   uint64
		wantEnp   uint64
		wantCas   uint64
		wantPro   uint64
		wantChk   uint64
	}{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1": {
			{
				depth:     0,
				wantNodes: 1,
			},
			{
				depth:     1,
				wantNodes: 20,
			},
			{
				depth:     2,
				wantNodes: 400,
			},
			{
				depth:     3,
				wantNodes: 8_902,
				wantCap:   34,
				wantChk:   12,
			},
			{
				depth:     4,
				wantNodes: 197_281,
				wantCap:   1_576,
				wantChk:   469,
			},
		},
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1": {
			{
				depth:     1,
				wantNodes: 48,
				wantCap:   8,
				wantCas:   2,
			},
			{
				depth:     2,
				wantNodes: 2039,
				wantCap:   351,
				wantEnp:   1,
				wantCas:   91,
				wantChk:   3,
			},
			{
				depth:     3,
				wantNodes: 97862,
				wantCap:   17102,
				wantEnp:   45,
				wantCas:   3162,
				wantChk:   993,
			},
		},
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1": {
			{
				depth:     3,
				wantNodes: 2_812,
				wantCap:   209,
				wantEnp:   2,
				wantChk:   267,
			},
			{
				depth:     4,
				wantNodes: 43_238,
				wantCap:   3_348,
				wantEnp:   123,
				wantChk:   1_680,
			},
		},
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8": {
			{
				depth:     1,
				wantNodes: 44,
				onlyNodes: true,
			},
			{
				depth:     2,
				wantNodes: 1_486,
				onlyNodes: true,
			},
			{
				depth:     3,
				wantNodes: 62_379,
				onlyNodes: true,
			},
		},
	}

	for fen, constraints := range tests {
		for _, tt := range constraints {
			for _, parallel := range []bool{false, true} {
				fen, tt, parallel := fen, tt, parallel
				t.Run(fmt.Sprintf("perft(%d) parallel=%v: %s", tt.depth, parallel, fen), func(t *testing.T) {
					t.Parallel()
					res, err := Perft(context.Background(), tt.depth, fen, parallel, false, nil)
					testutil.AssertNoError(t, err)

					if res.Nodes != tt.wantNodes {
						t.Errorf("unexpected nodes: got=%d want=%d", res.Nodes, tt.wantNodes)
					}
					if !tt.onlyNodes {
						if res.Captures != tt.wantCap {
							t.Errorf("unexpected cap: got=%d want=%d", res.Captures, tt.wantCap)
						}
						if res.EnPassants != tt.wantEnp {
							t.Errorf("unexpected enp: got=%d want=%d", res.EnPassants, tt.wantEnp)
						}
						if res.Castles != tt.wantCas {
							t.Errorf("unexpected cas: got=%d want=%d", res.Castles, tt.wantCas)
						}
						if res.Promotions != tt.wantPro {
							t.Errorf("unexpected pro: got=%d want=%d", res.Promotions, tt.wantPro)
						}
						if res.Checks != tt.wantChk {
							t.Errorf("unexpected chk: got=%d want=%d", res.Checks, tt.wantChk)
						}
					}
				})
			}
		}
	}
}

func TestPerftVerbose(t *testing.T) {
	t.Parallel()
	out := make(chan string, 64)
	res, err := Perft(context.Background(), 2, board.DefaultStartingPositionFEN, false, true, out)
	testutil.AssertNoError(t, err)
	close(out)

	var lines []string
	for line := range out {
		lines = append(lines, line)
	}
	testutil.AssertEqual(t, len(lines), 21)
	testutil.AssertTrue(t, strings.HasPrefix(lines[len(lines)-1], "d=2 nodes=400 "), lines[len(lines)-1])
	testutil.AssertEqual(t, res.Depth, 2)
}

func TestPerftErrors(t *testing.T) {
	t.Parallel()
	_, err := Perft(context.Background(), 1, "not a fen", false, false, nil)
	testutil.AssertErrorIs(t, err, board.ErrInvalidFEN)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, parallel := range []bool{false, true} {
		_, err = Perft(ctx, 3, board.DefaultStartingPositionFEN, parallel, false, nil)
		testutil.AssertErrorIs(t, err, context.Canceled, "parallel=%v", parallel)
	}
}

func TestDivide(t *testing.T) {
	t.Parallel()
	b, err := board.NewBoard(board.WithFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -"))
	testutil.AssertNoError(t, err)
	before := b.Clone()

	counts := Divide(b, 2)
	testutil.AssertEqual(t, len(counts), 48)
	var sum uint64
	for _, n := range counts {
		sum += n
	}
	testutil.AssertEqual(t, sum, uint64(2039))
	testutil.AssertEqual(t, counts["e1g1"], uint64(43))
	testutil.AssertTrue(t, b.Equal(before), "board restored")
}
