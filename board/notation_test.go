package board

import (
	"testing"

	"github.com/daystram/x88chess/internal/testutil"
)

func TestNotationRoundTrip(t *testing.T) {
	t.Parallel()
	for _, fen := range walkFENs {
		fen := fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, fen)
			for _, mv := range b.GenerateMoves() {
				parsers := []struct {
					n     string
					parse func(string) (Move, error)
				}{
					{n: mv.UCI(), parse: b.ParseUCIMove},
					{n: mv.Server(), parse: b.ParseServerMove},
					{n: mv.Smith(), parse: b.ParseSmithMove},
				}
				for _, p := range parsers {
					n := p.n
					got, err := p.parse(n)
					testutil.AssertNoError(t, err, "parse %s", n)
					if !got.Equals(mv) {
						t.Errorf("unexpected move for %s: got=%+v want=%+v", n, got, mv)
					}
					if !b.IsLegalMove(got) {
						t.Errorf("unexpected illegal move %s", n)
					}
				}
			}
		})
	}
}

func TestMoveNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen    string
		uci    string
		server string
		smith  string
		san    string
	}{
		{fen: DefaultStartingPositionFEN, uci: "e2e4", server: "e2e4", smith: "e2e4", san: "e4"},
		{fen: DefaultStartingPositionFEN, uci: "g1f3", server: "g1f3", smith: "g1f3", san: "Nf3"},
		{
			fen: "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6",
			uci: "e5f6", server: "e5f6", smith: "e5f6E", san: "exf6",
		},
		{
			fen: "rnbqkbnr/ppp2ppp/8/3pp3/4P3/3P4/PPP2PPP/RNBQKBNR w KQkq -",
			uci: "e4d5", server: "e4d5", smith: "e4d5p", san: "exd5",
		},
		{fen: "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -", uci: "e1g1", server: "e1g1", smith: "e1g1c", san: "O-O"},
		{fen: "r3k2r/8/8/8/8/8/8/R3K2R b KQkq -", uci: "e8c8", server: "e8c8", smith: "e8c8C", san: "O-O-O"},
		{fen: "1r5k/P7/8/8/8/8/8/K7 w - -", uci: "a7b8q", server: "a7b8=Q", smith: "a7b8rQ", san: "axb8=Q+"},
		{fen: "1r5k/P7/8/8/8/8/8/K7 w - -", uci: "a7a8n", server: "a7a8=N", smith: "a7a8N", san: "a8=N"},
		{fen: "6k1/5ppp/8/8/8/8/8/R3K2R w - -", uci: "a1a8", server: "a1a8", smith: "a1a8", san: "Ra8#"},
		{fen: "6k1/5ppp/8/8/8/8/8/R3K2R w - -", uci: "h1h7", server: "h1h7", smith: "h1h7p", san: "Rxh7"},
		{fen: "4k3/8/8/8/8/8/4K3/R6R w - -", uci: "a1d1", server: "a1d1", smith: "a1d1", san: "Rad1"},
		{fen: "4k3/8/8/8/R7/8/8/R3K3 w - -", uci: "a1a2", server: "a1a2", smith: "a1a2", san: "R1a2"},
		{fen: "7k/2N5/8/8/8/2N1N3/8/4K3 w - -", uci: "c3d5", server: "c3d5", smith: "c3d5", san: "Nc3d5"},
		{fen: "4k3/4r3/8/8/8/2N1N3/8/4K3 w - -", uci: "c3d5", server: "c3d5", smith: "c3d5", san: "Nd5"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.fen+" "+tt.uci, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			mv, err := b.ParseUCIMove(tt.uci)
			testutil.AssertNoError(t, err)
			if !b.IsLegalMove(mv) {
				t.Fatalf("unexpected illegal move %s", tt.uci)
			}
			testutil.AssertEqual(t, mv.UCI(), tt.uci)
			testutil.AssertEqual(t, mv.Server(), tt.server)
			testutil.AssertEqual(t, mv.Smith(), tt.smith)
			testutil.AssertEqual(t, b.SAN(mv), tt.san)
		})
	}
}

func TestParseMoveErrors(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, DefaultStartingPositionFEN)
	tests := []struct {
		name  string
		parse func(string) (Move, error)
		in    string
	}{
		{name: "server short", parse: b.ParseServerMove, in: "e2e"},
		{name: "server bad square", parse: b.ParseServerMove, in: "e2e9"},
		{name: "server bad suffix", parse: b.ParseServerMove, in: "e7e8+Q"},
		{name: "server bad promotion", parse: b.ParseServerMove, in: "e7e8=K"},
		{name: "uci uppercase promotion", parse: b.ParseUCIMove, in: "e7e8Q"},
		{name: "uci long", parse: b.ParseUCIMove, in: "e7e8qq"},
		{name: "uci off board", parse: b.ParseUCIMove, in: "i2i4"},
		{name: "smith unknown suffix", parse: b.ParseSmithMove, in: "e2e4x"},
		{name: "smith out of order", parse: b.ParseSmithMove, in: "a7b8Qr"},
		{name: "smith too long", parse: b.ParseSmithMove, in: "a7b8rcQQ"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.parse(tt.in)
			testutil.AssertErrorIs(t, err, ErrInvalidMoveNotation)
			testutil.AssertErrorIs(t, err, ErrMalformedInput)
		})
	}
}
