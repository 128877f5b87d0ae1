package engine

import (
	"testing"

	"github.com/daystram/x88chess/board"
	"github.com/daystram/x88chess/internal/testutil"
)

func mustBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.NewBoard(board.WithFEN(fen))
	testutil.AssertNoError(t, err, "fen %s", fen)
	return b
}

func mustMove(t *testing.T, b *board.Board, uci string) board.Move {
	t.Helper()
	mv, err := b.ParseUCIMove(uci)
	testutil.AssertNoError(t, err, "move %s", uci)
	return mv
}

func TestEvaluateStartingPosition(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		ev   Evaluator
		want int32
	}{
		{"null", NullEvaluator{}, 0},
		{"simple", SimpleEvaluator{}, 0},
		{"advanced tempo", AdvancedEvaluator{}, scoreTempoBonus},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, board.DefaultStartingPositionFEN)
			if got := tt.ev.Evaluate(b); got != tt.want {
				t.Errorf("unexpected score: got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestEvaluateMirror(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen, mirrored string
	}{
		{
			"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq -",
			"rnbqkb1r/pppp1ppp/5n2/4p3/4P3/2N5/PPPP1PPP/R1BQKBNR b KQkq -",
		},
		{
			"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - -",
			"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 b - -",
		},
		{
			"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
			"8/4p1p1/8/1r3P1K/kp5R/3P4/2P5/8 b - -",
		},
	}
	for _, ev := range []Evaluator{SimpleEvaluator{}, AdvancedEvaluator{}} {
		for _, tt := range tests {
			b, m := mustBoard(t, tt.fen), mustBoard(t, tt.mirrored)
			if got, want := ev.Evaluate(m), ev.Evaluate(b); got != want {
				t.Errorf("unexpected mirrored score for %s: got=%d want=%d", tt.fen, got, want)
			}
		}
	}
}

func TestEvaluateMaterial(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		fen      string
		positive bool
	}{
		{"queen up to move", "4k3/8/8/8/8/8/8/3QK3 w - -", true},
		{"queen down to move", "4k3/8/8/8/8/8/8/3QK3 b - -", false},
		{"rook and pawns up", "4k3/pp6/8/8/8/8/PPP5/R3K3 w - -", true},
		{"pawn down", "4k3/ppp5/8/8/8/8/PP6/4K3 w - -", false},
	}
	for _, ev := range []Evaluator{SimpleEvaluator{}, AdvancedEvaluator{}} {
		for _, tt := range tests {
			b := mustBoard(t, tt.fen)
			if got := ev.Evaluate(b) > 0; got != tt.positive {
				t.Errorf("unexpected sign for %s: got=%v want=%v (score %d)", tt.name, got, tt.positive, ev.Evaluate(b))
			}
		}
	}
}

func TestEvaluateCastleBonus(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -")
	before := SimpleEvaluator{}.Evaluate(b)
	b.Apply(mustMove(t, b, "e1g1"))
	// scored for black now
	after := SimpleEvaluator{}.Evaluate(b)
	if after >= -before {
		t.Errorf("unexpected score after castling: got=%d want<%d", after, -before)
	}
}

func TestGamePhase(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen  string
		want int
	}{
		{board.DefaultStartingPositionFEN, 0},
		{"4k3/pppppppp/8/8/8/8/PPPPPPPP/4K3 w - -", phaseConstant},
	}
	for _, tt := range tests {
		if got := gamePhase(mustBoard(t, tt.fen)); got != tt.want {
			t.Errorf("unexpected phase for %s: got=%d want=%d", tt.fen, got, tt.want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	t.Parallel()
	tests := []struct {
		score int32
		ev    Evaluator
		want  string
	}{
		{150, SimpleEvaluator{}, "+1.50"},
		{-25, SimpleEvaluator{}, "-0.25"},
		{scoreMate + 3, SimpleEvaluator{}, "#+"},
		{-scoreMate - 1, AdvancedEvaluator{}, "#-"},
		{scoreInfinity, AdvancedEvaluator{}, "+inf"},
		{0, NullEvaluator{}, "0"},
	}
	for _, tt := range tests {
		if got := formatScore(tt.score, tt.ev); got != tt.want {
			t.Errorf("unexpected format of %d: got=%s want=%s", tt.score, got, tt.want)
		}
	}
}
