package engine

import (
	"testing"

	"github.com/daystram/x88chess/board"
	"github.com/daystram/x88chess/internal/testutil"
)

func TestRepetitionTable(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, board.DefaultStartingPositionFEN)
	r := NewRepetitionTable()

	testutil.AssertFalse(t, r.IsRepetition(b), "fresh table")

	// shuffle the knights back to the start twice
	for i := 0; i < 2; i++ {
		testutil.AssertEqual(t, r.Increment(b), i+1)
		for _, uci := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
			b.Apply(mustMove(t, b, uci))
		}
	}
	testutil.AssertTrue(t, r.IsRepetition(b), "seen once")
	testutil.AssertFalse(t, r.IsDraw(b), "seen twice")
	r.Increment(b)
	testutil.AssertTrue(t, r.IsDraw(b), "threefold")

	testutil.AssertEqual(t, r.Decrement(b), 2)
	testutil.AssertEqual(t, r.Count(b), 2)

	b.Apply(mustMove(t, b, "e2e4"))
	testutil.AssertEqual(t, r.Count(b), 0)

	r.Clear()
	b.MustUndo()
	testutil.AssertEqual(t, r.Count(b), 0)
}
