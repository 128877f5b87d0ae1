package book

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/daystram/x88chess/board"
	"github.com/daystram/x88chess/engine"
	"github.com/daystram/x88chess/internal/testutil"
)

var _ engine.Book = (*Book)(nil)

func mustBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.NewBoard(board.WithFEN(fen))
	testutil.AssertNoError(t, err, "fen %s", fen)
	return b
}

func TestEncodeMove(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		uci  string
		want uint16
	}{
		{"pawn push", board.DefaultStartingPositionFEN, "e2e4", 796},
		{"white king side castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -", "e1g1", 263},
		{"black queen side castle", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq -", "e8c8", 3896},
		{"promotion", "8/P7/8/8/8/8/8/k6K w - -", "a7a8q", 19512},
		{"under promotion", "8/P7/8/8/8/8/8/k6K w - -", "a7a8n", 7224},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			mv, err := b.ParseUCIMove(tt.uci)
			testutil.AssertNoError(t, err)

			raw := EncodeMove(mv)
			if raw != tt.want {
				t.Errorf("unexpected encoding: got=%d want=%d", raw, tt.want)
			}
			decoded, err := DecodeMove(b, raw)
			testutil.AssertNoError(t, err)
			testutil.AssertTrue(t, decoded.Equals(mv), "decoded %s", decoded.UCI())
		})
	}
}

func TestDecodeMoveBadPromotion(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, board.DefaultStartingPositionFEN)
	_, err := DecodeMove(b, 796|5<<12)
	testutil.AssertErrorIs(t, err, board.ErrMalformedInput)
}

func TestLoadWriteTo(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, board.DefaultStartingPositionFEN)
	bk := New()
	for _, uci := range []string{"e2e4", "d2d4", "e2e4"} {
		mv, err := b.ParseUCIMove(uci)
		testutil.AssertNoError(t, err)
		bk.Add(b, mv, 3)
	}
	mv, err := b.ParseUCIMove("e2e4")
	testutil.AssertNoError(t, err)
	b.Apply(mv)
	reply, err := b.ParseUCIMove("c7c5")
	testutil.AssertNoError(t, err)
	bk.Add(b, reply, 1)
	b.MustUndo()

	var buf bytes.Buffer
	n, err := bk.WriteTo(&buf)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, int64(3*recordSize))

	raw := buf.Bytes()
	for i := recordSize; i < len(raw); i += recordSize {
		prev := binary.BigEndian.Uint64(raw[i-recordSize:])
		testutil.AssertTrue(t, prev <= binary.BigEndian.Uint64(raw[i:]), "keys sorted")
	}

	loaded := New()
	count, err := loaded.Load(bytes.NewReader(raw))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, 3)
	testutil.AssertEqual(t, loaded.Len(), 2)

	mvs, weights := loaded.Moves(b)
	var got []string
	for _, mv := range mvs {
		got = append(got, mv.UCI())
	}
	testutil.AssertEqual(t, len(got), 2)
	testutil.AssertEqual(t, weights[0]+weights[1], uint16(9))
}

func TestLoadTruncated(t *testing.T) {
	t.Parallel()
	raw := make([]byte, recordSize+4)
	n, err := New().Load(bytes.NewReader(raw))
	testutil.AssertErrorIs(t, err, ErrTruncated)
	testutil.AssertErrorIs(t, err, board.ErrMalformedInput)
	testutil.AssertEqual(t, n, 1)
}

func TestProbe(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, board.DefaultStartingPositionFEN)
	bk := New()

	_, ok := bk.Probe(b)
	testutil.AssertFalse(t, ok, "empty book")

	// e2e5 can never be legal from the start
	bk.entries[bk.hasher(b)] = []Entry{
		{Move: 4 | 4<<3 | 4<<6 | 1<<9, Weight: 1000},
		{Move: 796, Weight: 1},
	}
	for i := 0; i < 20; i++ {
		mv, ok := bk.Probe(b)
		testutil.AssertTrue(t, ok, "book hit")
		testutil.AssertEqual(t, mv.UCI(), "e2e4")
	}

	bk.entries[bk.hasher(b)] = []Entry{{Move: 796}}
	mv, ok := bk.Probe(b)
	testutil.AssertTrue(t, ok, "zero weight hit")
	testutil.AssertEqual(t, mv.UCI(), "e2e4")
}

func TestWithHasher(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, board.DefaultStartingPositionFEN)
	bk := New(WithHasher(func(*board.Board) uint64 { return 42 }))
	mv, err := b.ParseUCIMove("g1f3")
	testutil.AssertNoError(t, err)
	bk.Add(b, mv, 1)

	var buf bytes.Buffer
	_, err = bk.WriteTo(&buf)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, binary.BigEndian.Uint64(buf.Bytes()), uint64(42))
}

func TestEngineUsesBook(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, board.DefaultStartingPositionFEN)
	bk := New()
	mv, err := b.ParseUCIMove("c2c4")
	testutil.AssertNoError(t, err)
	bk.Add(b, mv, 1)

	e := engine.NewEngine(&engine.EngineConfig{MinDepth: 1, MaxDepth: 1, Book: bk})
	got, err := e.Search(context.Background(), b, nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.UCI(), "c2c4")
}
