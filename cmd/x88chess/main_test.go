package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/x88chess/board"
	"github.com/daystram/x88chess/book"
	"github.com/daystram/x88chess/engine"
	"github.com/daystram/x88chess/internal/testutil"
)

func TestMovegen(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := movegen(&buf, board.DefaultStartingPositionFEN, true)
	testutil.AssertNoError(t, err)

	out := buf.String()
	testutil.AssertTrue(t, strings.Contains(out, "option 20: "), "last option listed")
	testutil.AssertTrue(t, strings.Contains(out, "[g1f3] [Nf3] [g1f3]"), "knight move listed")
	testutil.AssertFalse(t, strings.Contains(out, "option 21:"), "only legal moves")
	testutil.AssertTrue(t, strings.Contains(out, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq"), "drawn move")

	err = movegen(io.Discard, "not a fen", false)
	testutil.AssertErrorIs(t, err, board.ErrInvalidFEN)
}

func TestStep(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	testutil.AssertNoError(t, step(&buf, board.DefaultStartingPositionFEN, 20))
	testutil.AssertTrue(t, strings.Contains(buf.String(), "genmv:"), "timings printed")

	err := step(io.Discard, "k7/8/1Q6/8/8/8/8/7K b - -", 5)
	testutil.AssertErrorIs(t, err, board.ErrIllegalState)
}

func TestPerftMode(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := perft(context.Background(), &buf, zerolog.Nop(), 2, board.DefaultStartingPositionFEN, true)
	testutil.AssertNoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	testutil.AssertEqual(t, len(lines), 21)
	testutil.AssertTrue(t, strings.HasPrefix(lines[20], "d=2 nodes=400 "), lines[20])
}

func TestSearchMode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		opts searchOptions
	}{
		{
			"verified fixed depth",
			board.DefaultStartingPositionFEN,
			searchOptions{depth: 2, steps: 3, verify: true, clockTime: time.Minute},
		},
		{
			"difficulty until mate",
			"6k1/5ppp/8/8/8/8/8/R3K3 w - -",
			searchOptions{difficulty: engine.DifficultyEasy, steps: 3, clockTime: time.Minute},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := search(context.Background(), &buf, zerolog.Nop(), tt.fen, tt.opts)
			testutil.AssertNoError(t, err)
			testutil.AssertTrue(t, strings.Contains(buf.String(), ">>> "), "moves printed")
		})
	}

	err := search(context.Background(), io.Discard, zerolog.Nop(), board.DefaultStartingPositionFEN,
		searchOptions{depth: 5, steps: 1, verify: true})
	testutil.AssertTrue(t, err != nil, "verify needs a shallow depth")
}

func TestPlay(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		fen   string
		input string
		want  []string
	}{
		{
			"moves and commands",
			board.DefaultStartingPositionFEN,
			"e4\nsearch\ngo\nd\nbogus\nquit\n",
			[]string{"Computer player: Bot Easy", "Position (Black to move)", "Computer recommends: ", "Computer moves: ", `"bogus" is not a legal move`},
		},
		{
			"other notations",
			board.DefaultStartingPositionFEN,
			"g1f3\ngo\n",
			[]string{"Position (Black to move)", "Computer moves: "},
		},
		{
			"mate",
			"6k1/5ppp/8/8/8/8/8/R3K3 w - -",
			"ra8#\nnew\nquit\n",
			[]string{"Checkmate", "Position (White to move)"},
		},
		{
			"threefold repetition",
			board.DefaultStartingPositionFEN,
			"Nf3\nNf6\nNg1\nNg8\nNf3\nNf6\nNg1\nNg8\nquit\n",
			[]string{"Draw by threefold repetition"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := play(context.Background(), strings.NewReader(tt.input), &buf, zerolog.Nop(), tt.fen, engine.DifficultyEasy, nil)
			testutil.AssertNoError(t, err)
			for _, want := range tt.want {
				testutil.AssertTrue(t, strings.Contains(buf.String(), want), "output contains %q", want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := newLogger(&buf, false)
	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")
	testutil.AssertFalse(t, strings.Contains(buf.String(), "hidden"), "debug filtered")
	testutil.AssertTrue(t, strings.Contains(buf.String(), "shown"), "info logged")
}

func TestLoadBook(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	b, err := board.NewBoard()
	testutil.AssertNoError(t, err)
	mv, err := b.ParseUCIMove("d2d4")
	testutil.AssertNoError(t, err)

	var keys book.PolyglotKeys
	for i := range keys {
		keys[i] = uint64(i+1) * 0x9e3779b97f4a7c15
	}
	var raw bytes.Buffer
	testutil.AssertNoError(t, binary.Write(&raw, binary.BigEndian, &keys))
	keysPath := filepath.Join(dir, "keys.bin")
	testutil.AssertNoError(t, os.WriteFile(keysPath, raw.Bytes(), 0o600))

	bk := book.New(book.WithKeys(&keys))
	bk.Add(b, mv, 1)
	raw.Reset()
	_, err = bk.WriteTo(&raw)
	testutil.AssertNoError(t, err)
	bookPath := filepath.Join(dir, "book.bin")
	testutil.AssertNoError(t, os.WriteFile(bookPath, raw.Bytes(), 0o600))

	loaded, err := loadBook(bookPath, keysPath)
	testutil.AssertNoError(t, err)
	got, ok := loaded.Probe(b)
	testutil.AssertTrue(t, ok, "book hit with matching keys")
	testutil.AssertEqual(t, got.UCI(), "d2d4")

	loaded, err = loadBook(bookPath, "")
	testutil.AssertNoError(t, err)
	_, ok = loaded.Probe(b)
	testutil.AssertFalse(t, ok, "default keys do not match")

	_, err = loadBook(bookPath, bookPath)
	testutil.AssertErrorIs(t, err, book.ErrTruncated)
}
