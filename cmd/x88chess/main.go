package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/daystram/x88chess/board"
	"github.com/daystram/x88chess/book"
	"github.com/daystram/x88chess/engine"
)

const (
	exitOK = iota
	exitErr
)

const stepCount = 5000

var (
	profileRun = flag.Bool("profile", false, "write a cpu profile to the working directory")
	debug      = flag.Bool("debug", false, "enable debug logging")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	stepRun = flag.Bool("step", false, "run step mode")

	perftRun      = flag.Bool("perft", false, "run perft mode")
	perftDepth    = flag.Int("perft.depth", 5, "perft depth in perft mode")
	perftParallel = flag.Bool("perft.parallel", true, "split root moves across goroutines in perft mode")

	searchRun        = flag.Bool("search", false, "run search mode, the engine playing against random moves")
	searchDifficulty = flag.String("search.difficulty", "hard", "engine difficulty in search mode: easy, medium, hard or ultra")
	searchDepth      = flag.Int("search.depth", 0, "fixed search depth in search mode, overrides the difficulty")
	searchTime       = flag.Duration("search.time", 5*time.Minute, "clock time of each side in search mode")
	searchSteps      = flag.Int("search.steps", 50, "moves per side in search mode")
	searchVerify     = flag.Bool("search.verify", false, "check every engine move against the reference search, needs search.depth")

	playRun        = flag.Bool("play", false, "play against the engine on the console")
	playDifficulty = flag.String("play.difficulty", "medium", "engine difficulty in play mode")

	bookPath = flag.String("book", "", "opening book in the polyglot record layout")
	bookKeys = flag.String("book.keys", "", "polyglot random table of 781 big endian keys used to key the book")
)

func main() {
	flag.Parse()

	logger := newLogger(os.Stderr, *debug)
	if err := realMain(logger, flag.Args()); err != nil {
		logger.Error().Err(err).Msg("exited with error")
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().
		Logger()
}

func realMain(logger zerolog.Logger, args []string) error {
	if *profileRun {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var bk engine.Book
	if *bookPath != "" {
		loaded, err := loadBook(*bookPath, *bookKeys)
		if err != nil {
			return err
		}
		logger.Info().Str("path", *bookPath).Int("positions", loaded.Len()).Msg("loaded book")
		bk = loaded
	}

	switch {
	case *movegenRun:
		return movegen(os.Stdout, fen, *movegenDraw)
	case *stepRun:
		return step(os.Stdout, fen, stepCount)
	case *perftRun:
		return perft(ctx, os.Stdout, logger, *perftDepth, fen, *perftParallel)
	case *searchRun:
		d, err := engine.ParseDifficulty(*searchDifficulty)
		if err != nil {
			return err
		}
		return search(ctx, os.Stdout, logger, fen, searchOptions{
			difficulty: d,
			depth:      *searchDepth,
			clockTime:  *searchTime,
			steps:      *searchSteps,
			verify:     *searchVerify,
			book:       bk,
		})
	case *playRun:
		d, err := engine.ParseDifficulty(*playDifficulty)
		if err != nil {
			return err
		}
		return play(ctx, os.Stdin, os.Stdout, logger, fen, d, bk)
	}

	flag.Usage()
	return nil
}

func loadBook(path, keysPath string) (*book.Book, error) {
	var opts []book.Option
	if keysPath != "" {
		kf, err := os.Open(keysPath)
		if err != nil {
			return nil, err
		}
		defer kf.Close()
		keys, err := book.ReadPolyglotKeys(kf)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", keysPath, err)
		}
		opts = append(opts, book.WithKeys(keys))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bk := book.New(opts...)
	if _, err := bk.Load(f); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return bk, nil
}
