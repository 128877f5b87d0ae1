package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/daystram/x88chess/bench"
)

func perft(ctx context.Context, w io.Writer, logger zerolog.Logger, depth int, fen string, parallel bool) error {
	logger.Info().Int("depth", depth).Bool("parallel", parallel).Str("fen", fen).Msg("starting perft")

	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			fmt.Fprintln(w, s)
		}
	}()

	res, err := bench.Perft(ctx, depth, fen, parallel, true, out)
	close(out)
	<-done
	if err != nil {
		return err
	}

	logger.Debug().Uint64("nodes", res.Nodes).Dur("elapsed", res.Elapsed).Msg("perft done")
	return nil
}
