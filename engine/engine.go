package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/x88chess/board"
)

const (
	DefaultMinDepth = 4
	DefaultMaxDepth = 6
	MaxDepth        = 64

	quiescenceMinDepth = 2
	quiescenceMidDepth = 5
	quiescenceMaxDepth = 100

	hurryUpMinDepth = 4
)

// ErrNoMoves is returned when a search starts on a finished game.
var ErrNoMoves = fmt.Errorf("%w: no legal moves", board.ErrIllegalState)

// Book supplies prepared moves for known positions.
type Book interface {
	Probe(b *board.Board) (board.Move, bool)
}

type EngineConfig struct {
	HashTableSize int
	MinDepth      int
	MaxDepth      int
	Evaluator     Evaluator
	Book          Book
	Logger        *zerolog.Logger

	DisableQuiescence     bool
	DisableCheckExtension bool
}

type SearchConfig struct {
	ClockConfig ClockConfig
	Clock       Clock

	// Reports receives every improvement of the best move. Sends block
	// until read or until the search context is done.
	Reports chan<- Report
}

// Report describes the best move after a completed iteration. Depth is 0
// for a book move.
type Report struct {
	Depth   int
	Move    board.Move
	Score   int32
	Nodes   uint64
	Elapsed time.Duration
}

type Stats struct {
	Nodes           uint64
	QuiescenceNodes uint64
	Hits            uint64
	Misses          uint64
	Writes          uint64
	Entries         int
	Elapsed         time.Duration
}

func (s Stats) String() string {
	total := s.Nodes + s.QuiescenceNodes
	return message.NewPrinter(language.English).
		Sprintf("nodes:%d qnodes:%d (%.0fn/s) tt:%d hits:%d misses:%d writes:%d t:%s",
			s.Nodes, s.QuiescenceNodes, float64(total)/((s.Elapsed + 1).Seconds()),
			s.Entries, s.Hits, s.Misses, s.Writes, s.Elapsed)
}

// Engine runs an iterative deepening negamax search. It remembers the
// positions of the game it played in, so one Engine serves one game. It is
// not safe for concurrent use.
type Engine struct {
	tt          *TranspositionTable
	repetitions *RepetitionTable
	evaluator   Evaluator
	book        Book
	logger      zerolog.Logger

	minDepth              int
	maxDepth              int
	disableQuiescence     bool
	disableCheckExtension bool

	// state of the running search
	ctx            context.Context
	b              *board.Board
	clock          Clock
	searchMinDepth int
	depthIteration int
	aborted        bool
	nodes          uint64
	qnodes         uint64
	elapsed        time.Duration
}

func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil {
		cfg = &EngineConfig{}
	}
	e := &Engine{
		tt:                    NewTranspositionTable(cfg.HashTableSize),
		repetitions:           NewRepetitionTable(),
		evaluator:             cfg.Evaluator,
		book:                  cfg.Book,
		logger:                zerolog.Nop(),
		minDepth:              cfg.MinDepth,
		maxDepth:              cfg.MaxDepth,
		disableQuiescence:     cfg.DisableQuiescence,
		disableCheckExtension: cfg.DisableCheckExtension,
	}
	if cfg.Logger != nil {
		e.logger = *cfg.Logger
	}
	if e.evaluator == nil {
		e.evaluator = AdvancedEvaluator{}
	}
	if e.maxDepth <= 0 {
		e.maxDepth = DefaultMaxDepth
	}
	e.maxDepth = min(e.maxDepth, MaxDepth)
	if e.minDepth <= 0 {
		e.minDepth = DefaultMinDepth
	}
	e.minDepth = min(e.minDepth, e.maxDepth)
	return e
}

func (e *Engine) Evaluator() Evaluator {
	return e.evaluator
}

func (e *Engine) Repetitions() *RepetitionTable {
	return e.repetitions
}

// ResetGame forgets the positions of the previous game.
func (e *Engine) ResetGame() {
	e.tt.Clear()
	e.repetitions.Clear()
}

// Stats describes the last search.
func (e *Engine) Stats() Stats {
	hits, misses, writes := e.tt.Stats()
	return Stats{
		Nodes:           e.nodes,
		QuiescenceNodes: e.qnodes,
		Hits:            hits,
		Misses:          misses,
		Writes:          writes,
		Entries:         e.tt.Len(),
		Elapsed:         e.elapsed,
	}
}

// Search picks a move for the side to play on b. b is restored before
// returning. Running out of time is not an error: the move of the last
// completed iteration is returned, or the best ordered move if none
// completed.
func (e *Engine) Search(ctx context.Context, b *board.Board, cfg *SearchConfig) (board.Move, error) {
	if cfg == nil {
		cfg = &SearchConfig{}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = DepthClock{}
	}
	startTime := time.Now()
	e.ctx, e.b, e.clock = ctx, b, clock
	e.nodes, e.qnodes, e.aborted = 0, 0, false
	// scores depend on the repetition counts, which change between searches
	e.tt.Clear()
	defer func() {
		e.ctx, e.b, e.clock = nil, nil, nil
		e.elapsed = time.Since(startTime)
	}()

	e.repetitions.Increment(b)

	clock.Start(cfg.ClockConfig)
	clock.NotOkToTimeup()
	e.searchMinDepth = e.minDepth
	if clock.HurryUp() {
		e.searchMinDepth = min(e.searchMinDepth, hurryUpMinDepth)
	}

	if mv, ok := e.probeBook(b); ok {
		e.logger.Info().Str("move", mv.UCI()).Msg("book move")
		e.report(cfg.Reports, Report{Move: mv, Elapsed: time.Since(startTime)})
		return mv, nil
	}

	mvs := orderedMoves(b)
	if len(mvs) == 0 {
		return board.Move{}, ErrNoMoves
	}
	e.sortByEvaluation(mvs)

	inf := e.evaluator.Infinity()
	bestMove := mvs[0]
	for e.depthIteration = 1; e.depthIteration <= e.maxDepth; e.depthIteration++ {
		if e.depthIteration >= e.searchMinDepth {
			clock.OkToTimeup()
		}
		if e.timeup() {
			break
		}

		mv, score, ok := e.rootNegamax(mvs, e.depthIteration, -inf, inf)
		if !ok {
			e.logger.Debug().Int("depth", e.depthIteration).Msg("iteration aborted")
			break
		}
		bestMove = mv
		moveToFront(mvs, mv)

		elapsed := time.Since(startTime)
		e.report(cfg.Reports, Report{
			Depth:   e.depthIteration,
			Move:    mv,
			Score:   score,
			Nodes:   e.nodes,
			Elapsed: elapsed,
		})
		if ev := e.logger.Debug(); ev.Enabled() {
			ev.Int("depth", e.depthIteration).
				Str("move", mv.UCI()).
				Str("score", formatScore(score, e.evaluator)).
				Uint64("nodes", e.nodes).
				Uint64("qnodes", e.qnodes).
				Dur("elapsed", elapsed).
				Str("pv", e.PrincipalVariation(b, e.depthIteration).String(b)).
				Msg("iteration complete")
		}
	}

	b.Apply(bestMove)
	e.repetitions.Increment(b)
	b.MustUndo()
	return bestMove, nil
}

func (e *Engine) probeBook(b *board.Board) (board.Move, bool) {
	if e.book == nil {
		return board.Move{}, false
	}
	mv, ok := e.book.Probe(b)
	if !ok || !b.IsLegalMove(mv) {
		return board.Move{}, false
	}
	b.Apply(mv)
	defer b.MustUndo()
	if e.repetitions.IsRepetition(b) {
		return board.Move{}, false
	}
	e.repetitions.Increment(b)
	return mv, true
}

func (e *Engine) report(ch chan<- Report, r Report) {
	if ch == nil {
		return
	}
	select {
	case ch <- r:
	case <-e.ctx.Done():
	}
}

// timeup latches once the clock or the context says stop, so that every
// frame of the search unwinds without trusting partial results.
func (e *Engine) timeup() bool {
	if e.aborted {
		return true
	}
	if e.ctx.Err() != nil || e.clock.Timeup() {
		e.aborted = true
	}
	return e.aborted
}

func (e *Engine) rootNegamax(mvs []board.Move, depth int, alpha, beta int32) (board.Move, int32, bool) {
	e.nodes++
	b := e.b

	if !e.disableCheckExtension && b.InCheck() {
		depth++
	}

	hash := b.Hash()
	if entry, ok := e.tt.Get(hash); ok && entry.Depth >= depth && containsMove(mvs, entry.Best) {
		switch entry.Type {
		case EntryTypeExact:
			return entry.Best, entry.Score, true
		case EntryTypeLowerBound:
			alpha = max(alpha, entry.Score)
		case EntryTypeUpperBound:
			beta = min(beta, entry.Score)
		}
		if alpha >= beta {
			return entry.Best, entry.Score, true
		}
	}

	alphaOrig := alpha
	best := -e.evaluator.Infinity()
	bestMove := mvs[0]
	for _, mv := range mvs {
		if e.timeup() {
			return board.Move{}, 0, false
		}

		b.Apply(mv)
		score := -e.negamax(depth-1, -beta, -alpha)
		b.MustUndo()
		if e.aborted {
			return board.Move{}, 0, false
		}

		if score > best {
			best = score
			bestMove = mv
		}
		if best > alpha {
			alpha = best
		}
		if best >= beta {
			break
		}
	}

	e.store(hash, alphaOrig, beta, depth, best, bestMove)
	return bestMove, best, true
}

// negamax scores the board for the side to play.
func (e *Engine) negamax(depth int, alpha, beta int32) int32 {
	e.nodes++
	b := e.b

	inCheck := b.InCheck()
	if inCheck && !e.disableCheckExtension {
		depth++
	}

	// a position already played in the game counts as drawn
	if e.repetitions.IsRepetition(b) {
		return -e.evaluator.Stalemate()
	}

	hash := b.Hash()
	entry, hit := e.tt.Get(hash)
	if hit && entry.Depth >= depth {
		switch entry.Type {
		case EntryTypeExact:
			return entry.Score
		case EntryTypeLowerBound:
			alpha = max(alpha, entry.Score)
		case EntryTypeUpperBound:
			beta = min(beta, entry.Score)
		}
		if alpha >= beta {
			return entry.Score
		}
	}

	if depth == 0 {
		if e.disableQuiescence {
			return e.evaluator.Evaluate(b)
		}
		return e.quiescence(e.quiescenceDepth(), alpha, beta)
	}

	mvs := orderedMoves(b)
	if len(mvs) == 0 {
		if inCheck {
			return -e.evaluator.Mate() - int32(depth)
		}
		return -e.evaluator.Stalemate()
	}
	if hit {
		promoteKillers(mvs, entry)
	}

	alphaOrig := alpha
	best := -e.evaluator.Infinity()
	bestMove := mvs[0]
	for _, mv := range mvs {
		if e.timeup() {
			return -e.evaluator.Infinity()
		}

		b.Apply(mv)
		score := -e.negamax(depth-1, -beta, -alpha)
		b.MustUndo()
		if e.aborted {
			return -e.evaluator.Infinity()
		}

		if score > best {
			best = score
			bestMove = mv
		}
		if best > alpha {
			alpha = best
		}
		if best >= beta {
			break
		}
	}

	e.store(hash, alphaOrig, beta, depth, best, bestMove)
	return best
}

func (e *Engine) quiescenceDepth() int {
	switch {
	case e.depthIteration < e.searchMinDepth:
		return quiescenceMinDepth
	case e.depthIteration == e.searchMinDepth:
		return quiescenceMidDepth
	default:
		return quiescenceMaxDepth
	}
}

// quiescence keeps searching captures and promotions past the horizon so a
// leaf is never scored in the middle of an exchange.
func (e *Engine) quiescence(depth int, alpha, beta int32) int32 {
	e.qnodes++
	b := e.b

	// stored depths continue on from the main search
	ttDepth := depth + e.depthIteration
	hash := b.Hash()
	entry, hit := e.tt.Get(hash)
	if hit && entry.Depth >= ttDepth {
		switch entry.Type {
		case EntryTypeExact:
			return entry.Score
		case EntryTypeLowerBound:
			alpha = max(alpha, entry.Score)
		case EntryTypeUpperBound:
			beta = min(beta, entry.Score)
		}
		if alpha >= beta {
			return entry.Score
		}
	}

	standPat := e.evaluator.Evaluate(b)
	if depth == 0 || standPat >= beta {
		return standPat
	}

	mvs := b.GenerateNoisyMoves()
	if len(mvs) == 0 {
		return standPat
	}

	alphaOrig := alpha
	if standPat > alpha {
		alpha = standPat
	}
	e.sortByEvaluation(mvs)
	if hit {
		promoteKillers(mvs, entry)
	}

	best := standPat
	bestMove := mvs[0]
	for _, mv := range mvs {
		if e.timeup() {
			return -e.evaluator.Infinity()
		}

		b.Apply(mv)
		score := -e.quiescence(depth-1, -beta, -alpha)
		b.MustUndo()
		if e.aborted {
			return -e.evaluator.Infinity()
		}

		if score > best {
			best = score
			bestMove = mv
		}
		if best > alpha {
			alpha = best
		}
		if best >= beta {
			break
		}
	}

	e.store(hash, alphaOrig, beta, ttDepth, best, bestMove)
	return best
}

// store classifies best against the window the node was searched with.
func (e *Engine) store(hash uint64, alpha, beta int32, depth int, best int32, mv board.Move) {
	if e.aborted {
		return
	}
	typ := EntryTypeExact
	switch {
	case best <= alpha:
		typ = EntryTypeUpperBound
	case best >= beta:
		typ = EntryTypeLowerBound
	}
	e.tt.Set(hash, typ, mv, best, depth)
}

// orderedMoves lists the legal moves with captures, en passant and
// promotions ahead of quiet moves.
func orderedMoves(b *board.Board) []board.Move {
	mvs := b.GenerateMoves()
	ordered := make([]board.Move, 0, len(mvs))
	for _, mv := range mvs {
		if mv.IsNoisy() {
			ordered = append(ordered, mv)
		}
	}
	for _, mv := range mvs {
		if !mv.IsNoisy() {
			ordered = append(ordered, mv)
		}
	}
	return ordered
}

// sortByEvaluation orders moves by the static evaluation of the resulting
// position. That score is from the opponent's side, so ascending order
// puts our best moves first.
func (e *Engine) sortByEvaluation(mvs []board.Move) {
	b := e.b
	scores := make(map[board.Move]int32, len(mvs))
	for _, mv := range mvs {
		b.Apply(mv)
		scores[mv] = e.evaluator.Evaluate(b)
		b.MustUndo()
	}
	sort.SliceStable(mvs, func(i, j int) bool {
		return scores[mvs[i]] < scores[mvs[j]]
	})
}

// promoteKillers moves the cached best and second best moves to the front.
func promoteKillers(mvs []board.Move, entry *Entry) {
	if !entry.Second.IsNull() {
		moveToFront(mvs, entry.Second)
	}
	moveToFront(mvs, entry.Best)
}

func moveToFront(mvs []board.Move, mv board.Move) {
	for i := range mvs {
		if mvs[i].Equals(mv) {
			found := mvs[i]
			copy(mvs[1:i+1], mvs[:i])
			mvs[0] = found
			return
		}
	}
}

func containsMove(mvs []board.Move, mv board.Move) bool {
	for _, m := range mvs {
		if m.Equals(mv) {
			return true
		}
	}
	return false
}

// PrincipalVariation follows the cached best moves from b, at most n of
// them. b is left unchanged.
func (e *Engine) PrincipalVariation(b *board.Board, n int) PVLine {
	var pvl PVLine
	bb := b.Clone()
	seen := map[uint64]bool{}
	for i := 0; i < n; i++ {
		entry, ok := e.tt.cache.Peek(bb.Hash())
		if !ok || seen[bb.Hash()] || !bb.IsLegalMove(entry.Best) {
			break
		}
		seen[bb.Hash()] = true
		pvl.Push(entry.Best)
		bb.Apply(entry.Best)
	}
	return pvl
}

func formatScore(s int32, ev Evaluator) string {
	switch {
	case s >= ev.Infinity():
		return "+inf"
	case s <= -ev.Infinity():
		return "-inf"
	case ev.Mate() > 0 && abs(s) >= ev.Mate():
		if s > 0 {
			return "#+"
		}
		return "#-"
	case ev.PawnWeight() > 0:
		return fmt.Sprintf("%+.2f", float64(s)/float64(ev.PawnWeight()))
	default:
		return fmt.Sprintf("%d", s)
	}
}
