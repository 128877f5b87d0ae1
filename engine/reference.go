package engine

import "github.com/daystram/x88chess/board"

// ReferenceSearch is a plain fixed depth negamax without pruning, caching,
// extensions or repetition handling. It is slow and only meant to check the
// results of Engine.Search. Ties go to the first generated move.
func ReferenceSearch(b *board.Board, depth int, ev Evaluator) (board.Move, int32) {
	if depth <= 0 {
		return board.Move{}, ev.Evaluate(b)
	}

	mvs := b.GenerateMoves()
	if len(mvs) == 0 {
		if b.InCheck() {
			return board.Move{}, -ev.Mate() - int32(depth)
		}
		return board.Move{}, -ev.Stalemate()
	}

	best := -ev.Infinity()
	bestMove := mvs[0]
	for _, mv := range mvs {
		b.Apply(mv)
		_, score := ReferenceSearch(b, depth-1, ev)
		b.MustUndo()
		if -score > best {
			best = -score
			bestMove = mv
		}
	}
	return bestMove, best
}
