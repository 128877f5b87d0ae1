package engine

import "github.com/daystram/x88chess/board"

// RepetitionTable counts how often each position occurred in the game.
type RepetitionTable struct {
	counts map[uint64]int
}

func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{counts: make(map[uint64]int)}
}

func (r *RepetitionTable) Increment(b *board.Board) int {
	r.counts[b.Hash()]++
	return r.counts[b.Hash()]
}

func (r *RepetitionTable) Decrement(b *board.Board) int {
	r.counts[b.Hash()]--
	return r.counts[b.Hash()]
}

func (r *RepetitionTable) Count(b *board.Board) int {
	return r.counts[b.Hash()]
}

// IsRepetition reports whether the position has been seen before. The search
// treats such a position as drawn.
func (r *RepetitionTable) IsRepetition(b *board.Board) bool {
	return r.counts[b.Hash()] > 0
}

// IsDraw reports a threefold repetition.
func (r *RepetitionTable) IsDraw(b *board.Board) bool {
	return r.counts[b.Hash()] >= 3
}

func (r *RepetitionTable) Clear() {
	r.counts = make(map[uint64]int)
}
