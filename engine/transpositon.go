package engine

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/daystram/x88chess/board"
)

const DefaultHashTableSize = 2 << 20 // number of entries

type EntryType uint8

const (
	EntryTypeUnknown EntryType = iota
	EntryTypeExact
	EntryTypeLowerBound
	EntryTypeUpperBound
)

func (t EntryType) String() string {
	switch t {
	case EntryTypeExact:
		return "exact"
	case EntryTypeLowerBound:
		return "lower"
	case EntryTypeUpperBound:
		return "upper"
	default:
		return "unknown"
	}
}

// TranspositionTable caches search results by board signature, dropping the
// least recently used entries once full. A miss is always safe.
type TranspositionTable struct {
	cache *lru.Cache[uint64, *Entry]

	// stats
	hits   uint64
	misses uint64
	writes uint64
}

// Entry keeps the score of a searched position along with the two best
// moves seen for it, each at the depth it was found.
type Entry struct {
	Type  EntryType
	Score int32
	Depth int

	Best        board.Move
	Second      board.Move
	SecondDepth int
}

func NewTranspositionTable(size int) *TranspositionTable {
	if size <= 0 {
		size = DefaultHashTableSize
	}
	cache, err := lru.New[uint64, *Entry](size)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &TranspositionTable{cache: cache}
}

func (t *TranspositionTable) Get(hash uint64) (*Entry, bool) {
	e, ok := t.cache.Get(hash)
	if !ok {
		t.misses++
		return nil, false
	}
	t.hits++
	return e, true
}

// Set stores a result. An existing entry is overwritten by a result at least
// as deep; otherwise mv may still become its second best move.
func (t *TranspositionTable) Set(hash uint64, typ EntryType, mv board.Move, score int32, depth int) {
	t.writes++
	e, ok := t.cache.Get(hash)
	if !ok {
		t.cache.Add(hash, &Entry{
			Type:        typ,
			Score:       score,
			Depth:       depth,
			Best:        mv,
			SecondDepth: -1,
		})
		return
	}
	if depth >= e.Depth {
		if !mv.Equals(e.Best) {
			e.Second = e.Best
			e.SecondDepth = e.Depth
		}
		e.Type = typ
		e.Score = score
		e.Best = mv
		e.Depth = depth
		return
	}
	if (e.Second.IsNull() || depth >= e.SecondDepth) && !mv.Equals(e.Best) {
		e.Second = mv
		e.SecondDepth = depth
	}
}

func (t *TranspositionTable) Len() int {
	return t.cache.Len()
}

func (t *TranspositionTable) Clear() {
	t.cache.Purge()
	t.ResetStats()
}

func (t *TranspositionTable) ResetStats() {
	t.hits = 0
	t.misses = 0
	t.writes = 0
}

func (t *TranspositionTable) Stats() (uint64, uint64, uint64) {
	return t.hits, t.misses, t.writes
}
