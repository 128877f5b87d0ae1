// Package book stores opening moves in the 16 byte polyglot record layout:
// a big endian key, move, weight and learn field.
//
// Positions are keyed with the polyglot hash. Its random table defaults to
// DefaultPolyglotKeys, so books from other polyglot tools only match after
// loading their table with ReadPolyglotKeys and WithKeys.
package book

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"

	"lukechampine.com/frand"

	"github.com/daystram/x88chess/board"
	"github.com/daystram/x88chess/position"
)

const recordSize = 16

var ErrTruncated = fmt.Errorf("%w: truncated book record", board.ErrMalformedInput)

// Hasher keys a position. Books written with one hasher can only be read
// back with the same one.
type Hasher func(b *board.Board) uint64


type Entry struct {
	Move   uint16
	Weight uint16
}

type Book struct {
	hasher  Hasher
	entries map[uint64][]Entry
}

type Option func(*Book)

func WithHasher(h Hasher) Option {
	return func(bk *Book) {
		bk.hasher = h
	}
}

// WithKeys keys positions with the given polyglot table.
func WithKeys(k *PolyglotKeys) Option {
	return WithHasher(k.Hash)
}

func New(opts ...Option) *Book {
	bk := &Book{
		hasher:  DefaultPolyglotKeys().Hash,
		entries: make(map[uint64][]Entry),
	}
	for _, opt := range opts {
		opt(bk)
	}
	return bk
}

// Len returns the number of positions in the book.
func (bk *Book) Len() int {
	return len(bk.entries)
}

// Load adds every record of r and returns how many were read.
func (bk *Book) Load(r io.Reader) (int, error) {
	br := bufio.NewReader(r)
	var rec [recordSize]byte
	n := 0
	for {
		_, err := io.ReadFull(br, rec[:])
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return n, fmt.Errorf("%w: after %d records", ErrTruncated, n)
		}
		if err != nil {
			return n, err
		}
		key := binary.BigEndian.Uint64(rec[0:8])
		bk.entries[key] = append(bk.entries[key], Entry{
			Move:   binary.BigEndian.Uint16(rec[8:10]),
			Weight: binary.BigEndian.Uint16(rec[10:12]),
		})
		n++
	}
}

// WriteTo writes every record in ascending key order. The learn field is
// always zero.
func (bk *Book) WriteTo(w io.Writer) (int64, error) {
	keys := make([]uint64, 0, len(bk.entries))
	for key := range bk.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	bw := bufio.NewWriter(w)
	var rec [recordSize]byte
	var written int64
	for _, key := range keys {
		for _, e := range bk.entries[key] {
			binary.BigEndian.PutUint64(rec[0:8], key)
			binary.BigEndian.PutUint16(rec[8:10], e.Move)
			binary.BigEndian.PutUint16(rec[10:12], e.Weight)
			n, err := bw.Write(rec[:])
			written += int64(n)
			if err != nil {
				return written, err
			}
		}
	}
	return written, bw.Flush()
}

// Add records mv for b. Adding a move twice adds up the weights.
func (bk *Book) Add(b *board.Board, mv board.Move, weight uint16) {
	key := bk.hasher(b)
	raw := EncodeMove(mv)
	for i, e := range bk.entries[key] {
		if e.Move == raw {
			bk.entries[key][i].Weight += weight
			return
		}
	}
	bk.entries[key] = append(bk.entries[key], Entry{Move: raw, Weight: weight})
}

// Moves lists the legal book moves of b with their weights.
func (bk *Book) Moves(b *board.Board) ([]board.Move, []uint16) {
	var mvs []board.Move
	var weights []uint16
	for _, e := range bk.entries[bk.hasher(b)] {
		mv, err := DecodeMove(b, e.Move)
		if err != nil || !b.IsLegalMove(mv) {
			continue
		}
		mvs = append(mvs, mv)
		weights = append(weights, e.Weight)
	}
	return mvs, weights
}

// Probe picks one of the legal book moves of b at random, in proportion to
// the weights.
func (bk *Book) Probe(b *board.Board) (board.Move, bool) {
	mvs, weights := bk.Moves(b)
	if len(mvs) == 0 {
		return board.Move{}, false
	}
	var total uint64
	for _, w := range weights {
		total += uint64(w)
	}
	if total == 0 {
		return mvs[frand.Intn(len(mvs))], true
	}
	r := frand.Uint64n(total)
	for i, w := range weights {
		if r < uint64(w) {
			return mvs[i], true
		}
		r -= uint64(w)
	}
	return mvs[len(mvs)-1], true
}

var promoteSymbols = [...]string{"", "n", "b", "r", "q"}

// EncodeMove packs mv as to file, to rank, from file, from rank and
// promotion, three bits each from the lowest bit up. Castling is written as
// the king taking its own rook.
func EncodeMove(mv board.Move) uint16 {
	to := mv.To
	if mv.Castle != board.CastleDirectionUnknown {
		to = position.NewPos(position.FileA, to.Y())
		if mv.To.X() == position.FileG {
			to = position.NewPos(position.FileH, to.Y())
		}
	}
	var promote uint16
	if mv.IsPromote() {
		switch mv.Promote.Type() {
		case board.TypeKnight:
			promote = 1
		case board.TypeBishop:
			promote = 2
		case board.TypeRook:
			promote = 3
		case board.TypeQueen:
			promote = 4
		}
	}
	return uint16(to.X()) | uint16(to.Y())<<3 |
		uint16(mv.From.X())<<6 | uint16(mv.From.Y())<<9 |
		promote<<12
}

// DecodeMove unpacks raw against b. The move is not checked for legality.
func DecodeMove(b *board.Board, raw uint16) (board.Move, error) {
	to := position.NewPos(position.Pos(raw&0x7), position.Pos(raw>>3&0x7))
	from := position.NewPos(position.Pos(raw>>6&0x7), position.Pos(raw>>9&0x7))
	promote := int(raw >> 12 & 0x7)
	if promote >= len(promoteSymbols) {
		return board.Move{}, fmt.Errorf("%w: bad promotion in book move %#04x", board.ErrMalformedInput, raw)
	}

	if p := b.At(from); p.Type() == board.TypeKing && from.X() == position.FileE && from.Y() == to.Y() {
		switch to.X() {
		case position.FileH:
			to = position.NewPos(position.FileG, to.Y())
		case position.FileA:
			to = position.NewPos(position.FileC, to.Y())
		}
	}
	return b.ParseUCIMove(from.Notation() + to.Notation() + promoteSymbols[promote])
}
