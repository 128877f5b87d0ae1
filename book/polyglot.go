package book

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/daystram/x88chess/board"
	"github.com/daystram/x88chess/position"
)

const (
	polyglotKeyCount    = 781
	polyglotCastleIndex = 768
	polyglotEPIndex     = 772
	polyglotTurnIndex   = 780

	defaultKeySeed = 0x37b4a4b3f0d1c0d0
)

// PolyglotKeys is the random table of the polyglot position key: 768 piece
// keys, 4 castle keys, 8 en passant file keys and the white to move key, in
// that order.
//
// Books made by other polyglot tools only match when the table they were
// built with is loaded through ReadPolyglotKeys. DefaultPolyglotKeys has the
// same layout but its own random numbers.
type PolyglotKeys [polyglotKeyCount]uint64

// DefaultPolyglotKeys fills the table from a fixed seed.
func DefaultPolyglotKeys() *PolyglotKeys {
	var k PolyglotKeys
	r := board.NewPseudoRand()
	r.Seed(defaultKeySeed)
	for i := range k {
		k[i] = r.Uint64()
	}
	return &k
}

// ReadPolyglotKeys reads a table of 781 big endian keys.
func ReadPolyglotKeys(r io.Reader) (*PolyglotKeys, error) {
	var k PolyglotKeys
	err := binary.Read(bufio.NewReader(r), binary.BigEndian, &k)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: key table needs %d keys", ErrTruncated, polyglotKeyCount)
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// Hash computes the polyglot key of b. It is independent of the board
// signature, so books stay valid when the engine's hashing changes.
func (k *PolyglotKeys) Hash(b *board.Board) uint64 {
	var h uint64
	for y := position.Rank1; y <= position.Rank8; y++ {
		for x := position.FileA; x <= position.FileH; x++ {
			p := b.At(position.NewPos(x, y))
			if !p.IsReal() {
				continue
			}
			h ^= k[64*polyglotKind(p)+8*int(y)+int(x)]
		}
	}

	for i, d := range []board.CastleDirection{
		board.CastleDirectionWhiteRight,
		board.CastleDirectionWhiteLeft,
		board.CastleDirectionBlackRight,
		board.CastleDirectionBlackLeft,
	} {
		if b.CanCastle(d) {
			h ^= k[polyglotCastleIndex+i]
		}
	}

	if ep := b.EnPassant(); ep != position.None && canTakeEnPassant(b, ep) {
		h ^= k[polyglotEPIndex+int(ep.X())]
	}

	if b.Turn() == board.SideWhite {
		h ^= k[polyglotTurnIndex]
	}
	return h
}

// polyglotKind orders pieces black pawn, white pawn, black knight, ... white
// king.
func polyglotKind(p board.Piece) int {
	var kind int
	switch p.Type() {
	case board.TypePawn:
		kind = 0
	case board.TypeKnight:
		kind = 1
	case board.TypeBishop:
		kind = 2
	case board.TypeRook:
		kind = 3
	case board.TypeQueen:
		kind = 4
	case board.TypeKing:
		kind = 5
	}
	if p.Side() == board.SideWhite {
		return 2*kind + 1
	}
	return 2 * kind
}

// canTakeEnPassant reports whether a pawn of the side to move stands next to
// the pawn that just made the double push. Only then does the en passant file
// enter the key.
func canTakeEnPassant(b *board.Board, ep position.Pos) bool {
	pawn := board.NewPiece(b.Turn(), board.TypePawn)
	// the pushed pawn sits right behind the en passant square
	behind := ep.Offset(-b.Turn().Forward())
	for _, side := range []int{-1, 1} {
		if pos := behind.Offset(side); pos.IsValid() && b.At(pos) == pawn {
			return true
		}
	}
	return false
}
