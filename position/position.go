package position

import (
	"errors"
)

const (
	// MaxComponentScalar is the number of files and ranks on the board.
	MaxComponentScalar = 8

	// None is an off-board square used where no square applies.
	None Pos = 0x7F
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Pos is a 0x88 square: rank in the high nibble, file in the low nibble.
// Any value with a bit of 0x88 set lies off the board.
type Pos uint8

const (
	FileA Pos = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 Pos = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	A1 Pos = 0x00 + iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A2 Pos = 0x10 + iota
	B2
	C2
	D2
	E2
	F2
	G2
	H2
)

const (
	A3 Pos = 0x20 + iota
	B3
	C3
	D3
	E3
	F3
	G3
	H3
)

const (
	A4 Pos = 0x30 + iota
	B4
	C4
	D4
	E4
	F4
	G4
	H4
)

const (
	A5 Pos = 0x40 + iota
	B5
	C5
	D5
	E5
	F5
	G5
	H5
)

const (
	A6 Pos = 0x50 + iota
	B6
	C6
	D6
	E6
	F6
	G6
	H6
)

const (
	A7 Pos = 0x60 + iota
	B7
	C7
	D7
	E7
	F7
	G7
	H7
)

const (
	A8 Pos = 0x70 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

func NewPos(file, rank Pos) Pos {
	return rank<<4 | file
}

func NewPosFromNotation(n string) (Pos, error) {
	x, y, err := notationToXY(n)
	if err != nil {
		return None, err
	}
	return NewPos(x, y), nil
}

// Offset returns the square delta steps away. The result may be off the board.
func (p Pos) Offset(delta int) Pos {
	return Pos(int(p) + delta)
}

func (p Pos) IsValid() bool {
	return p&0x88 == 0
}

func (p Pos) String() string {
	return p.Notation()
}

func (p Pos) Notation() string {
	if !p.IsValid() {
		return ""
	}
	return string(rune('a'+p.X())) + string(rune('1'+p.Y()))
}

// X returns the file of the square.
func (p Pos) X() Pos {
	return p & 0x07
}

// Y returns the rank of the square.
func (p Pos) Y() Pos {
	return p >> 4
}

// Index64 maps a valid square onto 0..63, a1 first.
func (p Pos) Index64() int {
	return int(p.Y())*MaxComponentScalar + int(p.X())
}

func notationToXY(n string) (Pos, Pos, error) {
	if len(n) != 2 {
		return 0, 0, ErrInvalidNotation
	}
	pX, err := notationToX(n[0])
	if err != nil {
		return 0, 0, err
	}
	pY, err := notationToY(n[1])
	if err != nil {
		return 0, 0, err
	}
	return pX, pY, nil
}

func notationToX(x byte) (Pos, error) {
	if x < 'a' || x >= 'a'+MaxComponentScalar {
		return 0, ErrInvalidNotation
	}
	return Pos(x - 'a'), nil
}

func notationToY(y byte) (Pos, error) {
	if y < '1' || y >= '1'+MaxComponentScalar {
		return 0, ErrInvalidNotation
	}
	return Pos(y - '1'), nil
}

func (p Pos) NotationComponentX() string {
	if MaxComponentScalar <= p {
		return ""
	}
	return string(rune('a' + p))
}

func (p Pos) NotationComponentY() string {
	if MaxComponentScalar <= p {
		return ""
	}
	return string(rune('1' + p))
}
