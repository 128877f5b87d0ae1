package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/daystram/x88chess/position"
)

// UnmarshalFEN parses a position string of four fields (placement, turn,
// castle flags, en passant) or the six field form with move clocks. b is only
// written once the whole string has been validated.
func UnmarshalFEN(fen string, b *Board) error {
	if b == nil {
		return fmt.Errorf("%w: nil board", ErrIllegalState)
	}
	segments := strings.Fields(fen)
	if len(segments) != 4 && len(segments) != 6 {
		return fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	var nb Board
	nb.reset()

	rows := strings.Split(segments[0], "/")
	if len(rows) != Height {
		return fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	kings := [2]int{}
	for i, row := range rows {
		y := position.Pos(Height - 1 - i)
		x := position.Pos(0)
		for _, cell := range row {
			if x >= Width {
				return fmt.Errorf("%w: too many cells on rank %d", ErrInvalidFEN, y+1)
			}
			if '0' <= cell && cell <= '9' {
				skip := position.Pos(cell - '0')
				if skip == 0 || x+skip > Width {
					return fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				x += skip
				continue
			}
			if cell > unicode.MaxASCII {
				return fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			p, ok := PieceFromSymbol(byte(cell))
			if !ok {
				return fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			if p.Type() == TypeKing {
				kings[p.Side()]++
			}
			nb.put(position.NewPos(x, y), p)
			x++
		}
		if x != Width {
			return fmt.Errorf("%w: missing cells on rank %d", ErrInvalidFEN, y+1)
		}
	}
	if kings[SideWhite] != 1 || kings[SideBlack] != 1 {
		return fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}

	switch segments[1] {
	case "w":
		nb.turn = SideWhite
		nb.hash ^= zobristConstantSideWhite
	case "b":
		nb.turn = SideBlack
	default:
		return fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if segments[2] != "-" {
		for _, e := range segments[2] {
			switch e {
			case 'K':
				nb.setCastleRight(CastleDirectionWhiteRight, true)
			case 'Q':
				nb.setCastleRight(CastleDirectionWhiteLeft, true)
			case 'H':
				nb.setHasCastled(SideWhite, true)
			case 'k':
				nb.setCastleRight(CastleDirectionBlackRight, true)
			case 'q':
				nb.setCastleRight(CastleDirectionBlackLeft, true)
			case 'h':
				nb.setHasCastled(SideBlack, true)
			default:
				return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
			}
		}
	}

	if segments[3] != "-" {
		pos, err := position.NewPosFromNotation(segments[3])
		if err != nil {
			return fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
		if err := nb.validateEnPassant(pos); err != nil {
			return err
		}
		nb.setEnPassant(pos)
	}

	if len(segments) == 6 {
		if _, err := strconv.ParseUint(segments[4], 10, 16); err != nil {
			return fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
		}
		fullMoveClock, err := strconv.ParseUint(segments[5], 10, 16)
		if err != nil || fullMoveClock == 0 {
			return fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
		}
		nb.basePly = int(fullMoveClock-1) * 2
		if nb.turn == SideBlack {
			nb.basePly++
		}
	}

	*b = nb
	return nil
}

// validateEnPassant requires the target square to be empty, the square the
// pawn came from to be empty and the pushed pawn to stand just past the
// target.
func (b *Board) validateEnPassant(pos position.Pos) error {
	var from, pawnAt position.Pos
	var pawn Piece
	switch {
	case b.turn == SideWhite && pos.Y() == position.Rank6:
		from, pawnAt, pawn = pos.Offset(Up), pos.Offset(Down), PieceBlackPawn
	case b.turn == SideBlack && pos.Y() == position.Rank3:
		from, pawnAt, pawn = pos.Offset(Down), pos.Offset(Up), PieceWhitePawn
	default:
		return fmt.Errorf("%w: enpassant square %s on wrong rank", ErrInvalidFEN, pos)
	}
	if b.squares[pos] != PieceEmpty {
		return fmt.Errorf("%w: enpassant square %s occupied", ErrInvalidFEN, pos)
	}
	if b.squares[from] != PieceEmpty {
		return fmt.Errorf("%w: enpassant source %s occupied", ErrInvalidFEN, from)
	}
	if b.squares[pawnAt] != pawn {
		return fmt.Errorf("%w: no pawn to capture on %s", ErrInvalidFEN, pawnAt)
	}
	return nil
}

// MarshalFEN writes the four field form.
func MarshalFEN(b *Board) (string, error) {
	if b == nil {
		return "", fmt.Errorf("%w: nil board", ErrIllegalState)
	}
	builder := strings.Builder{}
	for y := position.Pos(Height); y > 0; y-- {
		var skip int
		for x := position.Pos(0); x < Width; x++ {
			p := b.squares[position.NewPos(x, y-1)]
			if !p.IsReal() {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = builder.WriteString(strconv.Itoa(skip))
				skip = 0
			}
			_, _ = builder.WriteString(p.SymbolFEN())
		}
		if skip != 0 {
			_, _ = builder.WriteString(strconv.Itoa(skip))
		}
		if y > 1 {
			_, _ = builder.WriteRune('/')
		}
	}

	if b.turn == SideWhite {
		_, _ = builder.WriteString(" w ")
	} else {
		_, _ = builder.WriteString(" b ")
	}

	var castle string
	if b.castleRights.IsAllowed(CastleDirectionWhiteRight) {
		castle += "K"
	}
	if b.castleRights.IsAllowed(CastleDirectionWhiteLeft) {
		castle += "Q"
	}
	if b.hasCastled[SideWhite] {
		castle += "H"
	}
	if b.castleRights.IsAllowed(CastleDirectionBlackRight) {
		castle += "k"
	}
	if b.castleRights.IsAllowed(CastleDirectionBlackLeft) {
		castle += "q"
	}
	if b.hasCastled[SideBlack] {
		castle += "h"
	}
	if castle == "" {
		castle = "-"
	}
	_, _ = builder.WriteString(castle)
	_, _ = builder.WriteRune(' ')

	if !b.enPassant.IsValid() {
		_, _ = builder.WriteRune('-')
	} else {
		_, _ = builder.WriteString(b.enPassant.Notation())
	}

	return builder.String(), nil
}
