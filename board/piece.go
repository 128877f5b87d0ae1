package board

// PieceType is the colourless part of a Piece. Bit 2 marks sliders, and
// among sliders bit 1 marks rank/file movement and bit 0 diagonal movement.
type PieceType uint8

const (
	TypeEmpty  PieceType = 0
	TypePawn   PieceType = 1
	TypeKnight PieceType = 2
	TypeKing   PieceType = 3
	TypeBishop PieceType = 5
	TypeRook   PieceType = 6
	TypeQueen  PieceType = 7
)

// Piece is (side << 3) | type.
type Piece uint8

const (
	PieceEmpty Piece = 0

	PieceBlackPawn   = Piece(SideBlack)<<3 | Piece(TypePawn)
	PieceBlackKnight = Piece(SideBlack)<<3 | Piece(TypeKnight)
	PieceBlackKing   = Piece(SideBlack)<<3 | Piece(TypeKing)
	PieceBlackBishop = Piece(SideBlack)<<3 | Piece(TypeBishop)
	PieceBlackRook   = Piece(SideBlack)<<3 | Piece(TypeRook)
	PieceBlackQueen  = Piece(SideBlack)<<3 | Piece(TypeQueen)
	PieceWhitePawn   = Piece(SideWhite)<<3 | Piece(TypePawn)
	PieceWhiteKnight = Piece(SideWhite)<<3 | Piece(TypeKnight)
	PieceWhiteKing   = Piece(SideWhite)<<3 | Piece(TypeKing)
	PieceWhiteBishop = Piece(SideWhite)<<3 | Piece(TypeBishop)
	PieceWhiteRook   = Piece(SideWhite)<<3 | Piece(TypeRook)
	PieceWhiteQueen  = Piece(SideWhite)<<3 | Piece(TypeQueen)

	// PieceNone marks a piece that is not on the board, such as the capture
	// of a quiet move.
	PieceNone Piece = 0xFF

	pieceCodes = 16
)

const pieceSymbols = "-pnk_brq-PNK_BRQ"

// PromoteCandidates lists the promotion types in generation order.
var PromoteCandidates = []PieceType{TypeQueen, TypeKnight, TypeRook, TypeBishop}

func NewPiece(s Side, t PieceType) Piece {
	return Piece(s)<<3 | Piece(t)
}

// PieceFromSymbol parses a FEN letter.
func PieceFromSymbol(c byte) (Piece, bool) {
	for i := 0; i < pieceCodes; i++ {
		if pieceSymbols[i] == c && c != '-' && c != '_' {
			return Piece(i), true
		}
	}
	return PieceNone, false
}

func (p Piece) Side() Side {
	return Side(p >> 3 & 1)
}

func (p Piece) Type() PieceType {
	return PieceType(p & 7)
}

func (p Piece) IsEmpty() bool {
	return p == PieceEmpty
}

// IsReal reports whether p is an actual piece, neither empty nor the sentinel.
func (p Piece) IsReal() bool {
	return p != PieceNone && p.Type() != TypeEmpty
}

func (p Piece) IsSliding() bool {
	return p.IsReal() && p&4 != 0
}

func (p Piece) IsLineSlider() bool {
	return p.IsReal() && p&6 == 6
}

func (p Piece) IsDiagonalSlider() bool {
	return p.IsReal() && p&5 == 5
}

func (p Piece) String() string {
	return p.SymbolFEN()
}

func (p Piece) SymbolFEN() string {
	if p == PieceNone || p >= pieceCodes || p.Type() == TypeEmpty {
		return ""
	}
	return string(pieceSymbols[p])
}

func (t PieceType) Name() string {
	switch t {
	case TypePawn:
		return "Pawn"
	case TypeBishop:
		return "Bishop"
	case TypeKnight:
		return "Knight"
	case TypeRook:
		return "Rook"
	case TypeQueen:
		return "Queen"
	case TypeKing:
		return "King"
	default:
		return ""
	}
}

// Symbol returns the uppercase letter of the type.
func (t PieceType) Symbol() string {
	return NewPiece(SideWhite, t).SymbolFEN()
}

func (p Piece) SymbolUnicode(invert bool) string {
	s := p.Side()
	if invert {
		s = s.Opposite()
	}
	switch s {
	case SideWhite:
		switch p.Type() {
		case TypePawn:
			return "♙"
		case TypeBishop:
			return "♗"
		case TypeKnight:
			return "♘"
		case TypeRook:
			return "♖"
		case TypeQueen:
			return "♕"
		case TypeKing:
			return "♔"
		default:
			return ""
		}
	default:
		switch p.Type() {
		case TypePawn:
			return "♟"
		case TypeBishop:
			return "♝"
		case TypeKnight:
			return "♞"
		case TypeRook:
			return "♜"
		case TypeQueen:
			return "♛"
		case TypeKing:
			return "♚"
		default:
			return ""
		}
	}
}
