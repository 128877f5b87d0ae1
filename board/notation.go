package board

import (
	"fmt"
	"strings"

	"github.com/daystram/x88chess/position"
)

// ParseServerMove reads e2e4 or e7e8=Q against the current board.
func (b *Board) ParseServerMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 6 {
		return Move{}, fmt.Errorf("%w: %q has bad length", ErrInvalidMoveNotation, s)
	}
	mv, err := b.parseSquares(s)
	if err != nil {
		return Move{}, err
	}
	if len(s) == 6 {
		if s[4] != '=' {
			return Move{}, fmt.Errorf("%w: %q has unknown suffix %q", ErrInvalidMoveNotation, s, s[4])
		}
		t, ok := promoteTypeFromSymbol(s[5])
		if !ok {
			return Move{}, fmt.Errorf("%w: %q has unknown promotion %q", ErrInvalidMoveNotation, s, s[5])
		}
		mv.Promote = NewPiece(b.moverSide(mv), t)
	}
	return mv, nil
}

// ParseUCIMove reads e2e4 or e7e8q against the current board.
func (b *Board) ParseUCIMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q has bad length", ErrInvalidMoveNotation, s)
	}
	mv, err := b.parseSquares(s)
	if err != nil {
		return Move{}, err
	}
	if len(s) == 5 {
		t, ok := promoteTypeFromSymbol(strings.ToUpper(s[4:])[0])
		if !ok || s[4] < 'a' {
			return Move{}, fmt.Errorf("%w: %q has unknown promotion %q", ErrInvalidMoveNotation, s, s[4])
		}
		mv.Promote = NewPiece(b.moverSide(mv), t)
	}
	return mv, nil
}

// ParseSmithMove reads source and destination followed by an optional
// captured piece letter or E for en passant, an optional c/C castle flag and
// an optional uppercase promotion letter, in that order.
func (b *Board) ParseSmithMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 7 {
		return Move{}, fmt.Errorf("%w: %q has bad length", ErrInvalidMoveNotation, s)
	}
	mv, err := b.parseSquares(s)
	if err != nil {
		return Move{}, err
	}
	side := b.moverSide(mv)

	const (
		stageCapture = iota
		stageCastle
		stagePromote
		stageDone
	)
	stage := stageCapture
	for i := 4; i < len(s); i++ {
		c := s[i]
		switch {
		case stage <= stageCapture && c == 'E':
			mv.IsEnPassant = true
			mv.CapturedAt = position.NewPos(mv.To.X(), mv.From.Y())
			mv.Captured = NewPiece(side.Opposite(), TypePawn)
			stage = stageCastle
		case stage <= stageCapture && strings.IndexByte("pnbrqk", c) >= 0:
			p, _ := PieceFromSymbol(c)
			mv.Captured = NewPiece(side.Opposite(), p.Type())
			mv.CapturedAt = mv.To
			stage = stageCastle
		case stage <= stageCastle && (c == 'c' || c == 'C'):
			mv.Castle = castleDirections[side][0]
			if c == 'C' {
				mv.Castle = castleDirections[side][1]
			}
			stage = stagePromote
		case stage <= stagePromote && strings.IndexByte("QNRB", c) >= 0:
			t, _ := promoteTypeFromSymbol(c)
			mv.Promote = NewPiece(side, t)
			stage = stageDone
		default:
			return Move{}, fmt.Errorf("%w: %q has unknown suffix %q", ErrInvalidMoveNotation, s, c)
		}
	}
	return mv, nil
}

func (b *Board) parseSquares(s string) (Move, error) {
	from, err := position.NewPosFromNotation(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrInvalidMoveNotation, err)
	}
	to, err := position.NewPosFromNotation(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrInvalidMoveNotation, err)
	}
	mv := b.newMove(from, to, b.squares[from])
	if mv.Piece.Type() == TypePawn && to == b.enPassant && from.X() != to.X() && mv.Target == PieceEmpty {
		mv.IsEnPassant = true
		mv.CapturedAt = position.NewPos(to.X(), from.Y())
		mv.Captured = b.squares[mv.CapturedAt]
	}
	if mv.Piece.Type() == TypeKing {
		mv.Castle = castleDirectionByKingMove(from, to)
	}
	return mv, nil
}

func (b *Board) moverSide(mv Move) Side {
	if mv.Piece.IsReal() {
		return mv.Piece.Side()
	}
	return b.turn
}

func promoteTypeFromSymbol(c byte) (PieceType, bool) {
	p, ok := PieceFromSymbol(c)
	if !ok || p.Side() != SideWhite || !contains(PromoteCandidates, p.Type()) {
		return TypeEmpty, false
	}
	return p.Type(), true
}

// SAN renders mv in standard algebraic notation. mv must be legal on b.
func (b *Board) SAN(mv Move) string {
	var nt string
	switch {
	case mv.Piece.Type() == TypeKing && castleDirectionByKingMove(mv.From, mv.To) != CastleDirectionUnknown:
		nt = "O-O"
		if !castleDirectionByKingMove(mv.From, mv.To).IsRight() {
			nt = "O-O-O"
		}
	case mv.Piece.Type() == TypePawn:
		if mv.IsCapture() || mv.IsEnPassant {
			nt = mv.From.X().NotationComponentX() + "x"
		}
		nt += mv.To.Notation()
		if mv.IsPromote() {
			nt += "=" + mv.Promote.Type().Symbol()
		}
	default:
		nt = mv.Piece.Type().Symbol() + b.disambiguate(mv)
		if mv.IsCapture() {
			nt += "x"
		}
		nt += mv.To.Notation()
	}

	b.Apply(mv)
	if b.InCheck() {
		if len(b.GenerateMoves()) == 0 {
			nt += "#"
		} else {
			nt += "+"
		}
	}
	b.MustUndo()
	return nt
}

func (b *Board) disambiguate(mv Move) string {
	var sameFile, sameRank, ambiguous bool
	for _, from := range b.Attackers(mv.To, func(p Piece) bool { return p == mv.Piece }) {
		if from == mv.From || !b.IsLegalPseudoMove(b.newMove(from, mv.To, mv.Piece)) {
			continue
		}
		ambiguous = true
		if from.X() == mv.From.X() {
			sameFile = true
		}
		if from.Y() == mv.From.Y() {
			sameRank = true
		}
	}
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return mv.From.X().NotationComponentX()
	case !sameRank:
		return mv.From.Y().NotationComponentY()
	default:
		return mv.From.Notation()
	}
}
