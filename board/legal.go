package board

import "github.com/daystram/x88chess/position"

// IsLegalMove validates a move from an outside source, such as a notation
// string or an opening book, against the current position.
func (b *Board) IsLegalMove(mv Move) bool {
	if !mv.From.IsValid() || !mv.To.IsValid() || mv.From == mv.To {
		return false
	}
	p := mv.Piece
	s := b.turn
	if !p.IsReal() || p.Side() != s || b.squares[mv.From] != p {
		return false
	}
	if b.squares[mv.To] != mv.Target {
		return false
	}
	if mv.Target.IsReal() && (mv.Target.Side() == s || mv.Target.Type() == TypeKing) {
		return false
	}
	if !b.isConsistentCapture(mv) || !b.isConsistentPromotion(mv) {
		return false
	}

	delta := int(mv.To) - int(mv.From)
	switch p.Type() {
	case TypePawn:
		if !b.isPawnMovePossible(mv, delta) {
			return false
		}
	case TypeKing:
		if d := castleDirectionByKingMove(mv.From, mv.To); d != CastleDirectionUnknown {
			if d.Side() != s || !b.canCastleNow(d, p) {
				return false
			}
			if mv.Castle != CastleDirectionUnknown && mv.Castle != d {
				return false
			}
			break
		}
		if mv.Castle != CastleDirectionUnknown || !mightAttack[p][delta+deltaOffset] {
			return false
		}
	case TypeKnight:
		if mv.Castle != CastleDirectionUnknown || !mightAttack[p][delta+deltaOffset] {
			return false
		}
	default:
		if mv.Castle != CastleDirectionUnknown || !mightAttack[p][delta+deltaOffset] || !b.isPathClear(mv.From, mv.To) {
			return false
		}
	}

	return b.IsLegalPseudoMove(mv)
}

// isConsistentCapture checks the capture reference against the board.
func (b *Board) isConsistentCapture(mv Move) bool {
	if mv.IsEnPassant {
		if mv.Piece.Type() != TypePawn || mv.To != b.enPassant || mv.Target != PieceEmpty {
			return false
		}
		at := position.NewPos(mv.To.X(), mv.From.Y())
		want := NewPiece(mv.Piece.Side().Opposite(), TypePawn)
		if b.squares[at] != want {
			return false
		}
		if mv.Captured != PieceEmpty && (mv.Captured != want || (mv.CapturedAt != position.None && mv.CapturedAt != at)) {
			return false
		}
		return true
	}
	if mv.Captured == PieceEmpty || mv.Captured == PieceNone {
		return true
	}
	return mv.Captured == mv.Target && (mv.CapturedAt == position.None || mv.CapturedAt == mv.To)
}

func (b *Board) isConsistentPromotion(mv Move) bool {
	s := mv.Piece.Side()
	lastRank := mv.Piece.Type() == TypePawn && mv.To.Y() == rankPawnPromote[s]
	if mv.Promote == PieceEmpty {
		return !lastRank
	}
	if !lastRank || !mv.Promote.IsReal() || mv.Promote.Side() != s {
		return false
	}
	return contains(PromoteCandidates, mv.Promote.Type())
}

func (b *Board) isPawnMovePossible(mv Move, delta int) bool {
	s := mv.Piece.Side()
	fwd := s.Forward()
	switch {
	case delta == fwd:
		return mv.Target == PieceEmpty && !mv.IsEnPassant
	case delta == 2*fwd:
		return mv.From.Y() == rankPawnStart[s] &&
			b.squares[mv.From.Offset(fwd)] == PieceEmpty &&
			mv.Target == PieceEmpty && !mv.IsEnPassant
	case contains(deltasPawnTake[s], delta):
		if mv.Target.IsReal() {
			return !mv.IsEnPassant
		}
		if mv.To != b.enPassant {
			return false
		}
		return b.squares[position.NewPos(mv.To.X(), mv.From.Y())] == NewPiece(s.Opposite(), TypePawn)
	default:
		return false
	}
}

func (b *Board) isPathClear(from, to position.Pos) bool {
	step := lineStep[int(to)-int(from)+deltaOffset]
	if step == 0 {
		return false
	}
	for pos := from.Offset(step); pos != to; pos = pos.Offset(step) {
		if b.squares[pos] != PieceEmpty {
			return false
		}
	}
	return true
}
