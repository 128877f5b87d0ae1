package board

import "github.com/daystram/x88chess/position"

// IsAttacked reports whether any piece of side by attacks target.
func (b *Board) IsAttacked(target position.Pos, by Side) bool {
	return b.attackedBy(target, func(p Piece) bool { return p.Side() == by }, nil)
}

// Attackers lists the squares of pieces satisfying pred that attack target.
func (b *Board) Attackers(target position.Pos, pred func(Piece) bool) []position.Pos {
	var found []position.Pos
	b.attackedBy(target, pred, &found)
	return found
}

func (b *Board) IsKingChecked(s Side) bool {
	k := b.kings[s]
	if !k.IsValid() {
		return false
	}
	return b.IsAttacked(k, s.Opposite())
}

func (b *Board) InCheck() bool {
	return b.IsKingChecked(b.turn)
}

// attackedBy runs the sliding, fixed and en passant scans. With a nil
// collector it stops at the first hit.
func (b *Board) attackedBy(target position.Pos, pred func(Piece) bool, found *[]position.Pos) bool {
	hit := func(from position.Pos) bool {
		if found == nil {
			return true
		}
		if !contains(*found, from) {
			*found = append(*found, from)
		}
		return false
	}

	// sliding scan, the first occupant on each ray is the only candidate
	for _, dir := range deltasQueen {
		for from := target.Offset(-dir); from.IsValid(); from = from.Offset(-dir) {
			p := b.squares[from]
			if p == PieceEmpty {
				continue
			}
			if mightAttack[p][int(target)-int(from)+deltaOffset] && pred(p) && hit(from) {
				return true
			}
			break
		}
	}

	// fixed scan
	for _, delta := range deltasKnight {
		from := target.Offset(-delta)
		if !from.IsValid() {
			continue
		}
		p := b.squares[from]
		if p.IsReal() && mightAttack[p][delta+deltaOffset] && pred(p) && hit(from) {
			return true
		}
	}

	// en passant scan
	if target == b.enPassant && target.IsValid() {
		var behind int
		var pawn Piece
		switch target.Y() {
		case position.Rank3:
			behind, pawn = Up, PieceBlackPawn
		case position.Rank6:
			behind, pawn = Down, PieceWhitePawn
		}
		if pawn != PieceEmpty {
			for _, side := range []int{Left, Right} {
				from := target.Offset(behind + side)
				if from.IsValid() && b.squares[from] == pawn && pred(pawn) && hit(from) {
					return true
				}
			}
		}
	}

	return found != nil && len(*found) > 0
}
