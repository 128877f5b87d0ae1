package board

import "github.com/daystram/x88chess/position"

// GeneratePseudoMoves lists the moves of the side to play without checking
// whether they leave the own king attacked.
func (b *Board) GeneratePseudoMoves() []Move {
	mvs := make([]Move, 0, 48)
	s := b.turn
	for from := position.Pos(0); from < 128; from++ {
		if !from.IsValid() {
			continue
		}
		p := b.squares[from]
		if !p.IsReal() || p.Side() != s {
			continue
		}
		switch p.Type() {
		case TypePawn:
			mvs = b.genPawnMoves(mvs, from, p)
		case TypeKnight:
			mvs = b.genStepMoves(mvs, from, p, deltasKnight)
		case TypeKing:
			mvs = b.genStepMoves(mvs, from, p, deltasKing)
			mvs = b.genCastleMoves(mvs, from, p)
		case TypeBishop:
			mvs = b.genSlideMoves(mvs, from, p, deltasBishop)
		case TypeRook:
			mvs = b.genSlideMoves(mvs, from, p, deltasRook)
		case TypeQueen:
			mvs = b.genSlideMoves(mvs, from, p, deltasQueen)
		}
	}
	return mvs
}

// GenerateMoves lists the legal moves of the side to play.
func (b *Board) GenerateMoves() []Move {
	pseudo := b.GeneratePseudoMoves()
	mvs := make([]Move, 0, len(pseudo))
	for _, mv := range pseudo {
		if b.isDuplicate(mvs, mv) || !b.IsLegalPseudoMove(mv) {
			continue
		}
		mvs = append(mvs, mv)
	}
	return mvs
}

// isDuplicate scans back over the moves sharing mv's source square, which
// are always generated next to each other.
func (b *Board) isDuplicate(mvs []Move, mv Move) bool {
	for i := len(mvs) - 1; i >= 0 && mvs[i].From == mv.From; i-- {
		if mvs[i].Equals(mv) {
			return true
		}
	}
	return false
}

// GenerateNoisyMoves lists the legal captures, en passant captures and
// promotions.
func (b *Board) GenerateNoisyMoves() []Move {
	mvs := b.GenerateMoves()
	noisy := mvs[:0]
	for _, mv := range mvs {
		if mv.IsNoisy() {
			noisy = append(noisy, mv)
		}
	}
	return noisy
}

// IsLegalPseudoMove reports whether a generated move keeps the mover's king
// safe. Castling additionally may not start in check or cross an attacked
// square.
func (b *Board) IsLegalPseudoMove(mv Move) bool {
	s := mv.Piece.Side()
	if mv.Piece.Type() == TypeKing {
		if d := castleDirectionByKingMove(mv.From, mv.To); d != CastleDirectionUnknown {
			if b.IsKingChecked(s) || b.IsAttacked(posCastling[d].transit, s.Opposite()) {
				return false
			}
		}
	}
	b.Apply(mv)
	ok := !b.IsKingChecked(s)
	b.MustUndo()
	return ok
}

func (b *Board) newMove(from, to position.Pos, p Piece) Move {
	mv := Move{
		From:       from,
		To:         to,
		Piece:      p,
		Target:     b.squares[to],
		CapturedAt: position.None,
	}
	if mv.Target.IsReal() {
		mv.Captured = mv.Target
		mv.CapturedAt = to
	}
	return mv
}

func (b *Board) genStepMoves(mvs []Move, from position.Pos, p Piece, deltas []int) []Move {
	for _, delta := range deltas {
		to := from.Offset(delta)
		if !to.IsValid() {
			continue
		}
		if t := b.squares[to]; t == PieceEmpty || t.Side() != p.Side() {
			mvs = append(mvs, b.newMove(from, to, p))
		}
	}
	return mvs
}

func (b *Board) genSlideMoves(mvs []Move, from position.Pos, p Piece, dirs []int) []Move {
	for _, dir := range dirs {
		for to := from.Offset(dir); to.IsValid(); to = to.Offset(dir) {
			t := b.squares[to]
			if t == PieceEmpty {
				mvs = append(mvs, b.newMove(from, to, p))
				continue
			}
			if t.Side() != p.Side() {
				mvs = append(mvs, b.newMove(from, to, p))
			}
			break
		}
	}
	return mvs
}

func (b *Board) genPawnMoves(mvs []Move, from position.Pos, p Piece) []Move {
	s := p.Side()
	fwd := s.Forward()

	one := from.Offset(fwd)
	if one.IsValid() && b.squares[one] == PieceEmpty {
		mvs = b.appendPawnMove(mvs, b.newMove(from, one, p))
		two := one.Offset(fwd)
		if from.Y() == rankPawnStart[s] && b.squares[two] == PieceEmpty {
			mvs = append(mvs, b.newMove(from, two, p))
		}
	}

	for _, delta := range deltasPawnTake[s] {
		to := from.Offset(delta)
		if !to.IsValid() {
			continue
		}
		t := b.squares[to]
		switch {
		case t.IsReal() && t.Side() != s:
			mvs = b.appendPawnMove(mvs, b.newMove(from, to, p))
		case t == PieceEmpty && to == b.enPassant:
			mv := b.newMove(from, to, p)
			mv.IsEnPassant = true
			mv.CapturedAt = to.Offset(-fwd)
			mv.Captured = b.squares[mv.CapturedAt]
			mvs = append(mvs, mv)
		}
	}
	return mvs
}

// appendPawnMove expands a move onto the last rank into one move per
// promotion candidate.
func (b *Board) appendPawnMove(mvs []Move, mv Move) []Move {
	s := mv.Piece.Side()
	if mv.To.Y() != rankPawnPromote[s] {
		return append(mvs, mv)
	}
	for _, t := range PromoteCandidates {
		pmv := mv
		pmv.Promote = NewPiece(s, t)
		mvs = append(mvs, pmv)
	}
	return mvs
}

func (b *Board) genCastleMoves(mvs []Move, from position.Pos, p Piece) []Move {
	s := p.Side()
	for _, d := range castleDirections[s] {
		if b.canCastleNow(d, p) && posCastling[d].kingFrom == from {
			mv := b.newMove(from, posCastling[d].kingTo, p)
			mv.Castle = d
			mvs = append(mvs, mv)
		}
	}
	return mvs
}

// canCastleNow checks the right, the king and rook on their home squares and
// the squares between them being empty. Attacks are checked by
// IsLegalPseudoMove.
func (b *Board) canCastleNow(d CastleDirection, king Piece) bool {
	if !b.castleRights.IsAllowed(d) {
		return false
	}
	g := posCastling[d]
	if b.squares[g.kingFrom] != king || b.squares[g.rookFrom] != NewPiece(king.Side(), TypeRook) {
		return false
	}
	for _, pos := range g.empty {
		if b.squares[pos] != PieceEmpty {
			return false
		}
	}
	return true
}
