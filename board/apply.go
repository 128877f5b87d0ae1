package board

import (
	"fmt"

	"github.com/daystram/x88chess/position"
)

// Apply plays mv on the board and pushes an undo record. The move is not
// validated; callers pass moves from GenerateMoves or checked by IsLegalMove.
func (b *Board) Apply(mv Move) {
	u := UndoRecord{
		Move:         mv,
		Target:       b.squares[mv.To],
		EnPassant:    b.enPassant,
		PassedPawnAt: position.None,
		CastleRights: b.castleRights,
		HasCastled:   b.hasCastled,
		Hash:         b.hash,
	}
	s := mv.Piece.Side()
	nextEnPassant := position.None

	switch t := mv.Piece.Type(); {
	case t == TypeKing:
		for _, d := range castleDirections[s] {
			b.setCastleRight(d, false)
		}
		if d := castleDirectionByKingMove(mv.From, mv.To); d != CastleDirectionUnknown {
			g := posCastling[d]
			b.relocate(g.rookFrom, g.rookTo)
			b.setHasCastled(s, true)
		}
		b.relocate(mv.From, mv.To)

	case t == TypePawn && mv.To == b.enPassant && mv.From.X() != mv.To.X():
		u.PassedPawnAt = position.NewPos(mv.To.X(), mv.From.Y())
		u.PassedPawn = b.squares[u.PassedPawnAt]
		b.put(u.PassedPawnAt, PieceEmpty)
		b.relocate(mv.From, mv.To)

	case t == TypePawn && abs(int(mv.To)-int(mv.From)) == 2*Up:
		nextEnPassant = mv.From.Offset(s.Forward())
		b.relocate(mv.From, mv.To)

	case t == TypePawn && mv.Promote.IsReal():
		b.put(mv.From, PieceEmpty)
		b.put(mv.To, mv.Promote)

	default:
		b.relocate(mv.From, mv.To)
	}

	// a rook leaving or being taken on its corner ends that right
	if d := castleDirectionByCorner(mv.From); d != CastleDirectionUnknown {
		b.setCastleRight(d, false)
	}
	if d := castleDirectionByCorner(mv.To); d != CastleDirectionUnknown {
		b.setCastleRight(d, false)
	}

	b.setEnPassant(nextEnPassant)
	b.flipTurn()
	b.history = append(b.history, u)
}

// Undo reverses the most recent Apply.
func (b *Board) Undo() error {
	if len(b.history) == 0 {
		return fmt.Errorf("%w: no move to undo", ErrIllegalState)
	}
	u := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	mv := u.Move

	switch {
	case mv.Piece.Type() == TypeKing:
		b.put(mv.To, u.Target)
		b.put(mv.From, mv.Piece)
		if d := castleDirectionByKingMove(mv.From, mv.To); d != CastleDirectionUnknown {
			g := posCastling[d]
			b.relocate(g.rookTo, g.rookFrom)
		}

	case u.PassedPawnAt.IsValid():
		b.put(mv.To, PieceEmpty)
		b.put(mv.From, mv.Piece)
		b.put(u.PassedPawnAt, u.PassedPawn)

	default:
		b.put(mv.To, u.Target)
		b.put(mv.From, mv.Piece)
	}

	b.enPassant = u.EnPassant
	b.castleRights = u.CastleRights
	b.hasCastled = u.HasCastled
	b.turn = b.turn.Opposite()
	b.hash = u.Hash
	return nil
}

// MustUndo is Undo for callers that keep apply and undo strictly paired.
func (b *Board) MustUndo() {
	if err := b.Undo(); err != nil {
		panic(err)
	}
}
