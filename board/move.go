package board

import (
	"strings"

	"github.com/daystram/x88chess/position"
)

// Move describes a move on a specific board. Target is the occupant of the
// destination before the move, while Captured is the piece that actually
// leaves the board, which differs from Target for en passant.
type Move struct {
	From, To position.Pos
	Piece    Piece
	Target   Piece
	Promote  Piece

	Captured    Piece
	CapturedAt  position.Pos
	Castle      CastleDirection
	IsEnPassant bool
}

// UndoRecord stores what Apply cannot recompute when reversing a move.
type UndoRecord struct {
	Move      Move
	Target    Piece
	EnPassant position.Pos

	// set for en passant only
	PassedPawn   Piece
	PassedPawnAt position.Pos

	CastleRights CastleRights
	HasCastled   [2]bool
	Hash         uint64
}

// Equals compares source, destination and promotion. The capture reference
// is not part of a move's identity.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.Piece == o.Piece &&
		m.To == o.To && m.Target == o.Target &&
		m.Promote == o.Promote
}

func (m Move) IsNull() bool {
	return m.Piece == PieceEmpty || m.Piece == PieceNone
}

func (m Move) IsCapture() bool {
	return m.Captured.IsReal()
}

func (m Move) IsPromote() bool {
	return m.Promote.IsReal()
}

// IsNoisy reports captures, en passant and promotions.
func (m Move) IsNoisy() bool {
	return m.IsCapture() || m.IsEnPassant || m.IsPromote()
}

func (m Move) String() string {
	return m.UCI()
}

func (m Move) UCI() string {
	if m.IsNull() {
		return "0000"
	}
	nt := m.From.Notation() + m.To.Notation()
	if m.IsPromote() {
		nt += strings.ToLower(m.Promote.Type().Symbol())
	}
	return nt
}

// Server renders e7e8=Q style notation.
func (m Move) Server() string {
	nt := m.From.Notation() + m.To.Notation()
	if m.IsPromote() {
		nt += "=" + m.Promote.Type().Symbol()
	}
	return nt
}

// Smith renders source, destination, captured piece (or E for en passant),
// castle flag and promotion.
func (m Move) Smith() string {
	nt := m.From.Notation() + m.To.Notation()
	switch {
	case m.IsEnPassant:
		nt += "E"
	case m.IsCapture():
		nt += strings.ToLower(m.Captured.Type().Symbol())
	}
	if m.Castle != CastleDirectionUnknown {
		if m.Castle.IsRight() {
			nt += "c"
		} else {
			nt += "C"
		}
	}
	if m.IsPromote() {
		nt += m.Promote.Type().Symbol()
	}
	return nt
}
