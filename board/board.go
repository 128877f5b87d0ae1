package board

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/x88chess/position"
)

// Board is a 0x88 mailbox position. It is mutated in place by Apply and
// restored by Undo, and is not safe for concurrent use.
type Board struct {
	squares [128]Piece
	kings   [2]position.Pos

	turn         Side
	castleRights CastleRights
	hasCastled   [2]bool
	enPassant    position.Pos
	hash         uint64

	history []UndoRecord
	basePly int
}

type boardConfig struct {
	fen string
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{
		fen: DefaultStartingPositionFEN,
	}
	for _, f := range opts {
		f(cfg)
	}
	b := &Board{}
	if err := UnmarshalFEN(cfg.fen, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) reset() {
	*b = Board{
		kings:     [2]position.Pos{position.None, position.None},
		enPassant: position.None,
		history:   b.history[:0],
	}
}

func (b *Board) FEN() string {
	fen, _ := MarshalFEN(b)
	return fen
}

func (b *Board) Turn() Side {
	return b.turn
}

func (b *Board) Hash() uint64 {
	return b.hash
}

func (b *Board) EnPassant() position.Pos {
	return b.enPassant
}

func (b *Board) CastleRights() CastleRights {
	return b.castleRights
}

func (b *Board) CanCastle(d CastleDirection) bool {
	return b.castleRights.IsAllowed(d)
}

func (b *Board) HasCastled(s Side) bool {
	return b.hasCastled[s]
}

// At returns the occupant of pos, or PieceNone when pos is off the board.
func (b *Board) At(pos position.Pos) Piece {
	if !pos.IsValid() {
		return PieceNone
	}
	return b.squares[pos]
}

func (b *Board) King(s Side) position.Pos {
	return b.kings[s]
}

// Ply counts half moves since the game start.
func (b *Board) Ply() int {
	return b.basePly + len(b.history)
}

// History returns the applied moves, oldest first.
func (b *Board) History() []Move {
	mvs := make([]Move, len(b.history))
	for i, u := range b.history {
		mvs[i] = u.Move
	}
	return mvs
}

// Pieces lists the squares holding pieces of side s, a1 first.
func (b *Board) Pieces(s Side) []position.Pos {
	var list []position.Pos
	for pos := position.Pos(0); pos < 128; pos++ {
		if pos.IsValid() && b.squares[pos].IsReal() && b.squares[pos].Side() == s {
			list = append(list, pos)
		}
	}
	return list
}

func (b *Board) CountOf(p Piece) int {
	var n int
	for pos := position.Pos(0); pos < 128; pos++ {
		if pos.IsValid() && b.squares[pos] == p {
			n++
		}
	}
	return n
}

func (b *Board) CountOfType(t PieceType) int {
	return b.CountOf(NewPiece(SideWhite, t)) + b.CountOf(NewPiece(SideBlack, t))
}

// put writes p to pos, keeping the hash and king squares current.
func (b *Board) put(pos position.Pos, p Piece) {
	if old := b.squares[pos]; old.IsReal() {
		b.hash ^= zobristConstantPiece[old][pos.Index64()]
	}
	b.squares[pos] = p
	if p.IsReal() {
		b.hash ^= zobristConstantPiece[p][pos.Index64()]
		if p.Type() == TypeKing {
			b.kings[p.Side()] = pos
		}
	}
}

func (b *Board) relocate(from, to position.Pos) {
	p := b.squares[from]
	b.put(from, PieceEmpty)
	b.put(to, p)
}

func (b *Board) setCastleRight(d CastleDirection, allow bool) {
	if b.castleRights.IsAllowed(d) == allow {
		return
	}
	b.castleRights.Set(d, allow)
	b.hash ^= zobristConstantCastle[d]
}

func (b *Board) setHasCastled(s Side, castled bool) {
	if b.hasCastled[s] == castled {
		return
	}
	b.hasCastled[s] = castled
	b.hash ^= zobristConstantHasCastled[s]
}

func (b *Board) setEnPassant(pos position.Pos) {
	if b.enPassant.IsValid() {
		b.hash ^= zobristConstantEnPassant[b.enPassant.Index64()]
	}
	b.enPassant = pos
	if pos.IsValid() {
		b.hash ^= zobristConstantEnPassant[pos.Index64()]
	}
}

func (b *Board) flipTurn() {
	b.turn = b.turn.Opposite()
	b.hash ^= zobristConstantSideWhite
}

// computeHash rebuilds the signature from scratch.
func (b *Board) computeHash() uint64 {
	var hash uint64
	for pos := position.Pos(0); pos < 128; pos++ {
		if pos.IsValid() && b.squares[pos].IsReal() {
			hash ^= zobristConstantPiece[b.squares[pos]][pos.Index64()]
		}
	}
	if b.turn == SideWhite {
		hash ^= zobristConstantSideWhite
	}
	for d := CastleDirectionWhiteRight; d <= CastleDirectionBlackLeft; d++ {
		if b.castleRights.IsAllowed(d) {
			hash ^= zobristConstantCastle[d]
		}
	}
	for _, s := range []Side{SideBlack, SideWhite} {
		if b.hasCastled[s] {
			hash ^= zobristConstantHasCastled[s]
		}
	}
	if b.enPassant.IsValid() {
		hash ^= zobristConstantEnPassant[b.enPassant.Index64()]
	}
	return hash
}

// Clone returns a deep copy, history included.
func (b *Board) Clone() *Board {
	bb := *b
	bb.history = make([]UndoRecord, len(b.history), cap(b.history))
	copy(bb.history, b.history)
	return &bb
}

// Equal compares placement, side to move, castle state and en passant.
// History is ignored.
func (b *Board) Equal(o *Board) bool {
	return b.squares == o.squares &&
		b.turn == o.turn &&
		b.castleRights == o.castleRights &&
		b.hasCastled == o.hasCastled &&
		b.enPassant == o.enPassant
}

func (b *Board) Dump() string {
	builder := strings.Builder{}
	for y := position.Pos(Height); y > 0; y-- {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y))
		for x := position.Pos(0); x < Width; x++ {
			sym := b.squares[position.NewPos(x, y-1)].SymbolFEN()
			if sym == "" {
				sym = " "
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", x.NotationComponentX()))
	}
	return builder.String()
}

var (
	drawLabel     = color.New(color.Bold)
	drawCellDark  = color.New(color.FgBlack, color.BgGreen)
	drawCellLight = color.New(color.FgBlack, color.BgHiWhite)
)

func (b *Board) Draw() string {
	builder := strings.Builder{}
	for y := position.Pos(Height); y > 0; y-- {
		_, _ = builder.WriteString(drawLabel.Sprintf(" %d ", y))
		for x := position.Pos(0); x < Width; x++ {
			p := b.squares[position.NewPos(x, y-1)]
			sym := p.SymbolUnicode(false)
			if !p.IsReal() {
				sym = " "
			}
			cell := drawCellLight
			if (x+y-1)%2 == 0 {
				cell = drawCellDark
			}
			_, _ = builder.WriteString(cell.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(drawLabel.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}

func (b *Board) DebugString() string {
	return fmt.Sprintf("cast: %04b\nplys: %4d\nhash: %016x\nstat: %s", b.castleRights, b.Ply(), b.hash, b.State())
}
